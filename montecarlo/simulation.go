// Package montecarlo prices path-dependent options by simulating lognormal
// price paths under the risk-neutral measure and averaging discounted payoffs.
package montecarlo

import (
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"derivatives/model"
)

// blockSize is the number of consecutive paths drawn from one random stream.
const blockSize = 1024

// MaxPaths bounds n_paths; every payoff is held in memory until averaged.
const MaxPaths = 1 << 26

// Simulation holds the assumptions for the Monte Carlo simulation.
//
// Paths are split into blocks of blockSize, and block b draws from its own
// stream seeded from (Seed, b). The estimate therefore depends on Seed and
// Paths only, whatever the number of Workers.
type Simulation struct {
	Paths   int
	Seed    uint64
	Workers int
	Logger  *zap.Logger
}

// Estimate is a discounted Monte Carlo price with its standard error.
type Estimate struct {
	Price  float64
	StdErr float64
	Paths  int
}

// Estimator is a Monte Carlo model that also reports its standard error.
type Estimator interface {
	model.Model
	PriceEstimate(p model.Params) (Estimate, error)
}

// pathPayoff simulates one path with rng and returns its undiscounted payoff.
type pathPayoff func(rng *rand.Rand) float64

// decode reads the simulation overrides shared by every Monte Carlo model.
func (s *Simulation) decode(d *model.Decoder) {
	d.OptInt("n_paths", &s.Paths)
	d.OptUint("seed", &s.Seed)
}

func (s Simulation) run(op string, discount float64, payoff pathPayoff) (Estimate, error) {
	if err := model.PositiveCount(op, "n_paths", s.Paths); err != nil {
		return Estimate{}, err
	}
	if s.Paths > MaxPaths {
		return Estimate{}, model.Domainf(op, "n_paths", "must not exceed %d, got %d", MaxPaths, s.Paths)
	}
	logger := s.logger().With(zap.String("model", op))
	start := time.Now()

	// Payoff accumulator, one slot per path
	payoffs := make([]float64, s.Paths)
	blocks := (s.Paths + blockSize - 1) / blockSize

	fill := func(block int) error {
		rng := rand.New(rand.NewSource(blockSeed(s.Seed, block)))
		lo := block * blockSize
		hi := min(lo+blockSize, s.Paths)
		for i := lo; i < hi; i++ {
			v := payoff(rng)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return model.Domainf(op, "payoff", "path %d produced a non-finite payoff", i)
			}
			payoffs[i] = v
		}
		return nil
	}

	if s.Workers <= 1 {
		for b := 0; b < blocks; b++ {
			if err := fill(b); err != nil {
				return Estimate{}, err
			}
		}
	} else {
		var g errgroup.Group
		g.SetLimit(s.Workers)
		for b := 0; b < blocks; b++ {
			b := b
			g.Go(func() error { return fill(b) })
		}
		if err := g.Wait(); err != nil {
			return Estimate{}, err
		}
	}

	// Discount every payoff, then average across all runs
	floats.Scale(discount, payoffs)
	est := Estimate{Price: stat.Mean(payoffs, nil), Paths: s.Paths}
	if s.Paths > 1 {
		est.StdErr = stat.StdDev(payoffs, nil) / sqrt(float64(s.Paths))
	}

	logger.Debug("simulation finished",
		zap.Int("paths", s.Paths),
		zap.Int("blocks", blocks),
		zap.Int("workers", s.Workers),
		zap.Float64("price", est.Price),
		zap.Float64("stderr", est.StdErr),
		zap.Duration("elapsed", time.Since(start)),
	)
	return est, nil
}

func (s Simulation) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// blockSeed derives an independent stream seed for block with a splitmix64 finaliser.
func blockSeed(seed uint64, block int) uint64 {
	z := seed + uint64(block+1)*0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// process is a lognormal price sampled on a uniform time grid.
type process struct {
	spot      float64
	drift     float64
	diffusion float64
	steps     int
}

// newProcess precomputes the per-step drift and diffusion. carry is the
// continuous yield earned by holding the underlying (zero for plain equity
// options, the convenience yield for commodities).
func newProcess(spot, rate, carry, vol, maturity float64, steps int) process {
	dt := maturity / float64(steps)
	return process{
		spot:      spot,
		drift:     (rate - carry - 0.5*sqr(vol)) * dt,
		diffusion: vol * sqrt(dt),
		steps:     steps,
	}
}

// next advances price by one step.
func (p process) next(price float64, rng *rand.Rand) float64 {
	return price * exp(p.drift+p.diffusion*rng.NormFloat64())
}

// intrinsic is the call or put payoff struck against value.
func intrinsic(value, strike float64, isCall bool) float64 {
	if isCall {
		return math.Max(value-strike, 0)
	}
	return math.Max(strike-value, 0)
}

// marketInputs checks the parameters every Monte Carlo model shares.
func marketInputs(op string, spot, strike, rate, vol, maturity float64) error {
	return model.Check(
		model.NonNegative(op, "spot", spot),
		model.NonNegative(op, "strike", strike),
		model.NonNegative(op, "rate", rate),
		model.NonNegative(op, "vol", vol),
		model.Positive(op, "maturity", maturity),
	)
}

// square the input
func sqr(x float64) float64 { return x * x }

// local function aliases
var exp = math.Exp
var sqrt = math.Sqrt
