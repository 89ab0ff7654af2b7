// Package fdm solves the Black-Scholes PDE for European options with an
// explicit finite-difference scheme on a uniform spot grid.
package fdm

import (
	"math"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"derivatives/model"
)

const op = "finite_difference"

// European contains the assumptions of the grid valuation.
//
// The scheme is conditionally stable: dt·Vol²·NSpace² must stay below about
// one or the grid diverges. Crossing the bound is logged; a grid that has
// actually diverged is an error.
type European struct {
	Spot     float64
	Strike   float64
	Rate     float64
	Vol      float64
	Maturity float64
	IsCall   bool
	// SMax is the top of the spot grid. Zero means 2·Strike.
	SMax   float64
	NTime  int
	NSpace int
	Logger *zap.Logger
}

// Price implements model.Model.
func (e European) Price(p model.Params) (float64, error) {
	d := p.Decode(op)
	d.Float("spot", &e.Spot)
	d.Float("strike", &e.Strike)
	d.Float("rate", &e.Rate)
	d.Float("vol", &e.Vol)
	d.Float("maturity", &e.Maturity)
	d.OptBool("is_call", &e.IsCall)
	d.OptFloat("s_max", &e.SMax)
	d.OptInt("n_time", &e.NTime)
	d.OptInt("n_space", &e.NSpace)
	if err := d.Err(); err != nil {
		return 0, err
	}
	return e.Value()
}

// Value steps the terminal payoff back to today and interpolates at Spot.
func (e European) Value() (float64, error) {
	grid, sMax, err := e.Grid()
	if err != nil {
		return 0, err
	}
	if math.IsNaN(e.Spot) || e.Spot < 0 || e.Spot > sMax {
		return 0, model.OutOfRangef(op, "spot", "%v lies outside the grid [0, %v]", e.Spot, sMax)
	}

	// Linear interpolation between the two bracketing nodes
	ds := sMax / float64(e.NSpace)
	i := int(e.Spot / ds)
	if i >= e.NSpace {
		return grid[e.NSpace], nil
	}
	weight := (e.Spot - float64(i)*ds) / ds
	return grid[i]*(1-weight) + grid[i+1]*weight, nil
}

// Grid returns today's option values on the NSpace+1 spot levels spanning
// [0, sMax], together with sMax.
func (e European) Grid() ([]float64, float64, error) {
	sMax := e.SMax
	if sMax == 0 {
		sMax = 2 * e.Strike
	}
	if err := model.Check(
		model.NonNegative(op, "strike", e.Strike),
		model.NonNegative(op, "rate", e.Rate),
		model.NonNegative(op, "vol", e.Vol),
		model.Positive(op, "maturity", e.Maturity),
		model.Positive(op, "s_max", sMax),
		model.PositiveCount(op, "n_time", e.NTime),
		model.PositiveCount(op, "n_space", e.NSpace),
	); err != nil {
		return nil, 0, err
	}

	logger := e.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	start := time.Now()

	n := e.NSpace
	dt := e.Maturity / float64(e.NTime)
	if ratio := dt * e.Vol * e.Vol * float64(n*n); ratio > 1 {
		logger.Warn("explicit scheme outside its stability bound",
			zap.Float64("ratio", ratio),
			zap.Int("n_time", e.NTime),
			zap.Int("n_space", n),
		)
	}

	// Terminal payoff on the spot levels
	spots := floats.Span(make([]float64, n+1), 0, sMax)
	payoff := make([]float64, n+1)
	for i, s := range spots {
		if e.IsCall {
			payoff[i] = math.Max(s-e.Strike, 0)
		} else {
			payoff[i] = math.Max(e.Strike-s, 0)
		}
	}

	step := e.operator(dt)
	cur := mat.NewVecDense(n+1, payoff)
	next := mat.NewVecDense(n+1, nil)
	for k := 0; k < e.NTime; k++ {
		// Interior nodes from the full previous layer, boundaries analytically
		next.MulVec(step, cur)
		lower, upper := e.boundaries(sMax, float64(k+1)*dt)
		next.SetVec(0, lower)
		next.SetVec(n, upper)
		cur, next = next, cur
	}

	values := mat.Col(nil, 0, cur)
	if err := e.check(values, sMax); err != nil {
		return nil, 0, err
	}

	logger.Debug("grid solved",
		zap.Int("n_time", e.NTime),
		zap.Int("n_space", n),
		zap.Float64("s_max", sMax),
		zap.Duration("elapsed", time.Since(start)),
	)
	return values, sMax, nil
}

// check rejects a grid that has diverged. A European value never exceeds
// max(sMax, Strike) in magnitude, so anything outside twice that bound is
// the unstable scheme's oscillation, not a price.
func (e European) check(values []float64, sMax float64) error {
	bound := 2 * math.Max(sMax, e.Strike)
	lo, hi := floats.Min(values), floats.Max(values)
	if floats.HasNaN(values) || math.IsInf(lo, 0) || math.IsInf(hi, 0) || lo < -bound || hi > bound {
		return model.Domainf(op, "n_time", "grid diverged to [%g, %g]; raise n_time or lower n_space", lo, hi)
	}
	return nil
}

// operator is one explicit Euler step backward in time. Row i applies
//
//	V_i - dt·theta_i,  theta = -0.5·vol²·S²·gamma - rate·S·delta + rate·V
//
// with central differences for delta and gamma, which reduces to a
// tridiagonal matrix since S_i = i·ds. The boundary rows stay zero.
func (e European) operator(dt float64) *mat.BandDense {
	n := e.NSpace
	band := mat.NewBandDense(n+1, n+1, 1, 1, nil)
	for i := 1; i < n; i++ {
		fi := float64(i)
		a := 0.5 * e.Vol * e.Vol * fi * fi
		b := 0.5 * e.Rate * fi
		band.SetBand(i, i-1, dt*(a-b))
		band.SetBand(i, i, 1-dt*(2*a+e.Rate))
		band.SetBand(i, i+1, dt*(a+b))
	}
	return band
}

// boundaries are the option values at S=0 and S=sMax with tau years left.
func (e European) boundaries(sMax, tau float64) (lower, upper float64) {
	df := math.Exp(-e.Rate * tau)
	if e.IsCall {
		return 0, sMax - e.Strike*df
	}
	return e.Strike * df, 0
}
