package montecarlo_test

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/stat/distuv"

	"derivatives/model"
	"derivatives/montecarlo"
)

// blackScholes is the closed-form European price used as a reference.
func blackScholes(spot, strike, rate, vol, maturity float64, isCall bool) float64 {
	sqrtT := math.Sqrt(maturity)
	d1 := (math.Log(spot/strike) + (rate+0.5*vol*vol)*maturity) / (vol * sqrtT)
	d2 := d1 - vol*sqrtT
	df := math.Exp(-rate * maturity)
	if isCall {
		return spot*distuv.UnitNormal.CDF(d1) - strike*df*distuv.UnitNormal.CDF(d2)
	}
	return strike*df*distuv.UnitNormal.CDF(-d2) - spot*distuv.UnitNormal.CDF(-d1)
}

func sim(paths int) montecarlo.Simulation {
	return montecarlo.Simulation{Paths: paths, Seed: 355}
}

func barrierOption(barrier float64, steps, paths int) montecarlo.ContinuousBarrier {
	return montecarlo.ContinuousBarrier{
		BarrierOption: montecarlo.BarrierOption{
			Spot: 100, Strike: 100, Barrier: barrier, Rate: 0.05, Vol: 0.2, Maturity: 1,
			IsCall: true, Type: montecarlo.DownAndOut, Simulation: sim(paths),
		},
		Steps: steps,
	}
}

func TestAsian_ZeroVolIsDeterministic(t *testing.T) {
	t.Parallel()

	const spot, strike, rate, maturity, obs = 100.0, 90.0, 0.05, 1.0, 4
	a := montecarlo.AsianArithmetic{
		Spot: spot, Strike: strike, Rate: rate, Vol: 0, Maturity: maturity,
		Observations: obs, IsCall: true, Simulation: sim(2000),
	}
	est, err := a.Estimate()
	if err != nil {
		t.Fatalf("Estimate error: %v", err)
	}

	dt := maturity / obs
	sum := 0.0
	for k := 1; k <= obs; k++ {
		sum += spot * math.Exp(rate*dt*float64(k))
	}
	want := math.Exp(-rate*maturity) * (sum/obs - strike)
	if math.Abs(est.Price-want) > 1e-9 {
		t.Fatalf("got %.10f, want %.10f", est.Price, want)
	}
	if est.StdErr > 1e-9 {
		t.Fatalf("zero-vol stderr should vanish, got %g", est.StdErr)
	}
}

func TestAsian_BelowVanilla(t *testing.T) {
	t.Parallel()

	a := montecarlo.AsianArithmetic{
		Spot: 100, Strike: 100, Rate: 0.05, Vol: 0.2, Maturity: 1,
		Observations: 12, IsCall: true, Simulation: sim(20000),
	}
	got, err := a.Value()
	if err != nil {
		t.Fatalf("Value error: %v", err)
	}
	vanilla := blackScholes(100, 100, 0.05, 0.2, 1, true)
	if got <= 0 || got >= vanilla {
		t.Fatalf("asian call %.4f should lie in (0, %.4f)", got, vanilla)
	}
}

func TestCommodityAsian_ConvenienceYield(t *testing.T) {
	t.Parallel()

	base := montecarlo.AsianArithmetic{
		Spot: 50, Strike: 50, Rate: 0.03, Vol: 0.3, Maturity: 0.5,
		Observations: 6, IsCall: true, Simulation: sim(10000),
	}
	plain, err := base.Value()
	if err != nil {
		t.Fatalf("Value error: %v", err)
	}

	zero, err := montecarlo.CommodityAsian{AsianArithmetic: base}.Value()
	if err != nil {
		t.Fatalf("Value error: %v", err)
	}
	if zero != plain {
		t.Fatalf("zero convenience yield should reproduce the plain asian: %.10f vs %.10f", zero, plain)
	}

	carry, err := montecarlo.CommodityAsian{AsianArithmetic: base, ConvenienceYield: 0.1}.Value()
	if err != nil {
		t.Fatalf("Value error: %v", err)
	}
	if carry >= plain {
		t.Fatalf("convenience yield should cheapen the call: %.4f >= %.4f", carry, plain)
	}
}

func TestBarrier_ZeroVol(t *testing.T) {
	t.Parallel()

	up := montecarlo.DiscreteBarrier{
		BarrierOption: montecarlo.BarrierOption{
			Spot: 100, Strike: 95, Barrier: 104, Rate: 0.05, Vol: 0, Maturity: 1,
			IsCall: true, Type: montecarlo.UpAndOut, Simulation: sim(100),
		},
		MonitoringTimes: 4,
	}
	got, err := up.Value()
	if err != nil {
		t.Fatalf("Value error: %v", err)
	}
	if got != 0 {
		t.Fatalf("forward path reaches %.2f and must knock out, got %.6f", 100*math.Exp(0.05), got)
	}

	up.Barrier = 110
	got, err = up.Value()
	if err != nil {
		t.Fatalf("Value error: %v", err)
	}
	want := 100 - 95*math.Exp(-0.05)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("got %.10f, want %.10f", got, want)
	}
}

func TestBarrier_VanishingBarrierMatchesVanilla(t *testing.T) {
	t.Parallel()

	est, err := barrierOption(0, 10, 50000).Estimate()
	if err != nil {
		t.Fatalf("Estimate error: %v", err)
	}
	want := blackScholes(100, 100, 0.05, 0.2, 1, true)
	if math.Abs(est.Price-want) > 4*est.StdErr {
		t.Fatalf("got %.4f ± %.4f, want %.4f", est.Price, est.StdErr, want)
	}
}

func TestBarrier_DownAndOutMonotonicInBarrier(t *testing.T) {
	t.Parallel()

	prev := -1.0
	for _, barrier := range []float64{95, 90, 85, 75} {
		got, err := barrierOption(barrier, 50, 50000).Value()
		if err != nil {
			t.Fatalf("barrier %.0f: %v", barrier, err)
		}
		if got < prev {
			t.Fatalf("barrier %.0f: price %.4f fell below %.4f for a higher barrier", barrier, got, prev)
		}
		prev = got
	}
}

func TestSimulation_StdErrShrinksWithPaths(t *testing.T) {
	t.Parallel()

	small, err := barrierOption(80, 12, 10000).Estimate()
	if err != nil {
		t.Fatalf("Estimate error: %v", err)
	}
	large, err := barrierOption(80, 12, 200000).Estimate()
	if err != nil {
		t.Fatalf("Estimate error: %v", err)
	}
	ratio := small.StdErr / large.StdErr
	if ratio < 3.5 || ratio > 5.5 {
		t.Fatalf("stderr ratio %.3f, want about sqrt(20)=%.3f", ratio, math.Sqrt(20))
	}
}

func TestSimulation_WorkersDoNotChangeResult(t *testing.T) {
	t.Parallel()

	seq := barrierOption(90, 20, 9000)
	par := seq
	par.Workers = 4

	a, err := seq.Value()
	if err != nil {
		t.Fatalf("sequential: %v", err)
	}
	b, err := par.Value()
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}
	if a != b {
		t.Fatalf("results differ: sequential %.12f, parallel %.12f", a, b)
	}
}

func TestSimulation_SeedIsReproducible(t *testing.T) {
	t.Parallel()

	o := barrierOption(90, 20, 3000)
	a, _ := o.Value()
	b, _ := o.Value()
	if a != b {
		t.Fatalf("same seed gave %.12f and %.12f", a, b)
	}
	o.Seed = 356
	c, _ := o.Value()
	if a == c {
		t.Fatalf("different seeds should give different estimates")
	}
}

func TestPrice_Params(t *testing.T) {
	t.Parallel()

	m := montecarlo.DiscreteBarrier{BarrierOption: montecarlo.BarrierOption{
		IsCall: true, Type: montecarlo.DownAndOut, Simulation: sim(1000),
	}}
	p := model.Params{
		"spot": 100, "strike": 100, "barrier": 90, "rate": 0.05, "vol": 0.2,
		"maturity": 1.0, "monitoring_times": 12, "n_paths": 2000, "seed": 1,
	}
	got, err := m.Price(p)
	if err != nil {
		t.Fatalf("Price error: %v", err)
	}
	if math.IsNaN(got) || got <= 0 {
		t.Fatalf("unexpected price %v", got)
	}
}

func TestPrice_Errors(t *testing.T) {
	t.Parallel()

	base := model.Params{"spot": 100, "strike": 100, "barrier": 90, "rate": 0.05, "vol": 0.2, "maturity": 1.0}
	with := func(kv ...interface{}) model.Params {
		p := model.Params{}
		for k, v := range base {
			p[k] = v
		}
		for i := 0; i < len(kv); i += 2 {
			p[kv[i].(string)] = kv[i+1]
		}
		return p
	}

	cb := montecarlo.ContinuousBarrier{
		BarrierOption: montecarlo.BarrierOption{IsCall: true, Type: montecarlo.DownAndOut, Simulation: sim(100)},
		Steps:         50,
	}
	cases := []struct {
		name string
		p    model.Params
		want error
	}{
		{"unknown barrier type", with("barrier_type", "knock-in"), model.ErrInvalidArgument},
		{"zero paths", with("n_paths", 0), model.ErrDomain},
		{"too many paths", with("n_paths", float64(1<<50)), model.ErrDomain},
		{"one path over the limit", with("n_paths", montecarlo.MaxPaths+1), model.ErrDomain},
		{"zero steps", with("n_steps", 0), model.ErrDomain},
		{"negative vol", with("vol", -0.2), model.ErrDomain},
		{"zero maturity", with("maturity", 0), model.ErrDomain},
		{"string spot", with("spot", "100"), model.ErrTypeMismatch},
		{"unknown param", with("extra", nil), model.ErrInvalidArgument},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := cb.Price(tc.p); !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
		})
	}

	asian := montecarlo.AsianArithmetic{IsCall: true, Simulation: sim(100)}
	p := model.Params{"spot": 100, "strike": 100, "rate": 0.05, "vol": 0.2, "maturity": 1.0, "num_obs": 0}
	if _, err := asian.Price(p); !errors.Is(err, model.ErrDomain) {
		t.Fatalf("num_obs 0: want ErrDomain, got %v", err)
	}
	p["num_obs"] = 12
	p["n_paths"] = float64(1 << 50)
	if _, err := asian.Price(p); !errors.Is(err, model.ErrDomain) {
		t.Fatalf("n_paths 2^50: want ErrDomain, got %v", err)
	}
}
