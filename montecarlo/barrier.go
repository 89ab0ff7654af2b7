package montecarlo

import (
	"golang.org/x/exp/rand"

	"derivatives/model"
)

const (
	opContinuousBarrier = "barrier_continuous"
	opDiscreteBarrier   = "barrier_discrete"
)

// BarrierType selects the knock-out direction.
type BarrierType string

// Supported barrier types.
const (
	DownAndOut BarrierType = "down-and-out"
	UpAndOut   BarrierType = "up-and-out"
)

func (t BarrierType) validate(op string) error {
	switch t {
	case DownAndOut, UpAndOut:
		return nil
	}
	return model.Invalidf(op, "barrier_type", "unrecognised barrier type %q, want %q or %q", string(t), DownAndOut, UpAndOut)
}

// breached reports whether price triggers the knock-out.
func (t BarrierType) breached(price, barrier float64) bool {
	if t == DownAndOut {
		return price <= barrier
	}
	return price >= barrier
}

// BarrierOption is a knock-out option. A path that breaches the barrier pays
// nothing and is not simulated any further.
type BarrierOption struct {
	Spot     float64
	Strike   float64
	Barrier  float64
	Rate     float64
	Vol      float64
	Maturity float64
	IsCall   bool
	Type     BarrierType
	Simulation
}

// ContinuousBarrier approximates continuous monitoring with Steps monitoring points.
type ContinuousBarrier struct {
	BarrierOption
	Steps int
}

// DiscreteBarrier checks the barrier on MonitoringTimes equally spaced dates.
type DiscreteBarrier struct {
	BarrierOption
	MonitoringTimes int
}

// Estimate runs the simulation.
func (c ContinuousBarrier) Estimate() (Estimate, error) {
	return c.estimate(opContinuousBarrier, "n_steps", c.Steps)
}

// Value returns the discounted expected payoff.
func (c ContinuousBarrier) Value() (float64, error) {
	est, err := c.Estimate()
	return est.Price, err
}

// PriceEstimate decodes p over the receiver's fields and runs the simulation.
func (c ContinuousBarrier) PriceEstimate(p model.Params) (Estimate, error) {
	d := p.Decode(opContinuousBarrier)
	c.decode(d)
	d.OptInt("n_steps", &c.Steps)
	if err := d.Err(); err != nil {
		return Estimate{}, err
	}
	return c.Estimate()
}

// Price implements model.Model.
func (c ContinuousBarrier) Price(p model.Params) (float64, error) {
	est, err := c.PriceEstimate(p)
	return est.Price, err
}

// Estimate runs the simulation.
func (b DiscreteBarrier) Estimate() (Estimate, error) {
	return b.estimate(opDiscreteBarrier, "monitoring_times", b.MonitoringTimes)
}

// Value returns the discounted expected payoff.
func (b DiscreteBarrier) Value() (float64, error) {
	est, err := b.Estimate()
	return est.Price, err
}

// PriceEstimate decodes p over the receiver's fields and runs the simulation.
func (b DiscreteBarrier) PriceEstimate(p model.Params) (Estimate, error) {
	d := p.Decode(opDiscreteBarrier)
	b.decode(d)
	d.Int("monitoring_times", &b.MonitoringTimes)
	if err := d.Err(); err != nil {
		return Estimate{}, err
	}
	return b.Estimate()
}

// Price implements model.Model.
func (b DiscreteBarrier) Price(p model.Params) (float64, error) {
	est, err := b.PriceEstimate(p)
	return est.Price, err
}

func (o *BarrierOption) decode(d *model.Decoder) {
	d.Float("spot", &o.Spot)
	d.Float("strike", &o.Strike)
	d.Float("barrier", &o.Barrier)
	d.Float("rate", &o.Rate)
	d.Float("vol", &o.Vol)
	d.Float("maturity", &o.Maturity)
	d.OptBool("is_call", &o.IsCall)
	kind := string(o.Type)
	d.OptString("barrier_type", &kind)
	o.Type = BarrierType(kind)
	o.Simulation.decode(d)
}

func (o BarrierOption) estimate(op, stepsName string, steps int) (Estimate, error) {
	if err := model.Check(
		marketInputs(op, o.Spot, o.Strike, o.Rate, o.Vol, o.Maturity),
		model.NonNegative(op, "barrier", o.Barrier),
		model.PositiveCount(op, stepsName, steps),
		o.Type.validate(op),
	); err != nil {
		return Estimate{}, err
	}

	proc := newProcess(o.Spot, o.Rate, 0, o.Vol, o.Maturity, steps)
	payoff := func(rng *rand.Rand) float64 {
		price := proc.spot
		for step := 0; step < proc.steps; step++ {
			price = proc.next(price, rng)
			if o.Type.breached(price, o.Barrier) {
				return 0
			}
		}
		return intrinsic(price, o.Strike, o.IsCall)
	}
	return o.Simulation.run(op, exp(-o.Rate*o.Maturity), payoff)
}
