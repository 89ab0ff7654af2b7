package montecarlo

import (
	"golang.org/x/exp/rand"

	"derivatives/model"
)

const (
	opAsian          = "asian_arithmetic"
	opCommodityAsian = "commodity_asian"
)

// AsianArithmetic is an arithmetic-average Asian option observed on
// Observations equally spaced dates.
type AsianArithmetic struct {
	Spot         float64
	Strike       float64
	Rate         float64
	Vol          float64
	Maturity     float64
	Observations int
	IsCall       bool
	Simulation
}

// CommodityAsian is an arithmetic Asian option on a commodity whose drift is
// reduced by its convenience yield.
type CommodityAsian struct {
	AsianArithmetic
	ConvenienceYield float64
}

// Estimate runs the simulation.
func (a AsianArithmetic) Estimate() (Estimate, error) {
	return a.estimate(opAsian, 0)
}

// Value returns the discounted expected payoff.
func (a AsianArithmetic) Value() (float64, error) {
	est, err := a.Estimate()
	return est.Price, err
}

// PriceEstimate decodes p over the receiver's fields and runs the simulation.
func (a AsianArithmetic) PriceEstimate(p model.Params) (Estimate, error) {
	d := p.Decode(opAsian)
	a.decode(d)
	if err := d.Err(); err != nil {
		return Estimate{}, err
	}
	return a.Estimate()
}

// Price implements model.Model.
func (a AsianArithmetic) Price(p model.Params) (float64, error) {
	est, err := a.PriceEstimate(p)
	return est.Price, err
}

// Estimate runs the simulation.
func (c CommodityAsian) Estimate() (Estimate, error) {
	if err := model.Finite(opCommodityAsian, "convenience_yield", c.ConvenienceYield); err != nil {
		return Estimate{}, err
	}
	return c.estimate(opCommodityAsian, c.ConvenienceYield)
}

// Value returns the discounted expected payoff.
func (c CommodityAsian) Value() (float64, error) {
	est, err := c.Estimate()
	return est.Price, err
}

// PriceEstimate decodes p over the receiver's fields and runs the simulation.
func (c CommodityAsian) PriceEstimate(p model.Params) (Estimate, error) {
	d := p.Decode(opCommodityAsian)
	c.decode(d)
	d.OptFloat("convenience_yield", &c.ConvenienceYield)
	if err := d.Err(); err != nil {
		return Estimate{}, err
	}
	return c.Estimate()
}

// Price implements model.Model.
func (c CommodityAsian) Price(p model.Params) (float64, error) {
	est, err := c.PriceEstimate(p)
	return est.Price, err
}

func (a *AsianArithmetic) decode(d *model.Decoder) {
	d.Float("spot", &a.Spot)
	d.Float("strike", &a.Strike)
	d.Float("rate", &a.Rate)
	d.Float("vol", &a.Vol)
	d.Float("maturity", &a.Maturity)
	d.Int("num_obs", &a.Observations)
	d.OptBool("is_call", &a.IsCall)
	a.Simulation.decode(d)
}

func (a AsianArithmetic) estimate(op string, carry float64) (Estimate, error) {
	if err := model.Check(
		marketInputs(op, a.Spot, a.Strike, a.Rate, a.Vol, a.Maturity),
		model.PositiveCount(op, "num_obs", a.Observations),
	); err != nil {
		return Estimate{}, err
	}

	proc := newProcess(a.Spot, a.Rate, carry, a.Vol, a.Maturity, a.Observations)
	payoff := func(rng *rand.Rand) float64 {
		price := proc.spot
		runningSum := 0.0
		for obs := 0; obs < proc.steps; obs++ {
			price = proc.next(price, rng)
			runningSum += price
		}
		return intrinsic(runningSum/float64(proc.steps), a.Strike, a.IsCall)
	}
	return a.Simulation.run(op, exp(-a.Rate*a.Maturity), payoff)
}
