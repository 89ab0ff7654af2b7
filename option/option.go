// Package option holds closed-form option models.
package option

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"derivatives/model"
)

// black is the undiscounted Black price of an option on forward with the
// given total volatility vol·sqrt(T).
func black(forward, strike, stdDev float64, isCall bool) float64 {
	d1 := (math.Log(forward/strike) + 0.5*stdDev*stdDev) / stdDev
	d2 := d1 - stdDev
	if isCall {
		return forward*distuv.UnitNormal.CDF(d1) - strike*distuv.UnitNormal.CDF(d2)
	}
	return strike*distuv.UnitNormal.CDF(-d2) - forward*distuv.UnitNormal.CDF(-d1)
}

func intrinsic(value, strike float64, isCall bool) float64 {
	if isCall {
		return math.Max(value-strike, 0)
	}
	return math.Max(strike-value, 0)
}

// VariableStrikeWarrant is a Black-Scholes warrant whose strike is
// StrikeRatio times the current spot.
type VariableStrikeWarrant struct {
	Spot        float64
	StrikeRatio float64
	Rate        float64
	Vol         float64
	Maturity    float64
	IsCall      bool
}

// Price implements model.Model.
func (w VariableStrikeWarrant) Price(p model.Params) (float64, error) {
	d := p.Decode("variable_strike_warrant")
	d.Float("spot", &w.Spot)
	d.Float("strike_ratio", &w.StrikeRatio)
	d.Float("rate", &w.Rate)
	d.Float("vol", &w.Vol)
	d.Float("maturity", &w.Maturity)
	d.OptBool("is_call", &w.IsCall)
	if err := d.Err(); err != nil {
		return 0, err
	}
	return w.Value()
}

func (w VariableStrikeWarrant) Value() (float64, error) {
	const op = "variable_strike_warrant"
	if err := model.Check(
		model.Positive(op, "spot", w.Spot),
		model.Positive(op, "strike_ratio", w.StrikeRatio),
		model.Finite(op, "rate", w.Rate),
		model.Positive(op, "vol", w.Vol),
		model.Positive(op, "maturity", w.Maturity),
	); err != nil {
		return 0, err
	}
	strike := w.StrikeRatio * w.Spot
	df := math.Exp(-w.Rate * w.Maturity)
	// Black on the forward, discounted, is Black-Scholes on the spot
	forward := w.Spot / df
	return df * black(forward, strike, w.Vol*math.Sqrt(w.Maturity), w.IsCall), nil
}

// SimpleDividendOption is a Black-76 option on a single expected dividend.
// With no volatility or no time left it is worth the discounted intrinsic value.
type SimpleDividendOption struct {
	ExpectedDividend float64
	Strike           float64
	Rate             float64
	Vol              float64
	Maturity         float64
	IsCall           bool
}

// Price implements model.Model.
func (o SimpleDividendOption) Price(p model.Params) (float64, error) {
	d := p.Decode("simple_dividend_option")
	d.Float("expected_dividend", &o.ExpectedDividend)
	d.Float("strike", &o.Strike)
	d.Float("rate", &o.Rate)
	d.Float("vol", &o.Vol)
	d.Float("maturity", &o.Maturity)
	d.OptBool("is_call", &o.IsCall)
	if err := d.Err(); err != nil {
		return 0, err
	}
	return o.Value()
}

func (o SimpleDividendOption) Value() (float64, error) {
	const op = "simple_dividend_option"
	if err := model.Check(
		model.NonNegative(op, "expected_dividend", o.ExpectedDividend),
		model.NonNegative(op, "strike", o.Strike),
		model.Finite(op, "rate", o.Rate),
		model.Finite(op, "vol", o.Vol),
		model.Finite(op, "maturity", o.Maturity),
	); err != nil {
		return 0, err
	}
	df := math.Exp(-o.Rate * o.Maturity)
	if o.Vol <= 0 || o.Maturity <= 0 || o.ExpectedDividend == 0 || o.Strike == 0 {
		return df * intrinsic(o.ExpectedDividend, o.Strike, o.IsCall), nil
	}
	return df * black(o.ExpectedDividend, o.Strike, o.Vol*math.Sqrt(o.Maturity), o.IsCall), nil
}

// Cliquet sums periodic returns, each clamped to [Floor, Cap].
type Cliquet struct {
	Returns  []float64
	Cap      float64
	Floor    float64
	Notional float64
}

// Price implements model.Model.
func (c Cliquet) Price(p model.Params) (float64, error) {
	d := p.Decode("cliquet")
	d.Floats("returns", &c.Returns)
	d.Float("cap", &c.Cap)
	d.Float("floor", &c.Floor)
	d.OptFloat("notional", &c.Notional)
	if err := d.Err(); err != nil {
		return 0, err
	}
	return c.Value()
}

func (c Cliquet) Value() (float64, error) {
	const op = "cliquet"
	if err := model.NonNegative(op, "notional", c.Notional); err != nil {
		return 0, err
	}
	if c.Cap < c.Floor {
		return 0, model.Domainf(op, "cap", "must not be below floor (%v < %v)", c.Cap, c.Floor)
	}
	payoff := 0.0
	for _, r := range c.Returns {
		if err := model.Finite(op, "returns", r); err != nil {
			return 0, err
		}
		payoff += math.Min(math.Max(r, c.Floor), c.Cap)
	}
	return c.Notional * payoff, nil
}
