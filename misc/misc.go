// Package misc holds simple linear instruments: spot holdings, price curves,
// leveraged equity, deposits and funds.
package misc

import (
	"sort"
	"time"

	"derivatives/model"
)

// UnderlyingSpot is a position of Notional units at SpotPrice.
type UnderlyingSpot struct {
	SpotPrice float64
	Notional  float64
}

// Price implements model.Model.
func (u UnderlyingSpot) Price(p model.Params) (float64, error) {
	const op = "underlying_spot"
	d := p.Decode(op)
	d.Float("spot_price", &u.SpotPrice)
	d.OptFloat("notional", &u.Notional)
	if err := d.Err(); err != nil {
		return 0, err
	}
	if err := model.Check(
		model.NonNegative(op, "spot_price", u.SpotPrice),
		model.Finite(op, "notional", u.Notional),
	); err != nil {
		return 0, err
	}
	return u.Notional * u.SpotPrice, nil
}

// PriceCurve interpolates linearly between known prices and extrapolates
// flat beyond both ends. The model's own Times and Prices act as the curve
// when the caller does not pass one.
type PriceCurve struct {
	Times  []float64
	Prices []float64
}

// Price implements model.Model.
func (c PriceCurve) Price(p model.Params) (float64, error) {
	const op = "price_curve"
	var t float64
	d := p.Decode(op)
	if _, ok := p["times"]; ok || len(c.Times) == 0 {
		d.Floats("times", &c.Times)
		d.Floats("prices", &c.Prices)
	}
	d.Float("time", &t)
	if err := d.Err(); err != nil {
		return 0, err
	}
	return c.At(t)
}

// At returns the curve's price at time t.
func (c PriceCurve) At(t float64) (float64, error) {
	const op = "price_curve"
	n := len(c.Times)
	if n == 0 {
		return 0, model.Invalidf(op, "times", "price curve has no data")
	}
	if len(c.Prices) != n {
		return 0, model.Invalidf(op, "prices", "want %d prices, got %d", n, len(c.Prices))
	}
	if !sort.Float64sAreSorted(c.Times) {
		return 0, model.Invalidf(op, "times", "must be ascending")
	}
	if err := model.Finite(op, "time", t); err != nil {
		return 0, err
	}

	if t <= c.Times[0] {
		return c.Prices[0], nil
	}
	if t >= c.Times[n-1] {
		return c.Prices[n-1], nil
	}
	i := sort.SearchFloat64s(c.Times, t)
	t0, t1 := c.Times[i-1], c.Times[i]
	p0, p1 := c.Prices[i-1], c.Prices[i]
	return p0 + (t-t0)/(t1-t0)*(p1-p0), nil
}

// ConstantDebtToEquity values the enterprise as equity grossed up by a fixed
// debt-to-equity ratio.
type ConstantDebtToEquity struct {
	EquityPrice       float64
	DebtToEquityRatio float64
}

// Price implements model.Model.
func (c ConstantDebtToEquity) Price(p model.Params) (float64, error) {
	const op = "constant_debt_to_equity"
	d := p.Decode(op)
	d.Float("equity_price", &c.EquityPrice)
	d.Float("debt_to_equity_ratio", &c.DebtToEquityRatio)
	if err := d.Err(); err != nil {
		return 0, err
	}
	if err := model.Check(
		model.NonNegative(op, "equity_price", c.EquityPrice),
		model.NonNegative(op, "debt_to_equity_ratio", c.DebtToEquityRatio),
	); err != nil {
		return 0, err
	}
	return c.EquityPrice * (1 + c.DebtToEquityRatio), nil
}

// SimpleDeposit accrues simple interest, P·(1+rT). The term is either
// Maturity in years or the accrual period from StartDate to EndDate under
// Convention (act/365 when empty).
type SimpleDeposit struct {
	Principal  float64
	Rate       float64
	Maturity   float64
	StartDate  time.Time
	EndDate    time.Time
	Convention string
}

// Price implements model.Model. Pass either maturity or start_date and
// end_date, with an optional convention.
func (s SimpleDeposit) Price(p model.Params) (float64, error) {
	const op = "simple_deposit"
	d := p.Decode(op)
	d.Float("principal", &s.Principal)
	d.Float("rate", &s.Rate)
	if _, dated := p["start_date"]; dated {
		if _, both := p["maturity"]; both {
			return 0, model.Invalidf(op, "maturity", "give either maturity or start_date and end_date, not both")
		}
		d.Date("start_date", &s.StartDate)
		d.Date("end_date", &s.EndDate)
		d.OptString("convention", &s.Convention)
	} else {
		d.Float("maturity", &s.Maturity)
	}
	if err := d.Err(); err != nil {
		return 0, err
	}
	return s.Value()
}

func (s SimpleDeposit) Value() (float64, error) {
	const op = "simple_deposit"
	if err := model.Check(
		model.Finite(op, "principal", s.Principal),
		model.Finite(op, "rate", s.Rate),
	); err != nil {
		return 0, err
	}
	if s.StartDate.IsZero() {
		if err := model.NonNegative(op, "maturity", s.Maturity); err != nil {
			return 0, err
		}
		return s.Principal * (1 + s.Rate*s.Maturity), nil
	}

	convention := s.Convention
	if convention == "" {
		convention = model.Act365
	}
	// P/DF = P·(1+r·tau)
	df, err := model.DiscountFactor(s.Rate, s.StartDate, s.EndDate, convention)
	if err != nil {
		return 0, err
	}
	return s.Principal / df, nil
}

// FundInstrument is a fund holding. It has no pricing logic, so Price
// always fails with model.ErrUnimplemented.
type FundInstrument struct {
	model.Unimplemented
}
