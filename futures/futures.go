// Package futures prices forwards and futures under cost-of-carry.
package futures

import (
	"math"

	"derivatives/model"
)

// SyntheticUnderlyingForward is the cost-of-carry forward N·S·exp((r-q)T).
type SyntheticUnderlyingForward struct {
	SpotPrice      float64
	RiskFreeRate   float64
	DividendYield  float64
	TimeToMaturity float64
	Notional       float64
}

// Price implements model.Model.
func (f SyntheticUnderlyingForward) Price(p model.Params) (float64, error) {
	d := p.Decode("synthetic_underlying_forward")
	d.Float("spot_price", &f.SpotPrice)
	d.Float("risk_free_rate", &f.RiskFreeRate)
	d.Float("dividend_yield", &f.DividendYield)
	d.Float("time_to_maturity", &f.TimeToMaturity)
	d.OptFloat("notional", &f.Notional)
	if err := d.Err(); err != nil {
		return 0, err
	}
	return f.Value()
}

func (f SyntheticUnderlyingForward) Value() (float64, error) {
	const op = "synthetic_underlying_forward"
	if err := model.Check(
		model.NonNegative(op, "spot_price", f.SpotPrice),
		model.Finite(op, "risk_free_rate", f.RiskFreeRate),
		model.Finite(op, "dividend_yield", f.DividendYield),
		model.NonNegative(op, "time_to_maturity", f.TimeToMaturity),
		model.Finite(op, "notional", f.Notional),
	); err != nil {
		return 0, err
	}
	return f.Notional * f.SpotPrice * math.Exp((f.RiskFreeRate-f.DividendYield)*f.TimeToMaturity), nil
}

// Dividend is one known payment.
type Dividend struct {
	Time   float64
	Amount float64
}

// DividendFutures pays the dividends falling in [0, TimeToMaturity].
// Payments after maturity are ignored.
type DividendFutures struct {
	Dividends      []Dividend
	RiskFreeRate   float64
	TimeToMaturity float64
	Notional       float64
}

// Price implements model.Model. The dividends parameter is a flat sequence
// t1, amount1, t2, amount2, ...
func (f DividendFutures) Price(p model.Params) (float64, error) {
	const op = "dividend_futures"
	var flat []float64
	d := p.Decode(op)
	d.Floats("dividends", &flat)
	d.Float("risk_free_rate", &f.RiskFreeRate)
	d.Float("time_to_maturity", &f.TimeToMaturity)
	d.OptFloat("notional", &f.Notional)
	if err := d.Err(); err != nil {
		return 0, err
	}
	if len(flat)%2 != 0 {
		return 0, model.Invalidf(op, "dividends", "want (time, amount) pairs, got %d values", len(flat))
	}
	f.Dividends = make([]Dividend, 0, len(flat)/2)
	for i := 0; i < len(flat); i += 2 {
		f.Dividends = append(f.Dividends, Dividend{Time: flat[i], Amount: flat[i+1]})
	}
	return f.Value()
}

func (f DividendFutures) Value() (float64, error) {
	const op = "dividend_futures"
	if err := model.Check(
		model.Finite(op, "risk_free_rate", f.RiskFreeRate),
		model.NonNegative(op, "time_to_maturity", f.TimeToMaturity),
		model.Finite(op, "notional", f.Notional),
	); err != nil {
		return 0, err
	}
	pv := 0.0
	for _, div := range f.Dividends {
		if err := model.Check(
			model.NonNegative(op, "dividends", div.Time),
			model.Finite(op, "dividends", div.Amount),
		); err != nil {
			return 0, err
		}
		if div.Time <= f.TimeToMaturity {
			pv += div.Amount * math.Exp(-f.RiskFreeRate*div.Time)
		}
	}
	return f.Notional * pv, nil
}

// DividendNeutralFutures carries the spot at the risk-free rate with no
// dividend adjustment.
type DividendNeutralFutures struct {
	SpotPrice      float64
	RiskFreeRate   float64
	TimeToMaturity float64
	Notional       float64
}

// Price implements model.Model.
func (f DividendNeutralFutures) Price(p model.Params) (float64, error) {
	d := p.Decode("dividend_neutral_futures")
	d.Float("spot_price", &f.SpotPrice)
	d.Float("risk_free_rate", &f.RiskFreeRate)
	d.Float("time_to_maturity", &f.TimeToMaturity)
	d.OptFloat("notional", &f.Notional)
	if err := d.Err(); err != nil {
		return 0, err
	}
	return f.Value()
}

func (f DividendNeutralFutures) Value() (float64, error) {
	const op = "dividend_neutral_futures"
	if err := model.Check(
		model.NonNegative(op, "spot_price", f.SpotPrice),
		model.Finite(op, "risk_free_rate", f.RiskFreeRate),
		model.NonNegative(op, "time_to_maturity", f.TimeToMaturity),
		model.Finite(op, "notional", f.Notional),
	); err != nil {
		return 0, err
	}
	return f.Notional * f.SpotPrice * math.Exp(f.RiskFreeRate*f.TimeToMaturity), nil
}

// ConvexityAdjustedRateFutures converts a quoted interest-rate futures price
// into the price implied by the convexity-adjusted forward rate.
//
// With futures rate 1-P/100 for the period [T1, T2], the forward rate is the
// futures rate less 0.5·RateVol²·T1·T2 (Ho-Lee).
type ConvexityAdjustedRateFutures struct {
	FuturesPrice float64
	RateVol      float64
	T1           float64
	T2           float64
}

// Price implements model.Model.
func (f ConvexityAdjustedRateFutures) Price(p model.Params) (float64, error) {
	d := p.Decode("convexity_adjusted_rate_futures")
	d.Float("futures_price", &f.FuturesPrice)
	d.Float("rate_vol", &f.RateVol)
	d.Float("t1", &f.T1)
	d.Float("t2", &f.T2)
	if err := d.Err(); err != nil {
		return 0, err
	}
	return f.Value()
}

// Value returns 100·(1-forward).
func (f ConvexityAdjustedRateFutures) Value() (float64, error) {
	const op = "convexity_adjusted_rate_futures"
	if err := model.Check(
		model.Finite(op, "futures_price", f.FuturesPrice),
		model.NonNegative(op, "rate_vol", f.RateVol),
		model.NonNegative(op, "t1", f.T1),
		model.NonNegative(op, "t2", f.T2),
	); err != nil {
		return 0, err
	}
	if f.T2 < f.T1 {
		return 0, model.Domainf(op, "t2", "must not precede t1 (%v < %v)", f.T2, f.T1)
	}
	forward := f.ForwardRate()
	return 100 * (1 - forward), nil
}

// ForwardRate is the convexity-adjusted forward rate as a decimal.
func (f ConvexityAdjustedRateFutures) ForwardRate() float64 {
	futuresRate := (100 - f.FuturesPrice) / 100
	return futuresRate - 0.5*f.RateVol*f.RateVol*f.T1*f.T2
}
