// Package swap values equity total return swaps from a forward estimate of
// the underlying.
package swap

import (
	"math"

	"derivatives/model"
)

// TotalReturnSwap pays Notional·(E - F0) at maturity, where E is the expected
// terminal price and F0 = S·exp((r-q)T) the forward struck at inception.
// Funding and discounting share FundingRate.
type TotalReturnSwap struct {
	SpotPrice             float64
	ExpectedTerminalPrice float64
	FundingRate           float64
	DividendYield         float64
	TimeToMaturity        float64
	Notional              float64
}

// FullyFundedTRS is a total return swap where the receiver funds the spot
// upfront: they receive the dividend-adjusted terminal price and repay
// S·exp(rT).
type FullyFundedTRS struct {
	TotalReturnSwap
}

// Price implements model.Model.
func (s TotalReturnSwap) Price(p model.Params) (float64, error) {
	if err := s.decode("total_return_swap", p); err != nil {
		return 0, err
	}
	return s.Value()
}

func (s TotalReturnSwap) Value() (float64, error) {
	if err := s.validate("total_return_swap"); err != nil {
		return 0, err
	}
	forward := s.SpotPrice * math.Exp((s.FundingRate-s.DividendYield)*s.TimeToMaturity)
	return s.discounted(s.ExpectedTerminalPrice - forward), nil
}

// Price implements model.Model.
func (s FullyFundedTRS) Price(p model.Params) (float64, error) {
	if err := s.decode("fully_funded_trs", p); err != nil {
		return 0, err
	}
	return s.Value()
}

func (s FullyFundedTRS) Value() (float64, error) {
	if err := s.validate("fully_funded_trs"); err != nil {
		return 0, err
	}
	funded := s.SpotPrice * math.Exp(s.FundingRate*s.TimeToMaturity)
	asset := s.ExpectedTerminalPrice * math.Exp(-s.DividendYield*s.TimeToMaturity)
	return s.discounted(asset - funded), nil
}

func (s *TotalReturnSwap) decode(op string, p model.Params) error {
	d := p.Decode(op)
	d.Float("spot_price", &s.SpotPrice)
	d.Float("expected_terminal_price", &s.ExpectedTerminalPrice)
	d.Float("funding_rate", &s.FundingRate)
	d.Float("dividend_yield", &s.DividendYield)
	d.Float("time_to_maturity", &s.TimeToMaturity)
	d.OptFloat("notional", &s.Notional)
	return d.Err()
}

func (s TotalReturnSwap) validate(op string) error {
	return model.Check(
		model.NonNegative(op, "spot_price", s.SpotPrice),
		model.NonNegative(op, "expected_terminal_price", s.ExpectedTerminalPrice),
		model.Finite(op, "funding_rate", s.FundingRate),
		model.Finite(op, "dividend_yield", s.DividendYield),
		model.NonNegative(op, "time_to_maturity", s.TimeToMaturity),
		model.Finite(op, "notional", s.Notional),
	)
}

// discounted scales a payoff at maturity to today's notional value.
func (s TotalReturnSwap) discounted(payoff float64) float64 {
	return s.Notional * payoff * math.Exp(-s.FundingRate*s.TimeToMaturity)
}
