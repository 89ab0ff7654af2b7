// Package credit computes expected losses from default probabilities and
// hazard rates.
package credit

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"derivatives/model"
)

// BasketLinear is the expected loss of a basket of independent names,
// Σ Notional·PD·(1-Recovery).
type BasketLinear struct {
	Notionals            []float64
	DefaultProbabilities []float64
	Recoveries           []float64
}

// Price implements model.Model.
func (b BasketLinear) Price(p model.Params) (float64, error) {
	d := p.Decode("credit_basket_linear")
	d.Floats("notionals", &b.Notionals)
	d.Floats("default_probabilities", &b.DefaultProbabilities)
	d.Floats("recoveries", &b.Recoveries)
	if err := d.Err(); err != nil {
		return 0, err
	}
	return b.Value()
}

func (b BasketLinear) Value() (float64, error) {
	const op = "credit_basket_linear"
	n := len(b.Notionals)
	if len(b.DefaultProbabilities) != n || len(b.Recoveries) != n {
		return 0, model.Invalidf(op, "", "notionals, default_probabilities and recoveries differ in length (%d, %d, %d)",
			n, len(b.DefaultProbabilities), len(b.Recoveries))
	}
	lgd := make([]float64, n)
	for i := 0; i < n; i++ {
		if err := model.Check(
			model.NonNegative(op, "notionals", b.Notionals[i]),
			unit(op, "default_probabilities", b.DefaultProbabilities[i]),
			unit(op, "recoveries", b.Recoveries[i]),
		); err != nil {
			return 0, err
		}
		lgd[i] = b.Notionals[i] * (1 - b.Recoveries[i])
	}
	return floats.Dot(lgd, b.DefaultProbabilities), nil
}

// StaticHazardRate is the discounted expected loss of one exposure under a
// constant default intensity.
type StaticHazardRate struct {
	Notional     float64
	HazardRate   float64
	Maturity     float64
	DiscountRate float64
}

// Price implements model.Model.
func (h StaticHazardRate) Price(p model.Params) (float64, error) {
	d := p.Decode("static_hazard_rate")
	d.Float("notional", &h.Notional)
	d.Float("hazard_rate", &h.HazardRate)
	d.Float("maturity", &h.Maturity)
	d.OptFloat("discount_rate", &h.DiscountRate)
	if err := d.Err(); err != nil {
		return 0, err
	}
	return h.Value()
}

// Value returns Notional·(1-exp(-λT))·exp(-rT).
func (h StaticHazardRate) Value() (float64, error) {
	const op = "static_hazard_rate"
	if err := model.Check(
		model.NonNegative(op, "notional", h.Notional),
		model.NonNegative(op, "hazard_rate", h.HazardRate),
		model.NonNegative(op, "maturity", h.Maturity),
		model.NonNegative(op, "discount_rate", h.DiscountRate),
	); err != nil {
		return 0, err
	}
	return expectedLoss(h.Notional, h.HazardRate*h.Maturity, h.DiscountRate, h.Maturity), nil
}

// HazardRate is the stepwise generalisation of StaticHazardRate: HazardRates[i]
// applies up to Times[i], and the last rate continues beyond the last time.
type HazardRate struct {
	Notional     float64
	Times        []float64
	HazardRates  []float64
	Maturity     float64
	DiscountRate float64
}

// Price implements model.Model.
func (h HazardRate) Price(p model.Params) (float64, error) {
	d := p.Decode("hazard_rate")
	d.Float("notional", &h.Notional)
	d.Floats("times", &h.Times)
	d.Floats("hazard_rates", &h.HazardRates)
	d.Float("maturity", &h.Maturity)
	d.OptFloat("discount_rate", &h.DiscountRate)
	if err := d.Err(); err != nil {
		return 0, err
	}
	return h.Value()
}

func (h HazardRate) Value() (float64, error) {
	const op = "hazard_rate"
	if err := model.Check(
		model.NonNegative(op, "notional", h.Notional),
		model.NonNegative(op, "maturity", h.Maturity),
		model.NonNegative(op, "discount_rate", h.DiscountRate),
	); err != nil {
		return 0, err
	}
	if len(h.Times) == 0 || len(h.Times) != len(h.HazardRates) {
		return 0, model.Invalidf(op, "times", "want one end time per hazard rate, got %d times and %d rates",
			len(h.Times), len(h.HazardRates))
	}
	prev := 0.0
	for i, end := range h.Times {
		if err := model.NonNegative(op, "hazard_rates", h.HazardRates[i]); err != nil {
			return 0, err
		}
		if end < 0 || (i > 0 && end <= prev) {
			return 0, model.Invalidf(op, "times", "must be ascending, got %v after %v", end, prev)
		}
		prev = end
	}
	return expectedLoss(h.Notional, h.Cumulative(h.Maturity), h.DiscountRate, h.Maturity), nil
}

// Cumulative integrates the hazard curve over [0, t].
func (h HazardRate) Cumulative(t float64) float64 {
	total, start := 0.0, 0.0
	for i, end := range h.Times {
		if t <= end {
			return total + h.HazardRates[i]*(t-start)
		}
		total += h.HazardRates[i] * (end - start)
		start = end
	}
	return total + h.HazardRates[len(h.HazardRates)-1]*(t-start)
}

func expectedLoss(notional, cumulativeHazard, rate, maturity float64) float64 {
	return notional * -math.Expm1(-cumulativeHazard) * math.Exp(-rate*maturity)
}

func unit(op, name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return model.Domainf(op, name, "must lie in [0, 1], got %v", v)
	}
	return nil
}
