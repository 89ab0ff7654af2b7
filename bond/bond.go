// Package bond values fixed-income cash flows under continuous compounding.
package bond

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"derivatives/model"
)

// ZeroCoupon pays FaceValue at Maturity.
type ZeroCoupon struct {
	FaceValue    float64
	DiscountRate float64
	Maturity     float64
}

// Price implements model.Model.
func (z ZeroCoupon) Price(p model.Params) (float64, error) {
	d := p.Decode("zero_coupon")
	d.Float("face_value", &z.FaceValue)
	d.Float("discount_rate", &z.DiscountRate)
	d.Float("maturity", &z.Maturity)
	if err := d.Err(); err != nil {
		return 0, err
	}
	return z.Value()
}

// Value returns FaceValue·exp(-DiscountRate·Maturity).
func (z ZeroCoupon) Value() (float64, error) {
	const op = "zero_coupon"
	if err := model.Check(
		model.NonNegative(op, "face_value", z.FaceValue),
		model.Finite(op, "discount_rate", z.DiscountRate),
		model.NonNegative(op, "maturity", z.Maturity),
	); err != nil {
		return 0, err
	}
	return z.FaceValue * math.Exp(-z.DiscountRate*z.Maturity), nil
}

// CorporateBond pays Frequency coupons a year of FaceValue·CouponRate/Frequency
// and the face value at Maturity, all discounted at YieldRate.
type CorporateBond struct {
	FaceValue  float64
	CouponRate float64
	YieldRate  float64
	Maturity   float64
	Frequency  int
}

// Price implements model.Model.
func (b CorporateBond) Price(p model.Params) (float64, error) {
	d := p.Decode("corporate_bond")
	d.Float("face_value", &b.FaceValue)
	d.Float("coupon_rate", &b.CouponRate)
	d.Float("yield_rate", &b.YieldRate)
	d.Float("maturity", &b.Maturity)
	d.OptInt("frequency", &b.Frequency)
	if err := d.Err(); err != nil {
		return 0, err
	}
	return b.Value()
}

// Value discounts the coupon strip and the redemption.
func (b CorporateBond) Value() (float64, error) {
	const op = "corporate_bond"
	if err := model.Check(
		model.NonNegative(op, "face_value", b.FaceValue),
		model.Finite(op, "coupon_rate", b.CouponRate),
		model.Finite(op, "yield_rate", b.YieldRate),
		model.NonNegative(op, "maturity", b.Maturity),
		model.PositiveCount(op, "frequency", b.Frequency),
	); err != nil {
		return 0, err
	}

	freq := float64(b.Frequency)
	periods := int(b.Maturity * freq)
	coupons := make([]float64, periods)
	dfs := make([]float64, periods)
	for i := range coupons {
		coupons[i] = b.FaceValue * b.CouponRate / freq
		dfs[i] = math.Exp(-b.YieldRate * float64(i+1) / freq)
	}
	return floats.Dot(coupons, dfs) + b.FaceValue*math.Exp(-b.YieldRate*b.Maturity), nil
}

// IndexLinkedBondForward approximates the forward of an inflation-linked bond
// as Notional·IndexRatio·exp(-RealRate·Maturity).
type IndexLinkedBondForward struct {
	Notional   float64
	RealRate   float64
	Maturity   float64
	IndexRatio float64
}

// Price implements model.Model.
func (f IndexLinkedBondForward) Price(p model.Params) (float64, error) {
	d := p.Decode("index_linked_bond_forward")
	d.Float("notional", &f.Notional)
	d.Float("real_rate", &f.RealRate)
	d.Float("maturity", &f.Maturity)
	d.Float("index_ratio", &f.IndexRatio)
	if err := d.Err(); err != nil {
		return 0, err
	}
	return f.Value()
}

func (f IndexLinkedBondForward) Value() (float64, error) {
	const op = "index_linked_bond_forward"
	if err := model.Check(
		model.NonNegative(op, "notional", f.Notional),
		model.Finite(op, "real_rate", f.RealRate),
		model.NonNegative(op, "maturity", f.Maturity),
		model.NonNegative(op, "index_ratio", f.IndexRatio),
	); err != nil {
		return 0, err
	}
	return f.Notional * f.IndexRatio * math.Exp(-f.RealRate*f.Maturity), nil
}
