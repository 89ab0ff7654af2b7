// Package model defines the pricing contract shared by every derivative model,
// together with the day-count, discounting and validation helpers they use.
package model

import (
	"math"
)

// Model is a pricing model. Price reads the named market parameters it needs
// from p and returns one present value.
type Model interface {
	Price(p Params) (float64, error)
}

// Unimplemented is embedded by variants that have no pricing logic. Its Price
// always fails, so a variant that does not override it can never return a number.
type Unimplemented struct{}

// Price always returns ErrUnimplemented.
func (Unimplemented) Price(Params) (float64, error) {
	return 0, &ParamError{Op: "price", Msg: "no pricing logic for this model", Err: ErrUnimplemented}
}

// ValidatePositive checks that value is a number and is not negative.
func ValidatePositive(name string, value interface{}) error {
	v, ok := toFloat(value)
	if !ok {
		return mismatchf("validate", name, "must be a number, got %T", value)
	}
	return NonNegative("validate", name, v)
}

// NonNegative reports a domain error when v is negative or NaN.
func NonNegative(op, name string, v float64) error {
	if math.IsNaN(v) || v < 0 {
		return Domainf(op, name, "must be non-negative, got %v", v)
	}
	return nil
}

// Positive reports a domain error when v is not strictly positive.
func Positive(op, name string, v float64) error {
	if math.IsNaN(v) || v <= 0 {
		return Domainf(op, name, "must be positive, got %v", v)
	}
	return nil
}

// Finite reports a domain error when v is NaN or infinite.
func Finite(op, name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Domainf(op, name, "must be finite, got %v", v)
	}
	return nil
}

// PositiveCount reports a domain error when n is not strictly positive.
func PositiveCount(op, name string, n int) error {
	if n <= 0 {
		return Domainf(op, name, "must be positive, got %d", n)
	}
	return nil
}

// Check returns the first non-nil error.
func Check(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
