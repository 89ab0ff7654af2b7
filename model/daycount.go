package model

import (
	"strings"
	"time"
)

// Supported day count conventions.
const (
	Act365    = "act/365"
	Act360    = "act/360"
	Thirty360 = "30/360"
)

// YearFraction computes the year fraction between two dates using the specified day count convention.
// Conventions are matched case-insensitively: act/365, act/360 and 30/360 (US).
func YearFraction(start, end time.Time, convention string) (float64, error) {
	if end.Before(start) {
		return 0, Invalidf("YearFraction", "end", "%s precedes start %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}

	switch strings.ToLower(convention) {
	case Act365:
		return days(start, end) / 365.0, nil
	case Act360:
		return days(start, end) / 360.0, nil
	case Thirty360:
		// D1 and D2 are capped at 30
		d1 := start.Day()
		if d1 > 30 {
			d1 = 30
		}
		d2 := end.Day()
		if d2 > 30 {
			d2 = 30
		}
		months := 12*(end.Year()-start.Year()) + int(end.Month()) - int(start.Month())
		return float64(30*months+(d2-d1)) / 360.0, nil
	}
	return 0, Invalidf("YearFraction", "convention", "unsupported day count convention %q", convention)
}

// DiscountFactor is the simple-interest discount factor 1 / (1 + rate * tau)
// over [start, end].
func DiscountFactor(rate float64, start, end time.Time, convention string) (float64, error) {
	if err := NonNegative("DiscountFactor", "rate", rate); err != nil {
		return 0, err
	}
	tau, err := YearFraction(start, end, convention)
	if err != nil {
		return 0, err
	}
	return 1.0 / (1.0 + rate*tau), nil
}

// days counts calendar days, ignoring the time of day and DST shifts.
func days(start, end time.Time) float64 {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return e.Sub(s).Hours() / 24
}
