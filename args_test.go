package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"derivatives/model"
)

func TestParseParams(t *testing.T) {
	got, err := parseParams([]string{
		"spot=100", "is_call=false", "barrier_type=up-and-out", "dividends=0.5,1,1.0,1.5", "seed=42",
	})
	if err != nil {
		t.Fatalf("parseParams error: %v", err)
	}
	want := model.Params{
		"spot":         100.0,
		"is_call":      false,
		"barrier_type": "up-and-out",
		"dividends":    []float64{0.5, 1, 1, 1.5},
		"seed":         42.0,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parseParams mismatch (-want +got):\n%s", diff)
	}
}

func TestParseParams_Errors(t *testing.T) {
	for _, args := range [][]string{
		{"spot"},
		{"=100"},
		{"spot=1", "spot=2"},
	} {
		if _, err := parseParams(args); err == nil {
			t.Errorf("parseParams(%q) should fail", args)
		}
	}
}

func TestParseValue_ListWithText(t *testing.T) {
	if got := parseValue("a,b"); got != "a,b" {
		t.Errorf("parseValue(%q) = %v; want the raw string", "a,b", got)
	}
}
