package main

import (
	"fmt"
	"strconv"
	"strings"

	"derivatives/model"
)

// parseParams turns key=value arguments into model parameters.
func parseParams(args []string) (model.Params, error) {
	params := make(model.Params, len(args))
	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("want key=value, got %q", arg)
		}
		if _, dup := params[key]; dup {
			return nil, fmt.Errorf("parameter %q given twice", key)
		}
		params[key] = parseValue(raw)
	}
	return params, nil
}

// parseValue reads a number, a bool, a comma-separated list of numbers, or
// falls back to the raw string.
func parseValue(raw string) interface{} {
	if strings.Contains(raw, ",") {
		parts := strings.Split(raw, ",")
		out := make([]float64, 0, len(parts))
		for _, part := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
			if err != nil {
				return raw
			}
			out = append(out, f)
		}
		return out
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}
