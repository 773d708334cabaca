package css

import (
	"strconv"
)

// Value is numeric literal of color notation normalized to unit scale when
// written as percentage.
type Value struct {
	Magnitude float64
	Percent   bool // literal carried '%' suffix
}

// NewValue parses numeric literal (without '%' suffix). Percentages are
// divided by 100, other numbers are kept as is, no range checks are done.
func NewValue(literal string, percent bool) (Value, error) {
	v, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return Value{}, err
	}
	if percent {
		v /= 100
	}
	return Value{Magnitude: v, Percent: percent}, nil
}
