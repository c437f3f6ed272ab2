package utils

import (
	"math"
	"strconv"
	"strings"
)

// SpaceDelimitedStringToFloatSlice splits up space-delimited fields in a string and converts them to floats.
// Any token that is not a finite number fails the whole conversion.
func SpaceDelimitedStringToFloatSlice(s string) ([]float64, error) {
	fields := strings.Fields(s)
	converted := make([]float64, 0, len(fields))
	for _, field := range fields {
		value, err := strconv.ParseFloat(field, 64)
		if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, NewMalformedVectorError(s, len(fields), len(fields))
		}
		converted = append(converted, value)
	}
	return converted, nil
}

// ParseFloats parses exactly n whitespace-separated floats from s.
func ParseFloats(s string, n int) ([]float64, error) {
	values, err := SpaceDelimitedStringToFloatSlice(s)
	if err != nil {
		return nil, NewMalformedVectorError(s, n, len(strings.Fields(s)))
	}
	if len(values) != n {
		return nil, NewMalformedVectorError(s, n, len(values))
	}
	return values, nil
}

// ParseScaledFloats parses exactly n floats from s and applies the current scale factor to each.
func ParseScaledFloats(s string, n int) ([]float64, error) {
	values, err := ParseFloats(s, n)
	if err != nil {
		return nil, err
	}
	factor := ScaleFactor()
	for i := range values {
		values[i] *= factor
	}
	return values, nil
}
