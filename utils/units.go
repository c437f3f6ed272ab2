package utils

import (
	"go.uber.org/atomic"
)

// DefaultScaleFactor leaves length-valued fields in the units of the source document.
const DefaultScaleFactor = 1.0

// scaleFactor is process wide. It is meant to be set once at startup; models built before a change
// keep the values they were built with.
var scaleFactor = atomic.NewFloat64(DefaultScaleFactor)

// ScaleFactor returns the unit conversion factor applied to every length-valued field at construction.
func ScaleFactor() float64 {
	return scaleFactor.Load()
}

// SetScaleFactor replaces the process wide scale factor. Non-positive values are rejected.
func SetScaleFactor(factor float64) error {
	if factor <= 0 {
		return NewInvalidScaleFactorError(factor)
	}
	scaleFactor.Store(factor)
	return nil
}

// Scale applies the current scale factor to a length.
func Scale(length float64) float64 {
	return length * ScaleFactor()
}

// MetersToMM converts meters to millimeters.
func MetersToMM(m float64) float64 {
	return m * 1000
}

// MMToMeters converts millimeters to meters.
func MMToMeters(mm float64) float64 {
	return mm / 1000
}
