package utils

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrMalformedValue is the root of every numeric parsing failure.
	ErrMalformedValue = errors.New("malformed value")
	// ErrEmptyPointSet is returned by distance helpers given no points to measure against.
	ErrEmptyPointSet = errors.New("point set is empty")
)

// MalformedVectorError is returned when a whitespace separated vector literal has the wrong number of
// tokens or a token that is not a finite number.
type MalformedVectorError struct {
	Literal  string
	Expected int
	Got      int
}

// NewMalformedVectorError is used when a vector literal cannot be parsed.
func NewMalformedVectorError(literal string, expected, got int) error {
	return &MalformedVectorError{Literal: literal, Expected: expected, Got: got}
}

func (e *MalformedVectorError) Error() string {
	if e.Expected == e.Got {
		return fmt.Sprintf("malformed vector %q: non-numeric or non-finite component", e.Literal)
	}
	return fmt.Sprintf("malformed vector %q: expected %d components but got %d", e.Literal, e.Expected, e.Got)
}

// Unwrap returns ErrMalformedValue.
func (e *MalformedVectorError) Unwrap() error {
	return ErrMalformedValue
}

// NewInvalidScaleFactorError is used when a non-positive unit scale factor is requested.
func NewInvalidScaleFactorError(factor float64) error {
	return errors.Errorf("scale factor must be positive, got %v", factor)
}

// NewUnexpectedTypeError is used when there is a type mismatch.
func NewUnexpectedTypeError(expected, actual interface{}) error {
	return errors.Errorf("expected %T but got %T", expected, actual)
}
