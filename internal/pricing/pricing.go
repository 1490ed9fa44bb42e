// Package pricing computes the billed total for a job card.
package pricing

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is wrapped by all input rejection errors so callers can
// classify them with errors.Is.
var ErrInvalidInput = errors.New("invalid pricing input")

const (
	// GSTRate is applied on the full subtotal, surcharges included.
	GSTRate = 0.18

	// HoleCharge and BigHoleCharge are flat per-hole surcharges.
	HoleCharge    = 10.0
	BigHoleCharge = 25.0
)

// ComputeTotal returns the GST-inclusive amount for one job:
//
//	subtotal = length*width*ratePerSqmt + holes*10 + bigHoles*25 + addCharges
//	total    = subtotal * 1.18
//
// The result is rounded to 2 decimals, half away from zero.
func ComputeTotal(ratePerSqmt, length, width float64, holes, bigHoles int, addCharges float64) (float64, error) {
	if ratePerSqmt <= 0 {
		return 0, fmt.Errorf("%w: rate per sqmt must be positive, got %v", ErrInvalidInput, ratePerSqmt)
	}
	if length <= 0 {
		return 0, fmt.Errorf("%w: length must be positive, got %v", ErrInvalidInput, length)
	}
	if width <= 0 {
		return 0, fmt.Errorf("%w: width must be positive, got %v", ErrInvalidInput, width)
	}
	if holes < 0 {
		return 0, fmt.Errorf("%w: holes must not be negative, got %d", ErrInvalidInput, holes)
	}
	if bigHoles < 0 {
		return 0, fmt.Errorf("%w: big holes must not be negative, got %d", ErrInvalidInput, bigHoles)
	}
	if addCharges < 0 {
		return 0, fmt.Errorf("%w: additional charges must not be negative, got %v", ErrInvalidInput, addCharges)
	}

	base := length * width * ratePerSqmt
	subtotal := base + float64(holes)*HoleCharge + float64(bigHoles)*BigHoleCharge + addCharges
	total := subtotal + subtotal*GSTRate
	return round2(total), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
