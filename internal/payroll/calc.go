package payroll

import (
	"errors"
	"math"
	"time"
)

// ErrInvalidDuration is returned for a non-positive raw duration. The
// lifecycle engine's ordering should already prevent it; the calculator
// still refuses rather than silently storing zero.
var ErrInvalidDuration = errors.New("payroll: clock-out must be after clock-in")

// ComputeHours converts two instants into billable hours. When the raw
// duration exceeds breakThreshold, breakDuration is deducted before
// converting; the threshold comparison always runs on the unrounded raw
// duration. The result is rounded to 2 decimals for storage.
func ComputeHours(clockIn, clockOut time.Time, breakThreshold, breakDuration time.Duration) (float64, error) {
	raw := clockOut.Sub(clockIn)
	if raw <= 0 {
		return 0, ErrInvalidDuration
	}

	billable := raw
	if breakThreshold > 0 && raw > breakThreshold {
		billable -= breakDuration
	}
	if billable <= 0 {
		return 0, ErrInvalidDuration
	}

	return round2(billable.Hours()), nil
}

// GrossPay multiplies billable hours by the employee's pay rate, rounded to
// 2 decimals for storage.
func GrossPay(hours, rate float64) float64 {
	return round2(hours * rate)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
