package payroll

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	breakThreshold = 6 * time.Hour
	breakDuration  = 30 * time.Minute
)

func at(hhmm string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", "2024-03-01 "+hhmm)
	if err != nil {
		panic(err)
	}
	return t
}

func TestComputeHours(t *testing.T) {
	testCases := []struct {
		name     string
		clockIn  time.Time
		clockOut time.Time
		expected float64
	}{
		{
			name:     "7h raw crosses break threshold, 30m deducted",
			clockIn:  at("08:00"),
			clockOut: at("15:00"),
			expected: 6.5,
		},
		{
			name:     "5h raw stays under threshold, no deduction",
			clockIn:  at("08:00"),
			clockOut: at("13:00"),
			expected: 5.0,
		},
		{
			name:     "exactly at threshold is not over it",
			clockIn:  at("08:00"),
			clockOut: at("14:00"),
			expected: 6.0,
		},
		{
			name:     "one minute over threshold still deducts the full break",
			clockIn:  at("08:00"),
			clockOut: at("14:01"),
			expected: 5.52, // 6h01m - 30m = 5h31m = 5.5166... -> 5.52
		},
		{
			name:     "short shift rounds to 2 decimals",
			clockIn:  at("08:00"),
			clockOut: at("08:10"),
			expected: 0.17,
		},
		{
			name:     "cross-midnight span computed from instants",
			clockIn:  time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC),
			clockOut: time.Date(2024, 3, 2, 0, 45, 0, 0, time.UTC),
			expected: 1.25,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			hours, err := ComputeHours(tc.clockIn, tc.clockOut, breakThreshold, breakDuration)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, hours)
		})
	}
}

func TestComputeHoursRejectsNonPositive(t *testing.T) {
	_, err := ComputeHours(at("09:00"), at("09:00"), breakThreshold, breakDuration)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = ComputeHours(at("09:00"), at("08:00"), breakThreshold, breakDuration)
	assert.ErrorIs(t, err, ErrInvalidDuration)
}

func TestComputeHoursIdempotent(t *testing.T) {
	first, err := ComputeHours(at("08:00"), at("16:42"), breakThreshold, breakDuration)
	require.NoError(t, err)
	second, err := ComputeHours(at("08:00"), at("16:42"), breakThreshold, breakDuration)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGrossPay(t *testing.T) {
	assert.Equal(t, 97.5, GrossPay(6.5, 15.0))
	assert.Equal(t, 83.31, GrossPay(5.52, 15.093))
	assert.Equal(t, 0.0, GrossPay(0, 22.5))
}
