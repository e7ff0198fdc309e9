package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAge(t *testing.T) {
	birth := time.Date(1980, time.June, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 44, Age(birth, time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 45, Age(birth, time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 45, Age(birth, time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)))
}

func TestFullRetirementAge(t *testing.T) {
	tests := []struct {
		birthYear int
		expected  int
	}{
		{1940, 65},
		{1943, 66},
		{1959, 66},
		{1960, 67},
		{1985, 67},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FullRetirementAge(tt.birthYear), "birth year %d", tt.birthYear)
	}
}

func TestDaysInYear(t *testing.T) {
	assert.Equal(t, 366, DaysInYear(2024))
	assert.Equal(t, 365, DaysInYear(2025))
	assert.Equal(t, 365, DaysInYear(1900)) // century, not divisible by 400
	assert.Equal(t, 366, DaysInYear(2000))
}

func TestYearFraction(t *testing.T) {
	full := YearFraction(2025, BeginningOfYear(2025), EndOfYear(2025))
	assert.InDelta(t, 1.0, full, 0.001)

	half := YearFraction(2025,
		time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
		EndOfYear(2025))
	assert.InDelta(t, 0.504, half, 0.001)

	// Intervals outside the year contribute nothing.
	none := YearFraction(2025,
		time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC))
	assert.Zero(t, none)
}
