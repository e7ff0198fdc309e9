package dateutil

import (
	"time"
)

// Age calculates the age at a given date
func Age(birthDate, atDate time.Time) int {
	age := atDate.Year() - birthDate.Year()
	if atDate.Month() < birthDate.Month() ||
		(atDate.Month() == birthDate.Month() && atDate.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// FullRetirementAge calculates the Social Security Full Retirement Age based on birth year
func FullRetirementAge(birthYear int) int {
	switch {
	case birthYear <= 1942:
		return 65
	case birthYear >= 1943 && birthYear <= 1959:
		return 66
	default: // 1960 and later
		return 67
	}
}

// IsLeapYear checks if a year is a leap year
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns the number of days in a given year
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// YearFraction returns the fraction of calendar year that the [from, to]
// interval covers, clamped to [0, 1]. Used to prorate incomes and expenses
// whose start or end date falls inside a simulated year.
func YearFraction(year int, from, to time.Time) float64 {
	yearStart := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	yearEnd := time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)
	if from.Before(yearStart) {
		from = yearStart
	}
	if to.After(yearEnd) {
		to = yearEnd
	}
	if to.Before(from) {
		return 0
	}
	days := to.Sub(from).Hours()/24 + 1
	return days / float64(DaysInYear(year))
}

// EndOfYear returns the last day of the year for a given date
func EndOfYear(year int) time.Time {
	return time.Date(year, 12, 31, 23, 59, 59, 0, time.UTC)
}

// BeginningOfYear returns the first day of the year
func BeginningOfYear(year int) time.Time {
	return time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
}
