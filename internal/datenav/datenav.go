// Package datenav provides month navigation and calendar date arithmetic.
//
// Every month value is a time.Time at midnight UTC on day 1. The package does
// no timezone handling: the clock's wall-clock date is taken as-is.
package datenav

import (
	"fmt"
	"time"
)

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the system wall clock.
type SystemClock struct{}

// Now returns time.Now.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always reports the same instant.
type FixedClock time.Time

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time {
	return time.Time(c)
}

// Date is a calendar date without a time of day.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date from its parts.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ISO formats the date as YYYY-MM-DD.
func (d Date) ISO() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// String implements fmt.Stringer.
func (d Date) String() string {
	return d.ISO()
}

// Valid reports whether the date exists in the Gregorian calendar.
func (d Date) Valid() bool {
	return d.Month >= time.January && d.Month <= time.December && IsValidDay(d.Year, d.Month, d.Day)
}

// ParseISO parses a YYYY-MM-DD string.
func ParseISO(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// Today returns the clock's current calendar date.
func Today(clock Clock) Date {
	return DateOf(clock.Now())
}

// FirstOfMonth returns day 1 of t's month at midnight UTC.
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// NextMonth returns the first day of the month after d.
// Day 28 plus 4 days always lands in the following month.
func NextMonth(d time.Time) time.Time {
	day28 := time.Date(d.Year(), d.Month(), 28, 0, 0, 0, 0, time.UTC)
	return FirstOfMonth(day28.AddDate(0, 0, 4))
}

// PreviousMonth returns the first day of the month before d.
func PreviousMonth(d time.Time) time.Time {
	first := FirstOfMonth(d)
	return FirstOfMonth(first.AddDate(0, 0, -1))
}

// CurrentMonth returns the first day of the clock's current month.
func CurrentMonth(clock Clock) time.Time {
	return FirstOfMonth(clock.Now())
}

// SameMonth reports whether a and b fall in the same year and month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// DaysInMonth returns the number of days in the given month, 28 through 31.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsValidDay reports whether 1 <= day <= DaysInMonth(year, month).
func IsValidDay(year int, month time.Month, day int) bool {
	return day >= 1 && day <= DaysInMonth(year, month)
}

// MonthGrid lays out the month as Monday-first weeks.
// Cells outside the month are 0.
func MonthGrid(year int, month time.Month) [][7]int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	// time.Weekday is Sunday=0; shift so Monday is column 0.
	col := (int(first.Weekday()) + 6) % 7
	days := DaysInMonth(year, month)

	var weeks [][7]int
	var week [7]int
	for day := 1; day <= days; day++ {
		week[col] = day
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = [7]int{}
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}
