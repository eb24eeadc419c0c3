// Package valueobject contains immutable value types shared across the domain.
package valueobject

import (
	"fmt"
	"time"
)

// Month identifies a calendar month of a specific year.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the calendar month containing t, in t's own location.
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Previous returns the month immediately before m, rolling over the year.
func (m Month) Previous() Month {
	if m.Month == time.January {
		return Month{Year: m.Year - 1, Month: time.December}
	}
	return Month{Year: m.Year, Month: m.Month - 1}
}

// Contains reports whether the calendar date d falls in m.
// Dates are compared by their calendar fields, never converted between zones.
func (m Month) Contains(d time.Time) bool {
	return d.Year() == m.Year && d.Month() == m.Month
}

// Label renders the month as MM/YYYY.
func (m Month) Label() string {
	return fmt.Sprintf("%02d/%04d", int(m.Month), m.Year)
}

// String implements fmt.Stringer using the ISO YYYY-MM form.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}
