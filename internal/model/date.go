package model

import (
	"fmt"
	"time"
)

// DateLayout is the wire and display layout of a calendar date.
const DateLayout = "2006-01-02"

// Date is a calendar date in YYYY-MM-DD form. It carries no time zone; the
// caller decides which local day a Date stands for.
type Date string

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// Today returns the current local date.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a strict YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: want YYYY-MM-DD", s)
	}
	return DateOf(t), nil
}

// String returns the date as YYYY-MM-DD.
func (d Date) String() string {
	return string(d)
}

// Validate checks that d is a well-formed calendar date.
func (d Date) Validate() error {
	_, err := ParseDate(string(d))
	return err
}

// Time returns midnight UTC of d.
func (d Date) Time() (time.Time, error) {
	return time.Parse(DateLayout, string(d))
}

// Weekday returns the day of the week of d. A malformed date reports Sunday.
func (d Date) Weekday() time.Weekday {
	t, err := d.Time()
	if err != nil {
		return time.Sunday
	}
	return t.Weekday()
}

// AddDays returns the date n days after d. A malformed date is returned unchanged.
func (d Date) AddDays(n int) Date {
	t, err := d.Time()
	if err != nil {
		return d
	}
	return DateOf(t.AddDate(0, 0, n))
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	return d < other
}
