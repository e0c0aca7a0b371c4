package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitlog/internal/constants"
)

// Date is a calendar day with no time-of-day or zone. The zero value is not a valid date.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf truncates t to its calendar day in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today returns the current local calendar day.
func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(constants.DateFormat, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return DateOf(t), nil
}

// ParseUserDate accepts any of constants.InputDateFormats.
func ParseUserDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range constants.InputDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("invalid date %q: use formats like 25-12-2024, 5-09-24 or 2024-12-25", s)
}

const secondsPerDay = 24 * 60 * 60

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// String renders the storage form, YYYY-MM-DD.
func (d Date) String() string {
	return d.Time().Format(constants.DateFormat)
}

// Display renders the user-facing form, DD-MM-YYYY.
func (d Date) Display() string {
	return d.Time().Format(constants.DisplayDateFormat)
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d Date) AddMonths(n int) Date {
	return DateOf(d.Time().AddDate(0, n, 0))
}

// DaysSince returns the number of whole days from other to d (negative if d is earlier).
func (d Date) DaysSince(other Date) int {
	return int((d.Time().Unix() - other.Time().Unix()) / secondsPerDay)
}

func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

func (d Date) After(other Date) bool {
	return d.Time().After(other.Time())
}

// FirstOfMonth returns the first day of d's month.
func (d Date) FirstOfMonth() Date {
	return Date{Year: d.Year, Month: d.Month, Day: 1}
}

// DisplayDate renders an optional date, using constants.NotApplicable for nil.
func DisplayDate(d *Date) string {
	if d == nil {
		return constants.NotApplicable
	}
	return d.Display()
}
