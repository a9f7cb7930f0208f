package models

import (
	"encoding/json"
	"strings"
	"time"
)

// DateLayout is the storage format for dates in the sheet.
const DateLayout = "2006-01-02"

// Date is a naive calendar date. The zero value is InvalidDate.
type Date struct {
	t time.Time
}

// InvalidDate marks a cell that could not be parsed.
var InvalidDate = Date{}

// NewDate builds a calendar date. Out-of-range values are normalized by time.Date.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf takes the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, m, d)
}

// leniently accepted layouts, tried in order
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-1-2",
	"2006/1/2",
	"2006.01.02",
	"2006.1.2",
	"20060102",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"2006/1/2 15:04:05",
	"2006/01/02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseDate parses a sheet cell. Anything it cannot read becomes InvalidDate.
func ParseDate(s string) Date {
	s = strings.TrimSpace(s)
	if s == "" {
		return InvalidDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t)
		}
	}
	return InvalidDate
}

func (d Date) Valid() bool { return !d.t.IsZero() }

func (d Date) Before(o Date) bool { return d.t.Before(o.t) }

func (d Date) After(o Date) bool { return d.t.After(o.t) }

func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }

func (d Date) Weekday() time.Weekday { return d.t.Weekday() }

func (d Date) Year() int { return d.t.Year() }

func (d Date) Month() time.Month { return d.t.Month() }

func (d Date) Day() int { return d.t.Day() }

// AddDays returns the date n days later (earlier when n is negative).
func (d Date) AddDays(n int) Date {
	if !d.Valid() {
		return d
	}
	return Date{t: d.t.AddDate(0, 0, n)}
}

// DaysUntil is the signed number of whole days from d to o.
func (d Date) DaysUntil(o Date) int {
	return int(o.t.Sub(d.t).Hours() / 24)
}

func (d Date) String() string {
	if !d.Valid() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// MarshalJSON renders invalid dates as null.
func (d Date) MarshalJSON() ([]byte, error) {
	if !d.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil {
		*d = InvalidDate
		return nil
	}
	*d = ParseDate(*s)
	return nil
}
