// Package types holds small wire-level value types shared by the API
// components, most importantly the calendar Date used for all *datum fields.
package types

import (
	"fmt"
	"strings"
	"time"

	"github.com/rickb777/period"
)

const dateLayout = "2006-01-02"

// Date is a calendar date without time-of-day, serialised as "2006-01-02".
// Use *Date for optional fields; the zero Date is a valid date (year 1).
type Date struct {
	t time.Time
}

// NewDate builds a Date from year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its calendar date in the timestamp's
// location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses the ISO "2006-01-02" form.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	return Date{t: t}, nil
}

// ParseDateLoose accepts either a bare date or a full RFC 3339 timestamp and
// returns its date part. Eigenschap and zaakobject attribute values come in
// both shapes.
func ParseDateLoose(value string) (Date, error) {
	value = strings.TrimSpace(value)
	if d, err := ParseDate(value); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: %w", value, err)
	}
	return DateOf(t), nil
}

func (d Date) String() string { return d.t.Format(dateLayout) }

// Time returns the date as midnight UTC.
func (d Date) Time() time.Time { return d.t }

func (d Date) Equal(other Date) bool  { return d.t.Equal(other.t) }
func (d Date) After(other Date) bool  { return d.t.After(other.t) }
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// AddPeriod shifts the date by an ISO 8601 period.
func (d Date) AddPeriod(p period.Period) Date {
	shifted, _ := p.AddTo(d.t)
	return DateOf(shifted)
}

// IsZero reports whether the date is the zero value.
func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MaxDate returns the latest of the given dates, ignoring nils. Returns nil
// when every argument is nil.
func MaxDate(dates ...*Date) *Date {
	var out *Date
	for _, d := range dates {
		if d == nil {
			continue
		}
		if out == nil || d.After(*out) {
			v := *d
			out = &v
		}
	}
	return out
}

// DatePtr is a convenience for optional date fields.
func DatePtr(d Date) *Date { return &d }
