package slot

import (
	"fmt"
	"time"

	"consignment/internal/pkg/errs"
)

const dateLayout = "2006-01-02"

// Date is a calendar day in the scheduling time zone. The zero value is
// not a valid date.
type Date struct {
	year  int
	month time.Month
	day   int
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, errs.NewValueIsInvalidErrorWithCause("date is invalid", err)
	}
	return DateOf(t, time.UTC), nil
}

// DateOf returns the calendar day of t as seen in loc.
func DateOf(t time.Time, loc *time.Location) Date {
	y, m, d := t.In(loc).Date()
	return Date{year: y, month: m, day: d}
}

// NewDate builds a date and rejects non-existent days such as February 30.
func NewDate(year int, month time.Month, day int) (Date, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, errs.NewValueIsInvalidErrorWithCause(
			"date is invalid", fmt.Errorf("%04d-%02d-%02d does not exist", year, month, day))
	}
	return Date{year: year, month: month, day: day}, nil
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) Year() int         { return d.year }
func (d Date) Month() time.Month { return d.month }
func (d Date) Day() int          { return d.day }

// At returns the instant offset after local midnight of d in loc.
func (d Date) At(offset time.Duration, loc *time.Location) time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, loc).Add(offset)
}

// AddDays returns the date n days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	return DateOf(time.Date(d.year, d.month, d.day+n, 0, 0, 0, 0, time.UTC), time.UTC)
}

func (d Date) Before(other Date) bool {
	return d.midnight().Before(other.midnight())
}

func (d Date) After(other Date) bool {
	return d.midnight().After(other.midnight())
}

func (d Date) String() string {
	return d.midnight().Format(dateLayout)
}

// Time returns midnight UTC of d, for encoders that need a time.Time.
func (d Date) Time() time.Time {
	return d.midnight()
}

func (d Date) midnight() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}
