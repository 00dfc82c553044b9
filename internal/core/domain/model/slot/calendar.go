package slot

import (
	"fmt"
	"time"

	"consignment/internal/pkg/errs"
)

const (
	DefaultMaxCapacity = 4
	DefaultHorizonDays = 7
)

// Calendar is the scheduling configuration shared by staff and the scheduler:
// the daily windows, the time zone in which dates are interpreted, the rolling
// horizon and the per-slot capacity. It is immutable and safe for concurrent use.
type Calendar struct {
	windows     []Window
	byID        map[string]Window
	location    *time.Location
	horizonDays int
	maxCapacity int
}

func NewCalendar(windows []Window, location *time.Location, horizonDays, maxCapacity int) (*Calendar, error) {
	if len(windows) == 0 {
		return nil, errs.NewValueIsRequiredError("delivery windows")
	}
	if location == nil {
		return nil, errs.NewValueIsRequiredError("time zone")
	}
	if horizonDays < 1 {
		return nil, errs.NewValueIsOutOfRangeError("horizonDays", horizonDays, 1, "unbounded")
	}
	if maxCapacity < 1 {
		return nil, errs.NewValueIsOutOfRangeError("maxCapacity", maxCapacity, 1, "unbounded")
	}

	byID := make(map[string]Window, len(windows))
	for _, w := range windows {
		if err := w.Validate(); err != nil {
			return nil, err
		}
		if _, dup := byID[w.ID()]; dup {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"delivery windows are invalid", fmt.Errorf("duplicate window id %q", w.ID()))
		}
		byID[w.ID()] = w
	}

	return &Calendar{
		windows:     append([]Window(nil), windows...),
		byID:        byID,
		location:    location,
		horizonDays: horizonDays,
		maxCapacity: maxCapacity,
	}, nil
}

func (c *Calendar) Windows() []Window {
	return append([]Window(nil), c.windows...)
}

func (c *Calendar) Window(id string) (Window, bool) {
	w, ok := c.byID[id]
	return w, ok
}

func (c *Calendar) Location() *time.Location { return c.location }
func (c *Calendar) HorizonDays() int         { return c.horizonDays }
func (c *Calendar) MaxCapacity() int         { return c.maxCapacity }

// Today is the current date in the scheduling time zone.
func (c *Calendar) Today(now time.Time) Date {
	return DateOf(now, c.location)
}

// Horizon lists the bookable dates: today and the following horizonDays-1 days.
func (c *Calendar) Horizon(now time.Time) []Date {
	today := c.Today(now)
	dates := make([]Date, 0, c.horizonDays)
	for i := range c.horizonDays {
		dates = append(dates, today.AddDays(i))
	}
	return dates
}

// Grid lists every slot of the horizon, ordered by date then window.
func (c *Calendar) Grid(now time.Time) []Slot {
	dates := c.Horizon(now)
	slots := make([]Slot, 0, len(dates)*len(c.windows))
	for _, d := range dates {
		for _, w := range c.windows {
			slots = append(slots, Slot{date: d, windowID: w.ID()})
		}
	}
	return slots
}

// CheckOfferable verifies that s names a configured window and falls inside
// the horizon generated from now.
func (c *Calendar) CheckOfferable(now time.Time, s Slot) error {
	if _, ok := c.byID[s.windowID]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"windowId is invalid", fmt.Errorf("%q is not a configured delivery window", s.windowID))
	}
	first := c.Today(now)
	last := first.AddDays(c.horizonDays - 1)
	if s.date.Before(first) || s.date.After(last) {
		return errs.NewValueIsOutOfRangeError("date", s.date.String(), first.String(), last.String())
	}
	return nil
}

// Bounds returns the start and end instants of s in the scheduling time zone.
func (c *Calendar) Bounds(s Slot) (time.Time, time.Time, error) {
	w, ok := c.byID[s.windowID]
	if !ok {
		return time.Time{}, time.Time{}, errs.NewValueIsInvalidErrorWithCause(
			"windowId is invalid", fmt.Errorf("%q is not a configured delivery window", s.windowID))
	}
	return s.date.At(w.Start(), c.location), s.date.At(w.End(), c.location), nil
}

// Capacity wraps an occupancy count with the configured maximum.
func (c *Calendar) Capacity(occupied int) Capacity {
	return NewCapacity(occupied, c.maxCapacity)
}
