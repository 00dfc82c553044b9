package slot

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"consignment/internal/pkg/errs"
	"consignment/internal/pkg/guard"
)

var ErrWindowIsNotConstructed = errors.New("Window must be created via NewWindow constructor")

// Window is a named daily delivery window such as 09:00-12:00. Start and end
// are offsets from local midnight.
type Window struct {
	id    string
	label string
	start time.Duration
	end   time.Duration
	guard guard.ConstructorGuard
}

func NewWindow(id, label string, start, end time.Duration) (Window, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Window{}, errs.NewValueIsRequiredError("window id")
	}
	if start < 0 || end > 24*time.Hour || start >= end {
		return Window{}, errs.NewValueIsInvalidErrorWithCause(
			"window bounds are invalid", fmt.Errorf("%s: %s-%s", id, start, end))
	}
	if label == "" {
		label = id
	}
	return Window{id: id, label: label, start: start, end: end, guard: guard.NewConstructorGuard()}, nil
}

func (w Window) ID() string           { return w.id }
func (w Window) Label() string        { return w.label }
func (w Window) Start() time.Duration { return w.start }
func (w Window) End() time.Duration   { return w.end }

func (w Window) Validate() error {
	return w.guard.Validate(ErrWindowIsNotConstructed)
}

// DefaultWindows returns the three standard windows.
func DefaultWindows() []Window {
	morning, _ := NewWindow("morning", "Morning", 9*time.Hour, 12*time.Hour)
	afternoon, _ := NewWindow("afternoon", "Afternoon", 12*time.Hour, 16*time.Hour)
	evening, _ := NewWindow("evening", "Evening", 16*time.Hour, 20*time.Hour)
	return []Window{morning, afternoon, evening}
}

// ParseWindows parses the DELIVERY_WINDOWS setting: comma separated
// "id|label|HH:MM|HH:MM" entries.
func ParseWindows(s string) ([]Window, error) {
	entries := strings.Split(s, ",")
	windows := make([]Window, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, "|")
		if len(parts) != 4 {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"window definition is invalid", fmt.Errorf("%q: want id|label|start|end", entry))
		}
		start, err := parseClock(parts[2])
		if err != nil {
			return nil, err
		}
		end, err := parseClock(parts[3])
		if err != nil {
			return nil, err
		}
		w, err := NewWindow(parts[0], strings.TrimSpace(parts[1]), start, end)
		if err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}
	if len(windows) == 0 {
		return nil, errs.NewValueIsRequiredError("delivery windows")
	}
	return windows, nil
}

func parseClock(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "24:00" {
		return 24 * time.Hour, nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("clock time is invalid", err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}
