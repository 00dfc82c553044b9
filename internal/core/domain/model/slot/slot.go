package slot

import (
	"fmt"
	"strings"

	"consignment/internal/pkg/errs"
)

// Slot is a (date, window) pair offered to or confirmed by a buyer. Slots are
// comparable and usable as map keys; the zero value means "no slot".
type Slot struct {
	date     Date
	windowID string
}

func NewSlot(date Date, windowID string) (Slot, error) {
	if date.IsZero() {
		return Slot{}, errs.NewValueIsRequiredError("date")
	}
	windowID = strings.TrimSpace(windowID)
	if windowID == "" {
		return Slot{}, errs.NewValueIsRequiredError("windowId")
	}
	return Slot{date: date, windowID: windowID}, nil
}

func (s Slot) Date() Date       { return s.date }
func (s Slot) WindowID() string { return s.windowID }

func (s Slot) IsZero() bool {
	return s == Slot{}
}

// Key identifies the slot in lock names and logs, e.g. "2025-01-20/morning".
func (s Slot) Key() string {
	return fmt.Sprintf("%s/%s", s.date, s.windowID)
}

func (s Slot) String() string {
	return s.Key()
}
