package slot_test

import (
	"testing"
	"time"

	"consignment/internal/core/domain/model/slot"
	"consignment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWindow(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		w, err := slot.NewWindow("morning", "Morning", 9*time.Hour, 12*time.Hour)

		require.NoError(t, err)
		require.NoError(t, w.Validate())
		assert.Equal(t, "morning", w.ID())
		assert.Equal(t, "Morning", w.Label())
	})

	t.Run("label defaults to id", func(t *testing.T) {
		w, err := slot.NewWindow("late", "", 20*time.Hour, 22*time.Hour)

		require.NoError(t, err)
		assert.Equal(t, "late", w.Label())
	})

	t.Run("inverted bounds", func(t *testing.T) {
		_, err := slot.NewWindow("x", "X", 12*time.Hour, 9*time.Hour)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := slot.NewWindow(" ", "X", 9*time.Hour, 12*time.Hour)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestDefaultWindows(t *testing.T) {
	windows := slot.DefaultWindows()

	require.Len(t, windows, 3)
	assert.Equal(t, "morning", windows[0].ID())
	assert.Equal(t, "afternoon", windows[1].ID())
	assert.Equal(t, "evening", windows[2].ID())
}

func TestParseWindows(t *testing.T) {
	t.Run("parses entries", func(t *testing.T) {
		windows, err := slot.ParseWindows("early|Early bird|07:00|09:30, late|Late|18:00|24:00")

		require.NoError(t, err)
		require.Len(t, windows, 2)
		assert.Equal(t, 7*time.Hour, windows[0].Start())
		assert.Equal(t, 9*time.Hour+30*time.Minute, windows[0].End())
		assert.Equal(t, "Early bird", windows[0].Label())
		assert.Equal(t, 24*time.Hour, windows[1].End())
	})

	t.Run("rejects malformed entry", func(t *testing.T) {
		_, err := slot.ParseWindows("morning|Morning|09:00")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects bad clock", func(t *testing.T) {
		_, err := slot.ParseWindows("morning|Morning|9am|12:00")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects empty setting", func(t *testing.T) {
		_, err := slot.ParseWindows(" , ")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
