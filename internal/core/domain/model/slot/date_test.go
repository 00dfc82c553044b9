package slot_test

import (
	"testing"
	"time"

	"consignment/internal/core/domain/model/slot"
	"consignment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := slot.ParseDate("2025-01-20")

	require.NoError(t, err)
	assert.Equal(t, 2025, d.Year())
	assert.Equal(t, time.January, d.Month())
	assert.Equal(t, 20, d.Day())
	assert.Equal(t, "2025-01-20", d.String())

	_, err = slot.ParseDate("20/01/2025")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestNewDate_RejectsMissingDays(t *testing.T) {
	_, err := slot.NewDate(2025, time.February, 30)

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestDateOf_UsesLocation(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	instant := time.Date(2025, 1, 21, 3, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025-01-21", slot.DateOf(instant, time.UTC).String())
	assert.Equal(t, "2025-01-20", slot.DateOf(instant, ny).String())
}

func TestDate_Arithmetic(t *testing.T) {
	d, _ := slot.ParseDate("2024-12-30")

	assert.Equal(t, "2025-01-02", d.AddDays(3).String())
	assert.True(t, d.Before(d.AddDays(1)))
	assert.True(t, d.AddDays(1).After(d))
	assert.False(t, d.Before(d))
	assert.Equal(t, d, d.AddDays(5).AddDays(-5))
}

func TestDate_At(t *testing.T) {
	d, _ := slot.ParseDate("2025-01-20")

	at := d.At(9*time.Hour+30*time.Minute, time.UTC)

	assert.Equal(t, time.Date(2025, 1, 20, 9, 30, 0, 0, time.UTC), at)
}
