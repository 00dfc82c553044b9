package kernel_test

import (
	"testing"

	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := kernel.NewMoney(125050, "USD")

	require.NoError(t, err)
	require.NoError(t, m.Validate())
	assert.Equal(t, int64(125050), m.MinorUnits())
	assert.Equal(t, "USD", m.Currency())
	assert.Equal(t, "1250.50 USD", m.String())
}

func TestNewMoney_Invalid(t *testing.T) {
	testCases := []struct {
		name     string
		amount   int64
		currency string
	}{
		{"zero amount", 0, "USD"},
		{"negative amount", -100, "USD"},
		{"lower case currency", 100, "usd"},
		{"empty currency", 100, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := kernel.NewMoney(tc.amount, tc.currency)

			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		})
	}
}
