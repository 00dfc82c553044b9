package queries_test

import (
	"testing"

	"consignment/internal/core/application/usecases/queries"
	"consignment/internal/core/domain/model/kernel"
	"consignment/internal/core/domain/model/slot"
	"consignment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery(t *testing.T) {
	id := kernel.NewUUID()
	q, err := queries.NewGetOrderQuery(id)
	require.NoError(t, err)
	assert.Equal(t, id, q.OrderID())
	assert.NoError(t, q.Validate())

	_, err = queries.NewGetOrderQuery(kernel.UUID{})
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	assert.ErrorIs(t, queries.GetOrderQuery{}.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
}

func TestNewGetOrderHistoryQuery(t *testing.T) {
	q, err := queries.NewGetOrderHistoryQuery(kernel.NewUUID())
	require.NoError(t, err)
	assert.NoError(t, q.Validate())

	_, err = queries.NewGetOrderHistoryQuery(kernel.UUID{})
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	assert.ErrorIs(t, queries.GetOrderHistoryQuery{}.Validate(), queries.ErrGetOrderHistoryQueryIsNotConstructed)
}

func TestNewGetSlotCapacityQuery(t *testing.T) {
	date, err := slot.ParseDate("2025-01-21")
	require.NoError(t, err)
	s, err := slot.NewSlot(date, "morning")
	require.NoError(t, err)

	q, err := queries.NewGetSlotCapacityQuery(kernel.NewUUID(), s)
	require.NoError(t, err)
	assert.Equal(t, s, q.Slot())
	assert.NoError(t, q.Validate())

	_, err = queries.NewGetSlotCapacityQuery(kernel.NewUUID(), slot.Slot{})
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = queries.NewGetSlotCapacityQuery(kernel.UUID{}, s)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewGetSchedulingGridQuery(t *testing.T) {
	assert.NoError(t, queries.NewGetSchedulingGridQuery().Validate())
	assert.ErrorIs(t, queries.GetSchedulingGridQuery{}.Validate(), queries.ErrGetSchedulingGridQueryIsNotConstructed)
}
