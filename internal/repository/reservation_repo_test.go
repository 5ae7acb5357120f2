package repository

import (
	"context"
	"testing"

	"mro-inventory/internal/model"
	"mro-inventory/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReservationRepository_ReservedQty(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewReservationRepository(db)
	part, wh, ticket := uuid.New(), uuid.New(), uuid.New()

	qty, err := repo.ReservedQty(ctx, part, wh)
	require.NoError(t, err)
	assert.True(t, qty.IsZero())

	require.NoError(t, db.Create(&[]model.PartRequest{
		{TicketID: ticket, PartID: part, WarehouseID: wh, QtyRequested: testutil.Dec("4"), Status: model.PartRequestOpen},
		{TicketID: ticket, PartID: part, WarehouseID: wh, QtyRequested: testutil.Dec("6"), QtyIssued: testutil.Dec("5"), Status: model.PartRequestOpen},
		{TicketID: ticket, PartID: part, WarehouseID: wh, QtyRequested: testutil.Dec("9"), Status: model.PartRequestCancelled},
	}).Error)

	qty, err = repo.ReservedQty(ctx, part, wh)
	require.NoError(t, err)
	assert.True(t, testutil.Dec("5").Equal(qty), qty.String())
}
