package repository

import (
	"context"
	"testing"
	"time"

	"mro-inventory/internal/model"
	"mro-inventory/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerRepository_Sums(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewLedgerRepository(db)
	part, wh, other, bin := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	docID := uuid.New()
	now := time.Now()

	entry := func(warehouse uuid.UUID, binID *uuid.UUID, qty string, side model.MovementSide) model.LedgerEntry {
		return model.LedgerEntry{
			DocID: docID, DocLineID: uuid.New(), DocType: model.DocTypeAdjustment, OccurredAt: now,
			PartID: part, WarehouseID: warehouse, BinID: binID,
			QtyDelta: testutil.Dec(qty), UnitCost: testutil.Dec("1"), MovementSide: side,
		}
	}
	require.NoError(t, repo.Append(ctx, []model.LedgerEntry{
		entry(wh, nil, "5", model.MovementIn),
		entry(wh, &bin, "8", model.MovementIn),
		entry(wh, &bin, "-3", model.MovementOut),
		entry(other, nil, "2", model.MovementIn),
	}))
	require.NoError(t, repo.Append(ctx, nil))

	sum := func(key LedgerKey) string {
		t.Helper()
		qty, err := repo.SumQty(ctx, key)
		require.NoError(t, err)
		return qty.String()
	}
	assert.Equal(t, "5", sum(LedgerKey{PartID: part, WarehouseID: wh}))
	assert.Equal(t, "5", sum(LedgerKey{PartID: part, WarehouseID: wh, BinID: &bin}))
	assert.Equal(t, "10", sum(LedgerKey{PartID: part, WarehouseID: wh, AnyBin: true}))
	assert.Equal(t, "0", sum(LedgerKey{PartID: uuid.New(), WarehouseID: wh, AnyBin: true}))

	balances, err := repo.Balances(ctx, &wh)
	require.NoError(t, err)
	assert.Len(t, balances, 2)
	for _, b := range balances {
		if b.BinID == nil {
			assert.Equal(t, "5", b.Qty.String())
		} else {
			assert.Equal(t, bin, *b.BinID)
			assert.Equal(t, "5", b.Qty.String())
		}
	}

	all, err := repo.Balances(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	entries, err := repo.ListByDoc(ctx, docID)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}
