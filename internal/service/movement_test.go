package service

import (
	"testing"

	"mro-inventory/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanEntries(t *testing.T) {
	bin1, bin2 := idp(), idp()

	t.Run("receipt goes in to the to bin", func(t *testing.T) {
		doc := draft(model.DocTypeReceipt)
		l := line(1, "5")
		l.ToBinID = bin1

		got := planEntries(doc, []model.InventoryDocumentLine{l})

		require.Len(t, got, 1)
		assert.Equal(t, model.MovementIn, got[0].side)
		assert.Equal(t, *doc.WarehouseID, got[0].warehouseID)
		assert.Equal(t, bin1, got[0].binID)
		assert.True(t, dec("5").Equal(got[0].qtyDelta))
		assert.Equal(t, -1, got[0].pairedOut)
	})

	t.Run("issue goes out of the from bin", func(t *testing.T) {
		doc := draft(model.DocTypeIssue)
		l := line(1, "5")
		l.FromBinID = bin1

		got := planEntries(doc, []model.InventoryDocumentLine{l})

		require.Len(t, got, 1)
		assert.Equal(t, model.MovementOut, got[0].side)
		assert.Equal(t, bin1, got[0].binID)
		assert.True(t, dec("-5").Equal(got[0].qtyDelta))
	})

	t.Run("transfer yields out then paired in", func(t *testing.T) {
		doc := draft(model.DocTypeTransfer)
		first, second := line(1, "2"), line(2, "3")
		first.FromBinID, first.ToBinID = bin1, bin2

		got := planEntries(doc, []model.InventoryDocumentLine{first, second})

		require.Len(t, got, 4)
		assert.Equal(t, model.MovementOut, got[0].side)
		assert.Equal(t, *doc.FromWarehouseID, got[0].warehouseID)
		assert.Equal(t, bin1, got[0].binID)
		assert.Equal(t, model.MovementIn, got[1].side)
		assert.Equal(t, *doc.ToWarehouseID, got[1].warehouseID)
		assert.Equal(t, bin2, got[1].binID)
		assert.Equal(t, 0, got[1].pairedOut)
		assert.Equal(t, 2, got[3].pairedOut)
		assert.True(t, dec("-3").Equal(got[2].qtyDelta))
		assert.True(t, dec("3").Equal(got[3].qtyDelta))
	})

	t.Run("adjustment keeps sign and prefers the to bin", func(t *testing.T) {
		doc := draft(model.DocTypeAdjustment)
		up, down := line(1, "4"), line(2, "-1.5")
		up.FromBinID, up.ToBinID = bin1, bin2
		down.FromBinID = bin1

		got := planEntries(doc, []model.InventoryDocumentLine{up, down})

		require.Len(t, got, 2)
		assert.Equal(t, model.MovementIn, got[0].side)
		assert.Equal(t, bin2, got[0].binID)
		assert.True(t, dec("4").Equal(got[0].qtyDelta))
		assert.Equal(t, model.MovementOut, got[1].side)
		assert.Equal(t, bin1, got[1].binID)
		assert.True(t, dec("-1.5").Equal(got[1].qtyDelta))
	})
}

func TestLockOrderIsSortedAndDistinct(t *testing.T) {
	a := uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	b := uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	w1 := uuid.MustParse("10000000-0000-0000-0000-000000000000")
	w2 := uuid.MustParse("20000000-0000-0000-0000-000000000000")
	bin := uuid.MustParse("30000000-0000-0000-0000-000000000000")

	entries := []plannedEntry{
		{partID: b, warehouseID: w2},
		{partID: a, warehouseID: w2, binID: &bin},
		{partID: b, warehouseID: w1},
		{partID: a, warehouseID: w2},
		{partID: b, warehouseID: w2},
	}

	costs, positions := lockOrder(entries)

	assert.Equal(t, []costKey{{a, w2}, {b, w1}, {b, w2}}, costs)
	assert.Equal(t, []positionKey{
		{a, w2, ""},
		{a, w2, bin.String()},
		{b, w1, ""},
		{b, w2, ""},
	}, positions)
}
