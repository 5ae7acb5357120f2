package service

import (
	"bytes"
	"sort"

	"mro-inventory/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// plannedEntry is a ledger entry before costing.
type plannedEntry struct {
	line        *model.InventoryDocumentLine
	partID      uuid.UUID
	warehouseID uuid.UUID
	binID       *uuid.UUID
	qtyDelta    decimal.Decimal
	side        model.MovementSide
	// pairedOut is the index of the transfer OUT feeding this IN entry, or -1.
	pairedOut int
}

func (e plannedEntry) position() positionKey {
	return positionKey{part: e.partID, warehouse: e.warehouseID, bin: model.BinKeyOf(e.binID)}
}

func (e plannedEntry) costKey() costKey {
	return costKey{part: e.partID, warehouse: e.warehouseID}
}

// planEntries turns validated lines into the ledger entries they produce, in
// line order. A transfer line yields its OUT entry before its IN entry.
func planEntries(doc *model.InventoryDocument, lines []model.InventoryDocumentLine) []plannedEntry {
	entries := make([]plannedEntry, 0, len(lines)*2)
	for i := range lines {
		l := &lines[i]
		switch doc.DocType {
		case model.DocTypeReceipt, model.DocTypeReturn:
			entries = append(entries, inEntry(l, *doc.WarehouseID, l.ToBinID, l.Qty, -1))
		case model.DocTypeIssue:
			entries = append(entries, outEntry(l, *doc.WarehouseID, l.FromBinID, l.Qty))
		case model.DocTypeTransfer:
			entries = append(entries, outEntry(l, *doc.FromWarehouseID, l.FromBinID, l.Qty))
			entries = append(entries, inEntry(l, *doc.ToWarehouseID, l.ToBinID, l.Qty, len(entries)-1))
		case model.DocTypeAdjustment:
			bin := l.ToBinID
			if bin == nil {
				bin = l.FromBinID
			}
			if l.Qty.IsPositive() {
				entries = append(entries, inEntry(l, *doc.WarehouseID, bin, l.Qty, -1))
			} else {
				entries = append(entries, outEntry(l, *doc.WarehouseID, bin, l.Qty.Neg()))
			}
		}
	}
	return entries
}

func inEntry(l *model.InventoryDocumentLine, warehouseID uuid.UUID, binID *uuid.UUID, qty decimal.Decimal, pairedOut int) plannedEntry {
	return plannedEntry{
		line:        l,
		partID:      l.PartID,
		warehouseID: warehouseID,
		binID:       binID,
		qtyDelta:    qty,
		side:        model.MovementIn,
		pairedOut:   pairedOut,
	}
}

func outEntry(l *model.InventoryDocumentLine, warehouseID uuid.UUID, binID *uuid.UUID, qty decimal.Decimal) plannedEntry {
	return plannedEntry{
		line:        l,
		partID:      l.PartID,
		warehouseID: warehouseID,
		binID:       binID,
		qtyDelta:    qty.Neg(),
		side:        model.MovementOut,
		pairedOut:   -1,
	}
}

type costKey struct {
	part      uuid.UUID
	warehouse uuid.UUID
}

func (k costKey) less(o costKey) bool {
	if c := bytes.Compare(k.part[:], o.part[:]); c != 0 {
		return c < 0
	}
	return bytes.Compare(k.warehouse[:], o.warehouse[:]) < 0
}

type positionKey struct {
	part      uuid.UUID
	warehouse uuid.UUID
	bin       string
}

func (k positionKey) less(o positionKey) bool {
	a, b := costKey{k.part, k.warehouse}, costKey{o.part, o.warehouse}
	if a != b {
		return a.less(b)
	}
	return k.bin < o.bin
}

// lockOrder returns the distinct cost and position keys of entries, each
// sorted so that every transaction acquires row locks in the same order.
func lockOrder(entries []plannedEntry) ([]costKey, []positionKey) {
	costSeen := make(map[costKey]bool)
	posSeen := make(map[positionKey]bool)
	var costs []costKey
	var positions []positionKey

	for _, e := range entries {
		if ck := e.costKey(); !costSeen[ck] {
			costSeen[ck] = true
			costs = append(costs, ck)
		}
		if pk := e.position(); !posSeen[pk] {
			posSeen[pk] = true
			positions = append(positions, pk)
		}
	}

	sort.Slice(costs, func(i, j int) bool { return costs[i].less(costs[j]) })
	sort.Slice(positions, func(i, j int) bool { return positions[i].less(positions[j]) })
	return costs, positions
}
