package service

import (
	"context"
	"sort"

	"mro-inventory/internal/model"
	"mro-inventory/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReservationSource supplies the quantity held for open ticket part requests.
type ReservationSource interface {
	ReservedQty(ctx context.Context, partID, warehouseID uuid.UUID) (decimal.Decimal, error)
}

type StockSummary struct {
	PartID       uuid.UUID        `json:"part_id"`
	WarehouseID  uuid.UUID        `json:"warehouse_id"`
	OnHand       decimal.Decimal  `json:"on_hand"`
	Reserved     decimal.Decimal  `json:"reserved"`
	Available    decimal.Decimal  `json:"available"`
	AvgUnitCost  decimal.Decimal  `json:"avg_unit_cost"`
	ReorderPoint *decimal.Decimal `json:"reorder_point"`
	MinQty       *decimal.Decimal `json:"min_qty"`
	NeedsReorder bool             `json:"needs_reorder"`
}

type LocationQty struct {
	WarehouseID uuid.UUID       `json:"warehouse_id"`
	BinID       *uuid.UUID      `json:"bin_id"`
	Qty         decimal.Decimal `json:"qty"`
}

// Drift is a stock position that disagrees with its ledger.
type Drift struct {
	PartID      uuid.UUID       `json:"part_id"`
	WarehouseID uuid.UUID       `json:"warehouse_id"`
	BinID       *uuid.UUID      `json:"bin_id"`
	PositionQty decimal.Decimal `json:"position_qty"`
	LedgerQty   decimal.Decimal `json:"ledger_qty"`
}

// StockProjector derives read-only stock figures. It never writes.
type StockProjector interface {
	OnHand(ctx context.Context, partID, warehouseID uuid.UUID, binID *uuid.UUID) (decimal.Decimal, error)
	Summary(ctx context.Context, partID, warehouseID uuid.UUID) (*StockSummary, error)
	ByLocation(ctx context.Context, partID uuid.UUID) ([]LocationQty, error)
	ReorderCandidates(ctx context.Context, warehouseID uuid.UUID) ([]StockSummary, error)
	Reconcile(ctx context.Context, warehouseID *uuid.UUID) ([]Drift, error)
}

type stockProjector struct {
	ledger       repository.LedgerRepository
	stock        repository.StockRepository
	catalog      repository.CatalogRepository
	reservations ReservationSource
}

func NewStockProjector(
	ledger repository.LedgerRepository,
	stock repository.StockRepository,
	catalog repository.CatalogRepository,
	reservations ReservationSource,
) StockProjector {
	return &stockProjector{
		ledger:       ledger,
		stock:        stock,
		catalog:      catalog,
		reservations: reservations,
	}
}

// OnHand sums the ledger for a key; a nil bin covers the whole warehouse.
func (p *stockProjector) OnHand(ctx context.Context, partID, warehouseID uuid.UUID, binID *uuid.UUID) (decimal.Decimal, error) {
	qty, err := p.ledger.SumQty(ctx, repository.LedgerKey{
		PartID:      partID,
		WarehouseID: warehouseID,
		BinID:       binID,
		AnyBin:      binID == nil,
	})
	if err != nil {
		return decimal.Zero, &StorageError{Op: "sum ledger", Err: err}
	}
	return qty, nil
}

func (p *stockProjector) Summary(ctx context.Context, partID, warehouseID uuid.UUID) (*StockSummary, error) {
	onHand, err := p.OnHand(ctx, partID, warehouseID, nil)
	if err != nil {
		return nil, err
	}

	reserved := decimal.Zero
	if p.reservations != nil {
		if reserved, err = p.reservations.ReservedQty(ctx, partID, warehouseID); err != nil {
			return nil, &StorageError{Op: "read reservations", Err: err}
		}
	}

	sum := &StockSummary{
		PartID:      partID,
		WarehouseID: warehouseID,
		OnHand:      onHand,
		Reserved:    reserved,
		Available:   onHand.Sub(reserved),
	}

	avg, err := p.stock.FindAverageCost(ctx, partID, warehouseID)
	if err != nil {
		return nil, &StorageError{Op: "read average cost", Err: err}
	}
	if avg != nil {
		sum.AvgUnitCost = avg.AvgUnitCost
	}

	policy, err := p.catalog.FindReorderPolicy(ctx, partID, warehouseID)
	if err != nil {
		return nil, &StorageError{Op: "read reorder policy", Err: err}
	}
	applyPolicy(sum, policy)
	return sum, nil
}

func applyPolicy(sum *StockSummary, policy *model.ReorderPolicy) {
	if policy == nil {
		return
	}
	rp, minQty := policy.ReorderPoint, policy.MinQty
	sum.ReorderPoint = &rp
	sum.MinQty = &minQty
	sum.NeedsReorder = sum.OnHand.LessThanOrEqual(policy.Threshold())
}

func (p *stockProjector) ByLocation(ctx context.Context, partID uuid.UUID) ([]LocationQty, error) {
	positions, err := p.stock.ListPositions(ctx, repository.PositionFilter{PartID: &partID})
	if err != nil {
		return nil, &StorageError{Op: "list stock positions", Err: err}
	}

	res := make([]LocationQty, 0, len(positions))
	for _, pos := range positions {
		if pos.Qty.IsZero() {
			continue
		}
		res = append(res, LocationQty{WarehouseID: pos.WarehouseID, BinID: pos.BinID, Qty: pos.Qty})
	}
	return res, nil
}

// ReorderCandidates lists the parts of a warehouse at or below their threshold.
func (p *stockProjector) ReorderCandidates(ctx context.Context, warehouseID uuid.UUID) ([]StockSummary, error) {
	policies, err := p.catalog.ListReorderPolicies(ctx, warehouseID)
	if err != nil {
		return nil, &StorageError{Op: "list reorder policies", Err: err}
	}

	res := make([]StockSummary, 0)
	for _, policy := range policies {
		sum, err := p.Summary(ctx, policy.PartID, warehouseID)
		if err != nil {
			return nil, err
		}
		if sum.NeedsReorder {
			res = append(res, *sum)
		}
	}
	return res, nil
}

// Reconcile compares every stock position with the ledger it summarizes.
func (p *stockProjector) Reconcile(ctx context.Context, warehouseID *uuid.UUID) ([]Drift, error) {
	balances, err := p.ledger.Balances(ctx, warehouseID)
	if err != nil {
		return nil, &StorageError{Op: "sum ledger", Err: err}
	}
	positions, err := p.stock.ListPositions(ctx, repository.PositionFilter{WarehouseID: warehouseID})
	if err != nil {
		return nil, &StorageError{Op: "list stock positions", Err: err}
	}

	drifts := make(map[positionKey]*Drift)
	keyOf := func(part, wh uuid.UUID, bin *uuid.UUID) positionKey {
		return positionKey{part: part, warehouse: wh, bin: model.BinKeyOf(bin)}
	}
	for _, b := range balances {
		drifts[keyOf(b.PartID, b.WarehouseID, b.BinID)] = &Drift{
			PartID: b.PartID, WarehouseID: b.WarehouseID, BinID: b.BinID, LedgerQty: b.Qty,
		}
	}
	for _, pos := range positions {
		k := keyOf(pos.PartID, pos.WarehouseID, pos.BinID)
		d, ok := drifts[k]
		if !ok {
			d = &Drift{PartID: pos.PartID, WarehouseID: pos.WarehouseID, BinID: pos.BinID}
			drifts[k] = d
		}
		d.PositionQty = pos.Qty
	}

	keys := make([]positionKey, 0, len(drifts))
	for k, d := range drifts {
		if !d.PositionQty.Equal(d.LedgerQty) {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].less(keys[j]) })

	res := make([]Drift, 0, len(keys))
	for _, k := range keys {
		res = append(res, *drifts[k])
	}
	return res, nil
}
