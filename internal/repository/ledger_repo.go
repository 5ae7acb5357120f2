package repository

import (
	"context"

	"mro-inventory/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LedgerKey selects ledger rows for a part in a warehouse. With AnyBin set the
// bin is ignored and the whole warehouse is summed.
type LedgerKey struct {
	PartID      uuid.UUID
	WarehouseID uuid.UUID
	BinID       *uuid.UUID
	AnyBin      bool
}

// LedgerBalance is the ledger sum for one (part, warehouse, bin) key
type LedgerBalance struct {
	PartID      uuid.UUID
	WarehouseID uuid.UUID
	BinID       *uuid.UUID
	Qty         decimal.Decimal
}

// LedgerRepository is append-only: there is no update or delete.
type LedgerRepository interface {
	Append(ctx context.Context, entries []model.LedgerEntry) error
	ListByDoc(ctx context.Context, docID uuid.UUID) ([]model.LedgerEntry, error)
	SumQty(ctx context.Context, key LedgerKey) (decimal.Decimal, error)
	Balances(ctx context.Context, warehouseID *uuid.UUID) ([]LedgerBalance, error)
}

type ledgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) Append(ctx context.Context, entries []model.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Create(&entries).Error
}

func (r *ledgerRepository) ListByDoc(ctx context.Context, docID uuid.UUID) ([]model.LedgerEntry, error) {
	var entries []model.LedgerEntry
	if err := GetDB(ctx, r.db).
		Where("doc_id = ?", docID).
		Order("occurred_at asc, created_at asc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *ledgerRepository) SumQty(ctx context.Context, key LedgerKey) (decimal.Decimal, error) {
	q := GetDB(ctx, r.db).Model(&model.LedgerEntry{}).
		Where("part_id = ? AND warehouse_id = ?", key.PartID, key.WarehouseID)
	if !key.AnyBin {
		if key.BinID == nil {
			q = q.Where("bin_id IS NULL")
		} else {
			q = q.Where("bin_id = ?", *key.BinID)
		}
	}

	var total decimal.NullDecimal
	if err := q.Select("SUM(qty_delta)").Row().Scan(&total); err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// Balances sums the ledger per key, optionally restricted to one warehouse.
func (r *ledgerRepository) Balances(ctx context.Context, warehouseID *uuid.UUID) ([]LedgerBalance, error) {
	q := GetDB(ctx, r.db).Model(&model.LedgerEntry{}).
		Select("part_id, warehouse_id, bin_id, SUM(qty_delta) AS qty").
		Group("part_id, warehouse_id, bin_id")
	if warehouseID != nil {
		q = q.Where("warehouse_id = ?", *warehouseID)
	}

	var rows []LedgerBalance
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
