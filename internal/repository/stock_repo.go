package repository

import (
	"context"

	"mro-inventory/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PositionFilter narrows ListPositions; nil fields match everything.
type PositionFilter struct {
	PartID      *uuid.UUID
	WarehouseID *uuid.UUID
}

// StockRepository keeps the materialized on-hand and average-cost rows the
// posting engine maintains.
type StockRepository interface {
	LockPosition(ctx context.Context, partID, warehouseID uuid.UUID, binID *uuid.UUID) (*model.StockPosition, error)
	SavePosition(ctx context.Context, pos *model.StockPosition) error
	LockAverageCost(ctx context.Context, partID, warehouseID uuid.UUID) (*model.AverageCost, error)
	SaveAverageCost(ctx context.Context, avg *model.AverageCost) error
	FindAverageCost(ctx context.Context, partID, warehouseID uuid.UUID) (*model.AverageCost, error)
	WarehouseQty(ctx context.Context, partID, warehouseID uuid.UUID) (decimal.Decimal, error)
	ListPositions(ctx context.Context, filter PositionFilter) ([]model.StockPosition, error)
}

type stockRepository struct {
	db *gorm.DB
}

func NewStockRepository(db *gorm.DB) StockRepository {
	return &stockRepository{db: db}
}

// LockPosition creates the position row if missing, then locks it FOR UPDATE.
func (r *stockRepository) LockPosition(ctx context.Context, partID, warehouseID uuid.UUID, binID *uuid.UUID) (*model.StockPosition, error) {
	db := GetDB(ctx, r.db)
	binKey := model.BinKeyOf(binID)

	seed := model.StockPosition{
		PartID:      partID,
		WarehouseID: warehouseID,
		BinKey:      binKey,
		BinID:       binID,
		Qty:         decimal.Zero,
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return nil, err
	}

	var pos model.StockPosition
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("part_id = ? AND warehouse_id = ? AND bin_key = ?", partID, warehouseID, binKey).
		First(&pos).Error; err != nil {
		return nil, err
	}
	return &pos, nil
}

func (r *stockRepository) SavePosition(ctx context.Context, pos *model.StockPosition) error {
	return GetDB(ctx, r.db).Model(pos).Update("qty", pos.Qty).Error
}

// LockAverageCost creates the cost row if missing, then locks it FOR UPDATE.
func (r *stockRepository) LockAverageCost(ctx context.Context, partID, warehouseID uuid.UUID) (*model.AverageCost, error) {
	db := GetDB(ctx, r.db)

	seed := model.AverageCost{PartID: partID, WarehouseID: warehouseID, AvgUnitCost: decimal.Zero}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
		return nil, err
	}

	var avg model.AverageCost
	if err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("part_id = ? AND warehouse_id = ?", partID, warehouseID).
		First(&avg).Error; err != nil {
		return nil, err
	}
	return &avg, nil
}

func (r *stockRepository) SaveAverageCost(ctx context.Context, avg *model.AverageCost) error {
	return GetDB(ctx, r.db).Model(avg).Update("avg_unit_cost", avg.AvgUnitCost).Error
}

// FindAverageCost returns nil without error when no cost has been recorded yet.
func (r *stockRepository) FindAverageCost(ctx context.Context, partID, warehouseID uuid.UUID) (*model.AverageCost, error) {
	var avg model.AverageCost
	err := GetDB(ctx, r.db).
		Where("part_id = ? AND warehouse_id = ?", partID, warehouseID).
		Limit(1).Find(&avg).Error
	if err != nil {
		return nil, err
	}
	if avg.ID == uuid.Nil {
		return nil, nil
	}
	return &avg, nil
}

// WarehouseQty is the on-hand total of a part across every bin of a warehouse.
func (r *stockRepository) WarehouseQty(ctx context.Context, partID, warehouseID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := GetDB(ctx, r.db).Model(&model.StockPosition{}).
		Where("part_id = ? AND warehouse_id = ?", partID, warehouseID).
		Select("SUM(qty)").
		Row().Scan(&total); err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

func (r *stockRepository) ListPositions(ctx context.Context, filter PositionFilter) ([]model.StockPosition, error) {
	q := GetDB(ctx, r.db).Model(&model.StockPosition{})
	if filter.PartID != nil {
		q = q.Where("part_id = ?", *filter.PartID)
	}
	if filter.WarehouseID != nil {
		q = q.Where("warehouse_id = ?", *filter.WarehouseID)
	}

	var positions []model.StockPosition
	if err := q.Order("warehouse_id, part_id, bin_key").Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}
