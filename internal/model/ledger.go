package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MovementSide of a ledger entry
type MovementSide string

const (
	MovementIn  MovementSide = "IN"
	MovementOut MovementSide = "OUT"
)

// LedgerEntry is the immutable record of one posted movement.
// Rows are only ever appended.
type LedgerEntry struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	DocID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"doc_id"`
	DocLineID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"doc_line_id"`
	DocType      DocType         `gorm:"type:varchar(20);not null" json:"doc_type"`
	OccurredAt   time.Time       `gorm:"not null;index" json:"occurred_at"`
	PartID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_ledger_key,priority:1" json:"part_id"`
	WarehouseID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_ledger_key,priority:2" json:"warehouse_id"`
	BinID        *uuid.UUID      `gorm:"type:uuid;index:idx_ledger_key,priority:3" json:"bin_id"`
	QtyDelta     decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"qty_delta"`
	UnitCost     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"unit_cost"`
	MovementSide MovementSide    `gorm:"type:varchar(3);not null" json:"movement_side"`
	CreatedAt    time.Time       `json:"created_at"`
}

func (LedgerEntry) TableName() string { return "inventory_ledger_entries" }

func (e *LedgerEntry) BeforeCreate(*gorm.DB) error { newID(&e.ID); return nil }

// StockPosition is the current on-hand quantity for a (part, warehouse, bin) key.
// BinKey mirrors BinID as a non-null string so unbinned positions stay unique.
type StockPosition struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	PartID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_position_key,priority:1" json:"part_id"`
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_position_key,priority:2" json:"warehouse_id"`
	BinKey      string          `gorm:"type:varchar(36);not null;default:'';uniqueIndex:idx_stock_position_key,priority:3" json:"-"`
	BinID       *uuid.UUID      `gorm:"type:uuid" json:"bin_id"`
	Qty         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"qty"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (StockPosition) TableName() string { return "inventory_stock_positions" }

func (p *StockPosition) BeforeCreate(*gorm.DB) error { newID(&p.ID); return nil }

// BinKeyOf returns the storage key for an optional bin
func BinKeyOf(binID *uuid.UUID) string {
	if binID == nil {
		return ""
	}
	return binID.String()
}

// AverageCost is the weighted-average unit cost of a part in a warehouse
type AverageCost struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	PartID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_average_cost_key,priority:1" json:"part_id"`
	WarehouseID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_average_cost_key,priority:2" json:"warehouse_id"`
	AvgUnitCost decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"avg_unit_cost"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (AverageCost) TableName() string { return "inventory_average_costs" }

func (a *AverageCost) BeforeCreate(*gorm.DB) error { newID(&a.ID); return nil }
