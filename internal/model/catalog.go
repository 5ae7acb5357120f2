package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// newID assigns a fresh identity to records created without one.
func newID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// Part represents a stocked spare part or consumable
type Part struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	PartNo       string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"part_no"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	DefaultUoMID *uuid.UUID     `gorm:"type:uuid" json:"default_uom_id"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Part) BeforeCreate(*gorm.DB) error { newID(&p.ID); return nil }

// Vendor supplies parts on RECEIPT documents
type Vendor struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string         `gorm:"type:varchar(255);not null" json:"name"`
	ContactPerson string         `gorm:"type:varchar(255)" json:"contact_person"`
	Phone         string         `gorm:"type:varchar(50)" json:"phone"`
	Email         string         `gorm:"type:varchar(255)" json:"email"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (v *Vendor) BeforeCreate(*gorm.DB) error { newID(&v.ID); return nil }

// Warehouse is a stocking location; it may or may not be subdivided into bins
type Warehouse struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Code      string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name      string         `gorm:"type:varchar(255);not null" json:"name"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	Bins      []Bin          `gorm:"foreignKey:WarehouseID" json:"bins,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (w *Warehouse) BeforeCreate(*gorm.DB) error { newID(&w.ID); return nil }

// Bin is a sub-location within a warehouse
type Bin struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	WarehouseID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_bin_warehouse_code,priority:1" json:"warehouse_id"`
	Code        string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_bin_warehouse_code,priority:2" json:"code"`
	Description string    `gorm:"type:varchar(255)" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (b *Bin) BeforeCreate(*gorm.DB) error { newID(&b.ID); return nil }

// UnitOfMeasure is the unit a document line quantity is expressed in
type UnitOfMeasure struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Code      string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"code"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UnitOfMeasure) TableName() string { return "units_of_measure" }

func (u *UnitOfMeasure) BeforeCreate(*gorm.DB) error { newID(&u.ID); return nil }

// ReorderPolicy holds the replenishment thresholds of a part in a warehouse
type ReorderPolicy struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	PartID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_reorder_part_warehouse,priority:1" json:"part_id"`
	WarehouseID  uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_reorder_part_warehouse,priority:2" json:"warehouse_id"`
	ReorderPoint decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"reorder_point"`
	MinQty       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"min_qty"`
	MaxQty       decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"max_qty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (r *ReorderPolicy) BeforeCreate(*gorm.DB) error { newID(&r.ID); return nil }

// Threshold is the quantity at or below which the part needs reordering
func (r ReorderPolicy) Threshold() decimal.Decimal {
	return decimal.Max(r.ReorderPoint, r.MinQty)
}
