package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PartRequest status constants
const (
	PartRequestOpen      = "OPEN"
	PartRequestFulfilled = "FULFILLED"
	PartRequestCancelled = "CANCELLED"
)

// PartRequest is a maintenance ticket's request for a part. The ticket
// subsystem owns these rows; open requests count as reserved stock.
type PartRequest struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	TicketID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"ticket_id"`
	PartID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_part_request_key,priority:1" json:"part_id"`
	WarehouseID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_part_request_key,priority:2" json:"warehouse_id"`
	QtyRequested decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"qty_requested"`
	QtyIssued    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"qty_issued"`
	Status       string          `gorm:"type:varchar(20);not null;default:'OPEN'" json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (PartRequest) TableName() string { return "ticket_part_requests" }

func (r *PartRequest) BeforeCreate(*gorm.DB) error { newID(&r.ID); return nil }
