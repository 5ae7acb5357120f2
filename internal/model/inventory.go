package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DocType of an inventory document
type DocType string

const (
	DocTypeReceipt    DocType = "RECEIPT"
	DocTypeIssue      DocType = "ISSUE"
	DocTypeTransfer   DocType = "TRANSFER"
	DocTypeAdjustment DocType = "ADJUSTMENT"
	DocTypeReturn     DocType = "RETURN"
)

// Valid reports whether t is one of the known document types
func (t DocType) Valid() bool {
	switch t {
	case DocTypeReceipt, DocTypeIssue, DocTypeTransfer, DocTypeAdjustment, DocTypeReturn:
		return true
	}
	return false
}

// IsTransfer reports whether the type moves stock between two warehouses
func (t DocType) IsTransfer() bool { return t == DocTypeTransfer }

// Prefix used for human-readable document numbers
func (t DocType) Prefix() string {
	switch t {
	case DocTypeReceipt:
		return "RCV"
	case DocTypeIssue:
		return "ISS"
	case DocTypeTransfer:
		return "TRF"
	case DocTypeAdjustment:
		return "ADJ"
	case DocTypeReturn:
		return "RTN"
	}
	return "DOC"
}

// DocStatus of an inventory document
type DocStatus string

const (
	DocStatusDraft     DocStatus = "DRAFT"
	DocStatusPosted    DocStatus = "POSTED"
	DocStatusCancelled DocStatus = "CANCELLED"
)

// InventoryDocument is a single stock-moving transaction header.
// RECEIPT, ISSUE, RETURN and ADJUSTMENT use WarehouseID; TRANSFER uses the
// FromWarehouseID/ToWarehouseID pair.
type InventoryDocument struct {
	ID              uuid.UUID               `gorm:"type:uuid;primaryKey" json:"id"`
	DocNo           string                  `gorm:"type:varchar(50);uniqueIndex;not null" json:"doc_no"`
	DocType         DocType                 `gorm:"type:varchar(20);not null;index" json:"doc_type"`
	Status          DocStatus               `gorm:"type:varchar(20);not null;default:'DRAFT';index" json:"status"`
	WarehouseID     *uuid.UUID              `gorm:"type:uuid;index" json:"warehouse_id"`
	FromWarehouseID *uuid.UUID              `gorm:"type:uuid;index" json:"from_warehouse_id"`
	ToWarehouseID   *uuid.UUID              `gorm:"type:uuid;index" json:"to_warehouse_id"`
	VendorID        *uuid.UUID              `gorm:"type:uuid;index" json:"vendor_id"`
	TicketID        *uuid.UUID              `gorm:"type:uuid;index" json:"ticket_id"`
	Reference       string                  `gorm:"type:varchar(255)" json:"reference"`
	Notes           string                  `gorm:"type:text" json:"notes"`
	PostedAt        *time.Time              `json:"posted_at"`
	PostedBy        *uuid.UUID              `gorm:"type:uuid" json:"posted_by"`
	CancelledAt     *time.Time              `json:"cancelled_at"`
	CancelledBy     *uuid.UUID              `gorm:"type:uuid" json:"cancelled_by"`
	ReversalDocID   *uuid.UUID              `gorm:"type:uuid" json:"reversal_doc_id"`
	ReversalOfID    *uuid.UUID              `gorm:"type:uuid;index" json:"reversal_of_id"`
	CreatedBy       *uuid.UUID              `gorm:"type:uuid" json:"created_by"`
	Lines           []InventoryDocumentLine `gorm:"foreignKey:DocID" json:"lines"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

func (d *InventoryDocument) BeforeCreate(*gorm.DB) error { newID(&d.ID); return nil }

// IsDraft reports whether the document may still be edited or posted
func (d *InventoryDocument) IsDraft() bool { return d.Status == DocStatusDraft }

// InventoryDocumentLine is one part movement within a document
type InventoryDocumentLine struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	DocID     uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_doc_line_no,priority:1" json:"doc_id"`
	LineNo    int              `gorm:"not null;uniqueIndex:idx_doc_line_no,priority:2" json:"line_no"`
	PartID    uuid.UUID        `gorm:"type:uuid;index" json:"part_id"`
	UoMID     uuid.UUID        `gorm:"column:uom_id;type:uuid" json:"uom_id"`
	Qty       decimal.Decimal  `gorm:"type:decimal(18,4);not null" json:"qty"`
	UnitCost  *decimal.Decimal `gorm:"type:decimal(18,4)" json:"unit_cost"` // nil = auto cost
	FromBinID *uuid.UUID       `gorm:"type:uuid" json:"from_bin_id"`
	ToBinID   *uuid.UUID       `gorm:"type:uuid" json:"to_bin_id"`
	Notes     string           `gorm:"type:text" json:"notes"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func (l *InventoryDocumentLine) BeforeCreate(*gorm.DB) error { newID(&l.ID); return nil }
