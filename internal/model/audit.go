package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ActionCreateDocument  = "CREATE_INVENTORY_DOC"
	ActionUpdateDocument  = "UPDATE_INVENTORY_DOC"
	ActionReplaceLines    = "REPLACE_INVENTORY_DOC_LINES"
	ActionDeleteDocument  = "DELETE_INVENTORY_DOC"
	ActionPostDocument    = "POST_INVENTORY_DOC"
	ActionCancelDocument  = "CANCEL_INVENTORY_DOC"
	ActionCreatePart      = "CREATE_PART"
	ActionCreateVendor    = "CREATE_VENDOR"
	ActionCreateWarehouse = "CREATE_WAREHOUSE"
	ActionCreateBin       = "CREATE_BIN"
	ActionCreateUoM       = "CREATE_UOM"
	ActionUpsertReorder   = "UPSERT_REORDER_POLICY"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nullable for system-generated entries
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`        // Reference string (uuid/code)
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details    string     `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}

func (a *AuditLog) BeforeCreate(*gorm.DB) error { newID(&a.ID); return nil }
