// Package testutil opens throwaway SQLite databases with the production schema
// and seeds catalog fixtures for repository and service tests.
package testutil

import (
	"testing"

	"mro-inventory/internal/database"
	"mro-inventory/internal/logger"
	"mro-inventory/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewDB opens a private in-memory database and migrates every model into it.
// A single connection keeps the memory database alive and shared by the tx
// and non-tx paths.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.NewGormLogger(zap.NewNop(), "silent", 0),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// Dec parses a decimal literal.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// DecPtr parses a decimal literal into a pointer.
func DecPtr(s string) *decimal.Decimal {
	d := Dec(s)
	return &d
}

// IDPtr returns a pointer to a copy of id.
func IDPtr(id uuid.UUID) *uuid.UUID {
	return &id
}

// Catalog is a small seeded catalog: one unit, two parts, an unbinned
// warehouse and two warehouses with bins.
type Catalog struct {
	Unit      model.UnitOfMeasure
	Pump      model.Part
	Filter    model.Part
	Main      model.Warehouse // no bins
	Yard      model.Warehouse // bins Bin1, Bin2
	Bin1      model.Bin
	Bin2      model.Bin
	Hangar    model.Warehouse // bin HangarBin
	HangarBin model.Bin
	Vendor    model.Vendor
	Ticket    uuid.UUID
}

// SeedCatalog inserts the fixture catalog.
func SeedCatalog(t *testing.T, db *gorm.DB) *Catalog {
	t.Helper()

	c := &Catalog{
		Unit:   model.UnitOfMeasure{Code: "EA", Name: "Each"},
		Pump:   model.Part{PartNo: "P-100", Name: "Hydraulic pump", IsActive: true},
		Filter: model.Part{PartNo: "F-200", Name: "Oil filter", IsActive: true},
		Main:   model.Warehouse{Code: "MAIN", Name: "Main store", IsActive: true},
		Yard:   model.Warehouse{Code: "YARD", Name: "Yard store", IsActive: true},
		Hangar: model.Warehouse{Code: "HGR", Name: "Hangar store", IsActive: true},
		Vendor: model.Vendor{Name: "Acme Supply", IsActive: true},
		Ticket: uuid.New(),
	}
	require.NoError(t, db.Create(&c.Unit).Error)
	require.NoError(t, db.Create(&c.Pump).Error)
	require.NoError(t, db.Create(&c.Filter).Error)
	require.NoError(t, db.Create(&c.Main).Error)
	require.NoError(t, db.Create(&c.Yard).Error)
	require.NoError(t, db.Create(&c.Hangar).Error)
	require.NoError(t, db.Create(&c.Vendor).Error)

	c.Bin1 = model.Bin{WarehouseID: c.Yard.ID, Code: "A-01"}
	c.Bin2 = model.Bin{WarehouseID: c.Yard.ID, Code: "A-02"}
	c.HangarBin = model.Bin{WarehouseID: c.Hangar.ID, Code: "H-01"}
	require.NoError(t, db.Create(&c.Bin1).Error)
	require.NoError(t, db.Create(&c.Bin2).Error)
	require.NoError(t, db.Create(&c.HangarBin).Error)
	return c
}

// Line builds a document line for part in the fixture unit.
func (c *Catalog) Line(part model.Part, qty string) model.InventoryDocumentLine {
	return model.InventoryDocumentLine{PartID: part.ID, UoMID: c.Unit.ID, Qty: Dec(qty)}
}
