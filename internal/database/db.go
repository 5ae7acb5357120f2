package database

import (
	"fmt"

	"mro-inventory/internal/config"
	"mro-inventory/internal/logger"
	"mro-inventory/internal/model"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Models lists every table the service owns, in migration order.
func Models() []interface{} {
	return []interface{}{
		&model.Part{},
		&model.Vendor{},
		&model.Warehouse{},
		&model.Bin{},
		&model.UnitOfMeasure{},
		&model.ReorderPolicy{},
		&model.InventoryDocument{},
		&model.InventoryDocumentLine{},
		&model.LedgerEntry{},
		&model.StockPosition{},
		&model.AverageCost{},
		&model.PartRequest{},
		&model.AuditLog{},
		&model.Role{},
		&model.Permission{},
	}
}

// NewConnection opens the PostgreSQL pool with zap query logging
func NewConnection(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger:         logger.NewGormLogger(log, cfg.LogLevel, cfg.SlowThreshold),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}

// Migrate creates or updates the schema of every model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	return nil
}
