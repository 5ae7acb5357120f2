package repository

import (
	"context"

	"mro-inventory/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReservationRepository reads open ticket part requests. The rows belong to the
// ticket subsystem and are never written here.
type ReservationRepository interface {
	ReservedQty(ctx context.Context, partID, warehouseID uuid.UUID) (decimal.Decimal, error)
}

type reservationRepository struct {
	db *gorm.DB
}

func NewReservationRepository(db *gorm.DB) ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) ReservedQty(ctx context.Context, partID, warehouseID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := GetDB(ctx, r.db).Model(&model.PartRequest{}).
		Where("part_id = ? AND warehouse_id = ? AND status = ?", partID, warehouseID, model.PartRequestOpen).
		Select("SUM(qty_requested - qty_issued)").
		Row().Scan(&total); err != nil {
		return decimal.Zero, err
	}
	if !total.Valid || total.Decimal.IsNegative() {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
