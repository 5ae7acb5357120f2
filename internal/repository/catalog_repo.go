package repository

import (
	"context"

	"mro-inventory/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CatalogRepository interface {
	CreatePart(ctx context.Context, part *model.Part) error
	ListParts(ctx context.Context) ([]model.Part, error)
	FindPart(ctx context.Context, id uuid.UUID) (*model.Part, error)

	CreateVendor(ctx context.Context, vendor *model.Vendor) error
	ListVendors(ctx context.Context) ([]model.Vendor, error)

	CreateWarehouse(ctx context.Context, wh *model.Warehouse) error
	ListWarehouses(ctx context.Context) ([]model.Warehouse, error)
	FindWarehouse(ctx context.Context, id uuid.UUID) (*model.Warehouse, error)

	CreateBin(ctx context.Context, bin *model.Bin) error
	CountBins(ctx context.Context, warehouseID uuid.UUID) (int64, error)
	BinWarehouses(ctx context.Context, binIDs []uuid.UUID) (map[uuid.UUID]uuid.UUID, error)

	CreateUnit(ctx context.Context, uom *model.UnitOfMeasure) error
	ListUnits(ctx context.Context) ([]model.UnitOfMeasure, error)

	UpsertReorderPolicy(ctx context.Context, policy *model.ReorderPolicy) error
	FindReorderPolicy(ctx context.Context, partID, warehouseID uuid.UUID) (*model.ReorderPolicy, error)
	ListReorderPolicies(ctx context.Context, warehouseID uuid.UUID) ([]model.ReorderPolicy, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) CreatePart(ctx context.Context, part *model.Part) error {
	return GetDB(ctx, r.db).Create(part).Error
}

func (r *catalogRepository) ListParts(ctx context.Context) ([]model.Part, error) {
	var parts []model.Part
	if err := GetDB(ctx, r.db).Order("part_no asc").Find(&parts).Error; err != nil {
		return nil, err
	}
	return parts, nil
}

func (r *catalogRepository) FindPart(ctx context.Context, id uuid.UUID) (*model.Part, error) {
	var part model.Part
	if err := GetDB(ctx, r.db).First(&part, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &part, nil
}

func (r *catalogRepository) CreateVendor(ctx context.Context, vendor *model.Vendor) error {
	return GetDB(ctx, r.db).Create(vendor).Error
}

func (r *catalogRepository) ListVendors(ctx context.Context) ([]model.Vendor, error) {
	var vendors []model.Vendor
	if err := GetDB(ctx, r.db).Order("name asc").Find(&vendors).Error; err != nil {
		return nil, err
	}
	return vendors, nil
}

func (r *catalogRepository) CreateWarehouse(ctx context.Context, wh *model.Warehouse) error {
	return GetDB(ctx, r.db).Create(wh).Error
}

func (r *catalogRepository) ListWarehouses(ctx context.Context) ([]model.Warehouse, error) {
	var whs []model.Warehouse
	if err := GetDB(ctx, r.db).
		Preload("Bins", func(db *gorm.DB) *gorm.DB { return db.Order("code asc") }).
		Order("code asc").
		Find(&whs).Error; err != nil {
		return nil, err
	}
	return whs, nil
}

func (r *catalogRepository) FindWarehouse(ctx context.Context, id uuid.UUID) (*model.Warehouse, error) {
	var wh model.Warehouse
	if err := GetDB(ctx, r.db).Preload("Bins").First(&wh, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &wh, nil
}

func (r *catalogRepository) CreateBin(ctx context.Context, bin *model.Bin) error {
	return GetDB(ctx, r.db).Create(bin).Error
}

func (r *catalogRepository) CountBins(ctx context.Context, warehouseID uuid.UUID) (int64, error) {
	var n int64
	if err := GetDB(ctx, r.db).Model(&model.Bin{}).
		Where("warehouse_id = ?", warehouseID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// BinWarehouses maps each known bin id to the warehouse it belongs to. Unknown
// ids are absent from the result.
func (r *catalogRepository) BinWarehouses(ctx context.Context, binIDs []uuid.UUID) (map[uuid.UUID]uuid.UUID, error) {
	owners := make(map[uuid.UUID]uuid.UUID, len(binIDs))
	if len(binIDs) == 0 {
		return owners, nil
	}
	var bins []model.Bin
	if err := GetDB(ctx, r.db).Select("id", "warehouse_id").
		Where("id IN ?", binIDs).
		Find(&bins).Error; err != nil {
		return nil, err
	}
	for _, b := range bins {
		owners[b.ID] = b.WarehouseID
	}
	return owners, nil
}

func (r *catalogRepository) CreateUnit(ctx context.Context, uom *model.UnitOfMeasure) error {
	return GetDB(ctx, r.db).Create(uom).Error
}

func (r *catalogRepository) ListUnits(ctx context.Context) ([]model.UnitOfMeasure, error) {
	var units []model.UnitOfMeasure
	if err := GetDB(ctx, r.db).Order("code asc").Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// UpsertReorderPolicy inserts or overwrites the thresholds of a (part, warehouse) pair.
func (r *catalogRepository) UpsertReorderPolicy(ctx context.Context, policy *model.ReorderPolicy) error {
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "part_id"}, {Name: "warehouse_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"reorder_point", "min_qty", "max_qty", "updated_at"}),
	}).Create(policy).Error
}

// FindReorderPolicy returns nil without error when the pair has no policy.
func (r *catalogRepository) FindReorderPolicy(ctx context.Context, partID, warehouseID uuid.UUID) (*model.ReorderPolicy, error) {
	var policy model.ReorderPolicy
	if err := GetDB(ctx, r.db).
		Where("part_id = ? AND warehouse_id = ?", partID, warehouseID).
		Limit(1).Find(&policy).Error; err != nil {
		return nil, err
	}
	if policy.ID == uuid.Nil {
		return nil, nil
	}
	return &policy, nil
}

func (r *catalogRepository) ListReorderPolicies(ctx context.Context, warehouseID uuid.UUID) ([]model.ReorderPolicy, error) {
	var policies []model.ReorderPolicy
	if err := GetDB(ctx, r.db).Where("warehouse_id = ?", warehouseID).Find(&policies).Error; err != nil {
		return nil, err
	}
	return policies, nil
}
