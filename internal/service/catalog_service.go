package service

import (
	"context"
	"fmt"

	"mro-inventory/internal/model"
	"mro-inventory/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DTOs
type CreatePartRequest struct {
	PartNo       string `json:"part_no" binding:"required"`
	Name         string `json:"name" binding:"required"`
	DefaultUoMID string `json:"default_uom_id"`
}

type CreateVendorRequest struct {
	Name          string `json:"name" binding:"required"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email" binding:"omitempty,email"`
}

type CreateWarehouseRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

type CreateBinRequest struct {
	Code        string `json:"code" binding:"required"`
	Description string `json:"description"`
}

type CreateUnitRequest struct {
	Code string `json:"code" binding:"required"`
	Name string `json:"name" binding:"required"`
}

type UpsertReorderPolicyRequest struct {
	PartID       string          `json:"part_id" binding:"required,uuid"`
	WarehouseID  string          `json:"warehouse_id" binding:"required,uuid"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
	MinQty       decimal.Decimal `json:"min_qty"`
	MaxQty       decimal.Decimal `json:"max_qty"`
}

// CatalogService seeds and lists the lookup data documents refer to.
type CatalogService interface {
	CreatePart(ctx context.Context, userID string, req CreatePartRequest) (*model.Part, error)
	ListParts(ctx context.Context) ([]model.Part, error)
	CreateVendor(ctx context.Context, userID string, req CreateVendorRequest) (*model.Vendor, error)
	ListVendors(ctx context.Context) ([]model.Vendor, error)
	CreateWarehouse(ctx context.Context, userID string, req CreateWarehouseRequest) (*model.Warehouse, error)
	ListWarehouses(ctx context.Context) ([]model.Warehouse, error)
	CreateBin(ctx context.Context, userID string, warehouseID uuid.UUID, req CreateBinRequest) (*model.Bin, error)
	CreateUnit(ctx context.Context, userID string, req CreateUnitRequest) (*model.UnitOfMeasure, error)
	ListUnits(ctx context.Context) ([]model.UnitOfMeasure, error)
	UpsertReorderPolicy(ctx context.Context, userID string, req UpsertReorderPolicyRequest) (*model.ReorderPolicy, error)
}

type catalogService struct {
	catalogRepo repository.CatalogRepository
	auditRepo   repository.AuditRepository
	txManager   repository.TransactionManager
}

func NewCatalogService(
	catalogRepo repository.CatalogRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) CatalogService {
	return &catalogService{
		catalogRepo: catalogRepo,
		auditRepo:   auditRepo,
		txManager:   txManager,
	}
}

// create runs insert and audit in one transaction and maps unique violations
// to ConflictError.
func (s *catalogService) create(ctx context.Context, userID, action, what string, insert func(context.Context) error, entity func() (string, string), details interface{}) error {
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := insert(txCtx); err != nil {
			if repository.IsDuplicate(err) {
				return conflictf("%s already exists", what)
			}
			return fmt.Errorf("failed to create %s: %w", what, err)
		}
		id, name := entity()
		return writeAudit(txCtx, s.auditRepo, parseUserID(userID), action, id, name, details)
	})
	return asStorageError("create "+what, err)
}

func (s *catalogService) CreatePart(ctx context.Context, userID string, req CreatePartRequest) (*model.Part, error) {
	uom, err := parseOptionalID(req.DefaultUoMID)
	if err != nil {
		return nil, &ValidationError{Errors: []string{fmt.Sprintf("invalid default_uom_id: %q", req.DefaultUoMID)}}
	}

	part := &model.Part{PartNo: req.PartNo, Name: req.Name, DefaultUoMID: uom, IsActive: true}
	err = s.create(ctx, userID, model.ActionCreatePart, "part",
		func(txCtx context.Context) error { return s.catalogRepo.CreatePart(txCtx, part) },
		func() (string, string) { return part.ID.String(), part.PartNo },
		req)
	if err != nil {
		return nil, err
	}
	return part, nil
}

func (s *catalogService) ListParts(ctx context.Context) ([]model.Part, error) {
	parts, err := s.catalogRepo.ListParts(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list parts", Err: err}
	}
	return parts, nil
}

func (s *catalogService) CreateVendor(ctx context.Context, userID string, req CreateVendorRequest) (*model.Vendor, error) {
	vendor := &model.Vendor{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		IsActive:      true,
	}
	err := s.create(ctx, userID, model.ActionCreateVendor, "vendor",
		func(txCtx context.Context) error { return s.catalogRepo.CreateVendor(txCtx, vendor) },
		func() (string, string) { return vendor.ID.String(), vendor.Name },
		req)
	if err != nil {
		return nil, err
	}
	return vendor, nil
}

func (s *catalogService) ListVendors(ctx context.Context) ([]model.Vendor, error) {
	vendors, err := s.catalogRepo.ListVendors(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list vendors", Err: err}
	}
	return vendors, nil
}

func (s *catalogService) CreateWarehouse(ctx context.Context, userID string, req CreateWarehouseRequest) (*model.Warehouse, error) {
	wh := &model.Warehouse{Code: req.Code, Name: req.Name, IsActive: true}
	err := s.create(ctx, userID, model.ActionCreateWarehouse, "warehouse",
		func(txCtx context.Context) error { return s.catalogRepo.CreateWarehouse(txCtx, wh) },
		func() (string, string) { return wh.ID.String(), wh.Code },
		req)
	if err != nil {
		return nil, err
	}
	return wh, nil
}

func (s *catalogService) ListWarehouses(ctx context.Context) ([]model.Warehouse, error) {
	whs, err := s.catalogRepo.ListWarehouses(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list warehouses", Err: err}
	}
	return whs, nil
}

func (s *catalogService) CreateBin(ctx context.Context, userID string, warehouseID uuid.UUID, req CreateBinRequest) (*model.Bin, error) {
	if _, err := s.catalogRepo.FindWarehouse(ctx, warehouseID); err != nil {
		if repository.IsNotFound(err) {
			return nil, &NotFoundError{Entity: "warehouse", ID: warehouseID.String()}
		}
		return nil, &StorageError{Op: "load warehouse", Err: err}
	}

	bin := &model.Bin{WarehouseID: warehouseID, Code: req.Code, Description: req.Description}
	err := s.create(ctx, userID, model.ActionCreateBin, "bin",
		func(txCtx context.Context) error { return s.catalogRepo.CreateBin(txCtx, bin) },
		func() (string, string) { return bin.ID.String(), bin.Code },
		req)
	if err != nil {
		return nil, err
	}
	return bin, nil
}

func (s *catalogService) CreateUnit(ctx context.Context, userID string, req CreateUnitRequest) (*model.UnitOfMeasure, error) {
	uom := &model.UnitOfMeasure{Code: req.Code, Name: req.Name}
	err := s.create(ctx, userID, model.ActionCreateUoM, "unit of measure",
		func(txCtx context.Context) error { return s.catalogRepo.CreateUnit(txCtx, uom) },
		func() (string, string) { return uom.ID.String(), uom.Code },
		req)
	if err != nil {
		return nil, err
	}
	return uom, nil
}

func (s *catalogService) ListUnits(ctx context.Context) ([]model.UnitOfMeasure, error) {
	units, err := s.catalogRepo.ListUnits(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list units of measure", Err: err}
	}
	return units, nil
}

func (s *catalogService) UpsertReorderPolicy(ctx context.Context, userID string, req UpsertReorderPolicyRequest) (*model.ReorderPolicy, error) {
	partID, errPart := uuid.Parse(req.PartID)
	warehouseID, errWh := uuid.Parse(req.WarehouseID)
	if errPart != nil || errWh != nil {
		return nil, &ValidationError{Errors: []string{"part_id and warehouse_id must be valid ids"}}
	}

	var errs []string
	for _, f := range []struct {
		name  string
		value decimal.Decimal
	}{{"reorder_point", req.ReorderPoint}, {"min_qty", req.MinQty}, {"max_qty", req.MaxQty}} {
		if f.value.IsNegative() {
			errs = append(errs, f.name+" must not be negative")
		}
	}
	if req.MaxQty.IsPositive() && req.MaxQty.LessThan(req.MinQty) {
		errs = append(errs, "max_qty must not be below min_qty")
	}
	if len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	var saved *model.ReorderPolicy
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		policy := &model.ReorderPolicy{
			PartID:       partID,
			WarehouseID:  warehouseID,
			ReorderPoint: req.ReorderPoint,
			MinQty:       req.MinQty,
			MaxQty:       req.MaxQty,
		}
		if err := s.catalogRepo.UpsertReorderPolicy(txCtx, policy); err != nil {
			return fmt.Errorf("failed to save reorder policy: %w", err)
		}
		var err error
		if saved, err = s.catalogRepo.FindReorderPolicy(txCtx, partID, warehouseID); err != nil {
			return fmt.Errorf("failed to reload reorder policy: %w", err)
		}
		return writeAudit(txCtx, s.auditRepo, parseUserID(userID), model.ActionUpsertReorder, saved.ID.String(), req.PartID, req)
	})
	if err != nil {
		return nil, asStorageError("upsert reorder policy", err)
	}
	return saved, nil
}
