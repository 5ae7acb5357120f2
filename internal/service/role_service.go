package service

import (
	"context"
	"fmt"

	"mro-inventory/internal/model"
	"mro-inventory/internal/repository"
)

type RoleService interface {
	SeedDefaultRolesAndPermissions(ctx context.Context) error
	PermissionsForRole(ctx context.Context, roleName string) ([]string, error)
}

type roleService struct {
	permRepo  repository.PermissionRepository
	txManager repository.TransactionManager
}

func NewRoleService(permRepo repository.PermissionRepository, txManager repository.TransactionManager) RoleService {
	return &roleService{permRepo: permRepo, txManager: txManager}
}

var defaultPermissions = []model.Permission{
	{Code: model.PermInventoryRead, Name: "View inventory documents and stock", Group: "inventory"},
	{Code: model.PermInventoryWrite, Name: "Create and edit draft documents", Group: "inventory"},
	{Code: model.PermInventoryPost, Name: "Post inventory documents", Group: "inventory"},
	{Code: model.PermInventoryCancel, Name: "Cancel posted inventory documents", Group: "inventory"},
	{Code: model.PermInventoryBackorder, Name: "Drive stock negative on post", Group: "inventory"},
	{Code: model.PermCatalogWrite, Name: "Maintain parts, vendors, warehouses and units", Group: "catalog"},
}

var defaultRoles = []struct {
	Name        string
	Description string
	PermCodes   []string
}{
	{
		Name:        "admin",
		Description: "Full access",
		PermCodes: []string{
			model.PermInventoryRead, model.PermInventoryWrite, model.PermInventoryPost,
			model.PermInventoryCancel, model.PermInventoryBackorder, model.PermCatalogWrite,
		},
	},
	{
		Name:        "manager",
		Description: "Posts and cancels documents, maintains the catalog",
		PermCodes: []string{
			model.PermInventoryRead, model.PermInventoryWrite, model.PermInventoryPost,
			model.PermInventoryCancel, model.PermCatalogWrite,
		},
	},
	{
		Name:        "storekeeper",
		Description: "Prepares and posts day-to-day documents",
		PermCodes:   []string{model.PermInventoryRead, model.PermInventoryWrite, model.PermInventoryPost},
	},
	{
		Name:        "technician",
		Description: "Read-only stock lookups",
		PermCodes:   []string{model.PermInventoryRead},
	},
}

// SeedDefaultRolesAndPermissions creates the built-in permissions and roles if missing
func (s *roleService) SeedDefaultRolesAndPermissions(ctx context.Context) error {
	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		permByCode := make(map[string]model.Permission, len(defaultPermissions))
		for _, p := range defaultPermissions {
			perm := p
			if err := s.permRepo.EnsurePermission(txCtx, &perm); err != nil {
				return fmt.Errorf("failed to seed permission '%s': %w", p.Code, err)
			}
			permByCode[perm.Code] = perm
		}

		for _, def := range defaultRoles {
			role := model.Role{Name: def.Name, Description: def.Description, IsSystem: true}
			if err := s.permRepo.EnsureRole(txCtx, &role); err != nil {
				return fmt.Errorf("failed to seed role '%s': %w", def.Name, err)
			}

			perms := make([]model.Permission, 0, len(def.PermCodes))
			for _, code := range def.PermCodes {
				perms = append(perms, permByCode[code])
			}
			if err := s.permRepo.GrantPermissions(txCtx, &role, perms); err != nil {
				return fmt.Errorf("failed to assign permissions to role '%s': %w", def.Name, err)
			}
		}
		return nil
	})
}

func (s *roleService) PermissionsForRole(ctx context.Context, roleName string) ([]string, error) {
	codes, err := s.permRepo.CodesForRole(ctx, roleName)
	if err != nil {
		return nil, &StorageError{Op: "load role permissions", Err: err}
	}
	return codes, nil
}
