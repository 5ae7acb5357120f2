package repository

import (
	"context"

	"mro-inventory/internal/model"

	"gorm.io/gorm"
)

// PermissionRepository resolves role permission codes for the authorizer and
// seeds the built-in codes at startup.
type PermissionRepository interface {
	CodesForRole(ctx context.Context, roleName string) ([]string, error)
	EnsurePermission(ctx context.Context, perm *model.Permission) error
	EnsureRole(ctx context.Context, role *model.Role) error
	GrantPermissions(ctx context.Context, role *model.Role, perms []model.Permission) error
}

type permissionRepository struct {
	db *gorm.DB
}

func NewPermissionRepository(db *gorm.DB) PermissionRepository {
	return &permissionRepository{db: db}
}

// CodesForRole walks role -> role_permissions -> permissions.
func (r *permissionRepository) CodesForRole(ctx context.Context, roleName string) ([]string, error) {
	var codes []string
	err := GetDB(ctx, r.db).Raw(`
		SELECT p.code FROM permissions p
		INNER JOIN role_permissions rp ON rp.permission_id = p.id
		INNER JOIN roles r ON r.id = rp.role_id
		WHERE r.name = ?
	`, roleName).Pluck("code", &codes).Error
	if err != nil {
		return nil, err
	}
	return codes, nil
}

func (r *permissionRepository) EnsurePermission(ctx context.Context, perm *model.Permission) error {
	return GetDB(ctx, r.db).
		Where("code = ?", perm.Code).
		FirstOrCreate(perm).Error
}

func (r *permissionRepository) EnsureRole(ctx context.Context, role *model.Role) error {
	return GetDB(ctx, r.db).
		Where("name = ?", role.Name).
		FirstOrCreate(role).Error
}

func (r *permissionRepository) GrantPermissions(ctx context.Context, role *model.Role, perms []model.Permission) error {
	if len(perms) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).Model(role).Association("Permissions").Append(perms)
}
