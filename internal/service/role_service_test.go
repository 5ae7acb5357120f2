package service

import (
	"context"
	"testing"

	"mro-inventory/internal/model"
	"mro-inventory/internal/repository"
	"mro-inventory/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDefaultRolesIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	svc := NewRoleService(repository.NewPermissionRepository(db), repository.NewTransactionManager(db))

	require.NoError(t, svc.SeedDefaultRolesAndPermissions(ctx))
	require.NoError(t, svc.SeedDefaultRolesAndPermissions(ctx))

	var roles, perms, grants int64
	require.NoError(t, db.Model(&model.Role{}).Count(&roles).Error)
	require.NoError(t, db.Model(&model.Permission{}).Count(&perms).Error)
	require.NoError(t, db.Table("role_permissions").Count(&grants).Error)
	assert.Equal(t, int64(len(defaultRoles)), roles)
	assert.Equal(t, int64(len(defaultPermissions)), perms)
	assert.Equal(t, int64(6+5+3+1), grants)

	codes, err := svc.PermissionsForRole(ctx, "storekeeper")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{model.PermInventoryRead, model.PermInventoryWrite, model.PermInventoryPost}, codes)

	codes, err = svc.PermissionsForRole(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, codes)
}
