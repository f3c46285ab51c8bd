package rbac

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"assetbase/internal/models"
	"assetbase/internal/tenancy"
)

func setupRBACDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Tenant{},
		&models.Identity{},
		&models.Employee{},
		&models.Permission{},
		&models.Role{},
	))
	require.NoError(t, SeedCatalog(context.Background(), db))
	return db
}

func makeActor(t *testing.T, db *gorm.DB, tenantName string, superuser bool) *tenancy.Actor {
	t.Helper()
	tenant := &models.Tenant{Name: tenantName, NIT: "nit-" + tenantName}
	require.NoError(t, db.Create(tenant).Error)
	identity := &models.Identity{
		Username:     "user-" + tenantName,
		PasswordHash: "x",
		IsSuperuser:  superuser,
		Active:       true,
	}
	require.NoError(t, db.Create(identity).Error)
	emp := &models.Employee{IdentityID: identity.ID, TenantID: tenant.ID}
	require.NoError(t, db.Create(emp).Error)
	emp.Tenant = tenant
	return &tenancy.Actor{Identity: identity, Employee: emp}
}

func permIDs(t *testing.T, db *gorm.DB, names ...string) []uuid.UUID {
	t.Helper()
	var perms []models.Permission
	require.NoError(t, db.Where("name IN ?", names).Find(&perms).Error)
	require.Len(t, perms, len(names))
	ids := make([]uuid.UUID, len(perms))
	for i, p := range perms {
		ids[i] = p.ID
	}
	return ids
}

func TestSeedCatalogIdempotent(t *testing.T) {
	db := setupRBACDB(t)
	ctx := context.Background()

	var before int64
	require.NoError(t, db.Model(&models.Permission{}).Count(&before).Error)
	assert.EqualValues(t, len(Catalog), before)

	// Seeding again must neither fail nor duplicate rows.
	require.NoError(t, SeedCatalog(ctx, db))

	var after int64
	require.NoError(t, db.Model(&models.Permission{}).Count(&after).Error)
	assert.Equal(t, before, after)
}

func TestCheckerCanUnionAcrossRoles(t *testing.T) {
	db := setupRBACDB(t)
	ctx := context.Background()
	roles := NewRoles(db)
	checker := NewChecker(db)

	actor := makeActor(t, db, "alpha", false)

	viewer, err := roles.Create(ctx, actor, "Viewer", permIDs(t, db, "view_asset"))
	require.NoError(t, err)
	editor, err := roles.Create(ctx, actor, "Editor", permIDs(t, db, "edit_asset"))
	require.NoError(t, err)

	require.NoError(t, roles.Assign(ctx, actor, actor.Employee.ID, []uuid.UUID{viewer.ID, editor.ID}))

	for _, perm := range []string{"view_asset", "edit_asset"} {
		ok, err := checker.Can(ctx, actor, perm)
		require.NoError(t, err)
		assert.True(t, ok, perm)
	}
	ok, err := checker.Can(ctx, actor, "delete_asset")
	require.NoError(t, err)
	assert.False(t, ok)

	effective, err := checker.Effective(ctx, actor)
	require.NoError(t, err)
	assert.Equal(t, []string{"edit_asset", "view_asset"}, effective)
}

func TestCheckerSuperuserBypass(t *testing.T) {
	db := setupRBACDB(t)
	ctx := context.Background()
	checker := NewChecker(db)

	super := makeActor(t, db, "hq", true)
	ok, err := checker.Can(ctx, super, "delete_asset")
	require.NoError(t, err)
	assert.True(t, ok)

	// The bypass is a flag on the check, not a grant: the effective set
	// still reflects only assigned roles.
	effective, err := checker.Effective(ctx, super)
	require.NoError(t, err)
	assert.Empty(t, effective)
}

func TestCheckerNoEmployee(t *testing.T) {
	db := setupRBACDB(t)
	ctx := context.Background()
	checker := NewChecker(db)

	identity := &models.Identity{Username: "floating", PasswordHash: "x", Active: true}
	require.NoError(t, db.Create(identity).Error)
	actor := &tenancy.Actor{Identity: identity}

	ok, err := checker.Can(ctx, actor, "view_asset")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRolesCreateDuplicateName(t *testing.T) {
	db := setupRBACDB(t)
	ctx := context.Background()
	roles := NewRoles(db)

	alpha := makeActor(t, db, "alpha", false)
	beta := makeActor(t, db, "beta", false)

	_, err := roles.Create(ctx, alpha, "Admin", nil)
	require.NoError(t, err)

	_, err = roles.Create(ctx, alpha, "Admin", nil)
	assert.ErrorIs(t, err, models.ErrDuplicateRoleName)

	// Same name in another tenant is a different role.
	_, err = roles.Create(ctx, beta, "Admin", nil)
	assert.NoError(t, err)
}

func TestRolesCreateUnknownPermission(t *testing.T) {
	db := setupRBACDB(t)
	ctx := context.Background()
	roles := NewRoles(db)

	actor := makeActor(t, db, "alpha", false)
	_, err := roles.Create(ctx, actor, "Broken", []uuid.UUID{uuid.New()})
	assert.ErrorIs(t, err, models.ErrUnknownPermission)
}

func TestRolesAddPermissionsIdempotent(t *testing.T) {
	db := setupRBACDB(t)
	ctx := context.Background()
	roles := NewRoles(db)

	actor := makeActor(t, db, "alpha", false)
	role, err := roles.Create(ctx, actor, "Viewer", permIDs(t, db, "view_asset"))
	require.NoError(t, err)

	role, err = roles.AddPermissions(ctx, actor, role.ID, permIDs(t, db, "view_asset", "view_dashboard"))
	require.NoError(t, err)
	assert.Len(t, role.Permissions, 2)

	role, err = roles.RemovePermission(ctx, actor, role.ID, permIDs(t, db, "view_dashboard")[0])
	require.NoError(t, err)
	require.Len(t, role.Permissions, 1)
	assert.Equal(t, "view_asset", role.Permissions[0].Name)
}

func TestRolesDeleteRevokesPermissions(t *testing.T) {
	db := setupRBACDB(t)
	ctx := context.Background()
	roles := NewRoles(db)
	checker := NewChecker(db)

	actor := makeActor(t, db, "alpha", false)
	role, err := roles.Create(ctx, actor, "Editor", permIDs(t, db, "edit_asset"))
	require.NoError(t, err)
	require.NoError(t, roles.Assign(ctx, actor, actor.Employee.ID, []uuid.UUID{role.ID}))

	ok, err := checker.Can(ctx, actor, "edit_asset")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, roles.Delete(ctx, actor, role.ID))

	// The grant is gone, not just the role row.
	ok, err = checker.Can(ctx, actor, "edit_asset")
	require.NoError(t, err)
	assert.False(t, ok)

	effective, err := checker.Effective(ctx, actor)
	require.NoError(t, err)
	assert.Empty(t, effective)

	// No join rows linger to grant through a recreated role id.
	var holders, bindings int64
	require.NoError(t, db.Table("employee_roles").Count(&holders).Error)
	require.NoError(t, db.Table("role_permissions").Count(&bindings).Error)
	assert.Zero(t, holders)
	assert.Zero(t, bindings)
}

func TestRolesAssignRejectsCrossTenant(t *testing.T) {
	db := setupRBACDB(t)
	ctx := context.Background()
	roles := NewRoles(db)

	alpha := makeActor(t, db, "alpha", false)
	beta := makeActor(t, db, "beta", false)

	foreign, err := roles.Create(ctx, beta, "Foreign", nil)
	require.NoError(t, err)

	err = roles.Assign(ctx, alpha, alpha.Employee.ID, []uuid.UUID{foreign.ID})
	assert.ErrorIs(t, err, models.ErrCrossTenantRole)

	// A made-up role id is indistinct from a missing one.
	err = roles.Assign(ctx, alpha, alpha.Employee.ID, []uuid.UUID{uuid.New()})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRolesGetScopedToTenant(t *testing.T) {
	db := setupRBACDB(t)
	ctx := context.Background()
	roles := NewRoles(db)

	alpha := makeActor(t, db, "alpha", false)
	beta := makeActor(t, db, "beta", false)

	role, err := roles.Create(ctx, alpha, "Viewer", nil)
	require.NoError(t, err)

	_, err = roles.Get(ctx, beta, role.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	list, err := roles.List(ctx, beta)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGuardAuthorize(t *testing.T) {
	db := setupRBACDB(t)
	ctx := context.Background()
	roles := NewRoles(db)
	guard := NewGuard(NewChecker(db))

	actor := makeActor(t, db, "alpha", false)
	viewer, err := roles.Create(ctx, actor, "Viewer", permIDs(t, db, "view_asset"))
	require.NoError(t, err)
	require.NoError(t, roles.Assign(ctx, actor, actor.Employee.ID, []uuid.UUID{viewer.ID}))

	// Unauthenticated is denied even for reads.
	err = guard.Authorize(ctx, nil, "view_asset", false)
	assert.ErrorIs(t, err, models.ErrUnauthenticated)

	// Reads pass regardless of the declared permission.
	require.NoError(t, guard.Authorize(ctx, actor, "delete_asset", false))

	// Mutations need the permission held.
	require.NoError(t, guard.Authorize(ctx, actor, "view_asset", true))

	err = guard.Authorize(ctx, actor, "delete_asset", true)
	var missing *models.MissingPermissionError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "delete_asset", missing.Permission)

	// A superuser mutates freely.
	super := makeActor(t, db, "hq", true)
	require.NoError(t, guard.Authorize(ctx, super, "delete_asset", true))
}
