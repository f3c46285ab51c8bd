package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"assetbase/internal/models"
	"assetbase/internal/rbac"
	"assetbase/internal/tenancy"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Tenant{},
		&models.Identity{},
		&models.Employee{},
		&models.Permission{},
		&models.Role{},
		&models.AssetCategory{},
		&models.AssetStatus{},
		&models.Location{},
		&models.FixedAsset{},
	))
	return db
}

func TestDemoSeedsThreeCompanies(t *testing.T) {
	db := setupSeedDB(t)
	ctx := context.Background()
	require.NoError(t, Demo(ctx, db))

	var tenants []models.Tenant
	require.NoError(t, db.Order("name").Find(&tenants).Error)
	require.Len(t, tenants, 3)
	assert.Equal(t, "Cafe del Valle", tenants[0].Name)
	assert.Equal(t, "Constructora Andina", tenants[1].Name)
	assert.Equal(t, "Innovatech Solutions", tenants[2].Name)

	// Each admin holds the full catalog through the seeded role.
	checker := rbac.NewChecker(db)
	var identity models.Identity
	require.NoError(t, db.First(&identity, "username = ?", "admin_innovatech").Error)
	var emp models.Employee
	require.NoError(t, db.First(&emp, "identity_id = ?", identity.ID).Error)
	actor := &tenancy.Actor{Identity: &identity, Employee: &emp}
	effective, err := checker.Effective(ctx, actor)
	require.NoError(t, err)
	assert.Len(t, effective, len(rbac.Catalog))

	// One sample asset per company, scoped to its tenant.
	var assets []models.FixedAsset
	require.NoError(t, db.Find(&assets).Error)
	require.Len(t, assets, 3)
	seen := map[string]bool{}
	for _, a := range assets {
		seen[a.InternalCode] = true
		assert.NotEqual(t, "", a.TenantID.String())
	}
	assert.True(t, seen["INNO-LT-001"])
	assert.True(t, seen["ANDI-MP-001"])
	assert.True(t, seen["CAFE-TOST-001"])
}

func TestDemoIsIdempotent(t *testing.T) {
	db := setupSeedDB(t)
	ctx := context.Background()
	require.NoError(t, Demo(ctx, db))
	require.NoError(t, Demo(ctx, db))

	counts := map[string]any{
		"tenants":     &models.Tenant{},
		"identities":  &models.Identity{},
		"employees":   &models.Employee{},
		"assets":      &models.FixedAsset{},
		"roles":       &models.Role{},
		"permissions": &models.Permission{},
	}
	want := map[string]int64{
		"tenants":     3,
		"identities":  3,
		"employees":   3,
		"assets":      3,
		"roles":       3,
		"permissions": int64(len(rbac.Catalog)),
	}
	for name, model := range counts {
		var n int64
		require.NoError(t, db.Model(model).Count(&n).Error)
		assert.Equal(t, want[name], n, name)
	}
}
