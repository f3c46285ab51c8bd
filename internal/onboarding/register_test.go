package onboarding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"assetbase/internal/models"
	"assetbase/internal/rbac"
	"assetbase/internal/tenancy"
)

func setupOnboardingDB(t *testing.T) *gorm.DB {
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
	require.NoError(t, rbac.SeedCatalog(context.Background(), db))
	return db
}

func validInput() Input {
	return Input{
		TenantName: "Innovatech Solutions",
		NIT:        "900123456",
		Username:   "ana.garcia",
		Password:   "empresa123",
		FirstName:  "Ana",
		LastName:   "Garcia",
		UserEmail:  "ana@innovatech.test",
	}
}

func TestRegisterCreatesTenantUnit(t *testing.T) {
	db := setupOnboardingDB(t)
	ctx := context.Background()
	svc := NewService(db)

	result, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	assert.Equal(t, "Innovatech Solutions", result.Tenant.Name)
	assert.Equal(t, result.Tenant.ID, result.Employee.TenantID)
	assert.Equal(t, result.Identity.ID, result.Employee.IdentityID)
	assert.True(t, result.Identity.Active)

	// Password is stored hashed, never verbatim.
	assert.NotEqual(t, "empresa123", result.Identity.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(result.Identity.PasswordHash), []byte("empresa123")))

	// The first employee holds every catalog permission through the
	// auto-created Admin role.
	checker := rbac.NewChecker(db)
	actor := &tenancy.Actor{Identity: result.Identity, Employee: result.Employee}
	effective, err := checker.Effective(ctx, actor)
	require.NoError(t, err)
	assert.Len(t, effective, len(rbac.Catalog))
}

func TestRegisterDuplicatesCaseInsensitive(t *testing.T) {
	db := setupOnboardingDB(t)
	ctx := context.Background()
	svc := NewService(db)

	_, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	cases := []struct {
		name  string
		edit  func(*Input)
		field string
	}{
		{"tenant name", func(in *Input) { in.TenantName = "INNOVATECH solutions" }, "tenant_name"},
		{"nit", func(in *Input) { in.TenantName = "Other Co"; in.NIT = "900123456" }, "nit"},
		{"username", func(in *Input) {
			in.TenantName = "Other Co"
			in.NIT = "800999999"
			in.Username = "ANA.GARCIA"
		}, "username"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			in.UserEmail = "other@example.test"
			tc.edit(&in)
			_, err := svc.Register(ctx, in)
			require.ErrorIs(t, err, models.ErrDuplicateKey)
			var domainErr *models.DomainError
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, tc.field, domainErr.Field)
		})
	}
}

// A failed registration leaves nothing behind: the duplicate username is
// detected after the tenant insert would have happened, and the
// transaction rolls everything back.
func TestRegisterAtomicRollback(t *testing.T) {
	db := setupOnboardingDB(t)
	ctx := context.Background()
	svc := NewService(db)

	_, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	in := validInput()
	in.TenantName = "Second Co"
	in.NIT = "800111222"
	// Username collides with the first registration.
	_, err = svc.Register(ctx, in)
	require.Error(t, err)

	var tenants int64
	require.NoError(t, db.Model(&models.Tenant{}).Count(&tenants).Error)
	assert.EqualValues(t, 1, tenants)

	var identities int64
	require.NoError(t, db.Model(&models.Identity{}).Count(&identities).Error)
	assert.EqualValues(t, 1, identities)
}
