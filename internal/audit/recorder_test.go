package audit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"assetbase/internal/models"
	"assetbase/internal/tenancy"
)

// Two separate in-memory databases, mirroring the deployed split.
func setupAuditDBs(t *testing.T) (main, audit *gorm.DB) {
	t.Helper()
	main, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, main.AutoMigrate(
		&models.Tenant{},
		&models.Identity{},
		&models.Employee{},
		&models.Permission{},
		&models.Role{},
	))
	audit, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, audit.AutoMigrate(&models.AuditRecord{}))
	return main, audit
}

func auditActor(t *testing.T, db *gorm.DB, tenantName string, superuser bool) *tenancy.Actor {
	t.Helper()
	identity := &models.Identity{
		Username:     "user-" + tenantName,
		PasswordHash: "x",
		IsSuperuser:  superuser,
		Active:       true,
	}
	require.NoError(t, db.Create(identity).Error)
	actor := &tenancy.Actor{Identity: identity}
	if tenantName != "" {
		tenant := &models.Tenant{Name: tenantName, NIT: "nit-" + tenantName}
		require.NoError(t, db.Create(tenant).Error)
		emp := &models.Employee{IdentityID: identity.ID, TenantID: tenant.ID}
		require.NoError(t, db.Create(emp).Error)
		emp.Tenant = tenant
		actor.Employee = emp
	}
	return actor
}

func TestRecorderCapturesActorContext(t *testing.T) {
	main, auditDB := setupAuditDBs(t)
	ctx := context.Background()
	recorder := NewRecorder(auditDB)

	actor := auditActor(t, main, "alpha", false)
	rec, err := recorder.Record(ctx, actor, Entry{
		Action:  "asset.created",
		IP:      "10.0.0.7",
		Payload: datatypes.JSON(`{"internal_code":"LT-001"}`),
	})
	require.NoError(t, err)

	require.NotNil(t, rec.IdentityID)
	assert.Equal(t, actor.Identity.ID, *rec.IdentityID)
	require.NotNil(t, rec.TenantID)
	tenant, _ := actor.Tenant()
	assert.Equal(t, tenant, *rec.TenantID)
	assert.Equal(t, "10.0.0.7", rec.IPAddress)
	assert.False(t, rec.CreatedAt.IsZero())

	// The record landed in the audit store, and only there.
	var inAudit int64
	require.NoError(t, auditDB.Model(&models.AuditRecord{}).Count(&inAudit).Error)
	assert.EqualValues(t, 1, inAudit)
	assert.False(t, main.Migrator().HasTable(&models.AuditRecord{}))
}

func TestRecorderUnauthenticated(t *testing.T) {
	_, auditDB := setupAuditDBs(t)
	recorder := NewRecorder(auditDB)

	_, err := recorder.Record(context.Background(), nil, Entry{Action: "login"})
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
}

func TestRecorderTenantlessActor(t *testing.T) {
	main, auditDB := setupAuditDBs(t)
	ctx := context.Background()
	recorder := NewRecorder(auditDB)

	system := auditActor(t, main, "", true)
	rec, err := recorder.Record(ctx, system, Entry{Action: "tenant.deleted"})
	require.NoError(t, err)
	assert.Nil(t, rec.TenantID)
}

func TestRecorderListScoping(t *testing.T) {
	main, auditDB := setupAuditDBs(t)
	ctx := context.Background()
	recorder := NewRecorder(auditDB)

	alpha := auditActor(t, main, "alpha", false)
	beta := auditActor(t, main, "beta", false)
	super := auditActor(t, main, "", true)

	_, err := recorder.Record(ctx, alpha, Entry{Action: "a1"})
	require.NoError(t, err)
	_, err = recorder.Record(ctx, alpha, Entry{Action: "a2"})
	require.NoError(t, err)
	_, err = recorder.Record(ctx, beta, Entry{Action: "b1"})
	require.NoError(t, err)

	alphaRecords, err := recorder.List(ctx, alpha, 0)
	require.NoError(t, err)
	require.Len(t, alphaRecords, 2)
	alphaTenant, _ := alpha.Tenant()
	for _, r := range alphaRecords {
		require.NotNil(t, r.TenantID)
		assert.Equal(t, alphaTenant, *r.TenantID)
	}

	all, err := recorder.List(ctx, super, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	limited, err := recorder.List(ctx, super, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

// A tenant's audit trail outlives the tenant: deleting every row the
// tenant owns in the main store leaves the audit store untouched.
func TestRecorderSurvivesTenantDeletion(t *testing.T) {
	main, auditDB := setupAuditDBs(t)
	ctx := context.Background()
	recorder := NewRecorder(auditDB)

	alpha := auditActor(t, main, "alpha", false)
	_, err := recorder.Record(ctx, alpha, Entry{Action: "asset.created"})
	require.NoError(t, err)

	tenant, _ := alpha.Tenant()
	require.NoError(t, main.Exec("DELETE FROM employees WHERE tenant_id = ?", tenant).Error)
	require.NoError(t, main.Exec("DELETE FROM tenants WHERE id = ?", tenant).Error)

	super := auditActor(t, main, "", true)
	records, err := recorder.List(ctx, super, 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.NotNil(t, records[0].TenantID)
	assert.Equal(t, tenant, *records[0].TenantID)
}
