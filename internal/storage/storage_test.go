package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"assetbase/internal/models"
)

func openPair(t *testing.T) *Stores {
	t.Helper()
	main, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	audit, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	return New(main, audit)
}

func TestForRoutesAuditRecords(t *testing.T) {
	stores := openPair(t)

	assert.Same(t, stores.Audit, stores.For(&models.AuditRecord{}))
	assert.Same(t, stores.Audit, stores.For(models.AuditRecord{}))

	assert.Same(t, stores.Main, stores.For(&models.FixedAsset{}))
	assert.Same(t, stores.Main, stores.For(&models.Tenant{}))
	assert.Same(t, stores.Main, stores.For(&models.Employee{}))
}

func TestMigratePartitionsSchemas(t *testing.T) {
	stores := openPair(t)
	require.NoError(t, stores.Migrate())

	// Main store carries tenant data only.
	assert.True(t, stores.Main.Migrator().HasTable(&models.Tenant{}))
	assert.True(t, stores.Main.Migrator().HasTable(&models.FixedAsset{}))
	assert.False(t, stores.Main.Migrator().HasTable(&models.AuditRecord{}))

	// Audit store carries audit records only.
	assert.True(t, stores.Audit.Migrator().HasTable(&models.AuditRecord{}))
	assert.False(t, stores.Audit.Migrator().HasTable(&models.Tenant{}))
}
