package storage

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"assetbase/internal/config"
	"assetbase/internal/models"
)

// Stores owns the two database handles. Tenant data and audit records
// are physically partitioned: every consumer goes through For so the
// routing rule lives in exactly one place.
type Stores struct {
	Main  *gorm.DB
	Audit *gorm.DB
}

// Open connects both stores. TranslateError is enabled so unique-index
// violations surface as gorm.ErrDuplicatedKey regardless of driver.
func Open(cfg config.DatabaseConfig) (*Stores, error) {
	opts := &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	}

	main, err := gorm.Open(mysql.Open(cfg.DSN), opts)
	if err != nil {
		return nil, fmt.Errorf("storage: open main store: %w", err)
	}
	audit, err := gorm.Open(mysql.Open(cfg.AuditDSN), opts)
	if err != nil {
		return nil, fmt.Errorf("storage: open audit store: %w", err)
	}

	return &Stores{Main: main, Audit: audit}, nil
}

// New wraps pre-opened handles; tests use it with in-memory databases.
func New(main, audit *gorm.DB) *Stores {
	return &Stores{Main: main, Audit: audit}
}

// For selects the backend for an entity type. Audit records go to the
// audit store unconditionally; everything else lives in the main store.
// The partition is independent of any tenant's lifecycle: deleting a
// tenant runs against Main and can never reach audit rows.
func (s *Stores) For(model any) *gorm.DB {
	switch model.(type) {
	case *models.AuditRecord, models.AuditRecord:
		return s.Audit
	default:
		return s.Main
	}
}

// mainModels are migrated only into the main store.
var mainModels = []any{
	&models.Tenant{},
	&models.Identity{},
	&models.Employee{},
	&models.Permission{},
	&models.Role{},
	&models.Department{},
	&models.Position{},
	&models.AssetCategory{},
	&models.AssetStatus{},
	&models.Location{},
	&models.Vendor{},
	&models.Budget{},
	&models.FixedAsset{},
}

// Migrate applies the schema with the same partition rule as For: the
// audit schema never migrates into the main store and vice versa.
func (s *Stores) Migrate() error {
	if err := s.Main.AutoMigrate(mainModels...); err != nil {
		return fmt.Errorf("storage: migrate main store: %w", err)
	}
	if err := s.Audit.AutoMigrate(&models.AuditRecord{}); err != nil {
		return fmt.Errorf("storage: migrate audit store: %w", err)
	}
	return nil
}
