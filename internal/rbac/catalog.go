package rbac

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"assetbase/internal/models"
)

// CatalogEntry is one seedable permission.
type CatalogEntry struct {
	Name        string
	Description string
}

// Catalog is the global permission set. Tenants never extend it; they
// only bundle entries into roles.
var Catalog = []CatalogEntry{
	{"view_dashboard", "View the main dashboard"},

	{"view_asset", "View the fixed asset list"},
	{"create_asset", "Create fixed assets"},
	{"edit_asset", "Edit existing fixed assets"},
	{"delete_asset", "Retire (delete) fixed assets"},
	{"assign_asset", "Assign fixed assets to employees or locations"},

	{"view_department", "View the department list"},
	{"manage_department", "Create, edit and delete departments"},
	{"view_position", "View the position list"},
	{"manage_position", "Create, edit and delete positions"},
	{"view_employee", "View the employee list"},
	{"manage_employee", "Create, edit and delete employees"},

	{"view_role", "View the tenant's roles"},
	{"manage_role", "Create, edit and delete roles and their permissions"},
	{"view_permission", "View the global permission catalog"},
	{"manage_permission", "Create, edit and delete global permissions (superusers only)"},

	{"view_budget", "View assigned budgets"},
	{"manage_budget", "Create, edit and delete budgets"},

	{"view_location", "View the location list"},
	{"manage_location", "Create, edit and delete locations"},
	{"view_vendor", "View the vendor list"},
	{"manage_vendor", "Create, edit and delete vendors"},
	{"view_category", "View asset categories"},
	{"manage_category", "Create, edit and delete asset categories"},
	{"view_status", "View asset statuses"},
	{"manage_status", "Create, edit and delete asset statuses"},

	{"view_report", "Access the report section"},
	{"export_report", "Export reports"},

	{"view_log", "View the audit trail"},
	{"manage_settings", "Access system-wide settings"},
}

// SeedCatalog inserts every catalog permission that does not exist yet.
// A name that is already present is a no-op, so re-running the seed is
// safe and yields an identical catalog.
func SeedCatalog(ctx context.Context, db *gorm.DB) error {
	for _, entry := range Catalog {
		perm := models.Permission{Name: entry.Name, Description: entry.Description}
		err := db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&perm).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// ListCatalog returns the stored catalog ordered by name.
func ListCatalog(ctx context.Context, db *gorm.DB) ([]models.Permission, error) {
	var perms []models.Permission
	if err := db.WithContext(ctx).Order("name ASC").Find(&perms).Error; err != nil {
		return nil, err
	}
	return perms, nil
}
