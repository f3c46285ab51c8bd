package seed

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"assetbase/internal/models"
	"assetbase/internal/rbac"
)

// Demo company definitions. Passwords are demo-only; first login should
// rotate them.
const demoPassword = "empresa123"

type demoCompany struct {
	name     string
	nit      string
	username string
	first    string
	surname  string
	email    string
	category string
	status   string
	location string
	asset    string
	code     string
	value    string
}

var demoCompanies = []demoCompany{
	{
		name: "Innovatech Solutions", nit: "123456001",
		username: "admin_innovatech", first: "Ana", surname: "Gomez", email: "ana@innovatech.com",
		category: "Laptops", status: "New", location: "Floor 3 - IT Office",
		asset: "Dell XPS 15 Laptop", code: "INNO-LT-001", value: "1500",
	},
	{
		name: "Constructora Andina", nit: "789012002",
		username: "admin_andina", first: "Carlos", surname: "Vega", email: "carlos@andina.com",
		category: "Heavy Machinery", status: "In Use", location: "Central Warehouse",
		asset: "CAT 320 Excavator", code: "ANDI-MP-001", value: "80000",
	},
	{
		name: "Cafe del Valle", nit: "333444003",
		username: "admin_cafe", first: "Lucia", surname: "Mendez", email: "lucia@cafevalle.com",
		category: "Roasting Equipment", status: "Maintenance", location: "Processing Plant",
		asset: "Probat 25kg Roaster", code: "CAFE-TOST-001", value: "25000",
	},
}

// Demo idempotently seeds the permission catalog and three demo
// companies, each with an admin identity holding a full-catalog role
// and one sample asset. Re-running changes nothing.
func Demo(ctx context.Context, db *gorm.DB) error {
	if err := rbac.SeedCatalog(ctx, db); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	var catalog []models.Permission
	if err := db.WithContext(ctx).Find(&catalog).Error; err != nil {
		return err
	}

	for _, company := range demoCompanies {
		if err := seedCompany(ctx, db, company, string(hash), catalog); err != nil {
			return err
		}
	}
	return nil
}

func seedCompany(ctx context.Context, db *gorm.DB, company demoCompany, passwordHash string, catalog []models.Permission) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tenant := models.Tenant{Name: company.name, NIT: company.nit}
		if err := tx.Where("nit = ?", company.nit).FirstOrCreate(&tenant).Error; err != nil {
			return err
		}

		identity := models.Identity{
			Username:     company.username,
			FirstName:    company.first,
			LastName:     company.surname,
			Email:        company.email,
			PasswordHash: passwordHash,
			Active:       true,
		}
		if err := tx.Where("username = ?", company.username).FirstOrCreate(&identity).Error; err != nil {
			return err
		}

		employee := models.Employee{
			IdentityID:      identity.ID,
			TenantID:        tenant.ID,
			PaternalSurname: company.surname,
			Salary:          decimal.NewFromInt(3000),
		}
		if err := tx.Where("identity_id = ?", identity.ID).FirstOrCreate(&employee).Error; err != nil {
			return err
		}

		adminRole := models.Role{TenantID: tenant.ID, Name: "Admin"}
		if err := tx.Where("tenant_id = ? AND name = ?", tenant.ID, adminRole.Name).FirstOrCreate(&adminRole).Error; err != nil {
			return err
		}
		if len(catalog) > 0 {
			if err := tx.Model(&adminRole).Association("Permissions").Append(&catalog); err != nil {
				return err
			}
		}
		if err := tx.Model(&employee).Association("Roles").Append(&adminRole); err != nil {
			return err
		}

		category := models.AssetCategory{TenantID: tenant.ID, Name: company.category}
		if err := tx.Where("tenant_id = ? AND name = ?", tenant.ID, category.Name).FirstOrCreate(&category).Error; err != nil {
			return err
		}
		status := models.AssetStatus{TenantID: tenant.ID, Name: company.status}
		if err := tx.Where("tenant_id = ? AND name = ?", tenant.ID, status.Name).FirstOrCreate(&status).Error; err != nil {
			return err
		}
		location := models.Location{TenantID: tenant.ID, Name: company.location}
		if err := tx.Where("tenant_id = ? AND name = ?", tenant.ID, location.Name).FirstOrCreate(&location).Error; err != nil {
			return err
		}

		value, err := decimal.NewFromString(company.value)
		if err != nil {
			return err
		}
		asset := models.FixedAsset{
			TenantID:        tenant.ID,
			Name:            company.asset,
			InternalCode:    company.code,
			AcquisitionDate: time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
			CurrentValue:    value,
			UsefulLifeYears: 5,
			CategoryID:      category.ID,
			StatusID:        status.ID,
			LocationID:      location.ID,
		}
		return tx.Where("tenant_id = ? AND internal_code = ?", tenant.ID, company.code).
			FirstOrCreate(&asset).Error
	})
}
