package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetCategory groups fixed assets within a tenant (laptops, machinery...).
type AssetCategory struct {
	Base
	TenantID    uuid.UUID `gorm:"type:char(36);not null;index" json:"tenant_id"`
	Name        string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Description string    `gorm:"type:text" json:"description,omitempty"`

	Tenant *Tenant `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"-"`
}

func (AssetCategory) TableName() string { return "asset_categories" }

func (a *AssetCategory) TenantRef() uuid.UUID   { return a.TenantID }
func (a *AssetCategory) SetTenant(id uuid.UUID) { a.TenantID = id }

// AssetStatus is a tenant-defined lifecycle state (new, in use, repair...).
type AssetStatus struct {
	Base
	TenantID uuid.UUID `gorm:"type:char(36);not null;index" json:"tenant_id"`
	Name     string    `gorm:"size:50;not null" json:"name" binding:"required"`
	Detail   string    `gorm:"type:text" json:"detail,omitempty"`

	Tenant *Tenant `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"-"`
}

func (AssetStatus) TableName() string { return "asset_statuses" }

func (a *AssetStatus) TenantRef() uuid.UUID   { return a.TenantID }
func (a *AssetStatus) SetTenant(id uuid.UUID) { a.TenantID = id }

// Location is a physical place where assets sit.
type Location struct {
	Base
	TenantID uuid.UUID `gorm:"type:char(36);not null;index" json:"tenant_id"`
	Name     string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Address  string    `gorm:"size:255" json:"address,omitempty"`
	Detail   string    `gorm:"type:text" json:"detail,omitempty"`

	Tenant *Tenant `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Location) TableName() string { return "locations" }

func (l *Location) TenantRef() uuid.UUID   { return l.TenantID }
func (l *Location) SetTenant(id uuid.UUID) { l.TenantID = id }

// Vendor is an asset supplier. NIT here is the vendor's own registration
// number, scoped to the tenant's book, not globally unique.
type Vendor struct {
	Base
	TenantID uuid.UUID `gorm:"type:char(36);not null;index" json:"tenant_id"`
	Name     string    `gorm:"size:100;not null" json:"name" binding:"required"`
	NIT      string    `gorm:"size:20" json:"nit"`
	Email    string    `gorm:"size:100" json:"email,omitempty"`
	Phone    string    `gorm:"size:20" json:"phone,omitempty"`
	Country  string    `gorm:"size:50" json:"country,omitempty"`
	Address  string    `gorm:"size:255" json:"address,omitempty"`
	Status   string    `gorm:"size:20;not null;default:active" json:"status"`

	Tenant *Tenant `gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Vendor) TableName() string { return "vendors" }

func (v *Vendor) TenantRef() uuid.UUID   { return v.TenantID }
func (v *Vendor) SetTenant(id uuid.UUID) { v.TenantID = id }

// FixedAsset is the central tenant-owned record. InternalCode is unique
// within the owning tenant only; two tenants may both use "LT-001".
type FixedAsset struct {
	Base
	TenantID        uuid.UUID       `gorm:"type:char(36);not null;index;uniqueIndex:uq_assets_tenant_code,priority:1" json:"tenant_id"`
	Name            string          `gorm:"size:100;not null" json:"name" binding:"required"`
	InternalCode    string          `gorm:"size:50;not null;uniqueIndex:uq_assets_tenant_code,priority:2" json:"internal_code" binding:"required"`
	AcquisitionDate time.Time       `gorm:"not null" json:"acquisition_date" binding:"required"`
	CurrentValue    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"current_value"`
	UsefulLifeYears int             `gorm:"not null" json:"useful_life_years"`
	CategoryID      uuid.UUID       `gorm:"type:char(36);not null" json:"category_id" binding:"required"`
	StatusID        uuid.UUID       `gorm:"type:char(36);not null" json:"status_id" binding:"required"`
	LocationID      uuid.UUID       `gorm:"type:char(36);not null" json:"location_id" binding:"required"`
	VendorID        *uuid.UUID      `gorm:"type:char(36)" json:"vendor_id,omitempty"`

	Tenant   *Tenant        `gorm:"foreignKey:TenantID" json:"-"`
	Category *AssetCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Status   *AssetStatus   `gorm:"foreignKey:StatusID" json:"status,omitempty"`
	Location *Location      `gorm:"foreignKey:LocationID" json:"location,omitempty"`
	Vendor   *Vendor        `gorm:"foreignKey:VendorID;constraint:OnDelete:SET NULL" json:"vendor,omitempty"`
}

func (FixedAsset) TableName() string { return "fixed_assets" }

func (f *FixedAsset) TenantRef() uuid.UUID   { return f.TenantID }
func (f *FixedAsset) SetTenant(id uuid.UUID) { f.TenantID = id }
