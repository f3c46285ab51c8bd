package models

// Tenant is an independent company whose data is isolated from every
// other tenant. Name and NIT (registration number) are unique across the
// system, compared case-insensitively at registration time.
type Tenant struct {
	Base
	Name    string `gorm:"size:100;not null;uniqueIndex" json:"name"`
	NIT     string `gorm:"size:20;not null;uniqueIndex" json:"nit"`
	Address string `gorm:"size:255" json:"address,omitempty"`
	Phone   string `gorm:"size:20" json:"phone,omitempty"`
	Email   string `gorm:"size:100" json:"email,omitempty"`

	// Owned rows. Deleting a tenant cascades through these; audit
	// records live in a separate store and are never touched.
	Employees   []Employee   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Roles       []Role       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Departments []Department `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Positions   []Position   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Tenant) TableName() string { return "tenants" }
