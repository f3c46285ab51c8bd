package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Employee links one Identity to exactly one Tenant, plus org attributes
// and the tenant-scoped roles the identity holds.
type Employee struct {
	Base
	IdentityID      uuid.UUID       `gorm:"type:char(36);not null;uniqueIndex" json:"identity_id"`
	TenantID        uuid.UUID       `gorm:"type:char(36);not null;index" json:"tenant_id"`
	DocumentID      string          `gorm:"size:20" json:"document_id"`
	PaternalSurname string          `gorm:"size:100" json:"paternal_surname"`
	MaternalSurname string          `gorm:"size:100" json:"maternal_surname"`
	Address         string          `gorm:"size:255" json:"address,omitempty"`
	Phone           string          `gorm:"size:20" json:"phone,omitempty"`
	Salary          decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"salary"`
	PositionID      *uuid.UUID      `gorm:"type:char(36)" json:"position_id,omitempty"`
	DepartmentID    *uuid.UUID      `gorm:"type:char(36)" json:"department_id,omitempty"`

	Identity   *Identity   `gorm:"foreignKey:IdentityID" json:"identity,omitempty"`
	Tenant     *Tenant     `gorm:"foreignKey:TenantID" json:"-"`
	Position   *Position   `gorm:"foreignKey:PositionID;constraint:OnDelete:SET NULL" json:"position,omitempty"`
	Department *Department `gorm:"foreignKey:DepartmentID;constraint:OnDelete:SET NULL" json:"department,omitempty"`
	Roles      []Role      `gorm:"many2many:employee_roles" json:"roles,omitempty"`
}

func (Employee) TableName() string { return "employees" }

func (e *Employee) TenantRef() uuid.UUID   { return e.TenantID }
func (e *Employee) SetTenant(id uuid.UUID) { e.TenantID = id }
