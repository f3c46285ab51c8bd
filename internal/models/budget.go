package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Budget allocates an amount to a department for a period.
type Budget struct {
	Base
	TenantID     uuid.UUID       `gorm:"type:char(36);not null;index" json:"tenant_id"`
	DepartmentID uuid.UUID       `gorm:"type:char(36);not null" json:"department_id" binding:"required"`
	Amount       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Date         time.Time       `gorm:"not null" json:"date" binding:"required"`
	Description  string          `gorm:"type:text" json:"description,omitempty"`

	Tenant     *Tenant     `gorm:"foreignKey:TenantID" json:"-"`
	Department *Department `gorm:"foreignKey:DepartmentID;constraint:OnDelete:CASCADE" json:"department,omitempty"`
}

func (Budget) TableName() string { return "budgets" }

func (b *Budget) TenantRef() uuid.UUID   { return b.TenantID }
func (b *Budget) SetTenant(id uuid.UUID) { b.TenantID = id }
