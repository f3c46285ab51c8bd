package models

import "github.com/google/uuid"

// Department is an organizational unit, unique by name within its tenant.
type Department struct {
	Base
	TenantID    uuid.UUID `gorm:"type:char(36);not null;index;uniqueIndex:uq_departments_tenant_name,priority:1" json:"tenant_id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex:uq_departments_tenant_name,priority:2" json:"name" binding:"required"`
	Description string    `gorm:"type:text" json:"description,omitempty"`

	Tenant *Tenant `gorm:"foreignKey:TenantID" json:"-"`
}

func (Department) TableName() string { return "departments" }

func (d *Department) TenantRef() uuid.UUID   { return d.TenantID }
func (d *Department) SetTenant(id uuid.UUID) { d.TenantID = id }

// Position is a job title within a tenant (cargo), unique by name.
type Position struct {
	Base
	TenantID    uuid.UUID `gorm:"type:char(36);not null;index;uniqueIndex:uq_positions_tenant_name,priority:1" json:"tenant_id"`
	Name        string    `gorm:"size:100;not null;uniqueIndex:uq_positions_tenant_name,priority:2" json:"name" binding:"required"`
	Description string    `gorm:"type:text" json:"description,omitempty"`

	Tenant *Tenant `gorm:"foreignKey:TenantID" json:"-"`
}

func (Position) TableName() string { return "positions" }

func (p *Position) TenantRef() uuid.UUID   { return p.TenantID }
func (p *Position) SetTenant(id uuid.UUID) { p.TenantID = id }
