package models

import "github.com/google/uuid"

// Role is a tenant-scoped named bundle of catalog permissions. Name is
// unique per tenant, never globally.
type Role struct {
	Base
	TenantID uuid.UUID `gorm:"type:char(36);not null;index;uniqueIndex:uq_roles_tenant_name,priority:1" json:"tenant_id"`
	Name     string    `gorm:"size:100;not null;uniqueIndex:uq_roles_tenant_name,priority:2" json:"name"`

	Tenant      *Tenant      `gorm:"foreignKey:TenantID" json:"-"`
	Permissions []Permission `gorm:"many2many:role_permissions" json:"permissions,omitempty"`
}

func (Role) TableName() string { return "roles" }

func (r *Role) TenantRef() uuid.UUID   { return r.TenantID }
func (r *Role) SetTenant(id uuid.UUID) { r.TenantID = id }
