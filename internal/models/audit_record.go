package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditRecord is an immutable log entry describing a caller action. It
// lives in the audit store, physically separate from tenant data, so it
// declares no foreign keys at all: IdentityID and TenantID are plain
// denormalized values that survive deletion of what they point to.
type AuditRecord struct {
	ID         uuid.UUID      `gorm:"type:char(36);primaryKey" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	IdentityID *uuid.UUID     `gorm:"type:char(36);index" json:"identity_id,omitempty"`
	TenantID   *uuid.UUID     `gorm:"type:char(36);index" json:"tenant_id,omitempty"`
	IPAddress  string         `gorm:"size:64;not null" json:"ip_address"`
	Action     string         `gorm:"size:255;not null" json:"action"`
	Payload    datatypes.JSON `gorm:"type:json" json:"payload,omitempty"`
}

func (AuditRecord) TableName() string { return "audit_records" }

func (a *AuditRecord) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
