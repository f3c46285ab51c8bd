package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the UUID primary key and timestamps shared by every model.
type Base struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a fresh UUID unless the caller already set one.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Key and SetKey give generic code access to the primary key without
// reflection; they are promoted to every model embedding Base.
func (b *Base) Key() uuid.UUID      { return b.ID }
func (b *Base) SetKey(id uuid.UUID) { b.ID = id }
