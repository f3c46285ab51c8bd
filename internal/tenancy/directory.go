package tenancy

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"assetbase/internal/models"
)

// Directory maps an authenticated identity to its tenant through the
// one-to-one employee record.
type Directory struct {
	db *gorm.DB
}

func NewDirectory(db *gorm.DB) *Directory {
	return &Directory{db: db}
}

// Resolve returns the employee record for an identity, with its tenant
// preloaded, or (nil, nil) when the identity has no employee. Absence is
// a legitimate state (system-level actors have no employee record) and
// is never reported as an error; callers must treat a nil employee as
// "no tenant affiliation".
func (d *Directory) Resolve(ctx context.Context, identityID uuid.UUID) (*models.Employee, error) {
	var emp models.Employee
	err := d.db.WithContext(ctx).
		Preload("Tenant").
		Where("identity_id = ?", identityID).
		First(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}
