package audit

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"assetbase/internal/models"
	"assetbase/internal/tenancy"
)

// Recorder appends audit records to the isolated audit store. It is
// never gated by the permission system: if recording could be denied,
// misbehavior would become unloggable.
type Recorder struct {
	db *gorm.DB
}

// NewRecorder takes the audit store handle, never the main one.
func NewRecorder(auditDB *gorm.DB) *Recorder {
	return &Recorder{db: auditDB}
}

// Entry is the caller-supplied part of an audit event; the recorder
// fills in identity, tenant and timestamp.
type Entry struct {
	Action  string
	IP      string
	Payload datatypes.JSON
}

// Record writes one audit record for an authenticated actor. The tenant
// id is taken from the actor as resolved at request time, stored as an
// opaque denormalized value, and never re-derived or cross-checked
// against the audited resource.
func (r *Recorder) Record(ctx context.Context, actor *tenancy.Actor, entry Entry) (*models.AuditRecord, error) {
	if !actor.Authenticated() {
		return nil, models.ErrUnauthenticated
	}

	var tenantID *uuid.UUID
	if id, ok := actor.Tenant(); ok {
		tenantID = &id
	}
	identityID := actor.Identity.ID

	rec := &models.AuditRecord{
		IdentityID: &identityID,
		TenantID:   tenantID,
		IPAddress:  entry.IP,
		Action:     entry.Action,
		Payload:    entry.Payload,
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns recent records, newest first. Non-superusers only see
// records carrying their own tenant id; superusers see everything.
func (r *Recorder) List(ctx context.Context, actor *tenancy.Actor, limit int) ([]models.AuditRecord, error) {
	if !actor.Authenticated() {
		return nil, models.ErrUnauthenticated
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if !actor.Superuser() {
		tenant, ok := actor.Tenant()
		if !ok {
			return []models.AuditRecord{}, nil
		}
		query = query.Where("tenant_id = ?", tenant)
	}

	records := []models.AuditRecord{}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
