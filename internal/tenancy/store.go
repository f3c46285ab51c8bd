package tenancy

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"assetbase/internal/models"
)

// Owned is implemented by every tenant-owned model. The key accessors
// come promoted from models.Base.
type Owned interface {
	TenantRef() uuid.UUID
	SetTenant(uuid.UUID)
	Key() uuid.UUID
	SetKey(uuid.UUID)
}

// Store is the tenant-scoped data gateway for one resource type. Reads
// are filtered to the actor's tenant and writes are stamped with it, so
// handlers built on a Store cannot touch another tenant's rows no matter
// what the request payload claims.
type Store[T any, P interface {
	*T
	Owned
}] struct {
	db *gorm.DB
}

func NewStore[T any, P interface {
	*T
	Owned
}](db *gorm.DB) *Store[T, P] {
	return &Store[T, P]{db: db}
}

// List returns the actor's tenant's rows. A tenant-less actor gets an
// empty slice, never an error: no affiliation degrades to "nothing
// visible", not a fault.
func (s *Store[T, P]) List(ctx context.Context, actor *Actor) ([]T, error) {
	tenant, ok := actor.Tenant()
	if !ok {
		return []T{}, nil
	}
	rows := []T{}
	if err := s.db.WithContext(ctx).Where("tenant_id = ?", tenant).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Get returns one row within the actor's tenant scope. An id that exists
// under a different tenant is indistinguishable from a nonexistent one.
func (s *Store[T, P]) Get(ctx context.Context, actor *Actor, id uuid.UUID) (P, error) {
	var zero P
	tenant, ok := actor.Tenant()
	if !ok {
		return zero, models.ErrNotFound
	}
	var row T
	err := s.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenant, id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return zero, models.ErrNotFound
	}
	if err != nil {
		return zero, err
	}
	return &row, nil
}

// Create stamps the actor's tenant onto the row, overwriting any tenant
// value the payload carried, and inserts it. Uniqueness is enforced by
// the database's per-tenant unique indexes, so two concurrent creates
// with the same code yield one success and one ErrDuplicateKey.
func (s *Store[T, P]) Create(ctx context.Context, actor *Actor, row P) error {
	tenant, ok := actor.Tenant()
	if !ok {
		return models.ErrNoTenantAffiliation
	}
	row.SetTenant(tenant)
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrDuplicateKey
		}
		return err
	}
	return nil
}

// Update fetches the row within tenant scope, applies the mutation and
// persists it. The tenant stamp is reasserted after apply so a mutation
// can never move a row across tenants.
func (s *Store[T, P]) Update(ctx context.Context, actor *Actor, id uuid.UUID, apply func(P) error) (P, error) {
	var zero P
	row, err := s.Get(ctx, actor, id)
	if err != nil {
		return zero, err
	}
	if err := apply(row); err != nil {
		return zero, err
	}
	// Reassert identity and ownership: a mutation can neither move the
	// row across tenants nor retarget it at a different primary key.
	tenant, _ := actor.Tenant()
	row.SetTenant(tenant)
	row.SetKey(id)
	if err := s.db.WithContext(ctx).Save(row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return zero, models.ErrDuplicateKey
		}
		return zero, err
	}
	return row, nil
}

// Delete removes one row within tenant scope; cross-tenant ids report
// ErrNotFound exactly like nonexistent ones.
func (s *Store[T, P]) Delete(ctx context.Context, actor *Actor, id uuid.UUID) error {
	tenant, ok := actor.Tenant()
	if !ok {
		return models.ErrNotFound
	}
	var row T
	res := s.db.WithContext(ctx).Where("tenant_id = ? AND id = ?", tenant, id).Delete(&row)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}
