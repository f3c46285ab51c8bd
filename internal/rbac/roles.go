package rbac

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"assetbase/internal/models"
	"assetbase/internal/tenancy"
)

// Roles manages tenant-scoped roles and their catalog bindings.
type Roles struct {
	db    *gorm.DB
	store *tenancy.Store[models.Role, *models.Role]
}

func NewRoles(db *gorm.DB) *Roles {
	return &Roles{db: db, store: tenancy.NewStore[models.Role](db)}
}

// Create makes a role in the actor's tenant holding the given catalog
// permissions. Fails with ErrDuplicateRoleName when (tenant, name)
// exists and ErrUnknownPermission when any id is outside the catalog.
func (r *Roles) Create(ctx context.Context, actor *tenancy.Actor, name string, permissionIDs []uuid.UUID) (*models.Role, error) {
	perms, err := r.catalogSubset(ctx, permissionIDs)
	if err != nil {
		return nil, err
	}

	role := &models.Role{Name: name}
	if err := r.store.Create(ctx, actor, role); err != nil {
		if errors.Is(err, models.ErrDuplicateKey) {
			return nil, models.ErrDuplicateRoleName.WithField("name")
		}
		return nil, err
	}
	if len(perms) > 0 {
		if err := r.db.WithContext(ctx).Model(role).Association("Permissions").Append(&perms); err != nil {
			return nil, err
		}
	}
	role.Permissions = nil
	return r.Get(ctx, actor, role.ID)
}

// Get returns one role with its permissions, tenant-scoped.
func (r *Roles) Get(ctx context.Context, actor *tenancy.Actor, id uuid.UUID) (*models.Role, error) {
	tenant, ok := actor.Tenant()
	if !ok {
		return nil, models.ErrNotFound
	}
	var role models.Role
	err := r.db.WithContext(ctx).
		Preload("Permissions").
		Where("tenant_id = ? AND id = ?", tenant, id).
		First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

// List returns the actor's tenant's roles with permissions preloaded.
func (r *Roles) List(ctx context.Context, actor *tenancy.Actor) ([]models.Role, error) {
	tenant, ok := actor.Tenant()
	if !ok {
		return []models.Role{}, nil
	}
	roles := []models.Role{}
	err := r.db.WithContext(ctx).
		Preload("Permissions").
		Where("tenant_id = ?", tenant).
		Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

// AddPermissions attaches catalog permissions to a role. Adding one the
// role already holds is a no-op.
func (r *Roles) AddPermissions(ctx context.Context, actor *tenancy.Actor, roleID uuid.UUID, permissionIDs []uuid.UUID) (*models.Role, error) {
	role, err := r.Get(ctx, actor, roleID)
	if err != nil {
		return nil, err
	}
	perms, err := r.catalogSubset(ctx, permissionIDs)
	if err != nil {
		return nil, err
	}
	// Association Append inserts join rows with ON CONFLICT DO NOTHING,
	// so re-adding a held permission is a no-op.
	if len(perms) > 0 {
		if err := r.db.WithContext(ctx).Model(role).Association("Permissions").Append(&perms); err != nil {
			return nil, err
		}
	}
	return r.Get(ctx, actor, roleID)
}

// RemovePermission detaches a permission from a role.
func (r *Roles) RemovePermission(ctx context.Context, actor *tenancy.Actor, roleID, permissionID uuid.UUID) (*models.Role, error) {
	role, err := r.Get(ctx, actor, roleID)
	if err != nil {
		return nil, err
	}
	err = r.db.WithContext(ctx).
		Exec("DELETE FROM role_permissions WHERE role_id = ? AND permission_id = ?", role.ID, permissionID).Error
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, actor, roleID)
}

// Delete removes a role within the actor's tenant, revoking it from
// every holder and dropping its permission bindings in the same
// transaction so a deleted role can never keep granting.
func (r *Roles) Delete(ctx context.Context, actor *tenancy.Actor, id uuid.UUID) error {
	role, err := r.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM employee_roles WHERE role_id = ?", role.ID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM role_permissions WHERE role_id = ?", role.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Role{}, "id = ?", role.ID).Error
	})
}

// Assign replaces an employee's role set. Every role must belong to the
// employee's own tenant: holding a role across tenants is never valid,
// so a foreign role id is rejected, not silently skipped.
func (r *Roles) Assign(ctx context.Context, actor *tenancy.Actor, employeeID uuid.UUID, roleIDs []uuid.UUID) error {
	tenant, ok := actor.Tenant()
	if !ok {
		return models.ErrNotFound
	}

	var emp models.Employee
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenant, employeeID).
		First(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.ErrNotFound
	}
	if err != nil {
		return err
	}

	var roles []models.Role
	if len(roleIDs) > 0 {
		if err := r.db.WithContext(ctx).Where("id IN ?", roleIDs).Find(&roles).Error; err != nil {
			return err
		}
		if len(roles) != len(dedupe(roleIDs)) {
			return models.ErrNotFound
		}
		for _, role := range roles {
			if role.TenantID != emp.TenantID {
				return models.ErrCrossTenantRole
			}
		}
	}

	return r.db.WithContext(ctx).Model(&emp).Association("Roles").Replace(&roles)
}

// catalogSubset loads the referenced permissions, failing when any id
// is not in the catalog.
func (r *Roles) catalogSubset(ctx context.Context, ids []uuid.UUID) ([]models.Permission, error) {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return nil, nil
	}
	var perms []models.Permission
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&perms).Error; err != nil {
		return nil, err
	}
	if len(perms) != len(ids) {
		return nil, models.ErrUnknownPermission.WithField("permission_ids")
	}
	return perms, nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
