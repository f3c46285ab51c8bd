package rbac

import (
	"context"

	"gorm.io/gorm"

	"assetbase/internal/tenancy"
)

// Checker computes an actor's effective permission set by joining
// employee roles to the catalog. Nothing is cached across requests:
// every check re-resolves from the store so role edits apply to the
// next request, at the cost of a query per guarded mutation.
type Checker struct {
	db *gorm.DB
}

func NewChecker(db *gorm.DB) *Checker {
	return &Checker{db: db}
}

// Can reports whether the actor holds the named permission. The
// superuser flag implicitly satisfies every check; an actor without an
// employee record holds nothing.
func (c *Checker) Can(ctx context.Context, actor *tenancy.Actor, permission string) (bool, error) {
	if actor.Superuser() {
		return true, nil
	}
	if actor == nil || actor.Employee == nil {
		return false, nil
	}
	// Joining through roles keeps an orphaned join row from granting.
	var count int64
	err := c.db.WithContext(ctx).
		Table("employee_roles er").
		Joins("JOIN roles r ON r.id = er.role_id").
		Joins("JOIN role_permissions rp ON rp.role_id = r.id").
		Joins("JOIN permissions p ON p.id = rp.permission_id").
		Where("er.employee_id = ? AND p.name = ?", actor.Employee.ID, permission).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Effective returns the union of permission names across all of the
// actor's roles, fresh from the store. Clients use this when the
// role names baked into their token may be stale.
func (c *Checker) Effective(ctx context.Context, actor *tenancy.Actor) ([]string, error) {
	if actor == nil || actor.Employee == nil {
		return []string{}, nil
	}
	names := []string{}
	err := c.db.WithContext(ctx).
		Table("employee_roles er").
		Joins("JOIN roles r ON r.id = er.role_id").
		Joins("JOIN role_permissions rp ON rp.role_id = r.id").
		Joins("JOIN permissions p ON p.id = rp.permission_id").
		Where("er.employee_id = ?", actor.Employee.ID).
		Distinct().
		Order("p.name ASC").
		Pluck("p.name", &names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
