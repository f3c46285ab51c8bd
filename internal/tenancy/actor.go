package tenancy

import (
	"github.com/google/uuid"

	"assetbase/internal/models"
)

// Actor is the resolved caller of a request: the authenticated identity
// plus its employee record, looked up once per request. Employee is nil
// for system-level actors with no tenant affiliation.
type Actor struct {
	Identity *models.Identity
	Employee *models.Employee
}

// Authenticated reports whether the request carried a valid identity.
func (a *Actor) Authenticated() bool {
	return a != nil && a.Identity != nil
}

// Superuser reports whether the identity carries the superuser flag.
func (a *Actor) Superuser() bool {
	return a.Authenticated() && a.Identity.IsSuperuser
}

// Tenant returns the actor's tenant id when affiliated.
func (a *Actor) Tenant() (uuid.UUID, bool) {
	if a == nil || a.Employee == nil {
		return uuid.Nil, false
	}
	return a.Employee.TenantID, true
}
