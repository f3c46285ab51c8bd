package models

import "fmt"

// DomainError is a per-request outcome, never fatal to the process.
// Code is stable for clients; Field names the offending input for
// validation-class errors so callers can retry with corrected input.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *DomainError) Error() string { return e.Message }

// NewDomainError creates a new domain error.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// WithField returns a copy of the error annotated with the input field.
func (e *DomainError) WithField(field string) *DomainError {
	return &DomainError{Code: e.Code, Message: e.Message, Field: field}
}

// Is makes errors.Is match on the stable code so annotated copies still
// compare equal to the sentinel.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

var (
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "invalid input provided")
	ErrUnauthenticated     = NewDomainError("UNAUTHENTICATED", "authentication required")
	ErrInvalidCredentials  = NewDomainError("INVALID_CREDENTIALS", "invalid username or password")
	ErrInvalidToken        = NewDomainError("INVALID_TOKEN", "token is expired or invalid")
	ErrNotFound            = NewDomainError("NOT_FOUND", "resource not found")
	ErrNoTenantAffiliation = NewDomainError("NO_TENANT_AFFILIATION", "actor is not affiliated with a tenant")
	ErrDuplicateKey        = NewDomainError("DUPLICATE_KEY", "a record with the same unique value already exists")
	ErrDuplicateRoleName   = NewDomainError("DUPLICATE_ROLE_NAME", "a role with this name already exists in the tenant")
	ErrUnknownPermission   = NewDomainError("UNKNOWN_PERMISSION", "permission is not part of the catalog")
	ErrSuperuserOnly       = NewDomainError("SUPERUSER_ONLY", "operation is restricted to superusers")
	ErrCrossTenantRole     = NewDomainError("CROSS_TENANT_ROLE", "role belongs to a different tenant")
)

// MissingPermissionError is the deny outcome of a permission check. It
// always carries the specific permission that was required; clients rely
// on the name, a generic denial is not acceptable.
type MissingPermissionError struct {
	Permission string
}

func (e *MissingPermissionError) Error() string {
	return fmt.Sprintf("missing required permission %q", e.Permission)
}
