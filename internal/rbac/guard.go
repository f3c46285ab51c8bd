package rbac

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"assetbase/internal/auth"
	"assetbase/internal/models"
	"assetbase/internal/tenancy"
)

// Guard decides allow/deny for an operation against a required
// permission. Policy is deliberately coarse: visibility is cheap,
// mutation is gated.
type Guard struct {
	checker *Checker
}

func NewGuard(checker *Checker) *Guard {
	return &Guard{checker: checker}
}

// Authorize applies the policy:
//  1. unauthenticated actors are denied outright;
//  2. read-only operations are allowed for any authenticated actor;
//  3. mutations with no declared permission are allowed; every
//     tenant-owned mutation route in this repo declares one, so this
//     branch only covers undeclared operation classes;
//  4. mutations with a declared permission require it in the actor's
//     effective set, superusers excepted.
func (g *Guard) Authorize(ctx context.Context, actor *tenancy.Actor, required string, mutation bool) error {
	if !actor.Authenticated() {
		return models.ErrUnauthenticated
	}
	if !mutation {
		return nil
	}
	if required == "" {
		return nil
	}
	ok, err := g.checker.Can(ctx, actor, required)
	if err != nil {
		return err
	}
	if !ok {
		return &models.MissingPermissionError{Permission: required}
	}
	return nil
}

// safeMethods are read-only; they bypass the named-permission check.
var safeMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodOptions: true,
}

// Require returns middleware that enforces the named permission on
// mutating requests routed through it.
func (g *Guard) Require(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := auth.CurrentActor(c)
		mutation := !safeMethods[c.Request.Method]
		if err := g.Authorize(c.Request.Context(), actor, permission, mutation); err != nil {
			abortDenied(c, err)
			return
		}
		c.Next()
	}
}

// SuperuserOnly admits only superuser actors, reads included; no named
// permission can satisfy it. Routes open to tenant users mount Require
// or nothing instead.
func (g *Guard) SuperuserOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := auth.CurrentActor(c)
		if !actor.Authenticated() {
			abortDenied(c, models.ErrUnauthenticated)
			return
		}
		if !actor.Superuser() {
			abortDenied(c, models.ErrSuperuserOnly)
			return
		}
		c.Next()
	}
}

func abortDenied(c *gin.Context, err error) {
	var missing *models.MissingPermissionError
	switch {
	case errors.As(err, &missing):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":   missing.Error(),
			"code":    "MISSING_PERMISSION",
			"missing": missing.Permission,
		})
	case errors.Is(err, models.ErrUnauthenticated):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": models.ErrUnauthenticated.Message,
			"code":  models.ErrUnauthenticated.Code,
		})
	case errors.Is(err, models.ErrSuperuserOnly):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": models.ErrSuperuserOnly.Message,
			"code":  models.ErrSuperuserOnly.Code,
		})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
