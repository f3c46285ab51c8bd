package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"assetbase/internal/auth"
	"assetbase/internal/rbac"
)

// Login authenticates credentials and returns a token pair. The token
// embeds tenant and role names as resolved now; they do not track later
// role edits until the token is reissued.
func Login(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Username string `json:"username" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, err)
			return
		}

		identity, pair, err := svc.Authenticate(c.Request.Context(), in.Username, in.Password)
		if err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"access":  pair.AccessToken,
			"refresh": pair.RefreshToken,
			"user": gin.H{
				"username":  identity.Username,
				"full_name": identity.FullName(),
				"email":     identity.Email,
			},
		})
	}
}

// Refresh exchanges a refresh token for a fresh pair with re-resolved
// tenant and role claims.
func Refresh(svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Refresh string `json:"refresh" binding:"required"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, err)
			return
		}
		pair, err := svc.Refresh(c.Request.Context(), in.Refresh)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, pair)
	}
}

// Me returns the resolved actor: identity plus tenant affiliation.
func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := auth.CurrentActor(c)
		body := gin.H{
			"username":     actor.Identity.Username,
			"full_name":    actor.Identity.FullName(),
			"email":        actor.Identity.Email,
			"is_superuser": actor.Identity.IsSuperuser,
			"tenant":       nil,
		}
		if actor.Employee != nil && actor.Employee.Tenant != nil {
			body["tenant"] = gin.H{
				"id":   actor.Employee.Tenant.ID,
				"name": actor.Employee.Tenant.Name,
			}
		}
		c.JSON(http.StatusOK, body)
	}
}

// MyPermissions returns the actor's effective permission set straight
// from the store, bypassing the token's cached role names.
func MyPermissions(checker *rbac.Checker) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := auth.CurrentActor(c)
		perms, err := checker.Effective(c.Request.Context(), actor)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"permissions":  perms,
			"is_superuser": actor.Superuser(),
		})
	}
}
