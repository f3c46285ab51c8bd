package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"assetbase/internal/auth"
	"assetbase/internal/rbac"
)

// ListRoles returns the actor's tenant's roles with their permissions.
func ListRoles(roles *rbac.Roles) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := roles.List(c.Request.Context(), auth.CurrentActor(c))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": out})
	}
}

// CreateRole makes a tenant-scoped role from catalog permission ids.
func CreateRole(roles *rbac.Roles) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Name          string      `json:"name" binding:"required"`
			PermissionIDs []uuid.UUID `json:"permission_ids"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, err)
			return
		}
		role, err := roles.Create(c.Request.Context(), auth.CurrentActor(c), in.Name, in.PermissionIDs)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, role)
	}
}

// AddRolePermissions attaches catalog permissions to a role;
// re-attaching a held one is a no-op.
func AddRolePermissions(roles *rbac.Roles) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			badRequest(c, err)
			return
		}
		var in struct {
			PermissionIDs []uuid.UUID `json:"permission_ids" binding:"required"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, err)
			return
		}
		role, err := roles.AddPermissions(c.Request.Context(), auth.CurrentActor(c), roleID, in.PermissionIDs)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, role)
	}
}

// RemoveRolePermission detaches one permission from a role.
func RemoveRolePermission(roles *rbac.Roles) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			badRequest(c, err)
			return
		}
		permID, err := uuid.Parse(c.Param("permission_id"))
		if err != nil {
			badRequest(c, err)
			return
		}
		role, err := roles.RemovePermission(c.Request.Context(), auth.CurrentActor(c), roleID, permID)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, role)
	}
}

// DeleteRole removes a role within the actor's tenant.
func DeleteRole(roles *rbac.Roles) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			badRequest(c, err)
			return
		}
		if err := roles.Delete(c.Request.Context(), auth.CurrentActor(c), id); err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// AssignEmployeeRoles replaces an employee's role set. Roles from
// another tenant are rejected.
func AssignEmployeeRoles(roles *rbac.Roles) gin.HandlerFunc {
	return func(c *gin.Context) {
		employeeID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			badRequest(c, err)
			return
		}
		var in struct {
			RoleIDs []uuid.UUID `json:"role_ids"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, err)
			return
		}
		if err := roles.Assign(c.Request.Context(), auth.CurrentActor(c), employeeID, in.RoleIDs); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"assigned": len(in.RoleIDs)})
	}
}
