package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"assetbase/internal/auth"
	"assetbase/internal/models"
	"assetbase/internal/onboarding"
)

// RegisterTenant is the public onboarding endpoint: new tenant, first
// identity and employee in one atomic unit.
func RegisterTenant(svc *onboarding.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in onboarding.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, err)
			return
		}

		res, err := svc.Register(c.Request.Context(), in)
		if err != nil {
			fail(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"tenant": res.Tenant,
			"user": gin.H{
				"username": res.Identity.Username,
				"email":    res.Identity.Email,
			},
		})
	}
}

// ListTenants is a system-operator view; the router gates it behind the
// superuser check.
func ListTenants(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenants := []models.Tenant{}
		if err := db.WithContext(c.Request.Context()).Order("name ASC").Find(&tenants).Error; err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": tenants})
	}
}

// DeleteTenant removes a tenant and everything it owns in the main
// store, in one transaction. Audit history lives in the separate audit
// store and survives; this handler never touches it.
func DeleteTenant(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := auth.CurrentActor(c)
		if !actor.Superuser() {
			fail(c, models.ErrSuperuserOnly)
			return
		}
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			badRequest(c, err)
			return
		}

		err = db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
			var tenant models.Tenant
			if err := tx.First(&tenant, "id = ?", id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return models.ErrNotFound
				}
				return err
			}

			// Join rows do not carry tenant_id; clear them through the
			// tenant's roles before the roles themselves go.
			if err := tx.Exec("DELETE FROM employee_roles WHERE role_id IN (SELECT id FROM roles WHERE tenant_id = ?)", id).Error; err != nil {
				return err
			}
			if err := tx.Exec("DELETE FROM role_permissions WHERE role_id IN (SELECT id FROM roles WHERE tenant_id = ?)", id).Error; err != nil {
				return err
			}

			// Owned rows first, dependents before their referents.
			owned := []any{
				&models.FixedAsset{},
				&models.Budget{},
				&models.Employee{},
				&models.Role{},
				&models.AssetCategory{},
				&models.AssetStatus{},
				&models.Location{},
				&models.Vendor{},
				&models.Position{},
				&models.Department{},
			}
			for _, model := range owned {
				if err := tx.Where("tenant_id = ?", id).Delete(model).Error; err != nil {
					return err
				}
			}
			return tx.Delete(&tenant).Error
		})
		if err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
