package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"assetbase/internal/models"
	"assetbase/internal/rbac"
)

// The permission catalog is global and tenant-independent. Reading it
// needs only authentication; the router gates every mutation below
// behind the superuser check, never a named permission.

// ListPermissions returns the catalog ordered by name.
func ListPermissions(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		perms, err := rbac.ListCatalog(c.Request.Context(), db)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": perms})
	}
}

// CreatePermission adds a catalog entry.
func CreatePermission(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in struct {
			Name        string `json:"name" binding:"required"`
			Description string `json:"description" binding:"required"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, err)
			return
		}

		perm := models.Permission{Name: in.Name, Description: in.Description}
		if err := db.WithContext(c.Request.Context()).Create(&perm).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				fail(c, models.ErrDuplicateKey.WithField("name"))
				return
			}
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, perm)
	}
}

// UpdatePermission edits a catalog entry.
func UpdatePermission(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			badRequest(c, err)
			return
		}
		var in struct {
			Name        string `json:"name" binding:"required"`
			Description string `json:"description" binding:"required"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, err)
			return
		}

		var perm models.Permission
		if err := db.WithContext(c.Request.Context()).First(&perm, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				fail(c, models.ErrNotFound)
				return
			}
			fail(c, err)
			return
		}
		perm.Name = in.Name
		perm.Description = in.Description
		if err := db.WithContext(c.Request.Context()).Save(&perm).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				fail(c, models.ErrDuplicateKey.WithField("name"))
				return
			}
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, perm)
	}
}

// DeletePermission removes a catalog entry and its role bindings.
func DeletePermission(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			badRequest(c, err)
			return
		}
		err = db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
			if err := tx.Exec("DELETE FROM role_permissions WHERE permission_id = ?", id).Error; err != nil {
				return err
			}
			res := tx.Delete(&models.Permission{}, "id = ?", id)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return models.ErrNotFound
			}
			return nil
		})
		if err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
