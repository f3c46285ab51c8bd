package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"assetbase/internal/auth"
	"assetbase/internal/models"
	"assetbase/internal/tenancy"
)

// Fixed assets reference category, status, location and vendor rows
// that must belong to the same tenant; a reference into another tenant
// reads as nonexistent. Everything else rides on the generic store.

// ListAssets returns the tenant's assets with references preloaded.
func ListAssets(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := auth.CurrentActor(c)
		tenant, ok := actor.Tenant()
		if !ok {
			c.JSON(http.StatusOK, gin.H{"results": []models.FixedAsset{}})
			return
		}
		assets := []models.FixedAsset{}
		err := db.WithContext(c.Request.Context()).
			Preload("Category").
			Preload("Status").
			Preload("Location").
			Preload("Vendor").
			Where("tenant_id = ?", tenant).
			Find(&assets).Error
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": assets})
	}
}

// CreateAsset validates the references and inserts through the scoped
// store, which stamps the tenant and reports per-tenant code conflicts.
func CreateAsset(db *gorm.DB, store *tenancy.Store[models.FixedAsset, *models.FixedAsset]) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := auth.CurrentActor(c)

		var asset models.FixedAsset
		if err := c.ShouldBindJSON(&asset); err != nil {
			badRequest(c, err)
			return
		}

		tenant, ok := actor.Tenant()
		if !ok {
			fail(c, models.ErrNoTenantAffiliation)
			return
		}
		if err := validateAssetRefs(db, tenant, &asset); err != nil {
			fail(c, err)
			return
		}
		if err := store.Create(c.Request.Context(), actor, &asset); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, &asset)
	}
}

// UpdateAsset rebinds the payload onto the scoped row and revalidates
// references.
func UpdateAsset(db *gorm.DB, store *tenancy.Store[models.FixedAsset, *models.FixedAsset]) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := auth.CurrentActor(c)
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			badRequest(c, err)
			return
		}
		tenant, ok := actor.Tenant()
		if !ok {
			fail(c, models.ErrNotFound)
			return
		}

		asset, err := store.Update(c.Request.Context(), actor, id, func(asset *models.FixedAsset) error {
			if err := c.ShouldBindJSON(asset); err != nil {
				return models.NewDomainError(models.ErrInvalidInput.Code, err.Error())
			}
			return validateAssetRefs(db, tenant, asset)
		})
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, asset)
	}
}

func validateAssetRefs(db *gorm.DB, tenant uuid.UUID, asset *models.FixedAsset) error {
	refs := []struct {
		model any
		id    *uuid.UUID
		field string
	}{
		{&models.AssetCategory{}, &asset.CategoryID, "category_id"},
		{&models.AssetStatus{}, &asset.StatusID, "status_id"},
		{&models.Location{}, &asset.LocationID, "location_id"},
		{&models.Vendor{}, asset.VendorID, "vendor_id"},
	}
	for _, ref := range refs {
		if ref.id == nil {
			continue
		}
		var n int64
		if err := db.Model(ref.model).Where("tenant_id = ? AND id = ?", tenant, *ref.id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return models.ErrNotFound.WithField(ref.field)
		}
	}
	return nil
}
