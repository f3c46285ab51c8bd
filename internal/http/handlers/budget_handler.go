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

// ListBudgets returns the tenant's budgets with departments preloaded.
func ListBudgets(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := auth.CurrentActor(c)
		tenant, ok := actor.Tenant()
		if !ok {
			c.JSON(http.StatusOK, gin.H{"results": []models.Budget{}})
			return
		}
		budgets := []models.Budget{}
		err := db.WithContext(c.Request.Context()).
			Preload("Department").
			Where("tenant_id = ?", tenant).
			Find(&budgets).Error
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": budgets})
	}
}

// CreateBudget validates the department reference and inserts through
// the scoped store.
func CreateBudget(db *gorm.DB, store *tenancy.Store[models.Budget, *models.Budget]) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := auth.CurrentActor(c)

		var budget models.Budget
		if err := c.ShouldBindJSON(&budget); err != nil {
			badRequest(c, err)
			return
		}

		tenant, ok := actor.Tenant()
		if !ok {
			fail(c, models.ErrNoTenantAffiliation)
			return
		}
		if err := validateBudgetRefs(db, tenant, &budget); err != nil {
			fail(c, err)
			return
		}
		if err := store.Create(c.Request.Context(), actor, &budget); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, &budget)
	}
}

// UpdateBudget rebinds onto the scoped row and revalidates the
// department reference.
func UpdateBudget(db *gorm.DB, store *tenancy.Store[models.Budget, *models.Budget]) gin.HandlerFunc {
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

		budget, err := store.Update(c.Request.Context(), actor, id, func(budget *models.Budget) error {
			if err := c.ShouldBindJSON(budget); err != nil {
				return models.NewDomainError(models.ErrInvalidInput.Code, err.Error())
			}
			return validateBudgetRefs(db, tenant, budget)
		})
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, budget)
	}
}

func validateBudgetRefs(db *gorm.DB, tenant uuid.UUID, budget *models.Budget) error {
	var n int64
	if err := db.Model(&models.Department{}).Where("tenant_id = ? AND id = ?", tenant, budget.DepartmentID).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return models.ErrNotFound.WithField("department_id")
	}
	return nil
}
