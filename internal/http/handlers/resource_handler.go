package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"assetbase/internal/auth"
	"assetbase/internal/models"
	"assetbase/internal/tenancy"
)

// Generic CRUD over a tenant-scoped store. The simple tenant-owned
// resources (departments, positions, categories, statuses, locations,
// vendors) share these handlers; anything with extra validation gets a
// dedicated file.

func ListResource[T any, P interface {
	*T
	tenancy.Owned
}](store *tenancy.Store[T, P]) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := store.List(c.Request.Context(), auth.CurrentActor(c))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": rows})
	}
}

func GetResource[T any, P interface {
	*T
	tenancy.Owned
}](store *tenancy.Store[T, P]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			badRequest(c, err)
			return
		}
		row, err := store.Get(c.Request.Context(), auth.CurrentActor(c), id)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, row)
	}
}

func CreateResource[T any, P interface {
	*T
	tenancy.Owned
}](store *tenancy.Store[T, P]) gin.HandlerFunc {
	return func(c *gin.Context) {
		var row T
		if err := c.ShouldBindJSON(&row); err != nil {
			badRequest(c, err)
			return
		}
		// The store stamps the actor's tenant; any tenant_id in the
		// payload is discarded there.
		if err := store.Create(c.Request.Context(), auth.CurrentActor(c), &row); err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, &row)
	}
}

func UpdateResource[T any, P interface {
	*T
	tenancy.Owned
}](store *tenancy.Store[T, P]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			badRequest(c, err)
			return
		}
		row, err := store.Update(c.Request.Context(), auth.CurrentActor(c), id, func(row P) error {
			if err := c.ShouldBindJSON(row); err != nil {
				return models.NewDomainError(models.ErrInvalidInput.Code, err.Error())
			}
			return nil
		})
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, row)
	}
}

func DeleteResource[T any, P interface {
	*T
	tenancy.Owned
}](store *tenancy.Store[T, P]) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			badRequest(c, err)
			return
		}
		if err := store.Delete(c.Request.Context(), auth.CurrentActor(c), id); err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
