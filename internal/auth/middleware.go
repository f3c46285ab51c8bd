package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"assetbase/internal/models"
	"assetbase/internal/tenancy"
)

const actorKey = "actor"

// Middleware validates the bearer token, checks the identity is still
// active, and resolves the actor's employee record once for the whole
// request. Downstream code reads the result with CurrentActor.
func Middleware(svc *Service, db *gorm.DB, directory *tenancy.Directory) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.GetHeader("Authorization")
		if tokenStr == "" {
			if cookie, err := c.Cookie("token"); err == nil {
				tokenStr = "Bearer " + cookie
			}
		}
		if tokenStr == "" {
			abortUnauthenticated(c)
			return
		}
		tokenStr = strings.TrimSpace(strings.TrimPrefix(tokenStr, "Bearer "))

		claims, err := svc.Validate(tokenStr)
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		identityID, err := uuid.Parse(claims.Subject)
		if err != nil {
			abortUnauthenticated(c)
			return
		}

		var identity models.Identity
		if err := db.WithContext(c.Request.Context()).First(&identity, "id = ?", identityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				abortUnauthenticated(c)
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if !identity.Active {
			abortUnauthenticated(c)
			return
		}

		emp, err := directory.Resolve(c.Request.Context(), identity.ID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}

		c.Set(actorKey, &tenancy.Actor{Identity: &identity, Employee: emp})
		c.Next()
	}
}

// CurrentActor returns the resolved actor for the request, or nil on
// routes outside the auth middleware.
func CurrentActor(c *gin.Context) *tenancy.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(*tenancy.Actor); ok {
			return actor
		}
	}
	return nil
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": models.ErrUnauthenticated.Message,
		"code":  models.ErrUnauthenticated.Code,
	})
}
