package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"assetbase/internal/models"
)

// statusFor maps the domain error taxonomy to HTTP statuses in one
// place. Validation-class errors are recoverable by the caller and keep
// their field detail; NOT_FOUND is identical for nonexistent and
// cross-tenant ids.
func statusFor(code string) int {
	switch code {
	case models.ErrUnauthenticated.Code, models.ErrInvalidCredentials.Code, models.ErrInvalidToken.Code:
		return http.StatusUnauthorized
	case models.ErrNoTenantAffiliation.Code, models.ErrSuperuserOnly.Code:
		return http.StatusForbidden
	case models.ErrNotFound.Code:
		return http.StatusNotFound
	case models.ErrDuplicateKey.Code, models.ErrDuplicateRoleName.Code:
		return http.StatusConflict
	case models.ErrUnknownPermission.Code, models.ErrCrossTenantRole.Code, models.ErrInvalidInput.Code:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	var missing *models.MissingPermissionError
	if errors.As(err, &missing) {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   missing.Error(),
			"code":    "MISSING_PERMISSION",
			"missing": missing.Permission,
		})
		return
	}

	var domain *models.DomainError
	if errors.As(err, &domain) {
		body := gin.H{"error": domain.Message, "code": domain.Code}
		if domain.Field != "" {
			body["field"] = domain.Field
		}
		c.JSON(statusFor(domain.Code), body)
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": "INVALID_INPUT"})
}
