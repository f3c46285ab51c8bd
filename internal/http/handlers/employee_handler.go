package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"assetbase/internal/auth"
	"assetbase/internal/models"
)

// ListEmployees returns the actor's tenant's employees with their
// identity, org references and roles.
func ListEmployees(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := auth.CurrentActor(c)
		tenant, ok := actor.Tenant()
		if !ok {
			c.JSON(http.StatusOK, gin.H{"results": []models.Employee{}})
			return
		}
		employees := []models.Employee{}
		err := db.WithContext(c.Request.Context()).
			Preload("Identity").
			Preload("Position").
			Preload("Department").
			Preload("Roles").
			Where("tenant_id = ?", tenant).
			Find(&employees).Error
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": employees})
	}
}

type employeeInput struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`

	DocumentID      string          `json:"document_id" binding:"required"`
	PaternalSurname string          `json:"paternal_surname" binding:"required"`
	MaternalSurname string          `json:"maternal_surname"`
	Address         string          `json:"address"`
	Phone           string          `json:"phone"`
	Salary          decimal.Decimal `json:"salary"`
	PositionID      *uuid.UUID      `json:"position_id"`
	DepartmentID    *uuid.UUID      `json:"department_id"`
}

// CreateEmployee creates the login identity and the employee profile in
// one transaction, stamped with the actor's tenant.
func CreateEmployee(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := auth.CurrentActor(c)
		tenant, ok := actor.Tenant()
		if !ok {
			fail(c, models.ErrNoTenantAffiliation)
			return
		}

		var in employeeInput
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, err)
			return
		}

		var employee *models.Employee
		err := db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
			var taken int64
			err := tx.Model(&models.Identity{}).
				Where("LOWER(username) = ?", strings.ToLower(strings.TrimSpace(in.Username))).
				Count(&taken).Error
			if err != nil {
				return err
			}
			if taken > 0 {
				return models.ErrDuplicateKey.WithField("username")
			}

			if err := validateOrgRefs(tx, tenant, in.PositionID, in.DepartmentID); err != nil {
				return err
			}

			hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			identity := &models.Identity{
				Username:     strings.TrimSpace(in.Username),
				FirstName:    in.FirstName,
				LastName:     in.PaternalSurname,
				Email:        in.Email,
				PasswordHash: string(hash),
				Active:       true,
			}
			if err := tx.Create(identity).Error; err != nil {
				return err
			}

			employee = &models.Employee{
				IdentityID:      identity.ID,
				TenantID:        tenant,
				DocumentID:      in.DocumentID,
				PaternalSurname: in.PaternalSurname,
				MaternalSurname: in.MaternalSurname,
				Address:         in.Address,
				Phone:           in.Phone,
				Salary:          in.Salary,
				PositionID:      in.PositionID,
				DepartmentID:    in.DepartmentID,
			}
			if err := tx.Create(employee).Error; err != nil {
				return err
			}
			employee.Identity = identity
			return nil
		})
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, employee)
	}
}

// UpdateEmployee edits the profile fields; login identity and tenant
// are not editable through this endpoint.
func UpdateEmployee(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := auth.CurrentActor(c)
		tenant, ok := actor.Tenant()
		if !ok {
			fail(c, models.ErrNotFound)
			return
		}
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			badRequest(c, err)
			return
		}

		var in struct {
			DocumentID      string          `json:"document_id" binding:"required"`
			PaternalSurname string          `json:"paternal_surname" binding:"required"`
			MaternalSurname string          `json:"maternal_surname"`
			Address         string          `json:"address"`
			Phone           string          `json:"phone"`
			Salary          decimal.Decimal `json:"salary"`
			PositionID      *uuid.UUID      `json:"position_id"`
			DepartmentID    *uuid.UUID      `json:"department_id"`
		}
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, err)
			return
		}

		var employee models.Employee
		err = db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
			err := tx.Where("tenant_id = ? AND id = ?", tenant, id).First(&employee).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			if err != nil {
				return err
			}
			if err := validateOrgRefs(tx, tenant, in.PositionID, in.DepartmentID); err != nil {
				return err
			}

			employee.DocumentID = in.DocumentID
			employee.PaternalSurname = in.PaternalSurname
			employee.MaternalSurname = in.MaternalSurname
			employee.Address = in.Address
			employee.Phone = in.Phone
			employee.Salary = in.Salary
			employee.PositionID = in.PositionID
			employee.DepartmentID = in.DepartmentID
			return tx.Save(&employee).Error
		})
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, employee)
	}
}

// DeleteEmployee removes the profile and deactivates its login so the
// identity can no longer authenticate.
func DeleteEmployee(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := auth.CurrentActor(c)
		tenant, ok := actor.Tenant()
		if !ok {
			fail(c, models.ErrNotFound)
			return
		}
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			badRequest(c, err)
			return
		}

		err = db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
			var employee models.Employee
			err := tx.Where("tenant_id = ? AND id = ?", tenant, id).First(&employee).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrNotFound
			}
			if err != nil {
				return err
			}
			if err := tx.Model(&employee).Association("Roles").Clear(); err != nil {
				return err
			}
			if err := tx.Delete(&employee).Error; err != nil {
				return err
			}
			return tx.Model(&models.Identity{}).
				Where("id = ?", employee.IdentityID).
				Update("active", false).Error
		})
		if err != nil {
			fail(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// validateOrgRefs checks optional position/department references stay
// inside the tenant; a foreign reference reads as nonexistent.
func validateOrgRefs(tx *gorm.DB, tenant uuid.UUID, positionID, departmentID *uuid.UUID) error {
	if positionID != nil {
		var n int64
		if err := tx.Model(&models.Position{}).Where("tenant_id = ? AND id = ?", tenant, *positionID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return models.ErrNotFound.WithField("position_id")
		}
	}
	if departmentID != nil {
		var n int64
		if err := tx.Model(&models.Department{}).Where("tenant_id = ? AND id = ?", tenant, *departmentID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return models.ErrNotFound.WithField("department_id")
		}
	}
	return nil
}
