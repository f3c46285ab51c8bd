package onboarding

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"assetbase/internal/models"
	"assetbase/internal/rbac"
)

// Input is everything a new tenant registration needs: the company plus
// its first employee's login.
type Input struct {
	TenantName string `json:"tenant_name" binding:"required"`
	NIT        string `json:"nit" binding:"required"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`

	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	UserEmail string `json:"user_email" binding:"required,email"`
}

// Result is the atomically created unit.
type Result struct {
	Tenant   *models.Tenant
	Identity *models.Identity
	Employee *models.Employee
}

// Service registers tenants.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Register creates the tenant, its first identity and employee, and an
// initial Admin role holding the full catalog, in one transaction.
// Tenant name, NIT and username uniqueness are checked
// case-insensitively; violations are field-level validation errors.
func (s *Service) Register(ctx context.Context, in Input) (*Result, error) {
	var result *Result

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if taken, err := exists(tx, &models.Tenant{}, "name", in.TenantName); err != nil {
			return err
		} else if taken {
			return models.ErrDuplicateKey.WithField("tenant_name")
		}
		if taken, err := exists(tx, &models.Tenant{}, "nit", in.NIT); err != nil {
			return err
		} else if taken {
			return models.ErrDuplicateKey.WithField("nit")
		}
		if taken, err := exists(tx, &models.Identity{}, "username", in.Username); err != nil {
			return err
		} else if taken {
			return models.ErrDuplicateKey.WithField("username")
		}

		tenant := &models.Tenant{
			Name:    strings.TrimSpace(in.TenantName),
			NIT:     strings.TrimSpace(in.NIT),
			Address: in.Address,
			Phone:   in.Phone,
			Email:   in.Email,
		}
		if err := tx.Create(tenant).Error; err != nil {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		identity := &models.Identity{
			Username:     strings.TrimSpace(in.Username),
			FirstName:    in.FirstName,
			LastName:     in.LastName,
			Email:        in.UserEmail,
			PasswordHash: string(hash),
			Active:       true,
		}
		if err := tx.Create(identity).Error; err != nil {
			return err
		}

		employee := &models.Employee{
			IdentityID:      identity.ID,
			TenantID:        tenant.ID,
			PaternalSurname: in.LastName,
		}
		if err := tx.Create(employee).Error; err != nil {
			return err
		}

		// First employee administers the tenant: give them a role with
		// the whole catalog.
		var perms []models.Permission
		if err := tx.Find(&perms).Error; err != nil {
			return err
		}
		adminRole := &models.Role{TenantID: tenant.ID, Name: "Admin", Permissions: perms}
		if err := tx.Create(adminRole).Error; err != nil {
			return err
		}
		if err := tx.Model(employee).Association("Roles").Append(adminRole); err != nil {
			return err
		}

		result = &Result{Tenant: tenant, Identity: identity, Employee: employee}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SeedCatalog is run before any registration so the initial Admin role
// has permissions to bundle.
func (s *Service) SeedCatalog(ctx context.Context) error {
	return rbac.SeedCatalog(ctx, s.db)
}

func exists(tx *gorm.DB, model any, column, value string) (bool, error) {
	var count int64
	err := tx.Model(model).
		Where("LOWER("+column+") = ?", strings.ToLower(strings.TrimSpace(value))).
		Count(&count).Error
	return count > 0, err
}
