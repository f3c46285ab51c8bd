package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"assetbase/internal/config"
	"assetbase/internal/models"
	"assetbase/internal/tenancy"
)

// TokenType distinguishes access from refresh tokens.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims is the token payload. Tenant and role names are denormalized at
// issuance so consumers avoid a lookup per request; they go stale
// relative to role edits until the token is reissued, which is why the
// API also exposes a non-cached effective-permissions endpoint.
type Claims struct {
	jwt.RegisteredClaims
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	TenantID   *string   `json:"tenant_id"`
	TenantName *string   `json:"tenant_name"`
	Roles      []string  `json:"roles"`
	IsAdmin    bool      `json:"is_admin"`
	TokenType  TokenType `json:"token_type"`
}

// TokenPair is what a successful authentication returns.
type TokenPair struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}

// Service issues and validates bearer tokens.
type Service struct {
	db        *gorm.DB
	directory *tenancy.Directory
	cfg       config.JWTConfig
}

func NewService(db *gorm.DB, directory *tenancy.Directory, cfg config.JWTConfig) *Service {
	return &Service{db: db, directory: directory, cfg: cfg}
}

// Authenticate verifies credentials and issues a token pair. Username
// comparison is case-insensitive.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*models.Identity, *TokenPair, error) {
	var identity models.Identity
	err := s.db.WithContext(ctx).
		Where("LOWER(username) = ?", strings.ToLower(strings.TrimSpace(username))).
		First(&identity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, nil, err
	}
	if !identity.Active {
		return nil, nil, models.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)); err != nil {
		return nil, nil, models.ErrInvalidCredentials
	}

	pair, err := s.IssuePair(ctx, &identity)
	if err != nil {
		return nil, nil, err
	}
	return &identity, pair, nil
}

// IssuePair builds access and refresh tokens for an identity, resolving
// tenant and role names fresh from the store.
func (s *Service) IssuePair(ctx context.Context, identity *models.Identity) (*TokenPair, error) {
	emp, err := s.directory.Resolve(ctx, identity.ID)
	if err != nil {
		return nil, err
	}

	var tenantID, tenantName *string
	roleNames := []string{}
	if emp != nil {
		id := emp.TenantID.String()
		tenantID = &id
		if emp.Tenant != nil {
			tenantName = &emp.Tenant.Name
		}
		var roles []models.Role
		if err := s.db.WithContext(ctx).
			Joins("JOIN employee_roles er ON er.role_id = roles.id").
			Where("er.employee_id = ?", emp.ID).
			Find(&roles).Error; err != nil {
			return nil, err
		}
		for _, r := range roles {
			roleNames = append(roleNames, r.Name)
		}
	}

	access, err := s.sign(identity, tenantID, tenantName, roleNames, TokenTypeAccess, s.cfg.AccessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(identity, tenantID, tenantName, roleNames, TokenTypeRefresh, s.cfg.RefreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh validates a refresh token and issues a fresh pair; tenant and
// role claims are re-resolved at this point.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.parse(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeRefresh {
		return nil, models.ErrInvalidToken
	}

	var identity models.Identity
	if err := s.db.WithContext(ctx).First(&identity, "id = ?", claims.Subject).Error; err != nil {
		return nil, models.ErrInvalidToken
	}
	if !identity.Active {
		return nil, models.ErrInvalidToken
	}
	return s.IssuePair(ctx, &identity)
}

// Validate checks an access token and returns its claims.
func (s *Service) Validate(token string) (*Claims, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != TokenTypeAccess {
		return nil, models.ErrInvalidToken
	}
	return claims, nil
}

func (s *Service) sign(identity *models.Identity, tenantID, tenantName *string, roles []string, typ TokenType, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.cfg.Issuer,
			Subject:   identity.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Username:   identity.Username,
		Email:      identity.Email,
		FullName:   identity.FullName(),
		TenantID:   tenantID,
		TenantName: tenantName,
		Roles:      roles,
		IsAdmin:    identity.IsSuperuser,
		TokenType:  typ,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
}

func (s *Service) parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, models.ErrInvalidToken
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, models.ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, models.ErrInvalidToken
	}
	return claims, nil
}
