package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/rescue-academy/internship-roster-api/internal/models"
	appErrors "github.com/rescue-academy/internship-roster-api/pkg/errors"
)

// Access roles. Viewers read the roster; admins additionally import,
// edit, and manage settings.
const (
	RoleViewer = "viewer"
	RoleAdmin  = "admin"
)

type authSettingsRepository interface {
	Get(ctx context.Context, key string) (*models.Setting, error)
	Upsert(ctx context.Context, setting *models.Setting) error
}

// LoginRequest is the shared-password login payload.
type LoginRequest struct {
	Role     string `json:"role" validate:"required,oneof=viewer admin"`
	Password string `json:"password" validate:"required"`
}

// UpdatePasswordRequest rotates one role's shared password.
type UpdatePasswordRequest struct {
	Role     string `json:"role" validate:"required,oneof=viewer admin"`
	Password string `json:"password" validate:"required,min=4,max=72"`
}

// SessionClaims is the JWT payload carried in the session cookie.
type SessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthService implements shared-password authentication. There are no user
// accounts, only two passwords stored as bcrypt hashes in settings; a
// successful login yields a role-scoped session token.
type AuthService struct {
	settings  authSettingsRepository
	validator *validator.Validate
	logger    *zap.Logger
	secret    []byte
	tokenTTL  time.Duration
}

// NewAuthService constructs an AuthService.
func NewAuthService(settings authSettingsRepository, validate *validator.Validate, secret string, tokenTTL time.Duration, logger *zap.Logger) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if tokenTTL <= 0 {
		tokenTTL = 12 * time.Hour
	}
	return &AuthService{settings: settings, validator: validate, logger: logger, secret: []byte(secret), tokenTTL: tokenTTL}
}

// TokenTTL reports the session lifetime, used for the cookie max-age.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokenTTL
}

// Login verifies the shared password for the role and issues a session
// token. Every failure path reports the same invalid-password error.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}
	setting, err := s.settings.Get(ctx, passwordKey(req.Role))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("login against unconfigured role", zap.String("role", req.Role))
			return "", appErrors.Clone(appErrors.ErrInvalidCredentials, "")
		}
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(setting.Value), []byte(req.Password)); err != nil {
		return "", appErrors.Clone(appErrors.ErrInvalidCredentials, "")
	}

	now := time.Now()
	claims := SessionClaims{
		Role: req.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign session token")
	}
	return token, nil
}

// ValidateToken parses and verifies a session token, returning its claims.
func (s *AuthService) ValidateToken(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired session")
	}
	if claims.Role != RoleViewer && claims.Role != RoleAdmin {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired session")
	}
	return claims, nil
}

// UpdatePassword rotates the shared password for a role, storing only the
// bcrypt hash.
func (s *AuthService) UpdatePassword(ctx context.Context, req UpdatePasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid password payload")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}
	setting := &models.Setting{Key: passwordKey(req.Role), Value: string(hash)}
	if err := s.settings.Upsert(ctx, setting); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save password")
	}
	s.logger.Info("shared password rotated", zap.String("role", req.Role))
	return nil
}

func passwordKey(role string) string {
	if role == RoleAdmin {
		return models.SettingKeyAdminPassword
	}
	return models.SettingKeyViewerPassword
}
