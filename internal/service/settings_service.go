package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/rescue-academy/internship-roster-api/internal/models"
	appErrors "github.com/rescue-academy/internship-roster-api/pkg/errors"
)

type settingsRepository interface {
	Get(ctx context.Context, key string) (*models.Setting, error)
	List(ctx context.Context) ([]models.Setting, error)
	Upsert(ctx context.Context, setting *models.Setting) error
}

// UpsertSettingRequest sets one non-credential setting.
type UpsertSettingRequest struct {
	Key   string `json:"key" validate:"required,max=100"`
	Value string `json:"value" validate:"max=2000"`
}

// SettingsService manages plain key-value settings. The password keys are
// owned by AuthService and never pass through here: reads redact them and
// writes to them are rejected.
type SettingsService struct {
	repo      settingsRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSettingsService constructs a SettingsService.
func NewSettingsService(repo settingsRepository, validate *validator.Validate, logger *zap.Logger) *SettingsService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{repo: repo, validator: validate, logger: logger}
}

// List returns all settings with credential values redacted.
func (s *SettingsService) List(ctx context.Context) ([]models.Setting, error) {
	settings, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list settings")
	}
	result := make([]models.Setting, 0, len(settings))
	for _, setting := range settings {
		if credentialKey(setting.Key) {
			setting.Value = ""
		}
		result = append(result, setting)
	}
	return result, nil
}

// Get returns one setting; credential keys are not retrievable.
func (s *SettingsService) Get(ctx context.Context, key string) (*models.Setting, error) {
	if credentialKey(key) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "setting is not readable")
	}
	setting, err := s.repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "setting not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load setting")
	}
	return setting, nil
}

// Upsert writes one setting. Password keys must go through the auth flow
// so they are always stored hashed.
func (s *SettingsService) Upsert(ctx context.Context, req UpsertSettingRequest) (*models.Setting, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid setting payload")
	}
	if credentialKey(req.Key) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "passwords are managed via the auth endpoints")
	}
	setting := &models.Setting{Key: req.Key, Value: req.Value}
	if err := s.repo.Upsert(ctx, setting); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save setting")
	}
	return setting, nil
}

func credentialKey(key string) bool {
	return key == models.SettingKeyViewerPassword || key == models.SettingKeyAdminPassword
}
