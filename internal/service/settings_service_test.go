package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rescue-academy/internship-roster-api/internal/models"
	appErrors "github.com/rescue-academy/internship-roster-api/pkg/errors"
)

func TestSettingsListRedactsPasswords(t *testing.T) {
	repo := newSettingsRepoStub()
	repo.setPassword(t, models.SettingKeyAdminPassword, "secret")
	repo.settings["display_title"] = &models.Setting{Key: "display_title", Value: "実習一覧"}
	svc := NewSettingsService(repo, nil, zap.NewNop())

	settings, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, settings, 2)
	for _, setting := range settings {
		if setting.Key == models.SettingKeyAdminPassword {
			assert.Empty(t, setting.Value)
		} else {
			assert.Equal(t, "実習一覧", setting.Value)
		}
	}
}

func TestSettingsGet(t *testing.T) {
	repo := newSettingsRepoStub()
	repo.settings["display_title"] = &models.Setting{Key: "display_title", Value: "実習一覧"}
	svc := NewSettingsService(repo, nil, zap.NewNop())

	setting, err := svc.Get(context.Background(), "display_title")
	require.NoError(t, err)
	assert.Equal(t, "実習一覧", setting.Value)

	var appErr *appErrors.Error
	_, err = svc.Get(context.Background(), "missing")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)

	_, err = svc.Get(context.Background(), models.SettingKeyViewerPassword)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErr.Code)
}

func TestSettingsUpsert(t *testing.T) {
	repo := newSettingsRepoStub()
	svc := NewSettingsService(repo, nil, zap.NewNop())

	setting, err := svc.Upsert(context.Background(), UpsertSettingRequest{Key: "display_title", Value: "実習一覧"})
	require.NoError(t, err)
	assert.Equal(t, "実習一覧", setting.Value)
	assert.NotNil(t, repo.settings["display_title"])

	var appErr *appErrors.Error
	_, err = svc.Upsert(context.Background(), UpsertSettingRequest{Key: models.SettingKeyAdminPassword, Value: "plain"})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErr.Code)
}
