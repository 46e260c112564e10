package usecase

import (
	"context"
	"net/http"
	"testing"

	"app/internal/config"
	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type SettingsRepoMock struct{ mock.Mock }

func (m *SettingsRepoMock) Get(ctx context.Context, id string) (model.AdminSettings, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(model.AdminSettings)
	return s, args.Error(1)
}

func (m *SettingsRepoMock) Put(ctx context.Context, id string, data map[string]any, expectedVersion int64) (model.AdminSettings, error) {
	args := m.Called(ctx, id, data, expectedVersion)
	s, _ := args.Get(0).(model.AdminSettings)
	return s, args.Error(1)
}

func TestSettingsGet_MasksSecrets(t *testing.T) {
	settings := &SettingsRepoMock{}
	settings.On("Get", mock.Anything, mock.Anything).Return(model.AdminSettings{
		Data: map[string]any{
			"siteTitle": "example",
			"payments": map[string]any{
				"stripe": map[string]any{
					"publishableKey": "pk_live_12345678",
					"secretKey":      "sk_live_12345678",
					"webhookSecret":  "whsec_abcdef",
				},
			},
		},
		Version: 2,
	}, nil)

	uc := NewSettingsUsecase(settings, config.Config{})
	out, err := uc.Get(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(2), out.Version)

	stripeCfg := out.Data["payments"].(map[string]any)["stripe"].(map[string]any)
	// publishableは公開情報なのでそのまま
	assert.Equal(t, "pk_live_12345678", stripeCfg["publishableKey"])
	// 秘密系は末尾4桁だけ
	assert.Equal(t, "****5678", stripeCfg["secretKey"])
	assert.Equal(t, "****cdef", stripeCfg["webhookSecret"])
}

func TestSettingsGet_EmptyWhenMissing(t *testing.T) {
	settings := &SettingsRepoMock{}
	settings.On("Get", mock.Anything, mock.Anything).Return(model.AdminSettings{}, repo.ErrNotFound)

	uc := NewSettingsUsecase(settings, config.Config{})
	out, err := uc.Get(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(0), out.Version)
	assert.Empty(t, out.Data)
}

func TestSettingsUpdate_VersionConflict(t *testing.T) {
	settings := &SettingsRepoMock{}
	settings.On("Put", mock.Anything, mock.Anything, mock.Anything, int64(1)).
		Return(model.AdminSettings{}, repo.ErrVersionConflict)

	uc := NewSettingsUsecase(settings, config.Config{})
	_, err := uc.Update(context.Background(), UpdateSettingsInput{
		Data:    map[string]any{"siteTitle": "new"},
		Version: 1,
	})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Status)
}

func TestSettingsUpdate_OK(t *testing.T) {
	settings := &SettingsRepoMock{}
	data := map[string]any{"siteTitle": "new"}
	settings.On("Put", mock.Anything, mock.Anything, data, int64(2)).
		Return(model.AdminSettings{Data: data, Version: 3}, nil)

	uc := NewSettingsUsecase(settings, config.Config{})
	out, err := uc.Update(context.Background(), UpdateSettingsInput{Data: data, Version: 2})

	assert.NoError(t, err)
	assert.Equal(t, int64(3), out.Version)
}
