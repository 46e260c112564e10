package usecase

import (
	"context"
	"errors"
	"testing"

	"app/internal/config"
	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestResolve_AdminSettingsWin(t *testing.T) {
	settings := &CheckoutSettingsRepoMock{}
	settings.On("Get", mock.Anything, mock.Anything).Return(model.AdminSettings{
		Data: map[string]any{
			"payments": map[string]any{
				"stripe": map[string]any{
					"publishableKey": "pk_live_admin",
					"secretKey":      "sk_live_admin",
					"testMode":       false,
					"webhookSecret":  "whsec_admin",
				},
			},
		},
		Version: 3,
	}, nil)

	r := NewProviderConfigResolver(settings, config.Config{
		StripeSecretKey:      "sk_live_env",
		StripePublishableKey: "pk_live_env",
	})
	pc := r.Resolve(context.Background())

	assert.Equal(t, SourceAdmin, pc.Source)
	assert.Equal(t, "sk_live_admin", pc.SecretKey)
	assert.Equal(t, "whsec_admin", pc.WebhookSecret)
	assert.False(t, pc.TestMode)
}

func TestResolve_SettingsErrorFallsBackToEnv(t *testing.T) {
	settings := &CheckoutSettingsRepoMock{}
	settings.On("Get", mock.Anything, mock.Anything).Return(model.AdminSettings{}, errors.New("store unreachable"))

	r := NewProviderConfigResolver(settings, config.Config{
		StripeSecretKey:      "sk_live_env",
		StripePublishableKey: "pk_live_env",
		StripeWebhookSecret:  "whsec_env",
	})
	pc := r.Resolve(context.Background())

	// 読み取り失敗は呼び出し元に伝播しない
	assert.Equal(t, SourceEnvironment, pc.Source)
	assert.Equal(t, "sk_live_env", pc.SecretKey)
	assert.False(t, pc.TestMode)
}

func TestResolve_PartialAdminKeysFallThrough(t *testing.T) {
	settings := &CheckoutSettingsRepoMock{}
	settings.On("Get", mock.Anything, mock.Anything).Return(model.AdminSettings{
		Data: map[string]any{
			"payments": map[string]any{
				"stripe": map[string]any{
					"publishableKey": "pk_live_admin",
					// secretKeyが無い→環境変数へ
				},
			},
		},
	}, nil)

	r := NewProviderConfigResolver(settings, config.Config{
		StripeSecretKey:      "sk_test_env",
		StripePublishableKey: "pk_test_env",
	})
	pc := r.Resolve(context.Background())

	assert.Equal(t, SourceEnvironment, pc.Source)
	// sk_test_プレフィックスでテストモード
	assert.True(t, pc.TestMode)
}

func TestResolve_MissingEnvKeysForceTestMode(t *testing.T) {
	settings := &CheckoutSettingsRepoMock{}
	settings.On("Get", mock.Anything, mock.Anything).Return(model.AdminSettings{}, repo.ErrNotFound)

	r := NewProviderConfigResolver(settings, config.Config{})
	pc := r.Resolve(context.Background())

	assert.Equal(t, SourceEnvironment, pc.Source)
	assert.True(t, pc.TestMode)
	assert.Equal(t, placeholderSecretKey, pc.SecretKey)
	assert.Equal(t, placeholderPublishableKey, pc.PublishableKey)
}
