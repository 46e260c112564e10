package usecase

import (
	"context"
	"errors"
	"strings"

	"app/internal/config"
	repo "app/internal/repository"

	"github.com/labstack/gommon/log"
)

const (
	SourceAdmin       = "admin"
	SourceEnvironment = "environment"

	placeholderPublishableKey = "pk_test_placeholder"
	placeholderSecretKey      = "sk_test_placeholder"
)

// 解決済みの決済プロバイダ設定
type ProviderConfig struct {
	PublishableKey string
	SecretKey      string
	WebhookSecret  string
	TestMode       bool
	Source         string // "admin" | "environment"
}

// ProviderConfigResolver はadmin設定→環境変数の順で鍵を解決する。
// 読み取り失敗はwarnログだけ出して呼び出し元には返さない。
type ProviderConfigResolver struct {
	settings repo.SettingsRepository
	cfg      config.Config
}

func NewProviderConfigResolver(settings repo.SettingsRepository, cfg config.Config) *ProviderConfigResolver {
	return &ProviderConfigResolver{settings: settings, cfg: cfg}
}

func (r *ProviderConfigResolver) Resolve(ctx context.Context) ProviderConfig {
	if pc, ok := r.fromSettings(ctx); ok {
		return pc
	}
	return r.fromEnvironment()
}

// admin設定（settings.data.payments.stripe）から読む
func (r *ProviderConfigResolver) fromSettings(ctx context.Context) (ProviderConfig, bool) {
	s, err := r.settings.Get(ctx, r.cfg.AdminSettingsID)
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			log.Warnf("provider config: settings read failed, falling back to env: %v", err)
		}
		return ProviderConfig{}, false
	}

	stripeCfg, ok := nestedMap(s.Data, "payments", "stripe")
	if !ok {
		return ProviderConfig{}, false
	}

	pub := nestedString(stripeCfg, "publishableKey")
	sec := nestedString(stripeCfg, "secretKey")
	if pub == "" || sec == "" {
		return ProviderConfig{}, false
	}

	testMode, found := stripeCfg["testMode"].(bool)
	if !found {
		testMode = strings.HasPrefix(sec, "sk_test_")
	}

	webhookSecret := nestedString(stripeCfg, "webhookSecret")
	if webhookSecret == "" {
		webhookSecret = r.cfg.StripeWebhookSecret
	}

	return ProviderConfig{
		PublishableKey: pub,
		SecretKey:      sec,
		WebhookSecret:  webhookSecret,
		TestMode:       testMode,
		Source:         SourceAdmin,
	}, true
}

// 環境変数から読む。鍵が欠けていたらプレースホルダでテストモードに固定
func (r *ProviderConfigResolver) fromEnvironment() ProviderConfig {
	pub := r.cfg.StripePublishableKey
	sec := r.cfg.StripeSecretKey

	if pub == "" || sec == "" {
		if pub == "" {
			pub = placeholderPublishableKey
		}
		if sec == "" {
			sec = placeholderSecretKey
		}
		return ProviderConfig{
			PublishableKey: pub,
			SecretKey:      sec,
			WebhookSecret:  r.cfg.StripeWebhookSecret,
			TestMode:       true,
			Source:         SourceEnvironment,
		}
	}

	return ProviderConfig{
		PublishableKey: pub,
		SecretKey:      sec,
		WebhookSecret:  r.cfg.StripeWebhookSecret,
		TestMode:       strings.HasPrefix(sec, "sk_test_"),
		Source:         SourceEnvironment,
	}
}

func nestedMap(m map[string]any, keys ...string) (map[string]any, bool) {
	cur := m
	for _, k := range keys {
		next, ok := cur[k].(map[string]any)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func nestedString(m map[string]any, key string) string {
	v, _ := m[key].(string)
	return strings.TrimSpace(v)
}
