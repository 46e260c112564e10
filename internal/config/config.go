package config

import (
	"fmt"
	"os"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	// Stripeの環境変数側デフォルト（admin設定があればそちらが優先）
	StripeSecretKey      string
	StripePublishableKey string
	StripeWebhookSecret  string

	// 絶対URLの解決に使う（優先順: SiteOrigin > DeployURL > CORSOrigin > localhost）
	SiteOrigin string
	DeployURL  string
	CORSOrigin string

	// admin設定シングルトンのID（UUID）。未設定なら固定値を使う
	AdminSettingsID string

	// adminログイン
	AdminEmail        string
	AdminPasswordHash string // bcryptハッシュ
	JWTSecret         string // JWT署名シークレット

	GoEnv string // dev/prod
}

// Loadは環境変数から読み込む
func Load() (Config, error) {
	cfg := Config{
		Port: getenv("PORT", "8080"),

		StripeSecretKey:      os.Getenv("STRIPE_SECRET_KEY"),
		StripePublishableKey: os.Getenv("STRIPE_PUBLISHABLE_KEY"),
		StripeWebhookSecret:  os.Getenv("STRIPE_WEBHOOK_SECRET"),

		SiteOrigin: os.Getenv("SITE_ORIGIN"),
		DeployURL:  os.Getenv("DEPLOY_URL"),
		CORSOrigin: os.Getenv("CORS_ORIGIN"),

		AdminSettingsID: getenv("ADMIN_SETTINGS_ID", "00000000-0000-0000-0000-000000000001"),

		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		JWTSecret:         getenv("JWT_SECRET", "dev_secret_change_me"),

		GoEnv: getenv("GO_ENV", "development"),
	}

	// 本番だけ必須チェック（開発はプレースホルダで動かす）
	if cfg.GoEnv == "production" {
		if os.Getenv("JWT_SECRET") == "" {
			return Config{}, fmt.Errorf("JWT_SECRET is required in production")
		}
		if cfg.AdminPasswordHash == "" {
			return Config{}, fmt.Errorf("ADMIN_PASSWORD_HASH is required in production")
		}
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
