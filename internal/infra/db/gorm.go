package db

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ローカル開発時のデフォルト（docker composeのpostgresに合わせる）
const (
	defaultHost    = "localhost"
	defaultPort    = "5432"
	defaultUser    = "postgres"
	defaultPass    = "postgres"
	defaultDBName  = "app"
	defaultSSLMode = "disable"
)

// Connect はPostgresへのgormコネクションを開く。
// DATABASE_URLが設定されていればそれだけを見る（マネージド環境向け）。
// 無ければPOSTGRES_*を個別に読み、欠けはデフォルトで埋める。
func Connect() (*gorm.DB, error) {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return gorm.Open(postgres.Open(url), &gorm.Config{})
	}

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		envOr("POSTGRES_HOST", defaultHost),
		envOr("POSTGRES_PORT", defaultPort),
		envOr("POSTGRES_USER", defaultUser),
		envOr("POSTGRES_PASSWORD", defaultPass),
		envOr("POSTGRES_DB", defaultDBName),
		envOr("POSTGRES_SSLMODE", defaultSSLMode),
	)

	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

func envOr(key string, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
