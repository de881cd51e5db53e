package config

import (
	"fmt"
	"os"
	"strconv"
)

// カート保存先の種別
const (
	CartStorageCookie = "cookie" // 署名つきトークンをクッキーへ直載せ
	CartStorageDB     = "db"     // クッキーはセッションIDだけ、本体はDB
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	CatalogURL        string // 商品カタログJSONのURL（起動時に一度だけ取得）
	CartCookieName    string // カートクッキー名（listCart）
	CartCookieTTLDays int    // クッキー有効日数（遠い将来の固定期限）
	CartSigningSecret string // カートトークンの署名シークレット
	CartStorage       string // cookie / db

	DatabaseURL      string // あればPostgres接続に最優先で使う
	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     int    // DBポート（5432）
	PostgresSSLMode  string // disableなど

	GoEnv string // dev/prod
}

// Loadは環境変数
func Load() (Config, error) {
	cfg := Config{
		Port: os.Getenv("PORT"),

		CatalogURL:        os.Getenv("CATALOG_URL"),
		CartCookieName:    getenv("CART_COOKIE_NAME", "listCart"),
		CartSigningSecret: os.Getenv("CART_SIGNING_SECRET"),
		CartStorage:       getenv("CART_STORAGE", CartStorageCookie),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		GoEnv: getenv("GO_ENV", "dev"),
	}

	ttlDays, err := atoiDefault("CART_COOKIE_TTL_DAYS", 30)
	if err != nil {
		return Config{}, err
	}
	cfg.CartCookieTTLDays = ttlDays

	pgPort, err := atoiDefault("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}
	cfg.PostgresPort = pgPort

	//必須チェック
	if cfg.Port == "" {
		return Config{}, fmt.Errorf("PORT is required")
	}
	if cfg.CatalogURL == "" {
		return Config{}, fmt.Errorf("CATALOG_URL is required")
	}
	if cfg.CartSigningSecret == "" {
		return Config{}, fmt.Errorf("CART_SIGNING_SECRET is required")
	}
	if cfg.CartStorage != CartStorageCookie && cfg.CartStorage != CartStorageDB {
		return Config{}, fmt.Errorf("CART_STORAGE must be %q or %q", CartStorageCookie, CartStorageDB)
	}
	if cfg.CartCookieTTLDays < 1 {
		return Config{}, fmt.Errorf("CART_COOKIE_TTL_DAYS must be positive")
	}

	// db保管のときだけDB設定が必須
	if cfg.CartStorage == CartStorageDB && cfg.DatabaseURL == "" {
		if cfg.PostgresUser == "" {
			return Config{}, fmt.Errorf("POSTGRES_USER is required")
		}
		if cfg.PostgresPassword == "" {
			return Config{}, fmt.Errorf("POSTGRES_PASSWORD is required")
		}
		if cfg.PostgresDB == "" {
			return Config{}, fmt.Errorf("POSTGRES_DB is required")
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

func atoiDefault(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
