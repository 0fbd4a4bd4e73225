package config

import (
	"fmt"
	"os"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート

	SessionSecret string // セッションcookie（JWT）の署名シークレット

	GoEnv     string // dev/prod（prodでcookieをSecureにする）
	FEURL     string // フロントURL（CORSで使う）
	UploadDir string // ロゴなどのアップロード先
}

// Loadは環境変数
func Load() (Config, error) {
	cfg := Config{
		Port:          getenv("PORT", "8080"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		GoEnv:         getenv("GO_ENV", "dev"),
		FEURL:         getenv("FE_URL", "http://localhost:3000"),
		UploadDir:     getenv("UPLOAD_DIR", "uploads"),
	}

	//必須チェック
	if cfg.SessionSecret == "" {
		return Config{}, fmt.Errorf("SESSION_SECRET is required")
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
