package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

type Config struct {
	UsersPath    string
	ProductsPath string
	SessionPath  string
	TokenSecret  string
	LogLevel     string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Load() Config {
	// A missing .env is fine; plain environment variables still apply.
	_ = godotenv.Load()

	cfg := Config{
		UsersPath:    getenv("ACAIACA_USERS_PATH", "fixtures/usuarios.json"),
		ProductsPath: getenv("ACAIACA_PRODUCTS_PATH", "fixtures/produtos.json"),
		SessionPath:  getenv("ACAIACA_SESSION_PATH", defaultSessionPath()),
		TokenSecret:  os.Getenv("ACAIACA_TOKEN_SECRET"),
		LogLevel:     getenv("ACAIACA_LOG_LEVEL", "info"),
	}
	if cfg.TokenSecret == "" {
		cfg.TokenSecret = "dev-secret-change-me"
	}
	return cfg
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".acaiaca-session.json"
	}
	return filepath.Join(home, ".acaiaca", "session.json")
}
