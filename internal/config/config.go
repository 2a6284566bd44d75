package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv     string
	ServerPort int

	DatabaseURL string
	SQLitePath  string

	JWTSecret []byte

	AdminUsername string
	AdminPassword string

	UploadDir string
	PublicDir string

	KafkaBrokers []string

	LogLevel string
}

func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env not found: %v, using system environment", err)
	}

	return Config{
		AppEnv:     EnvDefault("APP_ENV", "development"),
		ServerPort: EnvIntDefault("SERVER_PORT", 8080),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  EnvDefault("SQLITE_PATH", "storefront.db"),

		JWTSecret: []byte(os.Getenv("JWT_SECRET")),

		AdminUsername: EnvDefault("ADMIN_USERNAME", "admin"),
		AdminPassword: EnvDefault("ADMIN_PASSWORD", "admin123"),

		UploadDir: EnvDefault("UPLOAD_DIR", "assets/images"),
		PublicDir: EnvDefault("PUBLIC_DIR", "public/assets/images"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		LogLevel: os.Getenv("LOG_LEVEL"),
	}
}

// Hosted reports whether the process should use the remote postgres backend.
// The choice is made once at startup and never re-evaluated.
func (c Config) Hosted() bool {
	return c.AppEnv == "production"
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
