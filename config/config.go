package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL  string
	JWTSecretKey string
	JWTTTL       time.Duration
	ServerPort   int

	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	SMTPFrom string

	AllowedOrigins []string
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load()
	return fromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) (*Config, error) {
	dbURL := getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	port, err := parsePort(getenv, "SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}

	ttl := 24 * time.Hour
	if raw := getenv("JWT_TTL"); raw != "" {
		ttl, err = time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_TTL environment variable: %w", err)
		}
		if ttl <= 0 {
			return nil, fmt.Errorf("JWT_TTL must be positive, got %s", ttl)
		}
	}

	smtpPort, err := parsePort(getenv, "SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}

	origins := []string{"http://localhost:5173"}
	if raw := getenv("ALLOWED_ORIGINS"); raw != "" {
		origins = origins[:0]
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	cfg := &Config{
		DatabaseURL:  dbURL,
		JWTSecretKey: jwtKey,
		JWTTTL:       ttl,
		ServerPort:   port,

		R2AccountID:       getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:   getenv("R2_PUBLIC_BASE_URL"),

		SMTPHost: getenv("SMTP_HOST"),
		SMTPPort: smtpPort,
		SMTPUser: getenv("SMTP_USER"),
		SMTPPass: getenv("SMTP_PASS"),
		SMTPFrom: getenv("SMTP_FROM"),

		AllowedOrigins: origins,
	}

	return cfg, nil
}

// StorageEnabled сообщает, заданы ли все параметры Cloudflare R2.
func (c *Config) StorageEnabled() bool {
	return c.R2AccountID != "" && c.R2AccessKeyID != "" && c.R2SecretAccessKey != "" && c.R2BucketName != "" && c.R2PublicBaseURL != ""
}

func parsePort(getenv func(string) string, key string, def int) (int, error) {
	raw := getenv(key)
	if raw == "" {
		return def, nil
	}
	port, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	if port <= 0 || port > 65535 {
		return 0, fmt.Errorf("%s must be between 1 and 65535, got %d", key, port)
	}
	return port, nil
}
