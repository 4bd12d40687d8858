package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := fromEnv(envMap(map[string]string{
		"DATABASE_URL":   "postgres://localhost/cricket",
		"JWT_SECRET_KEY": "secret",
	}))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.False(t, cfg.StorageEnabled())
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := fromEnv(envMap(map[string]string{
		"DATABASE_URL":         "postgres://localhost/cricket",
		"JWT_SECRET_KEY":       "secret",
		"SERVER_PORT":          "9090",
		"JWT_TTL":              "90m",
		"ALLOWED_ORIGINS":      "https://a.example, https://b.example,",
		"R2_ACCOUNT_ID":        "acc",
		"R2_ACCESS_KEY_ID":     "key",
		"R2_SECRET_ACCESS_KEY": "sec",
		"R2_BUCKET_NAME":       "logos",
		"R2_PUBLIC_BASE_URL":   "https://cdn.example.com",
	}))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, 90*time.Minute, cfg.JWTTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.StorageEnabled())
}

func TestFromEnvErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing database url", map[string]string{"JWT_SECRET_KEY": "s"}},
		{"missing jwt key", map[string]string{"DATABASE_URL": "d"}},
		{"bad port", map[string]string{"DATABASE_URL": "d", "JWT_SECRET_KEY": "s", "SERVER_PORT": "http"}},
		{"port out of range", map[string]string{"DATABASE_URL": "d", "JWT_SECRET_KEY": "s", "SERVER_PORT": "70000"}},
		{"bad ttl", map[string]string{"DATABASE_URL": "d", "JWT_SECRET_KEY": "s", "JWT_TTL": "-1h"}},
		{"bad smtp port", map[string]string{"DATABASE_URL": "d", "JWT_SECRET_KEY": "s", "SMTP_PORT": "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fromEnv(envMap(tt.env))
			assert.Error(t, err)
		})
	}
}
