package storage

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicURL(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name string
		base string
		key  string
		want string
	}{
		{"bare host", "https://cdn.example.com", "teams/1/logo.png", "https://cdn.example.com/teams/1/logo.png"},
		{"base with path", "https://cdn.example.com/media", "teams/1/logo.png", "https://cdn.example.com/media/teams/1/logo.png"},
		{"leading slash on key", "https://cdn.example.com/media/", "/uploads/a.pdf", "https://cdn.example.com/media/uploads/a.pdf"},
		{"empty key", "https://cdn.example.com", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, err := parsePublicBaseURL(tt.base)
			require.NoError(t, err)
			assert.Equal(t, tt.want, publicURL(base, tt.key, logger))
		})
	}
}

func TestNewCloudflareR2UploaderRejectsBadConfig(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	full := CloudflareR2UploaderConfig{
		AccountID:       "acc",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		BucketName:      "league-assets",
		PublicBaseURL:   "https://cdn.example.com",
	}

	missing := full
	missing.BucketName = ""
	_, err := NewCloudflareR2Uploader(context.Background(), missing, logger)
	assert.Error(t, err)

	badURL := full
	badURL.PublicBaseURL = "cdn.example.com"
	_, err = NewCloudflareR2Uploader(context.Background(), badURL, logger)
	assert.Error(t, err)

	uploader, err := NewCloudflareR2Uploader(context.Background(), full, logger)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/teams/x.png", uploader.GetPublicURL("teams/x.png"))
}
