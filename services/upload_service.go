package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"regexp"
	"strings"

	"github.com/anujyadav2244/CricInnings-Local-Cricket-Scoring-Web-App/storage"
	"github.com/google/uuid"
)

const defaultUploadFolder = "uploads"

var folderPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_\-/]{0,63}$`)

type UploadService interface {
	Upload(ctx context.Context, folder, filename, contentType string, file io.Reader) (*UploadedFile, error)
	Delete(ctx context.Context, key string) error
}

type UploadedFile struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type uploadService struct {
	uploader storage.FileUploader
	logger   *slog.Logger
}

func NewUploadService(uploader storage.FileUploader, logger *slog.Logger) UploadService {
	return &uploadService{uploader: uploader, logger: logger}
}

func (s *uploadService) Upload(ctx context.Context, folder, filename, contentType string, file io.Reader) (*UploadedFile, error) {
	if s.uploader == nil {
		return nil, ErrStorageUnavailable
	}

	folder = strings.Trim(strings.ToLower(strings.TrimSpace(folder)), "/")
	if folder == "" {
		folder = defaultUploadFolder
	}
	if !folderPattern.MatchString(folder) || strings.Contains(folder, "..") {
		return nil, fmt.Errorf("%w: invalid folder %q", ErrValidationFailed, folder)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := folder + "/" + uuid.NewString() + strings.ToLower(path.Ext(filename))
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	s.logger.Info("file uploaded", slog.String("key", result.Key), slog.String("content_type", contentType))
	return &UploadedFile{Key: result.Key, URL: result.Location}, nil
}

func (s *uploadService) Delete(ctx context.Context, key string) error {
	if s.uploader == nil {
		return ErrStorageUnavailable
	}
	key = strings.TrimSpace(key)
	if key == "" || strings.Contains(key, "..") {
		return fmt.Errorf("%w: invalid key", ErrValidationFailed)
	}
	return s.uploader.Delete(ctx, key)
}
