package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vitalink/telemonitor/models"
	"github.com/vitalink/telemonitor/repositories"
)

// MediaService handles diagnostic media uploads
type MediaService interface {
	Store(ctx context.Context, kind string, patientID *int, uploadedBy string, header *multipart.FileHeader) (*models.MediaFile, error)
	List(ctx context.Context, filter repositories.MediaFilter) ([]models.MediaFile, error)
}

type mediaService struct {
	mediaRepo   repositories.MediaRepository
	patientRepo repositories.PatientRepository
	uploadDir   string
}

// NewMediaService creates a new media service rooted at uploadDir
func NewMediaService(mediaRepo repositories.MediaRepository, patientRepo repositories.PatientRepository, uploadDir string) MediaService {
	return &mediaService{
		mediaRepo:   mediaRepo,
		patientRepo: patientRepo,
		uploadDir:   uploadDir,
	}
}

// Store validates the upload against the kind's extension whitelist, writes
// the file under the kind's directory and records it in the database.
// The client filename is reduced to its base name and prefixed with a
// timestamp so it can never escape the upload directory or collide.
func (s *mediaService) Store(ctx context.Context, kind string, patientID *int, uploadedBy string, header *multipart.FileHeader) (*models.MediaFile, error) {
	if !models.IsValidMediaKind(kind) {
		return nil, models.NewValidationError("kind", "unknown media kind")
	}

	name := sanitizeFilename(header.Filename)
	if name == "" {
		return nil, models.NewValidationError("file", "file name is required")
	}

	ext := filepath.Ext(name)
	if !models.IsAllowedExtension(kind, ext) {
		return nil, models.NewValidationError("file", fmt.Sprintf("file type %s is not allowed for %s uploads", ext, kind))
	}

	if patientID != nil {
		if _, err := s.patientRepo.GetByID(ctx, *patientID); err != nil {
			return nil, err
		}
	}

	dir := filepath.Join(s.uploadDir, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	storedName := time.Now().Format("20060102150405") + "_" + name
	storedPath := filepath.Join(dir, storedName)

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(storedPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(storedPath)
		return nil, fmt.Errorf("failed to write uploaded file: %w", err)
	}

	file := &models.MediaFile{
		PatientID:   patientID,
		Kind:        kind,
		FileName:    name,
		StoredPath:  storedPath,
		ContentType: header.Header.Get("Content-Type"),
		SizeBytes:   size,
		UploadedBy:  uploadedBy,
	}

	if err := s.mediaRepo.Create(ctx, file); err != nil {
		os.Remove(storedPath)
		return nil, fmt.Errorf("failed to record media file: %w", err)
	}

	return file, nil
}

// List retrieves stored media records matching the filter
func (s *mediaService) List(ctx context.Context, filter repositories.MediaFilter) ([]models.MediaFile, error) {
	if filter.Kind != "" && !models.IsValidMediaKind(filter.Kind) {
		return nil, models.NewValidationError("kind", "unknown media kind")
	}
	return s.mediaRepo.List(ctx, filter)
}

// sanitizeFilename strips any path components from a client-supplied name
func sanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	if name == "." || name == ".." || name == "/" {
		return ""
	}
	return name
}
