package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/vitalink/telemonitor/models"
)

// MediaFilter holds the optional filters for listing media files
type MediaFilter struct {
	Kind      string
	PatientID *int
}

// MediaRepository interface defines media file database operations
type MediaRepository interface {
	Create(ctx context.Context, file *models.MediaFile) error
	List(ctx context.Context, filter MediaFilter) ([]models.MediaFile, error)
}

type mediaRepository struct {
	db *sql.DB
}

// NewMediaRepository creates a new media repository
func NewMediaRepository(db *sql.DB) MediaRepository {
	return &mediaRepository{db: db}
}

// Create inserts a new media file record
func (r *mediaRepository) Create(ctx context.Context, file *models.MediaFile) error {
	query := `
		INSERT INTO media_files (patient_id, kind, file_name, stored_path, content_type, size_bytes, uploaded_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	if file.CreatedAt.IsZero() {
		file.CreatedAt = time.Now()
	}

	result, err := r.db.ExecContext(ctx, query,
		nullableInt(file.PatientID),
		file.Kind,
		file.FileName,
		file.StoredPath,
		file.ContentType,
		file.SizeBytes,
		file.UploadedBy,
		file.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create media file record: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	file.ID = id
	return nil
}

// List retrieves media file records matching the filter, newest first
func (r *mediaRepository) List(ctx context.Context, filter MediaFilter) ([]models.MediaFile, error) {
	query := `
		SELECT id, patient_id, kind, file_name, stored_path, content_type, size_bytes, uploaded_by, created_at
		FROM media_files
	`

	var conditions []string
	var args []interface{}

	if filter.Kind != "" {
		conditions = append(conditions, "kind = ?")
		args = append(args, filter.Kind)
	}
	if filter.PatientID != nil {
		conditions = append(conditions, "patient_id = ?")
		args = append(args, *filter.PatientID)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query media files: %w", err)
	}
	defer rows.Close()

	var files []models.MediaFile
	for rows.Next() {
		var file models.MediaFile
		var patientID sql.NullInt64

		err := rows.Scan(
			&file.ID,
			&patientID,
			&file.Kind,
			&file.FileName,
			&file.StoredPath,
			&file.ContentType,
			&file.SizeBytes,
			&file.UploadedBy,
			&file.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan media file: %w", err)
		}

		if patientID.Valid {
			id := int(patientID.Int64)
			file.PatientID = &id
		}
		files = append(files, file)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating media files: %w", err)
	}

	return files, nil
}
