package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vitalink/telemonitor/models"
)

// ReadingRepository interface defines health reading database operations
type ReadingRepository interface {
	GetByPatient(ctx context.Context, patientID, limit, offset int) ([]models.HealthReading, error)
	GetLatestByPatient(ctx context.Context, patientID int) (*models.HealthReading, error)
	CountByPatient(ctx context.Context, patientID int) (int, error)
	Create(ctx context.Context, reading *models.HealthReading) error
}

type readingRepository struct {
	db *sql.DB
}

// NewReadingRepository creates a new health reading repository
func NewReadingRepository(db *sql.DB) ReadingRepository {
	return &readingRepository{db: db}
}

const readingColumns = `id, patient_id, device_id, heart_rate, spo2, systolic_bp, diastolic_bp, temperature, recorded_at, created_at`

func scanReadingRow(scan func(dest ...interface{}) error) (*models.HealthReading, error) {
	var reading models.HealthReading
	var deviceID sql.NullInt64
	var heartRate, spo2, systolicBP, diastolicBP, temperature sql.NullFloat64

	err := scan(
		&reading.ID,
		&reading.PatientID,
		&deviceID,
		&heartRate,
		&spo2,
		&systolicBP,
		&diastolicBP,
		&temperature,
		&reading.RecordedAt,
		&reading.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if deviceID.Valid {
		id := int(deviceID.Int64)
		reading.DeviceID = &id
	}
	if heartRate.Valid {
		reading.HeartRate = &heartRate.Float64
	}
	if spo2.Valid {
		reading.SpO2 = &spo2.Float64
	}
	if systolicBP.Valid {
		reading.SystolicBP = &systolicBP.Float64
	}
	if diastolicBP.Valid {
		reading.DiastolicBP = &diastolicBP.Float64
	}
	if temperature.Valid {
		reading.Temperature = &temperature.Float64
	}

	return &reading, nil
}

// GetByPatient retrieves readings for a patient, newest first
func (r *readingRepository) GetByPatient(ctx context.Context, patientID, limit, offset int) ([]models.HealthReading, error) {
	query := `
		SELECT ` + readingColumns + `
		FROM health_data
		WHERE patient_id = ?
		ORDER BY recorded_at DESC
		LIMIT ? OFFSET ?
	`

	rows, err := r.db.QueryContext(ctx, query, patientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query readings: %w", err)
	}
	defer rows.Close()

	var readings []models.HealthReading
	for rows.Next() {
		reading, err := scanReadingRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reading: %w", err)
		}
		readings = append(readings, *reading)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating readings: %w", err)
	}

	return readings, nil
}

// GetLatestByPatient retrieves the most recent reading for a patient
func (r *readingRepository) GetLatestByPatient(ctx context.Context, patientID int) (*models.HealthReading, error) {
	query := `
		SELECT ` + readingColumns + `
		FROM health_data
		WHERE patient_id = ?
		ORDER BY recorded_at DESC
		LIMIT 1
	`

	reading, err := scanReadingRow(r.db.QueryRowContext(ctx, query, patientID).Scan)
	if err == sql.ErrNoRows {
		return nil, sql.ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest reading: %w", err)
	}
	return reading, nil
}

// CountByPatient returns the number of readings stored for a patient
func (r *readingRepository) CountByPatient(ctx context.Context, patientID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM health_data WHERE patient_id = ?`, patientID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count readings: %w", err)
	}
	return count, nil
}

// Create inserts a new health reading
func (r *readingRepository) Create(ctx context.Context, reading *models.HealthReading) error {
	query := `
		INSERT INTO health_data (patient_id, device_id, heart_rate, spo2, systolic_bp,
		                         diastolic_bp, temperature, recorded_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	if reading.RecordedAt.IsZero() {
		reading.RecordedAt = time.Now()
	}
	if reading.CreatedAt.IsZero() {
		reading.CreatedAt = time.Now()
	}

	result, err := r.db.ExecContext(ctx, query,
		reading.PatientID,
		nullableInt(reading.DeviceID),
		nullableFloat(reading.HeartRate),
		nullableFloat(reading.SpO2),
		nullableFloat(reading.SystolicBP),
		nullableFloat(reading.DiastolicBP),
		nullableFloat(reading.Temperature),
		reading.RecordedAt,
		reading.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create reading: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	reading.ID = id
	return nil
}

// nullableFloat converts an optional float into a driver-friendly value
func nullableFloat(p *float64) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
