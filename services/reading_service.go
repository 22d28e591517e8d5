package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vitalink/telemonitor/models"
	"github.com/vitalink/telemonitor/repositories"
)

// DefaultReadingLimit is applied when the caller does not specify a limit
const DefaultReadingLimit = 50

// ReadingService interface defines health reading business logic
type ReadingService interface {
	ListByPatient(ctx context.Context, patientID, limit, offset int) ([]models.HealthReading, error)
	LatestByPatient(ctx context.Context, patientID int) (*models.HealthReading, error)
	Create(ctx context.Context, patientID int, form *models.HealthReadingForm) (*models.HealthReading, error)
}

type readingService struct {
	readingRepo repositories.ReadingRepository
	patientRepo repositories.PatientRepository
}

// NewReadingService creates a new health reading service
func NewReadingService(readingRepo repositories.ReadingRepository, patientRepo repositories.PatientRepository) ReadingService {
	return &readingService{
		readingRepo: readingRepo,
		patientRepo: patientRepo,
	}
}

// ListByPatient retrieves readings for a patient, newest first
func (s *readingService) ListByPatient(ctx context.Context, patientID, limit, offset int) ([]models.HealthReading, error) {
	if _, err := s.patientRepo.GetByID(ctx, patientID); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = DefaultReadingLimit
	}
	if offset < 0 {
		offset = 0
	}

	return s.readingRepo.GetByPatient(ctx, patientID, limit, offset)
}

// LatestByPatient retrieves the most recent reading for a patient
func (s *readingService) LatestByPatient(ctx context.Context, patientID int) (*models.HealthReading, error) {
	if _, err := s.patientRepo.GetByID(ctx, patientID); err != nil {
		return nil, err
	}

	reading, err := s.readingRepo.GetLatestByPatient(ctx, patientID)
	if err == sql.ErrNoRows {
		return nil, models.NewNotFoundError("reading", patientID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest reading: %w", err)
	}
	return reading, nil
}

// Create validates and stores a new reading for a patient
func (s *readingService) Create(ctx context.Context, patientID int, form *models.HealthReadingForm) (*models.HealthReading, error) {
	if _, err := s.patientRepo.GetByID(ctx, patientID); err != nil {
		return nil, err
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}

	reading := &models.HealthReading{
		PatientID:   patientID,
		DeviceID:    form.DeviceID,
		HeartRate:   form.HeartRate,
		SpO2:        form.SpO2,
		SystolicBP:  form.SystolicBP,
		DiastolicBP: form.DiastolicBP,
		Temperature: form.Temperature,
		RecordedAt:  form.RecordedAtOrNow(time.Now()),
	}

	if err := s.readingRepo.Create(ctx, reading); err != nil {
		return nil, fmt.Errorf("failed to create reading: %w", err)
	}

	return reading, nil
}
