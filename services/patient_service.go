package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/vitalink/telemonitor/models"
	"github.com/vitalink/telemonitor/repositories"
)

// PatientService interface defines patient management business logic
type PatientService interface {
	GetAll(ctx context.Context, filter repositories.PatientFilter) ([]models.Patient, error)
	GetByID(ctx context.Context, id int) (*models.Patient, error)
	Create(ctx context.Context, form *models.PatientForm) (*models.Patient, error)
	Update(ctx context.Context, id int, form *models.PatientForm) (*models.Patient, error)
	Delete(ctx context.Context, id int) error
	Deactivate(ctx context.Context, id int) error
	Activate(ctx context.Context, id int) error
}

type patientService struct {
	patientRepo repositories.PatientRepository
	readingRepo repositories.ReadingRepository
}

// NewPatientService creates a new patient service
func NewPatientService(patientRepo repositories.PatientRepository, readingRepo repositories.ReadingRepository) PatientService {
	return &patientService{
		patientRepo: patientRepo,
		readingRepo: readingRepo,
	}
}

// GetAll retrieves patients matching the filter
func (s *patientService) GetAll(ctx context.Context, filter repositories.PatientFilter) ([]models.Patient, error) {
	return s.patientRepo.GetAll(ctx, filter)
}

// GetByID retrieves a patient by ID
func (s *patientService) GetByID(ctx context.Context, id int) (*models.Patient, error) {
	if id <= 0 {
		return nil, models.NewValidationError("id", "invalid patient ID")
	}
	return s.patientRepo.GetByID(ctx, id)
}

// Create creates a new patient with validation
func (s *patientService) Create(ctx context.Context, form *models.PatientForm) (*models.Patient, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	code := strings.ToLower(strings.TrimSpace(form.CodiceFiscale))

	// Reject duplicate national ID codes before hitting the unique constraint
	if _, err := s.patientRepo.GetByCodiceFiscale(ctx, code); err == nil {
		return nil, models.NewValidationError("codice_fiscale", "a patient with this codice_fiscale already exists")
	} else if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to check codice_fiscale: %w", err)
	}

	password := form.Password
	if password != "" {
		hash, err := hashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		password = hash
	}

	active := true
	if form.Active != nil {
		active = *form.Active
	}

	patient := &models.Patient{
		CodiceFiscale: code,
		Nome:          strings.TrimSpace(form.Nome),
		Cognome:       strings.TrimSpace(form.Cognome),
		DataNascita:   form.DataNascita,
		Telefono:      strings.TrimSpace(form.Telefono),
		Password:      password,
		Active:        active,
	}

	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	return patient, nil
}

// Update updates an existing patient
func (s *patientService) Update(ctx context.Context, id int, form *models.PatientForm) (*models.Patient, error) {
	if id <= 0 {
		return nil, models.NewValidationError("id", "invalid patient ID")
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}

	patient, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	code := strings.ToLower(strings.TrimSpace(form.CodiceFiscale))
	if code != patient.CodiceFiscale {
		if existing, err := s.patientRepo.GetByCodiceFiscale(ctx, code); err == nil && existing.ID != id {
			return nil, models.NewValidationError("codice_fiscale", "a patient with this codice_fiscale already exists")
		} else if err != nil && err != sql.ErrNoRows {
			return nil, fmt.Errorf("failed to check codice_fiscale: %w", err)
		}
	}

	patient.CodiceFiscale = code
	patient.Nome = strings.TrimSpace(form.Nome)
	patient.Cognome = strings.TrimSpace(form.Cognome)
	patient.DataNascita = form.DataNascita
	patient.Telefono = strings.TrimSpace(form.Telefono)
	if form.Active != nil {
		patient.Active = *form.Active
	}

	if err := s.patientRepo.Update(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}

	return patient, nil
}

// Delete permanently deletes a patient. Patients with stored readings
// cannot be deleted; they should be deactivated instead.
func (s *patientService) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return models.NewValidationError("id", "invalid patient ID")
	}

	if _, err := s.patientRepo.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.readingRepo.CountByPatient(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check patient readings: %w", err)
	}
	if count > 0 {
		return models.NewValidationError("id", "cannot delete a patient with stored readings; deactivate instead")
	}

	if err := s.patientRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	return nil
}

// Deactivate marks a patient as inactive (soft delete)
func (s *patientService) Deactivate(ctx context.Context, id int) error {
	return s.setActive(ctx, id, false)
}

// Activate marks a patient as active
func (s *patientService) Activate(ctx context.Context, id int) error {
	return s.setActive(ctx, id, true)
}

func (s *patientService) setActive(ctx context.Context, id int, active bool) error {
	if id <= 0 {
		return models.NewValidationError("id", "invalid patient ID")
	}

	patient, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if patient.Active == active {
		if active {
			return models.NewValidationError("id", "patient is already active")
		}
		return models.NewValidationError("id", "patient is already inactive")
	}

	patient.Active = active
	if err := s.patientRepo.Update(ctx, patient); err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}

	return nil
}
