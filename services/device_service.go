package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/vitalink/telemonitor/models"
	"github.com/vitalink/telemonitor/repositories"
)

// DeviceService interface defines device management business logic
type DeviceService interface {
	GetAll(ctx context.Context, filter repositories.DeviceFilter) ([]models.Device, error)
	GetByID(ctx context.Context, id int) (*models.Device, error)
	Create(ctx context.Context, form *models.DeviceForm) (*models.Device, error)
	Update(ctx context.Context, id int, form *models.DeviceForm) (*models.Device, error)
	Delete(ctx context.Context, id int) error
}

type deviceService struct {
	deviceRepo  repositories.DeviceRepository
	patientRepo repositories.PatientRepository
}

// NewDeviceService creates a new device service
func NewDeviceService(deviceRepo repositories.DeviceRepository, patientRepo repositories.PatientRepository) DeviceService {
	return &deviceService{
		deviceRepo:  deviceRepo,
		patientRepo: patientRepo,
	}
}

// GetAll retrieves devices matching the filter
func (s *deviceService) GetAll(ctx context.Context, filter repositories.DeviceFilter) ([]models.Device, error) {
	return s.deviceRepo.GetAll(ctx, filter)
}

// GetByID retrieves a device by ID
func (s *deviceService) GetByID(ctx context.Context, id int) (*models.Device, error) {
	if id <= 0 {
		return nil, models.NewValidationError("id", "invalid device ID")
	}
	return s.deviceRepo.GetByID(ctx, id)
}

// Create creates a new device with validation
func (s *deviceService) Create(ctx context.Context, form *models.DeviceForm) (*models.Device, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	serial := strings.TrimSpace(form.SerialNumber)
	if _, err := s.deviceRepo.GetBySerialNumber(ctx, serial); err == nil {
		return nil, models.NewValidationError("serial_number", "a device with this serial number already exists")
	} else if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to check serial number: %w", err)
	}

	if err := s.checkPatient(ctx, form.PatientID); err != nil {
		return nil, err
	}

	active := true
	if form.Active != nil {
		active = *form.Active
	}

	device := &models.Device{
		Nome:         strings.TrimSpace(form.Nome),
		Tipo:         strings.TrimSpace(form.Tipo),
		SerialNumber: serial,
		PatientID:    form.PatientID,
		Active:       active,
	}

	if err := s.deviceRepo.Create(ctx, device); err != nil {
		return nil, fmt.Errorf("failed to create device: %w", err)
	}

	return device, nil
}

// Update updates an existing device, including its patient assignment
func (s *deviceService) Update(ctx context.Context, id int, form *models.DeviceForm) (*models.Device, error) {
	if id <= 0 {
		return nil, models.NewValidationError("id", "invalid device ID")
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}

	device, err := s.deviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	serial := strings.TrimSpace(form.SerialNumber)
	if serial != device.SerialNumber {
		if existing, err := s.deviceRepo.GetBySerialNumber(ctx, serial); err == nil && existing.ID != id {
			return nil, models.NewValidationError("serial_number", "a device with this serial number already exists")
		} else if err != nil && err != sql.ErrNoRows {
			return nil, fmt.Errorf("failed to check serial number: %w", err)
		}
	}

	if err := s.checkPatient(ctx, form.PatientID); err != nil {
		return nil, err
	}

	device.Nome = strings.TrimSpace(form.Nome)
	device.Tipo = strings.TrimSpace(form.Tipo)
	device.SerialNumber = serial
	device.PatientID = form.PatientID
	if form.Active != nil {
		device.Active = *form.Active
	}

	if err := s.deviceRepo.Update(ctx, device); err != nil {
		return nil, fmt.Errorf("failed to update device: %w", err)
	}

	return device, nil
}

// Delete deletes a device by ID
func (s *deviceService) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return models.NewValidationError("id", "invalid device ID")
	}

	if err := s.deviceRepo.Delete(ctx, id); err != nil {
		return err
	}
	return nil
}

// checkPatient verifies the assignment target exists when one is given
func (s *deviceService) checkPatient(ctx context.Context, patientID *int) error {
	if patientID == nil {
		return nil
	}
	if _, err := s.patientRepo.GetByID(ctx, *patientID); err != nil {
		return err
	}
	return nil
}
