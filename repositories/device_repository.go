package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/vitalink/telemonitor/models"
)

// DeviceFilter holds the optional filters for listing devices
type DeviceFilter struct {
	Active    *bool
	PatientID *int
}

// DeviceRepository interface defines device database operations
type DeviceRepository interface {
	GetAll(ctx context.Context, filter DeviceFilter) ([]models.Device, error)
	GetByID(ctx context.Context, id int) (*models.Device, error)
	GetBySerialNumber(ctx context.Context, serial string) (*models.Device, error)
	Create(ctx context.Context, device *models.Device) error
	Update(ctx context.Context, device *models.Device) error
	Delete(ctx context.Context, id int) error
}

type deviceRepository struct {
	db *sql.DB
}

// NewDeviceRepository creates a new device repository
func NewDeviceRepository(db *sql.DB) DeviceRepository {
	return &deviceRepository{db: db}
}

const deviceColumns = `id, nome, tipo, serial_number, patient_id, active, created_at`

func scanDeviceRow(scan func(dest ...interface{}) error) (*models.Device, error) {
	var device models.Device
	var patientID sql.NullInt64

	err := scan(
		&device.ID,
		&device.Nome,
		&device.Tipo,
		&device.SerialNumber,
		&patientID,
		&device.Active,
		&device.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if patientID.Valid {
		id := int(patientID.Int64)
		device.PatientID = &id
	}
	return &device, nil
}

// GetAll retrieves devices matching the filter
func (r *deviceRepository) GetAll(ctx context.Context, filter DeviceFilter) ([]models.Device, error) {
	query := `SELECT ` + deviceColumns + ` FROM devices`

	var conditions []string
	var args []interface{}

	if filter.Active != nil {
		conditions = append(conditions, "active = ?")
		args = append(args, *filter.Active)
	}
	if filter.PatientID != nil {
		conditions = append(conditions, "patient_id = ?")
		args = append(args, *filter.PatientID)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY nome ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query devices: %w", err)
	}
	defer rows.Close()

	var devices []models.Device
	for rows.Next() {
		device, err := scanDeviceRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan device: %w", err)
		}
		devices = append(devices, *device)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating devices: %w", err)
	}

	return devices, nil
}

// GetByID retrieves a device by ID
func (r *deviceRepository) GetByID(ctx context.Context, id int) (*models.Device, error) {
	query := `SELECT ` + deviceColumns + ` FROM devices WHERE id = ?`

	device, err := scanDeviceRow(r.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, models.NewNotFoundError("device", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get device: %w", err)
	}
	return device, nil
}

// GetBySerialNumber retrieves a device by its serial number
func (r *deviceRepository) GetBySerialNumber(ctx context.Context, serial string) (*models.Device, error) {
	query := `SELECT ` + deviceColumns + ` FROM devices WHERE serial_number = ?`

	device, err := scanDeviceRow(r.db.QueryRowContext(ctx, query, serial).Scan)
	if err == sql.ErrNoRows {
		return nil, sql.ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get device by serial: %w", err)
	}
	return device, nil
}

// Create inserts a new device
func (r *deviceRepository) Create(ctx context.Context, device *models.Device) error {
	query := `
		INSERT INTO devices (nome, tipo, serial_number, patient_id, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	if device.CreatedAt.IsZero() {
		device.CreatedAt = time.Now()
	}

	result, err := r.db.ExecContext(ctx, query,
		device.Nome,
		device.Tipo,
		device.SerialNumber,
		nullableInt(device.PatientID),
		device.Active,
		device.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create device: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	device.ID = int(id)
	return nil
}

// Update updates an existing device
func (r *deviceRepository) Update(ctx context.Context, device *models.Device) error {
	query := `
		UPDATE devices
		SET nome = ?, tipo = ?, serial_number = ?, patient_id = ?, active = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		device.Nome,
		device.Tipo,
		device.SerialNumber,
		nullableInt(device.PatientID),
		device.Active,
		device.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update device: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.NewNotFoundError("device", device.ID)
	}
	return nil
}

// Delete deletes a device by ID
func (r *deviceRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM devices WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete device: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.NewNotFoundError("device", id)
	}
	return nil
}

// nullableInt converts an optional int into a driver-friendly value
func nullableInt(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
