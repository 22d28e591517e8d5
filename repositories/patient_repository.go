package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/vitalink/telemonitor/models"
)

// PatientFilter holds the optional filters for listing patients
type PatientFilter struct {
	Active *bool
	Search string
}

// PatientRepository interface defines patient database operations
type PatientRepository interface {
	GetAll(ctx context.Context, filter PatientFilter) ([]models.Patient, error)
	GetByID(ctx context.Context, id int) (*models.Patient, error)
	GetByCodiceFiscale(ctx context.Context, code string) (*models.Patient, error)
	Create(ctx context.Context, patient *models.Patient) error
	Update(ctx context.Context, patient *models.Patient) error
	UpdatePassword(ctx context.Context, id int, password string) error
	Delete(ctx context.Context, id int) error
}

type patientRepository struct {
	db *sql.DB
}

// NewPatientRepository creates a new patient repository
func NewPatientRepository(db *sql.DB) PatientRepository {
	return &patientRepository{db: db}
}

const patientColumns = `id, codice_fiscale, nome, cognome, data_nascita, telefono, password, active, created_at`

func scanPatientRow(scan func(dest ...interface{}) error) (*models.Patient, error) {
	var patient models.Patient
	err := scan(
		&patient.ID,
		&patient.CodiceFiscale,
		&patient.Nome,
		&patient.Cognome,
		&patient.DataNascita,
		&patient.Telefono,
		&patient.Password,
		&patient.Active,
		&patient.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &patient, nil
}

// GetAll retrieves patients matching the filter, ordered by surname
func (r *patientRepository) GetAll(ctx context.Context, filter PatientFilter) ([]models.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients`

	var conditions []string
	var args []interface{}

	if filter.Active != nil {
		conditions = append(conditions, "active = ?")
		args = append(args, *filter.Active)
	}
	if filter.Search != "" {
		conditions = append(conditions, "(nome LIKE ? OR cognome LIKE ? OR codice_fiscale LIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern, pattern)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY cognome ASC, nome ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query patients: %w", err)
	}
	defer rows.Close()

	var patients []models.Patient
	for rows.Next() {
		patient, err := scanPatientRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan patient: %w", err)
		}
		patients = append(patients, *patient)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating patients: %w", err)
	}

	return patients, nil
}

// GetByID retrieves a patient by ID
func (r *patientRepository) GetByID(ctx context.Context, id int) (*models.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE id = ?`

	patient, err := scanPatientRow(r.db.QueryRowContext(ctx, query, id).Scan)
	if err == sql.ErrNoRows {
		return nil, models.NewNotFoundError("patient", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return patient, nil
}

// GetByCodiceFiscale retrieves a patient by national ID code
func (r *patientRepository) GetByCodiceFiscale(ctx context.Context, code string) (*models.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE codice_fiscale = ?`

	patient, err := scanPatientRow(r.db.QueryRowContext(ctx, query, code).Scan)
	if err == sql.ErrNoRows {
		return nil, sql.ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get patient by codice fiscale: %w", err)
	}
	return patient, nil
}

// Create inserts a new patient
func (r *patientRepository) Create(ctx context.Context, patient *models.Patient) error {
	query := `
		INSERT INTO patients (codice_fiscale, nome, cognome, data_nascita, telefono, password, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	if patient.CreatedAt.IsZero() {
		patient.CreatedAt = time.Now()
	}

	result, err := r.db.ExecContext(ctx, query,
		patient.CodiceFiscale,
		patient.Nome,
		patient.Cognome,
		patient.DataNascita,
		patient.Telefono,
		patient.Password,
		patient.Active,
		patient.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	patient.ID = int(id)
	return nil
}

// Update updates an existing patient
func (r *patientRepository) Update(ctx context.Context, patient *models.Patient) error {
	query := `
		UPDATE patients
		SET codice_fiscale = ?, nome = ?, cognome = ?, data_nascita = ?, telefono = ?, active = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		patient.CodiceFiscale,
		patient.Nome,
		patient.Cognome,
		patient.DataNascita,
		patient.Telefono,
		patient.Active,
		patient.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.NewNotFoundError("patient", patient.ID)
	}
	return nil
}

// UpdatePassword replaces the stored password for a patient
func (r *patientRepository) UpdatePassword(ctx context.Context, id int, password string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE patients SET password = ? WHERE id = ?`, password, id)
	if err != nil {
		return fmt.Errorf("failed to update patient password: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.NewNotFoundError("patient", id)
	}
	return nil
}

// Delete deletes a patient by ID
func (r *patientRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.NewNotFoundError("patient", id)
	}
	return nil
}
