package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/vitalink/telemonitor/models"
)

// StaffRepository interface defines staff account database operations
type StaffRepository interface {
	GetByID(ctx context.Context, id int) (*models.StaffUser, error)
	GetByUsername(ctx context.Context, username string) (*models.StaffUser, error)
	Create(ctx context.Context, user *models.StaffUser) error
	UpdatePassword(ctx context.Context, id int, password string) error
}

type staffRepository struct {
	db *sql.DB
}

// NewStaffRepository creates a new staff repository
func NewStaffRepository(db *sql.DB) StaffRepository {
	return &staffRepository{db: db}
}

const staffColumns = `id, username, password, nome, cognome, ruolo, email, created_at`

func scanStaff(row *sql.Row) (*models.StaffUser, error) {
	var user models.StaffUser
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Password,
		&user.Nome,
		&user.Cognome,
		&user.Ruolo,
		&user.Email,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a staff user by ID
func (r *staffRepository) GetByID(ctx context.Context, id int) (*models.StaffUser, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_users WHERE id = ?`

	user, err := scanStaff(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, models.NewNotFoundError("staff user", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get staff user: %w", err)
	}
	return user, nil
}

// GetByUsername retrieves a staff user by username
func (r *staffRepository) GetByUsername(ctx context.Context, username string) (*models.StaffUser, error) {
	query := `SELECT ` + staffColumns + ` FROM staff_users WHERE username = ?`

	user, err := scanStaff(r.db.QueryRowContext(ctx, query, username))
	if err == sql.ErrNoRows {
		return nil, sql.ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get staff user by username: %w", err)
	}
	return user, nil
}

// Create inserts a new staff user
func (r *staffRepository) Create(ctx context.Context, user *models.StaffUser) error {
	query := `
		INSERT INTO staff_users (username, password, nome, cognome, ruolo, email, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if user.Ruolo == "" {
		user.Ruolo = "medico"
	}

	result, err := r.db.ExecContext(ctx, query,
		user.Username,
		user.Password,
		user.Nome,
		user.Cognome,
		user.Ruolo,
		user.Email,
		user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create staff user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted ID: %w", err)
	}

	user.ID = int(id)
	return nil
}

// UpdatePassword replaces the stored password for a staff user
func (r *staffRepository) UpdatePassword(ctx context.Context, id int, password string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE staff_users SET password = ? WHERE id = ?`, password, id)
	if err != nil {
		return fmt.Errorf("failed to update staff password: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return models.NewNotFoundError("staff user", id)
	}
	return nil
}
