package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/vitalink/telemonitor/models"
	"github.com/vitalink/telemonitor/repositories"
)

// ErrInvalidCredentials is returned when a login attempt fails.
// Controllers translate it to a 401 without leaking which field was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService defines staff and patient authentication logic
type AuthService interface {
	StaffLogin(ctx context.Context, form *models.StaffLoginForm) (*models.StaffUser, error)
	StaffRegister(ctx context.Context, form *models.StaffRegisterForm) (*models.StaffUser, error)
	StaffForSSO(ctx context.Context, nickname, email string) (*models.StaffUser, error)
	PatientLogin(ctx context.Context, form *models.PatientLoginForm) (*models.Patient, error)
	ChangePatientPassword(ctx context.Context, patientID int, form *models.PasswordChangeForm) error
}

type authService struct {
	staffRepo   repositories.StaffRepository
	patientRepo repositories.PatientRepository
}

// NewAuthService creates a new auth service
func NewAuthService(staffRepo repositories.StaffRepository, patientRepo repositories.PatientRepository) AuthService {
	return &authService{
		staffRepo:   staffRepo,
		patientRepo: patientRepo,
	}
}

// StaffLogin checks staff credentials and returns the account on success
func (s *authService) StaffLogin(ctx context.Context, form *models.StaffLoginForm) (*models.StaffUser, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	user, err := s.staffRepo.GetByUsername(ctx, form.Username)
	if err == sql.ErrNoRows {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up staff user: %w", err)
	}

	if !checkPassword(user.Password, form.Password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// StaffRegister validates and creates a new staff account with a hashed password
func (s *authService) StaffRegister(ctx context.Context, form *models.StaffRegisterForm) (*models.StaffUser, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.staffRepo.GetByUsername(ctx, form.Username); err == nil {
		return nil, models.NewValidationError("username", "username is already taken")
	} else if err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hash, err := hashPassword(form.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.StaffUser{
		Username: strings.TrimSpace(form.Username),
		Password: hash,
		Nome:     strings.TrimSpace(form.Nome),
		Cognome:  strings.TrimSpace(form.Cognome),
		Ruolo:    strings.TrimSpace(form.Ruolo),
		Email:    strings.TrimSpace(form.Email),
	}

	if err := s.staffRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create staff user: %w", err)
	}

	return user, nil
}

// StaffForSSO matches identity provider claims to a staff account.
// The nickname claim is tried as username first, then the email claim.
func (s *authService) StaffForSSO(ctx context.Context, nickname, email string) (*models.StaffUser, error) {
	if nickname != "" {
		user, err := s.staffRepo.GetByUsername(ctx, nickname)
		if err == nil {
			return user, nil
		}
		if err != sql.ErrNoRows {
			return nil, fmt.Errorf("failed to look up staff user: %w", err)
		}
	}

	if email != "" {
		user, err := s.staffRepo.GetByUsername(ctx, email)
		if err == nil {
			return user, nil
		}
		if err != sql.ErrNoRows {
			return nil, fmt.Errorf("failed to look up staff user: %w", err)
		}
	}

	return nil, ErrInvalidCredentials
}

// PatientLogin checks patient credentials. The national ID code is
// compared case-insensitively by lower-casing it first.
func (s *authService) PatientLogin(ctx context.Context, form *models.PatientLoginForm) (*models.Patient, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}

	code := strings.ToLower(strings.TrimSpace(form.CodiceFiscale))
	patient, err := s.patientRepo.GetByCodiceFiscale(ctx, code)
	if err == sql.ErrNoRows {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up patient: %w", err)
	}

	if !patient.Active {
		return nil, ErrInvalidCredentials
	}

	if !checkPassword(patient.Password, form.Password) {
		return nil, ErrInvalidCredentials
	}

	return patient, nil
}

// ChangePatientPassword verifies the current password and stores a hash of the new one
func (s *authService) ChangePatientPassword(ctx context.Context, patientID int, form *models.PasswordChangeForm) error {
	if err := form.Validate(); err != nil {
		return err
	}

	patient, err := s.patientRepo.GetByID(ctx, patientID)
	if err != nil {
		return err
	}

	if !checkPassword(patient.Password, form.CurrentPassword) {
		return ErrInvalidCredentials
	}

	hash, err := hashPassword(form.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.patientRepo.UpdatePassword(ctx, patientID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// hashPassword hashes a password with bcrypt
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// checkPassword compares a candidate password against the stored value.
// Rows migrated from the legacy system hold plaintext; anything written
// by this service is a bcrypt hash.
func checkPassword(stored, candidate string) bool {
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
	}
	return stored != "" && stored == candidate
}
