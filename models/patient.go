package models

import "time"

// Patient represents an end-user account authenticated by national ID code
type Patient struct {
	ID            int       `json:"id"`
	CodiceFiscale string    `json:"codice_fiscale"`
	Nome          string    `json:"nome"`
	Cognome       string    `json:"cognome"`
	DataNascita   string    `json:"data_nascita,omitempty"`
	Telefono      string    `json:"telefono,omitempty"`
	Password      string    `json:"-"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
}

// PatientForm represents form data for creating/updating patients
type PatientForm struct {
	CodiceFiscale string `json:"codice_fiscale"`
	Nome          string `json:"nome"`
	Cognome       string `json:"cognome"`
	DataNascita   string `json:"data_nascita"`
	Telefono      string `json:"telefono"`
	Password      string `json:"password"`
	Active        *bool  `json:"active"`
}

// Validate validates the patient form data
func (f *PatientForm) Validate() error {
	if f.CodiceFiscale == "" {
		return NewValidationError("codice_fiscale", "codice_fiscale is required")
	}
	if len(f.CodiceFiscale) > 32 {
		return NewValidationError("codice_fiscale", "codice_fiscale must be less than 32 characters")
	}
	if f.Nome == "" {
		return NewValidationError("nome", "nome is required")
	}
	if f.Cognome == "" {
		return NewValidationError("cognome", "cognome is required")
	}
	if f.DataNascita != "" {
		if _, err := ParseDate(f.DataNascita); err != nil {
			return NewValidationError("data_nascita", "data_nascita must be in YYYY-MM-DD format")
		}
	}
	return nil
}

// PatientLoginForm represents patient credential input
type PatientLoginForm struct {
	CodiceFiscale string `json:"codice_fiscale"`
	Password      string `json:"password"`
}

// Validate validates the patient login form data
func (f *PatientLoginForm) Validate() error {
	if f.CodiceFiscale == "" {
		return NewValidationError("codice_fiscale", "codice_fiscale is required")
	}
	if f.Password == "" {
		return NewValidationError("password", "password is required")
	}
	return nil
}

// PasswordChangeForm represents a patient password change request
type PasswordChangeForm struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Validate validates the password change form data
func (f *PasswordChangeForm) Validate() error {
	if f.CurrentPassword == "" {
		return NewValidationError("current_password", "current_password is required")
	}
	if f.NewPassword == "" {
		return NewValidationError("new_password", "new_password is required")
	}
	if len(f.NewPassword) < 6 {
		return NewValidationError("new_password", "new_password must be at least 6 characters")
	}
	return nil
}
