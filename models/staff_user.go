package models

import "time"

// StaffUser represents an operator account (doctor, nurse, admin)
type StaffUser struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Nome      string    `json:"nome"`
	Cognome   string    `json:"cognome"`
	Ruolo     string    `json:"ruolo"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// StaffRegisterForm represents form data for creating a staff account
type StaffRegisterForm struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Nome     string `json:"nome"`
	Cognome  string `json:"cognome"`
	Ruolo    string `json:"ruolo"`
	Email    string `json:"email"`
}

// Validate validates the registration form data
func (f *StaffRegisterForm) Validate() error {
	if f.Username == "" {
		return NewValidationError("username", "username is required")
	}
	if len(f.Username) > 100 {
		return NewValidationError("username", "username must be less than 100 characters")
	}
	if f.Password == "" {
		return NewValidationError("password", "password is required")
	}
	if len(f.Password) < 6 {
		return NewValidationError("password", "password must be at least 6 characters")
	}
	return nil
}

// StaffLoginForm represents staff credential input
type StaffLoginForm struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate validates the login form data
func (f *StaffLoginForm) Validate() error {
	if f.Username == "" {
		return NewValidationError("username", "username is required")
	}
	if f.Password == "" {
		return NewValidationError("password", "password is required")
	}
	return nil
}
