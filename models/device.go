package models

import "time"

// Device represents a monitoring device, optionally assigned to a patient
type Device struct {
	ID           int       `json:"id"`
	Nome         string    `json:"nome"`
	Tipo         string    `json:"tipo,omitempty"`
	SerialNumber string    `json:"serial_number"`
	PatientID    *int      `json:"patient_id,omitempty"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
}

// DeviceForm represents form data for creating/updating devices
type DeviceForm struct {
	Nome         string `json:"nome"`
	Tipo         string `json:"tipo"`
	SerialNumber string `json:"serial_number"`
	PatientID    *int   `json:"patient_id"`
	Active       *bool  `json:"active"`
}

// Validate validates the device form data
func (f *DeviceForm) Validate() error {
	if f.Nome == "" {
		return NewValidationError("nome", "nome is required")
	}
	if f.SerialNumber == "" {
		return NewValidationError("serial_number", "serial_number is required")
	}
	if len(f.SerialNumber) > 64 {
		return NewValidationError("serial_number", "serial_number must be less than 64 characters")
	}
	return nil
}
