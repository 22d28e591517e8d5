package models

import "time"

// Clinical bounds for the out-of-range alert predicate
const (
	HeartRateMin   = 60.0
	HeartRateMax   = 100.0
	SpO2Min        = 95.0
	SystolicBPMin  = 90.0
	SystolicBPMax  = 140.0
	DiastolicBPMin = 60.0
	DiastolicBPMax = 90.0
	TemperatureMin = 36.0
	TemperatureMax = 37.5
)

// HealthReading represents one timestamped set of vital-sign measurements.
// Vitals are nullable: a device may report any subset of them.
type HealthReading struct {
	ID          int64     `json:"id"`
	PatientID   int       `json:"patient_id"`
	DeviceID    *int      `json:"device_id,omitempty"`
	HeartRate   *float64  `json:"heart_rate"`
	SpO2        *float64  `json:"spo2"`
	SystolicBP  *float64  `json:"systolic_bp"`
	DiastolicBP *float64  `json:"diastolic_bp"`
	Temperature *float64  `json:"temperature"`
	RecordedAt  time.Time `json:"recorded_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsAlert reports whether any present vital violates its clinical bound.
// Fields are evaluated independently: one abnormal value is enough.
// A reading with all fields null is never an alert.
func (r *HealthReading) IsAlert() bool {
	if r.HeartRate != nil && (*r.HeartRate < HeartRateMin || *r.HeartRate > HeartRateMax) {
		return true
	}
	if r.SpO2 != nil && *r.SpO2 < SpO2Min {
		return true
	}
	if r.SystolicBP != nil && (*r.SystolicBP < SystolicBPMin || *r.SystolicBP > SystolicBPMax) {
		return true
	}
	if r.DiastolicBP != nil && (*r.DiastolicBP < DiastolicBPMin || *r.DiastolicBP > DiastolicBPMax) {
		return true
	}
	if r.Temperature != nil && (*r.Temperature < TemperatureMin || *r.Temperature > TemperatureMax) {
		return true
	}
	return false
}

// HealthReadingForm represents the payload for submitting a reading
type HealthReadingForm struct {
	DeviceID    *int     `json:"device_id"`
	HeartRate   *float64 `json:"heart_rate"`
	SpO2        *float64 `json:"spo2"`
	SystolicBP  *float64 `json:"systolic_bp"`
	DiastolicBP *float64 `json:"diastolic_bp"`
	Temperature *float64 `json:"temperature"`
	RecordedAt  string   `json:"recorded_at"`
}

// Validate requires at least one vital to be present and a parseable timestamp
func (f *HealthReadingForm) Validate() error {
	if f.HeartRate == nil && f.SpO2 == nil && f.SystolicBP == nil &&
		f.DiastolicBP == nil && f.Temperature == nil {
		return NewValidationError("vitals", "at least one measurement is required")
	}
	if f.RecordedAt != "" {
		if _, err := time.Parse(time.RFC3339, f.RecordedAt); err != nil {
			return NewValidationError("recorded_at", "recorded_at must be an RFC3339 timestamp")
		}
	}
	return nil
}

// RecordedAtOrNow returns the parsed recorded_at, defaulting to now when absent
func (f *HealthReadingForm) RecordedAtOrNow(now time.Time) time.Time {
	if f.RecordedAt == "" {
		return now
	}
	t, err := time.Parse(time.RFC3339, f.RecordedAt)
	if err != nil {
		return now
	}
	return t
}
