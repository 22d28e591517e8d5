package models

import (
	"testing"
	"time"
)

func floatPtr(v float64) *float64 { return &v }

// Test AccessLogForm validation
func TestAccessLogFormValidation(t *testing.T) {
	// Test valid forms for every action type
	for _, action := range ValidActionTypes {
		form := AccessLogForm{
			UserID:   5,
			Username: "mrossi",
			Action:   action,
		}
		if err := form.Validate(); err != nil {
			t.Errorf("Expected no error for action %q, got: %v", action, err)
		}
	}

	// Missing required fields
	missing := []AccessLogForm{
		{Username: "mrossi", Action: ActionLogin},
		{UserID: 5, Action: ActionLogin},
		{UserID: 5, Username: "mrossi"},
	}
	for i, form := range missing {
		if err := form.Validate(); err == nil {
			t.Errorf("Expected error for incomplete form %d", i)
		}
	}

	// Action outside the enumerated set
	form := AccessLogForm{UserID: 5, Username: "mrossi", Action: "delete"}
	if err := form.Validate(); err == nil {
		t.Error("Expected error for action_type outside the enumerated set")
	}
}

// Test the access log filter defaults
func TestAccessLogFilterNormalize(t *testing.T) {
	filter := AccessLogFilter{}
	filter.Normalize()
	if filter.Limit != DefaultAccessLogLimit {
		t.Errorf("Expected default limit %d, got %d", DefaultAccessLogLimit, filter.Limit)
	}
	if filter.Offset != 0 {
		t.Errorf("Expected offset 0, got %d", filter.Offset)
	}

	filter = AccessLogFilter{Limit: 20, Offset: -5}
	filter.Normalize()
	if filter.Limit != 20 {
		t.Errorf("Expected limit 20 to be preserved, got %d", filter.Limit)
	}
	if filter.Offset != 0 {
		t.Errorf("Expected negative offset clamped to 0, got %d", filter.Offset)
	}
}

// Test the out-of-range alert predicate
func TestHealthReadingIsAlert(t *testing.T) {
	// One abnormal field is enough, even with the rest null
	tachycardia := HealthReading{HeartRate: floatPtr(110)}
	if !tachycardia.IsAlert() {
		t.Error("Expected heart rate 110 to count as an alert")
	}

	// All vitals within bounds
	normal := HealthReading{
		HeartRate:   floatPtr(75),
		SpO2:        floatPtr(98),
		SystolicBP:  floatPtr(120),
		DiastolicBP: floatPtr(80),
		Temperature: floatPtr(36.5),
	}
	if normal.IsAlert() {
		t.Error("Expected in-range reading not to count as an alert")
	}

	// All fields null contributes no alert
	empty := HealthReading{}
	if empty.IsAlert() {
		t.Error("Expected all-null reading not to count as an alert")
	}

	// Each field is evaluated independently
	cases := []struct {
		name    string
		reading HealthReading
		alert   bool
	}{
		{"low heart rate", HealthReading{HeartRate: floatPtr(50)}, true},
		{"boundary heart rate", HealthReading{HeartRate: floatPtr(60)}, false},
		{"low spo2", HealthReading{SpO2: floatPtr(92)}, true},
		{"boundary spo2", HealthReading{SpO2: floatPtr(95)}, false},
		{"high systolic", HealthReading{SystolicBP: floatPtr(150)}, true},
		{"low diastolic", HealthReading{DiastolicBP: floatPtr(55)}, true},
		{"fever", HealthReading{Temperature: floatPtr(38.2)}, true},
		{"hypothermia", HealthReading{Temperature: floatPtr(35.0)}, true},
		{"boundary temperature", HealthReading{Temperature: floatPtr(37.5)}, false},
	}
	for _, tc := range cases {
		if tc.reading.IsAlert() != tc.alert {
			t.Errorf("%s: expected alert=%v", tc.name, tc.alert)
		}
	}
}

// Test the reading form validation
func TestHealthReadingFormValidation(t *testing.T) {
	empty := HealthReadingForm{}
	if err := empty.Validate(); err == nil {
		t.Error("Expected error when no vitals are present")
	}

	valid := HealthReadingForm{HeartRate: floatPtr(72)}
	if err := valid.Validate(); err != nil {
		t.Errorf("Expected no error for a single vital, got: %v", err)
	}

	badTime := HealthReadingForm{HeartRate: floatPtr(72), RecordedAt: "yesterday"}
	if err := badTime.Validate(); err == nil {
		t.Error("Expected error for a malformed recorded_at")
	}
}

// Test day boundary and trailing window helpers
func TestTimeWindows(t *testing.T) {
	now := time.Date(2025, 3, 14, 15, 9, 26, 0, time.Local)

	midnight := StartOfDay(now)
	if midnight.Hour() != 0 || midnight.Minute() != 0 || midnight.Second() != 0 {
		t.Errorf("Expected local midnight, got %v", midnight)
	}
	if midnight.Day() != 14 || midnight.Month() != 3 {
		t.Errorf("Expected same calendar day, got %v", midnight)
	}

	windowStart := Last24Hours(now)
	if now.Sub(windowStart) != 24*time.Hour {
		t.Errorf("Expected a 24 hour window, got %v", now.Sub(windowStart))
	}
}

// Test patient form validation
func TestPatientFormValidation(t *testing.T) {
	valid := PatientForm{
		CodiceFiscale: "rssmra80a01h501u",
		Nome:          "Mario",
		Cognome:       "Rossi",
		DataNascita:   "1980-01-01",
	}
	if err := valid.Validate(); err != nil {
		t.Errorf("Expected no error for valid form, got: %v", err)
	}

	invalid := PatientForm{Nome: "Mario"}
	if err := invalid.Validate(); err == nil {
		t.Error("Expected error for form without codice_fiscale")
	}

	badDate := valid
	badDate.DataNascita = "01/01/1980"
	if err := badDate.Validate(); err == nil {
		t.Error("Expected error for malformed data_nascita")
	}
}

// Test media kind and extension whitelists
func TestMediaExtensionWhitelist(t *testing.T) {
	if !IsAllowedExtension(MediaKindOtoscope, ".jpg") {
		t.Error("Expected .jpg to be allowed for otoscope uploads")
	}
	if !IsAllowedExtension(MediaKindOtoscope, ".JPG") {
		t.Error("Expected extension check to be case-insensitive")
	}
	if IsAllowedExtension(MediaKindDocument, ".exe") {
		t.Error("Expected .exe to be rejected for document uploads")
	}
	if !IsAllowedExtension(MediaKindStethoscope, ".wav") {
		t.Error("Expected .wav to be allowed for stethoscope uploads")
	}

	if IsValidMediaKind("screenshot") {
		t.Error("Expected unknown media kind to be invalid")
	}
	if !IsValidMediaKind(MediaKindDocument) {
		t.Error("Expected document to be a valid media kind")
	}
}
