package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/vitalink/telemonitor/models"
	"github.com/vitalink/telemonitor/services"
)

// Controllers holds all controller instances
type Controllers struct {
	Auth      *AuthController
	Patient   *PatientController
	Device    *DeviceController
	Reading   *ReadingController
	AccessLog *AccessLogController
	Dashboard *DashboardController
	Media     *MediaController
}

// NewControllers creates and initializes all controller instances
func NewControllers(services *services.Services) *Controllers {
	return &Controllers{
		Auth:      NewAuthController(services),
		Patient:   NewPatientController(services),
		Device:    NewDeviceController(services),
		Reading:   NewReadingController(services),
		AccessLog: NewAccessLogController(services),
		Dashboard: NewDashboardController(services),
		Media:     NewMediaController(services),
	}
}

// respondJSON writes payload as JSON with the given status code
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// respondError writes the failure envelope {success:false, error, details?}
func respondError(w http.ResponseWriter, status int, message string, details ...string) {
	payload := map[string]interface{}{
		"success": false,
		"error":   message,
	}
	if len(details) > 0 && details[0] != "" {
		payload["details"] = details[0]
	}
	respondJSON(w, status, payload)
}

// respondServiceError maps service errors onto HTTP statuses: validation
// failures become 400, missing entities 404, bad credentials 401 and
// everything else a 500 with the underlying detail string.
func respondServiceError(w http.ResponseWriter, err error) {
	var validationErr *models.ValidationError
	var notFoundErr *models.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		respondError(w, http.StatusBadRequest, validationErr.Message)
	case errors.As(err, &notFoundErr):
		respondError(w, http.StatusNotFound, notFoundErr.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid credentials")
	default:
		log.Printf("Internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error", err.Error())
	}
}

// decodeJSON parses the request body into dst
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return models.NewValidationError("body", "invalid JSON body")
	}
	return nil
}

// clientIP extracts the client address, checking proxy headers first
func clientIP(r *http.Request) string {
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded != "" {
		// Take first IP if multiple
		ips := strings.Split(forwarded, ",")
		return strings.TrimSpace(ips[0])
	}

	realIP := r.Header.Get("X-Real-IP")
	if realIP != "" {
		return realIP
	}

	ip := r.RemoteAddr
	// Remove port if present
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}
	return ip
}
