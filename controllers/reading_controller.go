package controllers

import (
	"net/http"
	"strconv"

	"github.com/vitalink/telemonitor/models"
	"github.com/vitalink/telemonitor/services"
)

// ReadingController handles health reading requests
type ReadingController struct {
	services *services.Services
}

// NewReadingController creates a new reading controller
func NewReadingController(services *services.Services) *ReadingController {
	return &ReadingController{
		services: services,
	}
}

// ListByPatient handles GET /patients/{id}/readings
func (c *ReadingController) ListByPatient(w http.ResponseWriter, r *http.Request) {
	patientID, err := pathID(r)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	readings, err := c.services.Reading.ListByPatient(r.Context(), patientID, limit, offset)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if readings == nil {
		readings = []models.HealthReading{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"readings": readings,
	})
}

// Latest handles GET /patients/{id}/readings/latest
func (c *ReadingController) Latest(w http.ResponseWriter, r *http.Request) {
	patientID, err := pathID(r)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	reading, err := c.services.Reading.LatestByPatient(r.Context(), patientID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"reading": reading,
		"alert":   reading.IsAlert(),
	})
}

// Create handles POST /patients/{id}/readings
func (c *ReadingController) Create(w http.ResponseWriter, r *http.Request) {
	patientID, err := pathID(r)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	var form models.HealthReadingForm
	if err := decodeJSON(r, &form); err != nil {
		respondServiceError(w, err)
		return
	}

	reading, err := c.services.Reading.Create(r.Context(), patientID, &form)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"reading": reading,
		"alert":   reading.IsAlert(),
	})
}
