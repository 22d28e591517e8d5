package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vitalink/telemonitor/models"
	"github.com/vitalink/telemonitor/repositories"
	"github.com/vitalink/telemonitor/services"
)

// PatientController handles patient CRUD requests
type PatientController struct {
	services *services.Services
}

// NewPatientController creates a new patient controller
func NewPatientController(services *services.Services) *PatientController {
	return &PatientController{
		services: services,
	}
}

// List handles GET /patients
func (c *PatientController) List(w http.ResponseWriter, r *http.Request) {
	filter := repositories.PatientFilter{
		Search: r.URL.Query().Get("search"),
	}

	if v := r.URL.Query().Get("active"); v != "" {
		active := v == "true" || v == "1"
		filter.Active = &active
	}

	patients, err := c.services.Patient.GetAll(r.Context(), filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if patients == nil {
		patients = []models.Patient{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"patients": patients,
	})
}

// Get handles GET /patients/{id}
func (c *PatientController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	patient, err := c.services.Patient.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"patient": patient,
	})
}

// Create handles POST /patients
func (c *PatientController) Create(w http.ResponseWriter, r *http.Request) {
	var form models.PatientForm
	if err := decodeJSON(r, &form); err != nil {
		respondServiceError(w, err)
		return
	}

	patient, err := c.services.Patient.Create(r.Context(), &form)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"patient": patient,
	})
}

// Update handles PUT /patients/{id}
func (c *PatientController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	var form models.PatientForm
	if err := decodeJSON(r, &form); err != nil {
		respondServiceError(w, err)
		return
	}

	patient, err := c.services.Patient.Update(r.Context(), id, &form)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"patient": patient,
	})
}

// Delete handles DELETE /patients/{id}
func (c *PatientController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if err := c.services.Patient.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// Deactivate handles POST /patients/{id}/deactivate
func (c *PatientController) Deactivate(w http.ResponseWriter, r *http.Request) {
	c.setActive(w, r, false)
}

// Activate handles POST /patients/{id}/activate
func (c *PatientController) Activate(w http.ResponseWriter, r *http.Request) {
	c.setActive(w, r, true)
}

func (c *PatientController) setActive(w http.ResponseWriter, r *http.Request, active bool) {
	id, err := pathID(r)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if active {
		err = c.services.Patient.Activate(r.Context(), id)
	} else {
		err = c.services.Patient.Deactivate(r.Context(), id)
	}
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// pathID parses the {id} URL parameter
func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, models.NewValidationError("id", "id must be a positive integer")
	}
	return id, nil
}
