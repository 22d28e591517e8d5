package controllers

import (
	"net/http"
	"strconv"

	"github.com/vitalink/telemonitor/models"
	"github.com/vitalink/telemonitor/repositories"
	"github.com/vitalink/telemonitor/services"
)

// DeviceController handles device CRUD requests
type DeviceController struct {
	services *services.Services
}

// NewDeviceController creates a new device controller
func NewDeviceController(services *services.Services) *DeviceController {
	return &DeviceController{
		services: services,
	}
}

// List handles GET /devices
func (c *DeviceController) List(w http.ResponseWriter, r *http.Request) {
	var filter repositories.DeviceFilter

	if v := r.URL.Query().Get("active"); v != "" {
		active := v == "true" || v == "1"
		filter.Active = &active
	}
	if v := r.URL.Query().Get("patient_id"); v != "" {
		patientID, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "patient_id must be an integer")
			return
		}
		filter.PatientID = &patientID
	}

	devices, err := c.services.Device.GetAll(r.Context(), filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if devices == nil {
		devices = []models.Device{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"devices": devices,
	})
}

// Get handles GET /devices/{id}
func (c *DeviceController) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	device, err := c.services.Device.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"device":  device,
	})
}

// Create handles POST /devices
func (c *DeviceController) Create(w http.ResponseWriter, r *http.Request) {
	var form models.DeviceForm
	if err := decodeJSON(r, &form); err != nil {
		respondServiceError(w, err)
		return
	}

	device, err := c.services.Device.Create(r.Context(), &form)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"device":  device,
	})
}

// Update handles PUT /devices/{id}
func (c *DeviceController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	var form models.DeviceForm
	if err := decodeJSON(r, &form); err != nil {
		respondServiceError(w, err)
		return
	}

	device, err := c.services.Device.Update(r.Context(), id, &form)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"device":  device,
	})
}

// Delete handles DELETE /devices/{id}
func (c *DeviceController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if err := c.services.Device.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}
