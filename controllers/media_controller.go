package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vitalink/telemonitor/models"
	"github.com/vitalink/telemonitor/repositories"
	"github.com/vitalink/telemonitor/services"
	"github.com/vitalink/telemonitor/userctx"
)

// maxUploadSize bounds the multipart memory buffer (32 MB)
const maxUploadSize = 32 << 20

// MediaController handles diagnostic media upload requests
type MediaController struct {
	services *services.Services
}

// NewMediaController creates a new media controller
func NewMediaController(services *services.Services) *MediaController {
	return &MediaController{
		services: services,
	}
}

// Upload handles POST /uploads/{kind}
func (c *MediaController) Upload(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	// The documents route reads more naturally in the plural
	if kind == "documents" {
		kind = models.MediaKindDocument
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart payload", err.Error())
		return
	}

	_, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "file field is required")
		return
	}

	var patientID *int
	if v := r.FormValue("patient_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "patient_id must be an integer")
			return
		}
		patientID = &id
	}

	uploadedBy := ""
	if identity, ok := userctx.GetStaff(r.Context()); ok {
		uploadedBy = identity.Username
	}

	file, err := c.services.Media.Store(r.Context(), kind, patientID, uploadedBy, header)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"file":    file,
	})
}

// List handles GET /uploads
func (c *MediaController) List(w http.ResponseWriter, r *http.Request) {
	filter := repositories.MediaFilter{
		Kind: r.URL.Query().Get("kind"),
	}

	if v := r.URL.Query().Get("patient_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "patient_id must be an integer")
			return
		}
		filter.PatientID = &id
	}

	files, err := c.services.Media.List(r.Context(), filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if files == nil {
		files = []models.MediaFile{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"files":   files,
	})
}
