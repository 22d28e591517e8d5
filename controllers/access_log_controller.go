package controllers

import (
	"net/http"
	"strconv"

	"github.com/vitalink/telemonitor/models"
	"github.com/vitalink/telemonitor/services"
)

// AccessLogController handles access log recording and retrieval
type AccessLogController struct {
	services *services.Services
}

// NewAccessLogController creates a new access log controller
func NewAccessLogController(services *services.Services) *AccessLogController {
	return &AccessLogController{
		services: services,
	}
}

// List handles GET /access-logs
func (c *AccessLogController) List(w http.ResponseWriter, r *http.Request) {
	filter := models.AccessLogFilter{
		Action: r.URL.Query().Get("action_type"),
	}

	if v := r.URL.Query().Get("user_id"); v != "" {
		userID, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "user_id must be an integer")
			return
		}
		filter.UserID = &userID
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		filter.Limit = limit
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "offset must be an integer")
			return
		}
		filter.Offset = offset
	}

	entries, pagination, err := c.services.AccessLog.List(r.Context(), filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	// Keep logs an empty array rather than null when nothing matches
	if entries == nil {
		entries = []models.AccessLogEntry{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"logs":       entries,
		"pagination": pagination,
	})
}

// Create handles POST /access-logs
func (c *AccessLogController) Create(w http.ResponseWriter, r *http.Request) {
	var form models.AccessLogForm
	if err := decodeJSON(r, &form); err != nil {
		respondServiceError(w, err)
		return
	}

	// Fill connection details from the request when the client omits them
	if form.IPAddress == "" {
		form.IPAddress = clientIP(r)
	}
	if form.UserAgent == "" {
		form.UserAgent = r.UserAgent()
	}

	entry, err := c.services.AccessLog.Record(r.Context(), &form)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"log":     entry,
	})
}
