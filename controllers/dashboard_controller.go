package controllers

import (
	"net/http"

	"github.com/vitalink/telemonitor/services"
)

// DashboardController handles dashboard statistics requests
type DashboardController struct {
	services *services.Services
}

// NewDashboardController creates a new dashboard controller
func NewDashboardController(services *services.Services) *DashboardController {
	return &DashboardController{
		services: services,
	}
}

// Stats handles GET /dashboard/stats
func (c *DashboardController) Stats(w http.ResponseWriter, r *http.Request) {
	snapshot, err := c.services.Dashboard.ComputeSnapshot(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"stats":   snapshot,
	})
}
