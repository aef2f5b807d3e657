package handlers

import (
	"net/http"

	"transitdesk/internal/service"
)

// DashboardHandler serves the back-office landing page counts
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Counts returns current entity totals
func (h *DashboardHandler) Counts(w http.ResponseWriter, r *http.Request) {
	counts, err := h.dashboardService.Counts()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to load dashboard", "Dashboard error", err)
		return
	}
	respondWithJSON(w, http.StatusOK, counts)
}
