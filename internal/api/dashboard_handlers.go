package api

import (
	"net/http"

	"alumnihub/portal/internal/services"
)

type DashboardHandlers struct {
	dashboard *services.DashboardService
}

func NewDashboardHandlers(dashboard *services.DashboardService) *DashboardHandlers {
	return &DashboardHandlers{dashboard: dashboard}
}

// PortalStats handles GET /admin/stats.
func (h *DashboardHandlers) PortalStats(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboard.PortalStats(r.Context())
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult(w, result.OperationResult, http.StatusOK, result.Stats)
}

// Analytics handles GET /admin/analytics.
func (h *DashboardHandlers) Analytics(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboard.Analytics(r.Context())
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	respondWithResult(w, result.OperationResult, http.StatusOK, result.Analytics)
}
