package dashboard

import (
	"net/http"

	"restaurant-backoffice/internal/httpx"
	"restaurant-backoffice/internal/logger"
)

// Handler serves dashboard statistics
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new dashboard handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// Register mounts the dashboard routes on mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/dashboard/stats", h.GetStats)
}

// GetStats handles GET /api/dashboard/stats
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r.Context())

	stats, err := h.service.Stats(r.Context(), requestID)
	if err != nil {
		h.logger.Error("dashboard_failed", "Failed to build dashboard stats", requestID, err, nil)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, "Dashboard stats fetched successfully", stats)
}
