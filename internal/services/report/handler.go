package report

import (
	"net/http"
	"strconv"

	"restaurant-backoffice/internal/httpx"
	"restaurant-backoffice/internal/logger"
)

// Handler serves the monthly report
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new report handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// Register mounts the report routes on mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/reports", h.GetReport)
}

// GetReport handles GET /api/reports?year=2025&month=3. Missing parameters
// default to the current year and month.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r.Context())
	current := h.service.CurrentPeriod()

	year, ok := intParam(r, "year", current.Year)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "year must be an integer", requestID)
		return
	}
	month, ok := intParam(r, "month", current.Month)
	if !ok {
		httpx.WriteError(w, http.StatusBadRequest, "month must be an integer", requestID)
		return
	}

	report, err := h.service.Build(r.Context(), year, month, requestID)
	if err != nil {
		h.logger.Error("report_failed", "Failed to build report", requestID, err, map[string]interface{}{
			"year":  year,
			"month": month,
		})
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, "Reports fetched successfully", report)
}

func intParam(r *http.Request, name string, fallback int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
