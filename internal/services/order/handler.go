package order

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"restaurant-backoffice/internal/httpx"
	"restaurant-backoffice/internal/logger"
	"restaurant-backoffice/internal/models"
	"restaurant-backoffice/internal/services/order/internal/validation"
)

// IdempotencyHeader lets clients retry order creation safely
const IdempotencyHeader = "Idempotency-Key"

// Handler handles HTTP requests for orders
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new order handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Register mounts the order routes on mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/orders", h.CreateOrder)
	mux.HandleFunc("GET /api/orders", h.ListOrders)
	mux.HandleFunc("GET /api/orders/{id}", h.GetOrder)
	mux.HandleFunc("GET /api/orders/{id}/history", h.GetHistory)
	mux.HandleFunc("PUT /api/orders/{id}/status", h.UpdateStatus)
}

// CreateOrder handles POST /api/orders requests
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r.Context())

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		httpx.WriteError(w, http.StatusBadRequest, "Content-Type must be application/json", requestID)
		return
	}

	var req models.CreateOrderRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		h.logger.Debug("validation_failed", "Failed to parse request body", requestID, map[string]interface{}{
			"error": err.Error(),
		})
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}

	order, err := h.service.CreateOrder(r.Context(), &req, r.Header.Get(IdempotencyHeader), requestID)
	if err != nil {
		h.writeServiceError(w, err, "order_creation_failed", requestID)
		return
	}

	if err := httpx.WriteJSON(w, http.StatusCreated, "Order created successfully", order); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", requestID, err, nil)
	}
}

// ListOrders handles GET /api/orders, optionally filtered by ?status=
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r.Context())

	orders, err := h.service.ListOrders(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		h.writeServiceError(w, err, "order_list_failed", requestID)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, "Fetched orders", orders)
}

// GetOrder handles GET /api/orders/{id}
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r.Context())

	id, ok := h.pathID(w, r, requestID)
	if !ok {
		return
	}

	order, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "order_get_failed", requestID)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, "Fetched order", order)
}

// GetHistory handles GET /api/orders/{id}/history
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r.Context())

	id, ok := h.pathID(w, r, requestID)
	if !ok {
		return
	}

	history, err := h.service.History(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, err, "order_history_failed", requestID)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, "Fetched order history", history)
}

// UpdateStatus handles PUT /api/orders/{id}/status?status=preparing
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	requestID := httpx.RequestID(r.Context())

	id, ok := h.pathID(w, r, requestID)
	if !ok {
		return
	}

	status := r.URL.Query().Get("status")
	if status == "" {
		httpx.WriteError(w, http.StatusBadRequest, "status query parameter is required", requestID)
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), id, status, r.URL.Query().Get("changed_by"), requestID)
	if err != nil {
		h.writeServiceError(w, err, "order_status_update_failed", requestID)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, "Order status updated", order)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, requestID string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, "invalid order id", requestID)
		return 0, false
	}
	return id, true
}

// writeServiceError maps service errors onto HTTP statuses
func (h *Handler) writeServiceError(w http.ResponseWriter, err error, action, requestID string) {
	var ve validation.ValidationError
	switch {
	case errors.As(err, &ve), errors.Is(err, models.ErrInvalidStatus):
		h.logger.Debug("validation_failed", err.Error(), requestID, nil)
		httpx.WriteError(w, http.StatusBadRequest, err.Error(), requestID)
	case errors.Is(err, models.ErrMenuItemNotFound), errors.Is(err, models.ErrOrderNotFound):
		httpx.WriteError(w, http.StatusNotFound, err.Error(), requestID)
	case errors.Is(err, models.ErrDuplicateRequest):
		httpx.WriteError(w, http.StatusConflict, err.Error(), requestID)
	default:
		h.logger.Error(action, "Request failed", requestID, err, nil)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error", requestID)
	}
}
