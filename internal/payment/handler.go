package payment

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/pagination"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

type PaymentSuccessResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Payment *PaymentView `json:"payment,omitempty"`
}

type PaymentListResponse struct {
	Success bool `json:"success"`
	*ListResult
}

func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.service.List(r.Context(), ListFilter{
		Search: q.Get("search"),
		Status: q.Get("status"),
		Type:   q.Get("type"),
		Period: q.Get("period"),
	})
	if err != nil {
		respondServiceError(w, err, "fetch_failed")
		return
	}

	if pagination.Requested(r) {
		page, meta := pagination.Slice(result.Payments, pagination.ParseParams(r))
		result.Payments = page
		result.Pagination = &meta
	}

	respondJSON(w, http.StatusOK, PaymentListResponse{Success: true, ListResult: result})
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		respondServiceError(w, err, "fetch_failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"stats":   stats,
	})
}

func (h *Handler) GetOutstanding(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.Outstanding(r.Context())
	if err != nil {
		respondServiceError(w, err, "fetch_failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"payments": items,
		"total":    len(items),
	})
}

func (h *Handler) GetBreakdown(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Breakdown(r.Context())
	if err != nil {
		respondServiceError(w, err, "fetch_failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"breakdown": b,
	})
}

func (h *Handler) GetPayment(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err, "fetch_failed")
		return
	}
	respondJSON(w, http.StatusOK, PaymentSuccessResponse{
		Success: true,
		Message: "Payment retrieved successfully",
		Payment: p,
	})
}

func (h *Handler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	p, err := h.service.Create(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "creation_failed")
		return
	}
	respondJSON(w, http.StatusCreated, PaymentSuccessResponse{
		Success: true,
		Message: "Payment created successfully",
		Payment: p,
	})
}

func (h *Handler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	p, err := h.service.UpdateStatus(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		respondServiceError(w, err, "update_failed")
		return
	}
	respondJSON(w, http.StatusOK, PaymentSuccessResponse{
		Success: true,
		Message: "Payment status updated successfully",
		Payment: p,
	})
}

func (h *Handler) SendReminder(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.SendReminder(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err, "update_failed")
		return
	}
	respondJSON(w, http.StatusOK, PaymentSuccessResponse{
		Success: true,
		Message: "Reminder sent successfully",
		Payment: p,
	})
}

func respondServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, ErrPaymentNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ErrDuplicateInvoice):
		respondError(w, http.StatusConflict, "duplicate_invoice", err.Error())
	case errors.Is(err, ErrReminderNotAllowed):
		respondError(w, http.StatusConflict, "reminder_not_allowed", err.Error())
	default:
		log.Printf("[ERROR] payment request failed: %v", err)
		respondError(w, http.StatusInternalServerError, fallback, err.Error())
	}
}

func respondJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, statusCode int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   errorType,
		"message": message,
	})
}
