package prescription

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

type PrescriptionSuccessResponse struct {
	Success      bool              `json:"success"`
	Message      string            `json:"message"`
	Prescription *PrescriptionView `json:"prescription,omitempty"`
}

type PrescriptionListResponse struct {
	Success bool `json:"success"`
	*ListResult
}

func (h *Handler) ListMedications(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	meds, err := h.service.Medications(r.Context(), q.Get("search"), q.Get("category"))
	if err != nil {
		respondServiceError(w, err, "fetch_failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"medications": meds,
		"categories":  Categories(),
		"total":       len(meds),
	})
}

func (h *Handler) ListPrescriptions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.service.List(r.Context(), ListFilter{
		Search: q.Get("search"),
		Status: q.Get("status"),
	})
	if err != nil {
		respondServiceError(w, err, "fetch_failed")
		return
	}

	if pagination.Requested(r) {
		page, meta := pagination.Slice(result.Prescriptions, pagination.ParseParams(r))
		result.Prescriptions = page
		result.Pagination = &meta
	}

	respondJSON(w, http.StatusOK, PrescriptionListResponse{Success: true, ListResult: result})
}

func (h *Handler) GetPrescription(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err, "fetch_failed")
		return
	}
	respondJSON(w, http.StatusOK, PrescriptionSuccessResponse{
		Success:      true,
		Message:      "Prescription retrieved successfully",
		Prescription: p,
	})
}

func (h *Handler) CreatePrescription(w http.ResponseWriter, r *http.Request) {
	var req CreatePrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	p, err := h.service.Create(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "creation_failed")
		return
	}
	respondJSON(w, http.StatusCreated, PrescriptionSuccessResponse{
		Success:      true,
		Message:      "Prescription created successfully",
		Prescription: p,
	})
}

func (h *Handler) UpdatePrescriptionStatus(w http.ResponseWriter, r *http.Request) {
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
	respondJSON(w, http.StatusOK, PrescriptionSuccessResponse{
		Success:      true,
		Message:      "Prescription status updated successfully",
		Prescription: p,
	})
}

func respondServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, ErrPrescriptionNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ErrInvalidTransition):
		respondError(w, http.StatusConflict, "invalid_transition", err.Error())
	default:
		log.Printf("[ERROR] prescription request failed: %v", err)
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
