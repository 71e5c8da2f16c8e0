package patient

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

type PatientSuccessResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Patient *PatientView `json:"patient,omitempty"`
}

type PatientListResponse struct {
	Success bool `json:"success"`
	*ListResult
}

func (h *Handler) ListPatients(w http.ResponseWriter, r *http.Request) {
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
		page, meta := pagination.Slice(result.Patients, pagination.ParseParams(r))
		result.Patients = page
		result.Pagination = &meta
	}

	respondJSON(w, http.StatusOK, PatientListResponse{Success: true, ListResult: result})
}

func (h *Handler) GetPatient(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Patient ID is required")
		return
	}

	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "fetch_failed")
		return
	}

	respondJSON(w, http.StatusOK, PatientSuccessResponse{
		Success: true,
		Message: "Patient retrieved successfully",
		Patient: p,
	})
}

func (h *Handler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var req CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	p, err := h.service.Create(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "creation_failed")
		return
	}

	respondJSON(w, http.StatusCreated, PatientSuccessResponse{
		Success: true,
		Message: "Patient created successfully",
		Patient: p,
	})
}

func (h *Handler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req UpdatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	p, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		respondServiceError(w, err, "update_failed")
		return
	}

	respondJSON(w, http.StatusOK, PatientSuccessResponse{
		Success: true,
		Message: "Patient updated successfully",
		Patient: p,
	})
}

func (h *Handler) UpdatePatientStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	p, err := h.service.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		respondServiceError(w, err, "update_failed")
		return
	}

	respondJSON(w, http.StatusOK, PatientSuccessResponse{
		Success: true,
		Message: "Patient status updated successfully",
		Patient: p,
	})
}

func (h *Handler) AddTreatment(w http.ResponseWriter, r *http.Request) {
	var req AddTreatmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	p, err := h.service.AddTreatment(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		respondServiceError(w, err, "creation_failed")
		return
	}

	respondJSON(w, http.StatusCreated, PatientSuccessResponse{
		Success: true,
		Message: "Treatment added successfully",
		Patient: p,
	})
}

func (h *Handler) AddSession(w http.ResponseWriter, r *http.Request) {
	var req AddSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	p, err := h.service.AddSession(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		respondServiceError(w, err, "creation_failed")
		return
	}

	respondJSON(w, http.StatusCreated, PatientSuccessResponse{
		Success: true,
		Message: "Session added successfully",
		Patient: p,
	})
}

func (h *Handler) AddPayment(w http.ResponseWriter, r *http.Request) {
	var req AddPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	p, err := h.service.AddPayment(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		respondServiceError(w, err, "creation_failed")
		return
	}

	respondJSON(w, http.StatusCreated, PatientSuccessResponse{
		Success: true,
		Message: "Payment added successfully",
		Patient: p,
	})
}

func respondServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, ErrPatientNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	default:
		log.Printf("[ERROR] patient request failed: %v", err)
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
