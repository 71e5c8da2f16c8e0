package dental

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

type ProblemSuccessResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Problem *ProblemView `json:"problem,omitempty"`
}

type ProblemListResponse struct {
	Success bool `json:"success"`
	*ListResult
}

func (h *Handler) ListTeeth(w http.ResponseWriter, r *http.Request) {
	teeth := Teeth()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"teeth":   teeth,
		"total":   len(teeth),
	})
}

func (h *Handler) GetChart(w http.ResponseWriter, r *http.Request) {
	chart, err := h.service.Chart(r.Context(), mux.Vars(r)["patientId"])
	if err != nil {
		respondServiceError(w, err, "fetch_failed")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"chart":   chart,
	})
}

func (h *Handler) ListProblems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.service.ListProblems(r.Context(), ProblemFilter{
		PatientID: q.Get("patient_id"),
		Tooth:     q.Get("tooth"),
		Severity:  q.Get("severity"),
		Status:    q.Get("status"),
		Search:    q.Get("search"),
	})
	if err != nil {
		respondServiceError(w, err, "fetch_failed")
		return
	}

	if pagination.Requested(r) {
		page, meta := pagination.Slice(result.Problems, pagination.ParseParams(r))
		result.Problems = page
		result.Pagination = &meta
	}

	respondJSON(w, http.StatusOK, ProblemListResponse{Success: true, ListResult: result})
}

func (h *Handler) GetProblem(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProblem(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err, "fetch_failed")
		return
	}
	respondJSON(w, http.StatusOK, ProblemSuccessResponse{
		Success: true,
		Message: "Tooth problem retrieved successfully",
		Problem: p,
	})
}

func (h *Handler) CreateProblem(w http.ResponseWriter, r *http.Request) {
	var req CreateProblemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	p, err := h.service.CreateProblem(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "creation_failed")
		return
	}
	respondJSON(w, http.StatusCreated, ProblemSuccessResponse{
		Success: true,
		Message: "Tooth problem created successfully",
		Problem: p,
	})
}

func (h *Handler) UpdateProblemStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateProblemStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	p, err := h.service.UpdateProblemStatus(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		respondServiceError(w, err, "update_failed")
		return
	}
	respondJSON(w, http.StatusOK, ProblemSuccessResponse{
		Success: true,
		Message: "Tooth problem status updated successfully",
		Problem: p,
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
		respondServiceError(w, err, "update_failed")
		return
	}
	respondJSON(w, http.StatusCreated, ProblemSuccessResponse{
		Success: true,
		Message: "Session added successfully",
		Problem: p,
	})
}

func (h *Handler) UpdateSessionStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateSessionStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	vars := mux.Vars(r)
	p, err := h.service.UpdateSessionStatus(r.Context(), vars["id"], vars["sessionId"], req)
	if err != nil {
		respondServiceError(w, err, "update_failed")
		return
	}
	respondJSON(w, http.StatusOK, ProblemSuccessResponse{
		Success: true,
		Message: "Session status updated successfully",
		Problem: p,
	})
}

func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	p, err := h.service.RecordPayment(r.Context(), mux.Vars(r)["id"], req)
	if err != nil {
		respondServiceError(w, err, "update_failed")
		return
	}
	respondJSON(w, http.StatusOK, ProblemSuccessResponse{
		Success: true,
		Message: "Payment recorded successfully",
		Problem: p,
	})
}

func respondServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, ErrProblemNotFound), errors.Is(err, ErrSessionNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ErrInvalidTransition):
		respondError(w, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, ErrProblemClosed):
		respondError(w, http.StatusConflict, "problem_closed", err.Error())
	default:
		log.Printf("[ERROR] dental request failed: %v", err)
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
