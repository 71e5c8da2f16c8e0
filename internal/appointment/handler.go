package appointment

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/pagination"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/query"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

type AppointmentSuccessResponse struct {
	Success     bool             `json:"success"`
	Message     string           `json:"message"`
	Appointment *AppointmentView `json:"appointment,omitempty"`
}

type AppointmentListResponse struct {
	Success bool `json:"success"`
	*ListResult
}

type DayResponse struct {
	Success bool `json:"success"`
	*DayView
}

type SlotsResponse struct {
	Success bool       `json:"success"`
	Date    string     `json:"date"`
	Doctor  string     `json:"doctor,omitempty"`
	Slots   []TimeSlot `json:"slots"`
}

func (h *Handler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, err := h.service.List(r.Context(), ListFilter{
		Search: q.Get("search"),
		Status: q.Get("status"),
		Doctor: q.Get("doctor"),
		Date:   q.Get("date"),
	})
	if err != nil {
		respondServiceError(w, err, "fetch_failed")
		return
	}

	if pagination.Requested(r) {
		page, meta := pagination.Slice(result.Appointments, pagination.ParseParams(r))
		result.Appointments = page
		result.Pagination = &meta
	}

	respondJSON(w, http.StatusOK, AppointmentListResponse{Success: true, ListResult: result})
}

func (h *Handler) GetOptions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"options": h.service.Options(),
	})
}

// GetDay serves ?date=YYYY-MM-DD, defaulting to today
func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")

	var (
		day *DayView
		err error
	)
	if date == "" {
		day, err = h.service.Today(r.Context())
	} else {
		day, err = h.service.Day(r.Context(), date)
	}
	if err != nil {
		respondServiceError(w, err, "fetch_failed")
		return
	}

	respondJSON(w, http.StatusOK, DayResponse{Success: true, DayView: day})
}

func (h *Handler) GetSlots(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "date query parameter is required")
		return
	}
	doctor := r.URL.Query().Get("doctor")

	slots, err := h.service.AvailableSlots(r.Context(), date, doctor)
	if err != nil {
		respondServiceError(w, err, "fetch_failed")
		return
	}

	if query.IsAll(doctor) {
		doctor = ""
	}
	respondJSON(w, http.StatusOK, SlotsResponse{Success: true, Date: date, Doctor: doctor, Slots: slots})
}

func (h *Handler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err, "fetch_failed")
		return
	}

	respondJSON(w, http.StatusOK, AppointmentSuccessResponse{
		Success:     true,
		Message:     "Appointment retrieved successfully",
		Appointment: a,
	})
}

func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	a, err := h.service.Create(r.Context(), req)
	if err != nil {
		respondServiceError(w, err, "creation_failed")
		return
	}

	respondJSON(w, http.StatusCreated, AppointmentSuccessResponse{
		Success:     true,
		Message:     "Appointment created successfully",
		Appointment: a,
	})
}

func (h *Handler) UpdateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	a, err := h.service.UpdateStatus(r.Context(), mux.Vars(r)["id"], req.Status)
	if err != nil {
		respondServiceError(w, err, "update_failed")
		return
	}

	respondJSON(w, http.StatusOK, AppointmentSuccessResponse{
		Success:     true,
		Message:     "Appointment status updated successfully",
		Appointment: a,
	})
}

func (h *Handler) SendReminder(w http.ResponseWriter, r *http.Request) {
	a, err := h.service.MarkReminderSent(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err, "update_failed")
		return
	}

	respondJSON(w, http.StatusOK, AppointmentSuccessResponse{
		Success:     true,
		Message:     "Reminder sent successfully",
		Appointment: a,
	})
}

func respondServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		respondError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, ErrAppointmentNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrReminderNotAllowed):
		respondError(w, http.StatusConflict, "invalid_transition", err.Error())
	case errors.Is(err, ErrSlotTaken):
		respondError(w, http.StatusConflict, "slot_taken", err.Error())
	default:
		log.Printf("[ERROR] appointment request failed: %v", err)
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
