package http

import (
	"net/http"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/appointment"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/auth"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/dental"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/live"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/messaging"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/patient"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/payment"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/prescription"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/reports"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/telemetry"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

// Services groups everything the router exposes. Verifier may be nil, in
// which case every route is public.
type Services struct {
	Patients      patient.ServiceInterface
	Appointments  appointment.ServiceInterface
	Payments      payment.ServiceInterface
	Prescriptions prescription.ServiceInterface
	Dental        dental.ServiceInterface
	Reports       reports.ServiceInterface

	Hub            *live.Hub
	AllowedOrigins []string

	Verifier    *auth.Verifier
	Permissions auth.Permissions
	Metrics     *telemetry.Metrics
}

// SetupRouter initializes all routes for the application
func SetupRouter(s Services) *mux.Router {
	patientHandler := patient.NewHandler(s.Patients)
	appointmentHandler := appointment.NewHandler(s.Appointments)
	paymentHandler := payment.NewHandler(s.Payments)
	prescriptionHandler := prescription.NewHandler(s.Prescriptions)
	dentalHandler := dental.NewHandler(s.Dental)
	reportHandler := reports.NewHandler(s.Reports)

	r := mux.NewRouter()

	// Public health endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"` + messaging.ServiceName + `"}`))
	}).Methods("GET")

	protect := guard(s.Verifier, s.Permissions, s.Metrics)

	// Live updates hijack the connection, so they stay out of the
	// instrumented subrouter
	if s.Hub != nil {
		r.Handle("/ws", protect("live:view", live.ServeWS(s.Hub, s.AllowedOrigins))).Methods("GET")
	}

	api := r.PathPrefix("/").Subrouter()
	api.Use(otelmux.Middleware(messaging.ServiceName))
	api.Use(telemetry.HTTPMiddleware(s.Metrics))

	// Patient routes
	api.Handle("/patients", protect("patient:view", patientHandler.ListPatients)).Methods("GET")
	api.Handle("/patients", protect("patient:create", patientHandler.CreatePatient)).Methods("POST")
	api.Handle("/patients/{id}", protect("patient:view", patientHandler.GetPatient)).Methods("GET")
	api.Handle("/patients/{id}", protect("patient:update", patientHandler.UpdatePatient)).Methods("PUT")
	api.Handle("/patients/{id}/status", protect("patient:update", patientHandler.UpdatePatientStatus)).Methods("PATCH")
	api.Handle("/patients/{id}/treatments", protect("patient:update", patientHandler.AddTreatment)).Methods("POST")
	api.Handle("/patients/{id}/sessions", protect("patient:update", patientHandler.AddSession)).Methods("POST")
	api.Handle("/patients/{id}/payments", protect("patient:update", patientHandler.AddPayment)).Methods("POST")

	// Appointment routes, fixed paths before {id}
	api.Handle("/appointments/options", protect("appointment:view", appointmentHandler.GetOptions)).Methods("GET")
	api.Handle("/appointments/day", protect("appointment:view", appointmentHandler.GetDay)).Methods("GET")
	api.Handle("/appointments/slots", protect("appointment:view", appointmentHandler.GetSlots)).Methods("GET")
	api.Handle("/appointments", protect("appointment:view", appointmentHandler.ListAppointments)).Methods("GET")
	api.Handle("/appointments", protect("appointment:create", appointmentHandler.CreateAppointment)).Methods("POST")
	api.Handle("/appointments/{id}", protect("appointment:view", appointmentHandler.GetAppointment)).Methods("GET")
	api.Handle("/appointments/{id}/status", protect("appointment:update", appointmentHandler.UpdateAppointmentStatus)).Methods("PATCH")
	api.Handle("/appointments/{id}/reminder", protect("appointment:update", appointmentHandler.SendReminder)).Methods("POST")

	// Payment routes
	api.Handle("/payments/stats", protect("payment:view", paymentHandler.GetStats)).Methods("GET")
	api.Handle("/payments/outstanding", protect("payment:view", paymentHandler.GetOutstanding)).Methods("GET")
	api.Handle("/payments/breakdown", protect("payment:view", paymentHandler.GetBreakdown)).Methods("GET")
	api.Handle("/payments", protect("payment:view", paymentHandler.ListPayments)).Methods("GET")
	api.Handle("/payments", protect("payment:create", paymentHandler.CreatePayment)).Methods("POST")
	api.Handle("/payments/{id}", protect("payment:view", paymentHandler.GetPayment)).Methods("GET")
	api.Handle("/payments/{id}/status", protect("payment:update", paymentHandler.UpdatePaymentStatus)).Methods("PATCH")
	api.Handle("/payments/{id}/reminder", protect("payment:update", paymentHandler.SendReminder)).Methods("POST")

	// Prescription routes
	api.Handle("/medications", protect("prescription:view", prescriptionHandler.ListMedications)).Methods("GET")
	api.Handle("/prescriptions", protect("prescription:view", prescriptionHandler.ListPrescriptions)).Methods("GET")
	api.Handle("/prescriptions", protect("prescription:create", prescriptionHandler.CreatePrescription)).Methods("POST")
	api.Handle("/prescriptions/{id}", protect("prescription:view", prescriptionHandler.GetPrescription)).Methods("GET")
	api.Handle("/prescriptions/{id}/status", protect("prescription:update", prescriptionHandler.UpdatePrescriptionStatus)).Methods("PATCH")

	// Dental routes
	api.Handle("/dental/teeth", protect("dental:view", dentalHandler.ListTeeth)).Methods("GET")
	api.Handle("/dental/patients/{patientId}/chart", protect("dental:view", dentalHandler.GetChart)).Methods("GET")
	api.Handle("/dental/problems", protect("dental:view", dentalHandler.ListProblems)).Methods("GET")
	api.Handle("/dental/problems", protect("dental:create", dentalHandler.CreateProblem)).Methods("POST")
	api.Handle("/dental/problems/{id}", protect("dental:view", dentalHandler.GetProblem)).Methods("GET")
	api.Handle("/dental/problems/{id}/status", protect("dental:update", dentalHandler.UpdateProblemStatus)).Methods("PATCH")
	api.Handle("/dental/problems/{id}/sessions", protect("dental:update", dentalHandler.AddSession)).Methods("POST")
	api.Handle("/dental/problems/{id}/sessions/{sessionId}/status", protect("dental:update", dentalHandler.UpdateSessionStatus)).Methods("PATCH")
	api.Handle("/dental/problems/{id}/payments", protect("dental:update", dentalHandler.RecordPayment)).Methods("POST")

	// Reports
	api.Handle("/reports", protect("report:view", reportHandler.GetAnalytics)).Methods("GET")
	api.Handle("/reports/overview", protect("report:view", reportHandler.GetOverview)).Methods("GET")
	api.Handle("/reports/export", protect("report:view", reportHandler.Export)).Methods("GET")

	return r
}

// guard builds the per-route auth chain: token validation, then the
// permission check for the route
func guard(verifier *auth.Verifier, perms auth.Permissions, metrics *telemetry.Metrics) func(string, http.HandlerFunc) http.Handler {
	return func(permission string, h http.HandlerFunc) http.Handler {
		if verifier == nil {
			return h
		}
		if metrics == nil {
			return auth.Middleware(verifier)(
				auth.RequirePermission(permission, perms)(h),
			)
		}
		return auth.MiddlewareWithMetrics(verifier, metrics)(
			auth.RequirePermissionWithMetrics(permission, perms, metrics)(h),
		)
	}
}
