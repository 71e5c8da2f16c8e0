package reports

import (
	"time"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/appointment"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/query"
)

type PatientAnalytics struct {
	Total     int                `json:"total"`
	New       int                `json:"new"`
	Active    int                `json:"active"`
	Inactive  int                `json:"inactive"`
	AgeGroups []query.Share      `json:"age_groups"`
	Sex       []query.Share      `json:"sex"`
	Trend     []query.TrendPoint `json:"trend"`
}

type AppointmentAnalytics struct {
	Total     int                `json:"total"`
	Completed int                `json:"completed"`
	Cancelled int                `json:"cancelled"`
	NoShow    int                `json:"no_show"`
	ByType    []query.Share      `json:"by_type"`
	ByDoctor  []query.Share      `json:"by_doctor"`
	Trend     []query.TrendPoint `json:"trend"`
}

type FinancialAnalytics struct {
	Revenue        float64            `json:"revenue"`
	RevenueGrowth  float64            `json:"revenue_growth"`
	Outstanding    float64            `json:"outstanding"`
	CollectionRate float64            `json:"collection_rate"`
	AveragePayment float64            `json:"average_payment"`
	ByMethod       []query.Share      `json:"by_method"`
	ByServiceType  []query.Share      `json:"by_service_type"`
	Trend          []query.TrendPoint `json:"trend"`
}

type PerformanceAnalytics struct {
	CompletionRate             float64 `json:"completion_rate"`
	CancellationRate           float64 `json:"cancellation_rate"`
	NoShowRate                 float64 `json:"no_show_rate"`
	AverageConsultationMinutes float64 `json:"average_consultation_minutes"`
	NewPatientRate             float64 `json:"new_patient_rate"`
}

type Analytics struct {
	Range        Window               `json:"range"`
	Patients     PatientAnalytics     `json:"patients"`
	Appointments AppointmentAnalytics `json:"appointments"`
	Financial    FinancialAnalytics   `json:"financial"`
	Performance  PerformanceAnalytics `json:"performance"`
	GeneratedAt  time.Time            `json:"generated_at"`
}

// Overview feeds the dashboard cards
type Overview struct {
	TotalPatients     int                       `json:"total_patients"`
	ActivePatients    int                       `json:"active_patients"`
	TodayAppointments int                       `json:"today_appointments"`
	TodayPending      int                       `json:"today_pending"`
	MonthRevenue      float64                   `json:"month_revenue"`
	PendingAmount     float64                   `json:"pending_amount"`
	Upcoming          []appointment.Appointment `json:"upcoming"`
}
