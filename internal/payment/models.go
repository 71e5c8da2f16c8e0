package payment

import (
	"time"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/badge"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/pagination"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/query"
)

type Status string

const (
	StatusPaid      Status = "paye"
	StatusPartial   Status = "partiel"
	StatusPending   Status = "en_attente"
	StatusOverdue   Status = "en_retard"
	StatusCancelled Status = "annule"
)

var Statuses = []Status{StatusPaid, StatusPartial, StatusPending, StatusOverdue, StatusCancelled}

type Method string

const (
	MethodCash      Method = "especes"
	MethodCard      Method = "carte"
	MethodCheque    Method = "cheque"
	MethodTransfer  Method = "virement"
	MethodInsurance Method = "assurance"
)

// Methods is in dashboard display order
var Methods = []Method{MethodCard, MethodCash, MethodInsurance, MethodTransfer, MethodCheque}

type Type string

const (
	TypeConsultation Type = "consultation"
	TypeTreatment    Type = "traitement"
	TypeMedication   Type = "medicament"
	TypeExam         Type = "examen"
	TypeOther        Type = "autre"
)

// Types is in dashboard display order
var Types = []Type{TypeConsultation, TypeTreatment, TypeExam, TypeMedication, TypeOther}

// Period values accepted by ListFilter.Period
const (
	PeriodDay   = "jour"
	PeriodWeek  = "semaine"
	PeriodMonth = "mois"
	PeriodYear  = "annee"
)

type Payment struct {
	ID            string    `json:"id"`
	PatientID     string    `json:"patient_id"`
	PatientName   string    `json:"patient_name"`
	PatientPhone  string    `json:"patient_phone"`
	Amount        float64   `json:"amount"`
	AmountDue     float64   `json:"amount_due"`
	AmountPaid    float64   `json:"amount_paid"`
	Remaining     float64   `json:"remaining"`
	Date          string    `json:"date"`
	DueDate       string    `json:"due_date"`
	Method        Method    `json:"method"`
	Status        Status    `json:"status"`
	Type          Type      `json:"type"`
	Description   string    `json:"description"`
	InvoiceNumber string    `json:"invoice_number"`
	Notes         string    `json:"notes,omitempty"`
	ReminderSent  bool      `json:"reminder_sent"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (p Payment) RecordID() string { return p.ID }

// PaidRatio is the percentage of the amount due that has been paid
func (p Payment) PaidRatio() float64 {
	return query.Percent(p.AmountPaid, p.AmountDue)
}

// SetPaid records a new paid amount and keeps Remaining = AmountDue - AmountPaid.
// Remaining goes negative on overpayment.
func (p *Payment) SetPaid(amount float64) {
	p.AmountPaid = amount
	p.Remaining = p.AmountDue - amount
}

// DeriveStatus is the status a new payment gets from its amounts
func DeriveStatus(due, paid float64) Status {
	switch {
	case paid <= 0:
		return StatusPending
	case paid < due:
		return StatusPartial
	default:
		return StatusPaid
	}
}

type PaymentView struct {
	Payment
	PaidPercent float64      `json:"paid_percent"`
	StatusBadge *badge.Badge `json:"status_badge,omitempty"`
	MethodBadge *badge.Badge `json:"method_badge,omitempty"`
}

type CreatePaymentRequest struct {
	PatientID     string  `json:"patient_id"`
	PatientName   string  `json:"patient_name"`
	PatientPhone  string  `json:"patient_phone"`
	AmountDue     float64 `json:"amount_due"`
	AmountPaid    float64 `json:"amount_paid"`
	Date          string  `json:"date"`
	DueDate       string  `json:"due_date"`
	Method        Method  `json:"method"`
	Type          Type    `json:"type"`
	Description   string  `json:"description"`
	InvoiceNumber string  `json:"invoice_number"`
	Notes         string  `json:"notes"`
}

// UpdateStatusRequest sets the status and, when AmountPaid is present, the
// paid amount. Status is not derived from the amounts here.
type UpdateStatusRequest struct {
	Status     Status   `json:"status"`
	AmountPaid *float64 `json:"amount_paid,omitempty"`
}

// ListFilter selects payments. Search matches patient name, invoice number
// and description.
type ListFilter struct {
	Search string
	Status string
	Type   string
	Period string
}

type FinancialStats struct {
	TotalRevenue   float64 `json:"total_revenue"`
	TodayRevenue   float64 `json:"today_revenue"`
	MonthRevenue   float64 `json:"month_revenue"`
	Pending        float64 `json:"pending"`
	Overdue        float64 `json:"overdue"`
	Count          int     `json:"count"`
	CollectionRate float64 `json:"collection_rate"`
	AveragePayment float64 `json:"average_payment"`
}

type ListResult struct {
	Payments   []PaymentView    `json:"payments"`
	Stats      FinancialStats   `json:"stats"`
	Total      int              `json:"total"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
}

type Breakdown struct {
	Methods []query.Share `json:"methods"`
	Types   []query.Share `json:"types"`
}
