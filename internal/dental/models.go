package dental

import (
	"time"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/badge"
	"github.com/WailSalutem-Health-Care/clinic-service/internal/pagination"
)

type Severity string

const (
	SeverityMild     Severity = "leger"
	SeverityModerate Severity = "moyen"
	SeveritySevere   Severity = "severe"
	SeverityUrgent   Severity = "urgent"
)

var Severities = []Severity{SeverityMild, SeverityModerate, SeveritySevere, SeverityUrgent}

type ProblemStatus string

const (
	ProblemPending    ProblemStatus = "en_attente"
	ProblemInProgress ProblemStatus = "en_cours"
	ProblemDone       ProblemStatus = "termine"
	ProblemCancelled  ProblemStatus = "annule"
)

var ProblemStatuses = []ProblemStatus{ProblemPending, ProblemInProgress, ProblemDone, ProblemCancelled}

var problemTransitions = map[ProblemStatus][]ProblemStatus{
	ProblemPending:    {ProblemInProgress, ProblemCancelled},
	ProblemInProgress: {ProblemDone, ProblemCancelled},
}

func CanTransition(from, to ProblemStatus) bool {
	for _, next := range problemTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Closed problems accept no new sessions
func (s ProblemStatus) Closed() bool {
	return s == ProblemDone || s == ProblemCancelled
}

type SessionStatus string

const (
	SessionScheduled SessionStatus = "programmee"
	SessionDone      SessionStatus = "terminee"
	SessionCancelled SessionStatus = "annulee"
)

var SessionStatuses = []SessionStatus{SessionScheduled, SessionDone, SessionCancelled}

// ChartStatus is the derived state of one tooth on a patient's chart
type ChartStatus string

const (
	ChartHealthy   ChartStatus = "healthy"
	ChartProblem   ChartStatus = "problem"
	ChartTreatment ChartStatus = "treatment"
	ChartSevere    ChartStatus = "severe"
	ChartUrgent    ChartStatus = "urgent"
)

var ChartStatuses = []ChartStatus{ChartHealthy, ChartProblem, ChartTreatment, ChartSevere, ChartUrgent}

type Quadrant string

const (
	UpperRight Quadrant = "maxillaire-droite"
	UpperLeft  Quadrant = "maxillaire-gauche"
	LowerLeft  Quadrant = "mandibulaire-gauche"
	LowerRight Quadrant = "mandibulaire-droite"
)

// Tooth is one adult tooth in FDI notation with its drawing position
type Tooth struct {
	Number   int      `json:"number"`
	Name     string   `json:"name"`
	Quadrant Quadrant `json:"quadrant"`
	X        int      `json:"x"`
	Y        int      `json:"y"`
}

type Session struct {
	ID        string        `json:"id"`
	Date      string        `json:"date"`
	Duration  int           `json:"duration"`
	Treatment string        `json:"treatment"`
	Notes     string        `json:"notes"`
	Status    SessionStatus `json:"status"`
	Doctor    string        `json:"doctor"`
	Cost      float64       `json:"cost"`
}

// Problem is a diagnosed issue on one tooth. Cost is the sum of its
// non-cancelled sessions; EstimatedCost is the figure quoted at diagnosis.
type Problem struct {
	ID            string        `json:"id"`
	Tooth         int           `json:"tooth"`
	PatientID     string        `json:"patient_id"`
	PatientName   string        `json:"patient_name"`
	Problem       string        `json:"problem"`
	Severity      Severity      `json:"severity"`
	Treatment     string        `json:"treatment"`
	Status        ProblemStatus `json:"status"`
	Sessions      []Session     `json:"sessions"`
	DateCreated   string        `json:"date_created"`
	DateUpdated   string        `json:"date_updated"`
	Notes         string        `json:"notes"`
	EstimatedCost float64       `json:"estimated_cost"`
	Cost          float64       `json:"cost"`
	Paid          float64       `json:"paid"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

func (p Problem) RecordID() string { return p.ID }

func (p Problem) Remaining() float64 { return p.Cost - p.Paid }

type ProblemView struct {
	Problem
	ToothName     string       `json:"tooth_name"`
	Remaining     float64      `json:"remaining"`
	SeverityBadge *badge.Badge `json:"severity_badge,omitempty"`
	StatusBadge   *badge.Badge `json:"status_badge,omitempty"`
}

type CreateProblemRequest struct {
	PatientID     string   `json:"patient_id"`
	PatientName   string   `json:"patient_name"`
	Tooth         int      `json:"tooth"`
	Problem       string   `json:"problem"`
	Severity      Severity `json:"severity"`
	Treatment     string   `json:"treatment"`
	EstimatedCost float64  `json:"estimated_cost"`
	Notes         string   `json:"notes"`
}

type UpdateProblemStatusRequest struct {
	Status ProblemStatus `json:"status"`
}

type AddSessionRequest struct {
	Date      string        `json:"date"`
	Duration  int           `json:"duration"`
	Treatment string        `json:"treatment"`
	Notes     string        `json:"notes"`
	Status    SessionStatus `json:"status"`
	Doctor    string        `json:"doctor"`
	Cost      float64       `json:"cost"`
}

type UpdateSessionStatusRequest struct {
	Status SessionStatus `json:"status"`
}

type RecordPaymentRequest struct {
	Amount float64 `json:"amount"`
}

// ProblemFilter selects tooth problems. Search matches patient name,
// problem and treatment.
type ProblemFilter struct {
	PatientID string
	Tooth     string
	Severity  string
	Status    string
	Search    string
}

type ListResult struct {
	Problems   []ProblemView    `json:"problems"`
	Total      int              `json:"total"`
	Pagination *pagination.Meta `json:"pagination,omitempty"`
}

type ChartTooth struct {
	Tooth
	Status   ChartStatus `json:"status"`
	Badge    badge.Badge `json:"badge"`
	Problems int         `json:"problems"`
}

type PatientSummary struct {
	Problems  int     `json:"problems"`
	Active    int     `json:"active"`
	Completed int     `json:"completed"`
	Sessions  int     `json:"sessions"`
	Cost      float64 `json:"cost"`
	Paid      float64 `json:"paid"`
	Remaining float64 `json:"remaining"`
}

type Chart struct {
	PatientID string         `json:"patient_id"`
	Teeth     []ChartTooth   `json:"teeth"`
	Summary   PatientSummary `json:"summary"`
}
