package dental

import "context"

// ServiceInterface defines the contract for dental chart operations
type ServiceInterface interface {
	ListProblems(ctx context.Context, filter ProblemFilter) (*ListResult, error)
	All(ctx context.Context) ([]Problem, error)
	GetProblem(ctx context.Context, id string) (*ProblemView, error)
	CreateProblem(ctx context.Context, req CreateProblemRequest) (*ProblemView, error)
	UpdateProblemStatus(ctx context.Context, id string, req UpdateProblemStatusRequest) (*ProblemView, error)
	AddSession(ctx context.Context, problemID string, req AddSessionRequest) (*ProblemView, error)
	UpdateSessionStatus(ctx context.Context, problemID, sessionID string, req UpdateSessionStatusRequest) (*ProblemView, error)
	RecordPayment(ctx context.Context, problemID string, req RecordPaymentRequest) (*ProblemView, error)
	Chart(ctx context.Context, patientID string) (*Chart, error)
}

var _ ServiceInterface = (*Service)(nil)
