package prescription

import "context"

// ServiceInterface defines the contract for prescription operations
type ServiceInterface interface {
	List(ctx context.Context, filter ListFilter) (*ListResult, error)
	All(ctx context.Context) ([]Prescription, error)
	Get(ctx context.Context, id string) (*PrescriptionView, error)
	Create(ctx context.Context, req CreatePrescriptionRequest) (*PrescriptionView, error)
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*PrescriptionView, error)
	Medications(ctx context.Context, term, category string) ([]CatalogEntry, error)
}

var _ ServiceInterface = (*Service)(nil)
