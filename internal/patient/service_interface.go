package patient

import "context"

// ServiceInterface defines the contract for patient business logic operations
type ServiceInterface interface {
	List(ctx context.Context, filter ListFilter) (*ListResult, error)
	All(ctx context.Context) ([]Patient, error)
	Get(ctx context.Context, id string) (*PatientView, error)
	Create(ctx context.Context, req CreatePatientRequest) (*PatientView, error)
	Update(ctx context.Context, id string, req UpdatePatientRequest) (*PatientView, error)
	SetStatus(ctx context.Context, id string, status Status) (*PatientView, error)
	AddTreatment(ctx context.Context, id string, req AddTreatmentRequest) (*PatientView, error)
	AddSession(ctx context.Context, id string, req AddSessionRequest) (*PatientView, error)
	AddPayment(ctx context.Context, id string, req AddPaymentRequest) (*PatientView, error)
}

var _ ServiceInterface = (*Service)(nil)
