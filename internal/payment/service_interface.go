package payment

import "context"

// ServiceInterface defines the contract for billing operations
type ServiceInterface interface {
	List(ctx context.Context, filter ListFilter) (*ListResult, error)
	All(ctx context.Context) ([]Payment, error)
	Get(ctx context.Context, id string) (*PaymentView, error)
	Create(ctx context.Context, req CreatePaymentRequest) (*PaymentView, error)
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*PaymentView, error)
	Stats(ctx context.Context) (*FinancialStats, error)
	Outstanding(ctx context.Context) ([]PaymentView, error)
	Breakdown(ctx context.Context) (*Breakdown, error)
	MarkOverdue(ctx context.Context) (int, error)
	SendReminder(ctx context.Context, id string) (*PaymentView, error)
}

var _ ServiceInterface = (*Service)(nil)
