package appointment

import "context"

// ServiceInterface defines the contract for appointment business logic operations
type ServiceInterface interface {
	List(ctx context.Context, filter ListFilter) (*ListResult, error)
	All(ctx context.Context) ([]Appointment, error)
	Day(ctx context.Context, date string) (*DayView, error)
	Today(ctx context.Context) (*DayView, error)
	Get(ctx context.Context, id string) (*AppointmentView, error)
	Create(ctx context.Context, req CreateAppointmentRequest) (*AppointmentView, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*AppointmentView, error)
	MarkReminderSent(ctx context.Context, id string) (*AppointmentView, error)
	AvailableSlots(ctx context.Context, date, doctor string) ([]TimeSlot, error)
	Options() Options
}

var _ ServiceInterface = (*Service)(nil)
