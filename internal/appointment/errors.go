package appointment

import "errors"

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrValidation          = errors.New("invalid appointment data")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrSlotTaken           = errors.New("time slot already booked for this doctor")
	ErrReminderNotAllowed  = errors.New("reminders can only be sent for upcoming appointments")
)
