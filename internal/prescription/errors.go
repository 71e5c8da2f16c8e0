package prescription

import "errors"

var (
	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrValidation           = errors.New("invalid prescription data")
	ErrInvalidTransition    = errors.New("invalid prescription status transition")
)
