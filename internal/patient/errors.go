package patient

import "errors"

var (
	ErrPatientNotFound = errors.New("patient not found")
	ErrValidation      = errors.New("invalid patient data")
)
