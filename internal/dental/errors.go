package dental

import "errors"

var (
	ErrProblemNotFound   = errors.New("tooth problem not found")
	ErrSessionNotFound   = errors.New("treatment session not found")
	ErrValidation        = errors.New("invalid dental data")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrProblemClosed     = errors.New("tooth problem is closed")
)
