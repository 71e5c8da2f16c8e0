package reports

import "errors"

var (
	ErrUnknownRange   = errors.New("unknown report range")
	ErrUnknownSection = errors.New("unknown export section")
)
