package payment

import "errors"

var (
	ErrPaymentNotFound    = errors.New("payment not found")
	ErrValidation         = errors.New("invalid payment data")
	ErrDuplicateInvoice   = errors.New("invoice number already exists")
	ErrReminderNotAllowed = errors.New("nothing left to collect on this payment")
)
