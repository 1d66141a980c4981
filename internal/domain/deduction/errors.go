package deduction

import "errors"

var (
	ErrDeductionNotFound    = errors.New("no deductions saved for this invoice")
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrCompensationMismatch = errors.New("compensation kind does not match the invoice classification")
)
