package invoice

import "errors"

// Invoice domain errors
var (
	ErrInvoiceNotFound        = errors.New("invoice not found")
	ErrDuplicateInvoiceNumber = errors.New("invoice number already exists")
	ErrWorkerNotFound         = errors.New("billed worker not found")
)
