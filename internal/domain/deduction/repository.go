package deduction

import (
	"context"
)

// DeductionRepository defines data access for the one-per-invoice
// deduction sheet. invoice_id carries a unique index.
type DeductionRepository interface {
	// Upsert creates the sheet on first save and replaces it afterwards.
	Upsert(ctx context.Context, d Deduction) (Deduction, error)

	// GetByInvoiceID returns ErrDeductionNotFound before the first save.
	GetByInvoiceID(ctx context.Context, invoiceID string) (Deduction, error)
}
