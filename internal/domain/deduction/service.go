package deduction

import (
	"context"
)

// DeductionService defines business logic for the deduction sheet.
type DeductionService interface {
	// Save validates against the invoice, recomputes net payable and
	// persists the sheet (created lazily on first save).
	Save(ctx context.Context, req SaveDeductionRequest) (DeductionResponse, error)

	// Get returns the saved sheet, ErrDeductionNotFound before the first save.
	Get(ctx context.Context, invoiceID string) (DeductionResponse, error)
}
