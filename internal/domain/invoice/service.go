package invoice

import (
	"context"
)

// InvoiceService defines business logic for invoice records.
// Status transitions are admin-driven and unconstrained; the only
// transition rule is the payment-date invariant on "received".
type InvoiceService interface {
	Create(ctx context.Context, req CreateInvoiceRequest) (InvoiceResponse, error)
	Get(ctx context.Context, id string) (InvoiceResponse, error)
	List(ctx context.Context, filter ListFilter) (ListInvoiceResponse, error)

	// UpdateStatus moves an invoice to any status. "received" requires a
	// payment date; every other status clears a previously stored one.
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (InvoiceResponse, error)

	// ListPending groups every not-received invoice per worker with totals,
	// for collections follow-up.
	ListPending(ctx context.Context) (PendingResponse, error)
}
