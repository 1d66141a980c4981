package invoice

import (
	"context"
	"time"
)

// InvoiceRepository defines data access methods for invoices.
// Uniqueness of invoice_number is enforced by the storage layer.
type InvoiceRepository interface {
	Create(ctx context.Context, inv Invoice) (Invoice, error)
	GetByID(ctx context.Context, id string) (Invoice, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)

	// List applies optional status/period filters, newest issue date first.
	List(ctx context.Context, filter ListFilter) ([]Invoice, int64, error)

	// ListNotReceived returns every invoice whose status is not "received",
	// ordered by worker then issue date. Input to the pending grouping.
	ListNotReceived(ctx context.Context) ([]Invoice, error)

	// UpdateStatus persists a status change together with the payment date
	// (nil clears a previously stored date).
	UpdateStatus(ctx context.Context, id string, status InvoiceStatus, paymentDate *time.Time) error
}
