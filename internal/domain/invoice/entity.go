package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	StatusPending         InvoiceStatus = "pending"
	StatusReceived        InvoiceStatus = "received"
	StatusWaitingOnClient InvoiceStatus = "waiting_on_client"
)

// Classification is the employment classification the invoice bills under.
type Classification string

const (
	ClassificationW2  Classification = "w2"
	ClassificationC2C Classification = "c2c_1099"
)

// Invoice is one payroll-cycle invoice to a client. The invoice number is
// admin-assigned and globally unique. WorkerID is a normalized reference so
// pending totals never fragment across name spellings.
type Invoice struct {
	ID            string
	InvoiceNumber string
	WorkerID      string

	BilledToName  string
	EndClientName *string

	PeriodMonth int
	PeriodYear  int
	IssueDate   time.Time

	GrossAmount decimal.Decimal
	BilledHours decimal.Decimal

	Classification Classification
	PayeeName      *string // required for c2c_1099

	Status              InvoiceStatus
	PaymentReceivedDate *time.Time
	Notes               *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	WorkerName *string
}
