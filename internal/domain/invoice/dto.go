package invoice

import (
	"time"

	"github.com/kestrelhq/ops-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// INVOICE DTOs
// ========================================

type CreateInvoiceRequest struct {
	AdminID string `json:"-"`

	InvoiceNumber  string  `json:"invoice_number"`
	WorkerID       string  `json:"worker_id"`
	BilledToName   string  `json:"billed_to_name"`
	EndClientName  *string `json:"end_client_name,omitempty"`
	PeriodMonth    int     `json:"period_month"`
	PeriodYear     int     `json:"period_year"`
	IssueDate      string  `json:"issue_date"` // YYYY-MM-DD
	GrossAmount    string  `json:"gross_amount"`
	BilledHours    string  `json:"billed_hours"`
	Classification string  `json:"classification"` // w2 | c2c_1099
	PayeeName      *string `json:"payee_name,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

func (r *CreateInvoiceRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidInvoiceNumber(r.InvoiceNumber) {
		errs = append(errs, validator.ValidationError{
			Field:   "invoice_number",
			Message: "invoice_number must be 3-30 chars of A-Z, 0-9 and dashes",
		})
	}
	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_id",
			Message: "worker_id is required",
		})
	}
	if validator.IsEmpty(r.BilledToName) {
		errs = append(errs, validator.ValidationError{
			Field:   "billed_to_name",
			Message: "billed_to_name is required",
		})
	}
	if !validator.IsValidPeriodMonth(r.PeriodMonth) {
		errs = append(errs, validator.ValidationError{
			Field:   "period_month",
			Message: "period_month must be between 1 and 12",
		})
	}
	if r.PeriodYear < 2000 || r.PeriodYear > 2100 {
		errs = append(errs, validator.ValidationError{
			Field:   "period_year",
			Message: "period_year is out of range",
		})
	}
	if _, ok := validator.IsValidDate(r.IssueDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "issue_date",
			Message: "issue_date must be in YYYY-MM-DD format",
		})
	}

	gross, ok := validator.IsValidAmount(r.GrossAmount)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "gross_amount",
			Message: "gross_amount must be a decimal amount",
		})
	} else if gross.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "gross_amount",
			Message: "gross_amount must not be negative",
		})
	}

	hours, ok := validator.IsValidAmount(r.BilledHours)
	if !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "billed_hours",
			Message: "billed_hours must be a decimal amount",
		})
	} else if hours.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "billed_hours",
			Message: "billed_hours must not be negative",
		})
	}

	switch Classification(r.Classification) {
	case ClassificationW2:
	case ClassificationC2C:
		if r.PayeeName == nil || validator.IsEmpty(*r.PayeeName) {
			errs = append(errs, validator.ValidationError{
				Field:   "payee_name",
				Message: "payee_name is required for 1099 invoices",
			})
		}
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "classification",
			Message: "classification must be w2 or c2c_1099",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToEntity builds the invoice in its initial pending state. Call Validate first.
func (r *CreateInvoiceRequest) ToEntity() Invoice {
	issueDate, _ := validator.IsValidDate(r.IssueDate)
	gross, _ := decimal.NewFromString(r.GrossAmount)
	hours, _ := decimal.NewFromString(r.BilledHours)

	return Invoice{
		InvoiceNumber:  r.InvoiceNumber,
		WorkerID:       r.WorkerID,
		BilledToName:   r.BilledToName,
		EndClientName:  r.EndClientName,
		PeriodMonth:    r.PeriodMonth,
		PeriodYear:     r.PeriodYear,
		IssueDate:      issueDate,
		GrossAmount:    gross,
		BilledHours:    hours,
		Classification: Classification(r.Classification),
		PayeeName:      r.PayeeName,
		Status:         StatusPending,
		Notes:          r.Notes,
	}
}

type UpdateStatusRequest struct {
	InvoiceID string `json:"-"`
	AdminID   string `json:"-"`

	Status              string  `json:"status"`
	PaymentReceivedDate *string `json:"payment_received_date,omitempty"` // YYYY-MM-DD
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	switch InvoiceStatus(r.Status) {
	case StatusPending, StatusWaitingOnClient:
	case StatusReceived:
		if r.PaymentReceivedDate == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "payment_received_date",
				Message: "payment_received_date is required when status is received",
			})
		}
	default:
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of pending, received, waiting_on_client",
		})
	}

	if r.PaymentReceivedDate != nil {
		if _, ok := validator.IsValidDate(*r.PaymentReceivedDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "payment_received_date",
				Message: "payment_received_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PaymentDate returns the parsed payment date, nil for non-received statuses.
// Transitioning away from received always clears the stored date.
func (r *UpdateStatusRequest) PaymentDate() *time.Time {
	if InvoiceStatus(r.Status) != StatusReceived || r.PaymentReceivedDate == nil {
		return nil
	}
	d, _ := validator.IsValidDate(*r.PaymentReceivedDate)
	return &d
}

type ListFilter struct {
	Status      *string `json:"status,omitempty"`
	WorkerID    *string `json:"worker_id,omitempty"`
	PeriodMonth *int    `json:"period_month,omitempty"`
	PeriodYear  *int    `json:"period_year,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && !validator.IsInSlice(*f.Status,
		[]string{string(StatusPending), string(StatusReceived), string(StatusWaitingOnClient)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of pending, received, waiting_on_client",
		})
	}
	if f.PeriodMonth != nil && !validator.IsValidPeriodMonth(*f.PeriodMonth) {
		errs = append(errs, validator.ValidationError{
			Field:   "period_month",
			Message: "period_month must be between 1 and 12",
		})
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type InvoiceResponse struct {
	ID                  string  `json:"id"`
	InvoiceNumber       string  `json:"invoice_number"`
	WorkerID            string  `json:"worker_id"`
	WorkerName          *string `json:"worker_name,omitempty"`
	BilledToName        string  `json:"billed_to_name"`
	EndClientName       *string `json:"end_client_name,omitempty"`
	PeriodMonth         int     `json:"period_month"`
	PeriodYear          int     `json:"period_year"`
	IssueDate           string  `json:"issue_date"`
	GrossAmount         string  `json:"gross_amount"`
	BilledHours         string  `json:"billed_hours"`
	Classification      string  `json:"classification"`
	PayeeName           *string `json:"payee_name,omitempty"`
	Status              string  `json:"status"`
	PaymentReceivedDate *string `json:"payment_received_date,omitempty"`
	Notes               *string `json:"notes,omitempty"`
	CreatedAt           string  `json:"created_at"`
	UpdatedAt           string  `json:"updated_at"`
}

func NewInvoiceResponse(inv Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		ID:             inv.ID,
		InvoiceNumber:  inv.InvoiceNumber,
		WorkerID:       inv.WorkerID,
		WorkerName:     inv.WorkerName,
		BilledToName:   inv.BilledToName,
		EndClientName:  inv.EndClientName,
		PeriodMonth:    inv.PeriodMonth,
		PeriodYear:     inv.PeriodYear,
		IssueDate:      inv.IssueDate.Format("2006-01-02"),
		GrossAmount:    inv.GrossAmount.StringFixed(2),
		BilledHours:    inv.BilledHours.String(),
		Classification: string(inv.Classification),
		PayeeName:      inv.PayeeName,
		Status:         string(inv.Status),
		Notes:          inv.Notes,
		CreatedAt:      inv.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:      inv.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if inv.PaymentReceivedDate != nil {
		d := inv.PaymentReceivedDate.Format("2006-01-02")
		resp.PaymentReceivedDate = &d
	}
	return resp
}

type ListInvoiceResponse struct {
	Invoices   []InvoiceResponse `json:"invoices"`
	TotalItems int64             `json:"total_items"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}

// PendingGroup is one worker's outstanding invoices.
type PendingGroup struct {
	WorkerID    string            `json:"worker_id"`
	WorkerName  string            `json:"worker_name"`
	TotalAmount string            `json:"total_amount"`
	Invoices    []InvoiceResponse `json:"invoices"`
}

type PendingResponse struct {
	Groups      []PendingGroup `json:"groups"`
	TotalAmount string         `json:"total_amount"`
}
