package deduction

import (
	"github.com/kestrelhq/ops-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// DEDUCTION DTOs
// ========================================

type CustomLineInput struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// SaveDeductionRequest replaces the invoice's deduction sheet and recomputes
// net payable. Identical input saved twice yields the identical sheet.
type SaveDeductionRequest struct {
	InvoiceID string `json:"-"`
	AdminID   string `json:"-"`

	CompensationKind   string            `json:"compensation_kind"` // w2 | c2c_1099
	CompensationAmount string            `json:"compensation_amount"`
	ProcessingTax      string            `json:"processing_tax"`
	ProcessingCharges  string            `json:"processing_charges"`
	CustomLines        []CustomLineInput `json:"custom_lines,omitempty"`

	IsOverride     bool    `json:"is_override"`
	OverrideAmount *string `json:"override_amount,omitempty"`
}

func (r *SaveDeductionRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.CompensationKind, []string{string(CompensationW2), string(CompensationC2C)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "compensation_kind",
			Message: "compensation_kind must be w2 or c2c_1099",
		})
	}

	// Every amount except the override must be a non-negative decimal.
	nonNegative := map[string]string{
		"compensation_amount": r.CompensationAmount,
		"processing_tax":      r.ProcessingTax,
		"processing_charges":  r.ProcessingCharges,
	}
	for field, raw := range nonNegative {
		if raw == "" {
			continue // omitted means zero
		}
		amount, ok := validator.IsValidAmount(raw)
		if !ok {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be a decimal amount",
			})
		} else if amount.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must not be negative",
			})
		}
	}

	if len(r.CustomLines) > MaxCustomLines {
		errs = append(errs, validator.ValidationError{
			Field:   "custom_lines",
			Message: "at most 3 custom deduction lines are allowed",
		})
	}
	for _, line := range r.CustomLines {
		if validator.IsEmpty(line.Name) {
			errs = append(errs, validator.ValidationError{
				Field:   "custom_lines",
				Message: "custom deduction lines require a name",
			})
			continue
		}
		amount, ok := validator.IsValidAmount(line.Amount)
		if !ok || amount.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   "custom_lines",
				Message: "custom deduction amounts must be non-negative decimals",
			})
		}
	}

	if r.IsOverride {
		if r.OverrideAmount == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "override_amount",
				Message: "override_amount is required when is_override is set",
			})
		} else if _, ok := validator.IsValidAmount(*r.OverrideAmount); !ok {
			// The override amount itself is unconstrained in sign and size.
			errs = append(errs, validator.ValidationError{
				Field:   "override_amount",
				Message: "override_amount must be a decimal amount",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToEntity builds the deduction sheet for the invoice. Call Validate first.
func (r *SaveDeductionRequest) ToEntity() Deduction {
	parse := func(raw string) decimal.Decimal {
		if raw == "" {
			return decimal.Zero
		}
		d, _ := decimal.NewFromString(raw)
		return d
	}

	d := Deduction{
		InvoiceID: r.InvoiceID,
		Compensation: Compensation{
			Kind:   CompensationKind(r.CompensationKind),
			Amount: parse(r.CompensationAmount),
		},
		ProcessingTax:     parse(r.ProcessingTax),
		ProcessingCharges: parse(r.ProcessingCharges),
		IsOverride:        r.IsOverride,
	}
	for _, line := range r.CustomLines {
		d.CustomLines = append(d.CustomLines, CustomLine{
			Name:   line.Name,
			Amount: parse(line.Amount),
		})
	}
	if r.IsOverride && r.OverrideAmount != nil {
		d.OverrideAmount = parse(*r.OverrideAmount)
	}
	return d
}

type CustomLineResponse struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

type DeductionResponse struct {
	ID                 string               `json:"id"`
	InvoiceID          string               `json:"invoice_id"`
	CompensationKind   string               `json:"compensation_kind"`
	CompensationAmount string               `json:"compensation_amount"`
	ProcessingTax      string               `json:"processing_tax"`
	ProcessingCharges  string               `json:"processing_charges"`
	CustomLines        []CustomLineResponse `json:"custom_lines,omitempty"`
	IsOverride         bool                 `json:"is_override"`
	OverrideAmount     string               `json:"override_amount"`
	NetPayable         string               `json:"net_payable"`
	UpdatedAt          string               `json:"updated_at"`
}

func NewDeductionResponse(d Deduction) DeductionResponse {
	resp := DeductionResponse{
		ID:                 d.ID,
		InvoiceID:          d.InvoiceID,
		CompensationKind:   string(d.Compensation.Kind),
		CompensationAmount: d.Compensation.Amount.StringFixed(2),
		ProcessingTax:      d.ProcessingTax.StringFixed(2),
		ProcessingCharges:  d.ProcessingCharges.StringFixed(2),
		IsOverride:         d.IsOverride,
		OverrideAmount:     d.OverrideAmount.StringFixed(2),
		NetPayable:         d.NetPayable.StringFixed(2),
		UpdatedAt:          d.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	for _, line := range d.CustomLines {
		resp.CustomLines = append(resp.CustomLines, CustomLineResponse{
			Name:   line.Name,
			Amount: line.Amount.StringFixed(2),
		})
	}
	return resp
}
