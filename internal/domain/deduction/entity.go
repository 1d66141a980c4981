package deduction

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompensationKind tags the compensation input. W2 and 1099 amounts are
// mutually exclusive by construction: a deduction carries exactly one
// compensation line, tagged with its kind.
type CompensationKind string

const (
	CompensationW2  CompensationKind = "w2"
	CompensationC2C CompensationKind = "c2c_1099"
)

type Compensation struct {
	Kind   CompensationKind
	Amount decimal.Decimal
}

// CustomLine is one named ad-hoc deduction. Up to three per invoice.
type CustomLine struct {
	Name   string
	Amount decimal.Decimal
}

// MaxCustomLines bounds the named ad-hoc deductions per invoice.
const MaxCustomLines = 3

// Deduction is the one-per-invoice deduction sheet. NetPayable is derived
// on every save and never user-editable.
type Deduction struct {
	ID        string
	InvoiceID string

	Compensation      Compensation
	ProcessingTax     decimal.Decimal
	ProcessingCharges decimal.Decimal
	CustomLines       []CustomLine

	IsOverride     bool
	OverrideAmount decimal.Decimal

	NetPayable decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ComputeNetPayable derives the net payable amount from the invoice gross.
//
// Override mode returns the override amount verbatim: no clamping, it may
// exceed the gross. Otherwise net = gross minus every deduction line; a
// negative result signals an over-deducted invoice and is returned as-is.
// Fractional cents round half to even at 2 decimals.
func ComputeNetPayable(gross decimal.Decimal, d Deduction) decimal.Decimal {
	if d.IsOverride {
		return d.OverrideAmount.RoundBank(2)
	}

	total := d.Compensation.Amount.
		Add(d.ProcessingTax).
		Add(d.ProcessingCharges)
	for _, line := range d.CustomLines {
		total = total.Add(line.Amount)
	}

	return gross.Sub(total).RoundBank(2)
}
