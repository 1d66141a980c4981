package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/kestrelhq/ops-backend-go/internal/domain/deduction"
	"github.com/kestrelhq/ops-backend-go/internal/pkg/database"
)

type deductionRepositoryImpl struct {
	db *database.DB
}

func NewDeductionRepository(db *database.DB) deduction.DeductionRepository {
	return &deductionRepositoryImpl{db: db}
}

// customLineRow is the JSONB shape of one ad-hoc deduction line.
type customLineRow struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

func encodeCustomLines(lines []deduction.CustomLine) ([]byte, error) {
	rows := make([]customLineRow, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, customLineRow{Name: l.Name, Amount: l.Amount})
	}
	return json.Marshal(rows)
}

func decodeCustomLines(data []byte) ([]deduction.CustomLine, error) {
	var rows []customLineRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("decode custom lines: %w", err)
	}
	lines := make([]deduction.CustomLine, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, deduction.CustomLine{Name: r.Name, Amount: r.Amount})
	}
	return lines, nil
}

const deductionColumns = `id, invoice_id, compensation_kind, compensation_amount,
			processing_tax, processing_charges, custom_lines,
			is_override, override_amount, net_payable, created_at, updated_at`

func scanDeduction(row pgx.Row) (deduction.Deduction, error) {
	var d deduction.Deduction
	var rawLines []byte
	err := row.Scan(
		&d.ID,
		&d.InvoiceID,
		&d.Compensation.Kind,
		&d.Compensation.Amount,
		&d.ProcessingTax,
		&d.ProcessingCharges,
		&rawLines,
		&d.IsOverride,
		&d.OverrideAmount,
		&d.NetPayable,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return deduction.Deduction{}, err
	}
	d.CustomLines, err = decodeCustomLines(rawLines)
	if err != nil {
		return deduction.Deduction{}, err
	}
	return d, nil
}

// Upsert implements deduction.DeductionRepository. The unique index on
// invoice_id makes a resave replace the full sheet in place.
func (r *deductionRepositoryImpl) Upsert(ctx context.Context, d deduction.Deduction) (deduction.Deduction, error) {
	q := GetQuerier(ctx, r.db)

	lines, err := encodeCustomLines(d.CustomLines)
	if err != nil {
		return deduction.Deduction{}, err
	}

	query := `
		INSERT INTO deductions (
			invoice_id, compensation_kind, compensation_amount,
			processing_tax, processing_charges, custom_lines,
			is_override, override_amount, net_payable
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (invoice_id) DO UPDATE
		SET compensation_kind = EXCLUDED.compensation_kind,
			compensation_amount = EXCLUDED.compensation_amount,
			processing_tax = EXCLUDED.processing_tax,
			processing_charges = EXCLUDED.processing_charges,
			custom_lines = EXCLUDED.custom_lines,
			is_override = EXCLUDED.is_override,
			override_amount = EXCLUDED.override_amount,
			net_payable = EXCLUDED.net_payable,
			updated_at = NOW()
		RETURNING ` + deductionColumns

	saved, err := scanDeduction(q.QueryRow(ctx, query,
		d.InvoiceID,
		d.Compensation.Kind,
		d.Compensation.Amount,
		d.ProcessingTax,
		d.ProcessingCharges,
		lines,
		d.IsOverride,
		d.OverrideAmount,
		d.NetPayable,
	))
	if err != nil {
		return deduction.Deduction{}, err
	}
	return saved, nil
}

// GetByInvoiceID implements deduction.DeductionRepository.
func (r *deductionRepositoryImpl) GetByInvoiceID(ctx context.Context, invoiceID string) (deduction.Deduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + deductionColumns + ` FROM deductions WHERE invoice_id = $1`

	d, err := scanDeduction(q.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return deduction.Deduction{}, deduction.ErrDeductionNotFound
		}
		return deduction.Deduction{}, err
	}
	return d, nil
}
