package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kestrelhq/ops-backend-go/internal/domain/invoice"
	"github.com/kestrelhq/ops-backend-go/internal/pkg/database"
)

type invoiceRepositoryImpl struct {
	db *database.DB
}

func NewInvoiceRepository(db *database.DB) invoice.InvoiceRepository {
	return &invoiceRepositoryImpl{db: db}
}

const invoiceColumns = `i.id, i.invoice_number, i.worker_id, i.billed_to_name, i.end_client_name,
			i.period_month, i.period_year, i.issue_date, i.gross_amount, i.billed_hours,
			i.classification, i.payee_name, i.status, i.payment_received_date, i.notes,
			i.created_at, i.updated_at, u.full_name`

func scanInvoice(row pgx.Row) (invoice.Invoice, error) {
	var inv invoice.Invoice
	err := row.Scan(
		&inv.ID,
		&inv.InvoiceNumber,
		&inv.WorkerID,
		&inv.BilledToName,
		&inv.EndClientName,
		&inv.PeriodMonth,
		&inv.PeriodYear,
		&inv.IssueDate,
		&inv.GrossAmount,
		&inv.BilledHours,
		&inv.Classification,
		&inv.PayeeName,
		&inv.Status,
		&inv.PaymentReceivedDate,
		&inv.Notes,
		&inv.CreatedAt,
		&inv.UpdatedAt,
		&inv.WorkerName,
	)
	return inv, err
}

// Create implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) Create(ctx context.Context, inv invoice.Invoice) (invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO invoices (
			invoice_number, worker_id, billed_to_name, end_client_name,
			period_month, period_year, issue_date, gross_amount, billed_hours,
			classification, payee_name, status, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`

	created := inv
	err := q.QueryRow(ctx, query,
		inv.InvoiceNumber,
		inv.WorkerID,
		inv.BilledToName,
		inv.EndClientName,
		inv.PeriodMonth,
		inv.PeriodYear,
		inv.IssueDate,
		inv.GrossAmount,
		inv.BilledHours,
		inv.Classification,
		inv.PayeeName,
		inv.Status,
		inv.Notes,
	).Scan(&created.ID, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		// The unique index on invoice_number is the authoritative guard;
		// the service's pre-check only covers the sequential case.
		if isUniqueViolation(err) {
			return invoice.Invoice{}, invoice.ErrDuplicateInvoiceNumber
		}
		return invoice.Invoice{}, err
	}
	return created, nil
}

// GetByID implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) GetByID(ctx context.Context, id string) (invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices i
		JOIN users u ON u.id = i.worker_id
		WHERE i.id = $1
	`

	inv, err := scanInvoice(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return invoice.Invoice{}, invoice.ErrInvoiceNotFound
		}
		return invoice.Invoice{}, err
	}
	return inv, nil
}

// ExistsByNumber implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM invoices WHERE invoice_number = $1)`, number).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// List implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) List(ctx context.Context, filter invoice.ListFilter) ([]invoice.Invoice, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.Status != nil {
		where += fmt.Sprintf(" AND i.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.WorkerID != nil {
		where += fmt.Sprintf(" AND i.worker_id = $%d", argIdx)
		args = append(args, *filter.WorkerID)
		argIdx++
	}
	if filter.PeriodMonth != nil {
		where += fmt.Sprintf(" AND i.period_month = $%d", argIdx)
		args = append(args, *filter.PeriodMonth)
		argIdx++
	}
	if filter.PeriodYear != nil {
		where += fmt.Sprintf(" AND i.period_year = $%d", argIdx)
		args = append(args, *filter.PeriodYear)
		argIdx++
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM invoices i " + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT `+invoiceColumns+`
		FROM invoices i
		JOIN users u ON u.id = i.worker_id
		%s
		ORDER BY i.issue_date DESC, i.invoice_number
		LIMIT $%d OFFSET $%d
	`, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var invoices []invoice.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, 0, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, total, rows.Err()
}

// ListNotReceived implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) ListNotReceived(ctx context.Context) ([]invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices i
		JOIN users u ON u.id = i.worker_id
		WHERE i.status <> 'received'
		ORDER BY u.full_name, i.issue_date
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []invoice.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

// UpdateStatus implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) UpdateStatus(ctx context.Context, id string, status invoice.InvoiceStatus, paymentDate *time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE invoices
		SET status = $1, payment_received_date = $2, updated_at = NOW()
		WHERE id = $3
	`
	tag, err := q.Exec(ctx, query, status, paymentDate, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return invoice.ErrInvoiceNotFound
	}
	return nil
}
