package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kestrelhq/ops-backend-go/internal/domain/timesheet"
	"github.com/kestrelhq/ops-backend-go/internal/pkg/database"
)

type timeEntryRepositoryImpl struct {
	db *database.DB
}

func NewTimeEntryRepository(db *database.DB) timesheet.TimeEntryRepository {
	return &timeEntryRepositoryImpl{db: db}
}

const timeEntryColumns = `id, worker_id, date, hours, note, client_name,
			locked, locked_by, locked_at, created_at, updated_at`

func scanTimeEntry(row pgx.Row) (timesheet.TimeEntry, error) {
	var e timesheet.TimeEntry
	err := row.Scan(
		&e.ID,
		&e.WorkerID,
		&e.Date,
		&e.Hours,
		&e.Note,
		&e.ClientName,
		&e.Locked,
		&e.LockedBy,
		&e.LockedAt,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

// Upsert implements timesheet.TimeEntryRepository. The unique constraint
// on (worker_id, date) routes same-day resubmissions into the UPDATE
// branch; the lock columns stay untouched. Locked rows skip the UPDATE
// entirely, so a lock landing between the service's check and this
// statement still holds.
func (r *timeEntryRepositoryImpl) Upsert(ctx context.Context, entry timesheet.TimeEntry) (timesheet.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO time_entries (worker_id, date, hours, note, client_name)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (worker_id, date) DO UPDATE
		SET hours = EXCLUDED.hours,
			note = EXCLUDED.note,
			client_name = EXCLUDED.client_name,
			updated_at = NOW()
		WHERE NOT time_entries.locked
		RETURNING ` + timeEntryColumns

	saved, err := scanTimeEntry(q.QueryRow(ctx, query,
		entry.WorkerID,
		entry.Date,
		entry.Hours,
		entry.Note,
		entry.ClientName,
	))
	if err != nil {
		// No row comes back when the conflicting entry is locked.
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.TimeEntry{}, timesheet.ErrEntryLocked
		}
		return timesheet.TimeEntry{}, err
	}
	return saved, nil
}

// GetByID implements timesheet.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) GetByID(ctx context.Context, id string) (timesheet.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE id = $1`

	e, err := scanTimeEntry(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.TimeEntry{}, timesheet.ErrEntryNotFound
		}
		return timesheet.TimeEntry{}, err
	}
	return e, nil
}

// GetByWorkerAndDate implements timesheet.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) GetByWorkerAndDate(ctx context.Context, workerID string, date time.Time) (*timesheet.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE worker_id = $1 AND date = $2`

	e, err := scanTimeEntry(q.QueryRow(ctx, query, workerID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// ListRange implements timesheet.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) ListRange(ctx context.Context, workerID string, start, end time.Time) ([]timesheet.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + timeEntryColumns + `
		FROM time_entries
		WHERE worker_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, workerID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []timesheet.TimeEntry
	for rows.Next() {
		e, err := scanTimeEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ListAllRange implements timesheet.TimeEntryRepository. Joins the worker
// name for the admin month report.
func (r *timeEntryRepositoryImpl) ListAllRange(ctx context.Context, start, end time.Time) ([]timesheet.TimeEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT te.id, te.worker_id, te.date, te.hours, te.note, te.client_name,
			te.locked, te.locked_by, te.locked_at, te.created_at, te.updated_at,
			u.full_name
		FROM time_entries te
		JOIN users u ON u.id = te.worker_id
		WHERE te.date BETWEEN $1 AND $2
		ORDER BY u.full_name, te.date
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []timesheet.TimeEntry
	for rows.Next() {
		var e timesheet.TimeEntry
		err := rows.Scan(
			&e.ID,
			&e.WorkerID,
			&e.Date,
			&e.Hours,
			&e.Note,
			&e.ClientName,
			&e.Locked,
			&e.LockedBy,
			&e.LockedAt,
			&e.CreatedAt,
			&e.UpdatedAt,
			&e.WorkerName,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete implements timesheet.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM time_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrEntryNotFound
	}
	return nil
}

// SetLock implements timesheet.TimeEntryRepository.
func (r *timeEntryRepositoryImpl) SetLock(ctx context.Context, ids []string, locked bool, actorID string, at time.Time) error {
	q := GetQuerier(ctx, r.db)

	// locked_by/locked_at double as the audit trail for unlocks: they
	// record who released the lock and when.
	query := `
		UPDATE time_entries
		SET locked = $2, locked_by = $3, locked_at = $4, updated_at = NOW()
		WHERE id = ANY($1)
	`

	_, err := q.Exec(ctx, query, ids, locked, actorID, at)
	return err
}
