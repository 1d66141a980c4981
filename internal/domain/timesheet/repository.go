package timesheet

import (
	"context"
	"time"
)

// TimeEntryRepository defines data access methods for the ledger.
// Uniqueness of (worker_id, date) is enforced by the storage layer.
type TimeEntryRepository interface {
	// Upsert inserts the entry or, when a row for (worker_id, date) already
	// exists, replaces its mutable fields. The lock columns are never touched.
	Upsert(ctx context.Context, entry TimeEntry) (TimeEntry, error)

	GetByID(ctx context.Context, id string) (TimeEntry, error)

	// GetByWorkerAndDate returns nil when no entry exists for that day.
	GetByWorkerAndDate(ctx context.Context, workerID string, date time.Time) (*TimeEntry, error)

	// ListRange returns the worker's entries within [start, end], ordered by date.
	ListRange(ctx context.Context, workerID string, start, end time.Time) ([]TimeEntry, error)

	// ListAllRange returns every worker's entries within [start, end],
	// ordered by worker then date. Used by the admin month report.
	ListAllRange(ctx context.Context, start, end time.Time) ([]TimeEntry, error)

	Delete(ctx context.Context, id string) error

	// SetLock flips the lock flag and audit columns on the given rows.
	SetLock(ctx context.Context, ids []string, locked bool, actorID string, at time.Time) error
}
