package timesheet

import (
	"context"
)

// TimesheetService defines business logic for the time entry ledger.
// Nothing here auto-locks an entry; locking is an explicit admin action
// the rest of the operations merely respect.
type TimesheetService interface {
	// Submit inserts or updates the entry for (actor, date).
	Submit(ctx context.Context, req SubmitEntryRequest) (EntryResponse, error)

	// Delete removes an unlocked entry. Workers may only delete their own.
	Delete(ctx context.Context, req DeleteEntryRequest) error

	// ListRange returns one worker's entries in the inclusive range,
	// with the period summary attached.
	ListRange(ctx context.Context, req ListRangeRequest) (RangeResponse, error)

	// MonthReport aggregates every worker's entries for a calendar month.
	MonthReport(ctx context.Context, month, year int) (MonthReportResponse, error)

	// Lock freezes entries, recording who locked them and when.
	Lock(ctx context.Context, req LockEntriesRequest) error

	// Unlock reopens a single locked entry. Audited: the unlock overwrites
	// the lock audit columns with the unlocking admin.
	Unlock(ctx context.Context, entryID, adminID string) error
}
