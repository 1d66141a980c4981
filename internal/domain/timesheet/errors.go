package timesheet

import "errors"

// Timesheet domain errors
var (
	ErrEntryNotFound  = errors.New("time entry not found")
	ErrEntryLocked    = errors.New("time entry is locked")
	ErrEntryUnlocked  = errors.New("time entry is not locked")
	ErrNotEntryOwner  = errors.New("not the owner of this time entry")
	ErrWorkerNotFound = errors.New("worker not found")
)
