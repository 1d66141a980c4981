package timesheet

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeEntry is one worker-day in the ledger. The (WorkerID, Date) pair is
// unique; resubmitting for the same day updates the row in place while it
// stays unlocked.
type TimeEntry struct {
	ID         string
	WorkerID   string
	Date       time.Time
	Hours      float64
	Note       *string
	ClientName *string

	// Locking freezes the row against every mutation except an audited
	// administrative unlock.
	Locked   bool
	LockedBy *string
	LockedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	WorkerName *string
}

// PeriodSummary aggregates a set of entries for reporting.
type PeriodSummary struct {
	WorkerID     string
	WorkerName   string
	EntryCount   int
	TotalHours   float64
	AverageHours float64
	HourlyRate   decimal.Decimal
	Pay          decimal.Decimal
}

// Summarize computes the period totals for one worker's entries.
// An empty period yields a zero average, not an error.
func Summarize(entries []TimeEntry, hourlyRate decimal.Decimal) PeriodSummary {
	var s PeriodSummary
	s.HourlyRate = hourlyRate
	for _, e := range entries {
		s.TotalHours += e.Hours
	}
	s.EntryCount = len(entries)
	if s.EntryCount > 0 {
		s.AverageHours = s.TotalHours / float64(s.EntryCount)
	}
	s.Pay = decimal.NewFromFloat(s.TotalHours).Mul(hourlyRate).RoundBank(2)
	return s
}
