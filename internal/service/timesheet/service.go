package timesheet

import (
	"context"
	"errors"
	"time"

	"github.com/kestrelhq/ops-backend-go/internal/domain/timesheet"
	"github.com/kestrelhq/ops-backend-go/internal/domain/user"
	"github.com/kestrelhq/ops-backend-go/internal/pkg/database"
)

type TimesheetServiceImpl struct {
	db       *database.DB
	ledger   timesheet.TimeEntryRepository
	userRepo user.UserRepository
}

func NewTimesheetService(
	db *database.DB,
	ledger timesheet.TimeEntryRepository,
	userRepo user.UserRepository,
) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		db:       db,
		ledger:   ledger,
		userRepo: userRepo,
	}
}

// Submit implements timesheet.TimesheetService. Resubmitting for a day
// that already has an unlocked entry replaces it; a locked entry rejects
// the submission outright.
func (s *TimesheetServiceImpl) Submit(ctx context.Context, req timesheet.SubmitEntryRequest) (timesheet.EntryResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.EntryResponse{}, err
	}

	if _, err := s.userRepo.GetByID(ctx, req.ActorID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return timesheet.EntryResponse{}, timesheet.ErrWorkerNotFound
		}
		return timesheet.EntryResponse{}, err
	}

	date := req.ParsedDate()

	existing, err := s.ledger.GetByWorkerAndDate(ctx, req.ActorID, date)
	if err != nil {
		return timesheet.EntryResponse{}, err
	}
	if existing != nil && existing.Locked {
		return timesheet.EntryResponse{}, timesheet.ErrEntryLocked
	}

	saved, err := s.ledger.Upsert(ctx, timesheet.TimeEntry{
		WorkerID:   req.ActorID,
		Date:       date,
		Hours:      req.Hours,
		Note:       req.Note,
		ClientName: req.ClientName,
	})
	if err != nil {
		return timesheet.EntryResponse{}, err
	}

	return timesheet.NewEntryResponse(saved), nil
}

// Delete implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Delete(ctx context.Context, req timesheet.DeleteEntryRequest) error {
	entry, err := s.ledger.GetByID(ctx, req.EntryID)
	if err != nil {
		return err
	}

	if entry.Locked {
		return timesheet.ErrEntryLocked
	}
	if !req.IsAdmin && entry.WorkerID != req.ActorID {
		return timesheet.ErrNotEntryOwner
	}

	return s.ledger.Delete(ctx, entry.ID)
}

// ListRange implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ListRange(ctx context.Context, req timesheet.ListRangeRequest) (timesheet.RangeResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.RangeResponse{}, err
	}

	worker, err := s.userRepo.GetByID(ctx, req.WorkerID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return timesheet.RangeResponse{}, timesheet.ErrWorkerNotFound
		}
		return timesheet.RangeResponse{}, err
	}

	start, end := req.Range()
	entries, err := s.ledger.ListRange(ctx, req.WorkerID, start, end)
	if err != nil {
		return timesheet.RangeResponse{}, err
	}

	summary := timesheet.Summarize(entries, worker.HourlyRate)
	summary.WorkerID = worker.ID
	summary.WorkerName = worker.FullName

	resp := timesheet.RangeResponse{
		Entries: make([]timesheet.EntryResponse, 0, len(entries)),
		Summary: timesheet.NewSummaryResponse(summary),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, timesheet.NewEntryResponse(e))
	}
	return resp, nil
}

// MonthReport implements timesheet.TimesheetService. One summary row per
// worker who logged at least one entry in the month.
func (s *TimesheetServiceImpl) MonthReport(ctx context.Context, month, year int) (timesheet.MonthReportResponse, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	entries, err := s.ledger.ListAllRange(ctx, start, end)
	if err != nil {
		return timesheet.MonthReportResponse{}, err
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return timesheet.MonthReportResponse{}, err
	}
	byID := make(map[string]user.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	grouped := make(map[string][]timesheet.TimeEntry)
	var order []string
	for _, e := range entries {
		if _, seen := grouped[e.WorkerID]; !seen {
			order = append(order, e.WorkerID)
		}
		grouped[e.WorkerID] = append(grouped[e.WorkerID], e)
	}

	report := timesheet.MonthReportResponse{
		PeriodMonth: month,
		PeriodYear:  year,
		Workers:     make([]timesheet.SummaryResponse, 0, len(order)),
	}
	for _, workerID := range order {
		w := byID[workerID]
		summary := timesheet.Summarize(grouped[workerID], w.HourlyRate)
		summary.WorkerID = workerID
		summary.WorkerName = w.FullName
		report.Workers = append(report.Workers, timesheet.NewSummaryResponse(summary))
	}
	return report, nil
}

// Lock implements timesheet.TimesheetService. Locking an already locked
// entry refreshes the audit columns, nothing more.
func (s *TimesheetServiceImpl) Lock(ctx context.Context, req timesheet.LockEntriesRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	for _, id := range req.EntryIDs {
		if _, err := s.ledger.GetByID(ctx, id); err != nil {
			return err
		}
	}

	return s.ledger.SetLock(ctx, req.EntryIDs, true, req.AdminID, time.Now())
}

// Unlock implements timesheet.TimesheetService. The lock audit columns
// are overwritten with the unlocking admin, keeping the trail.
func (s *TimesheetServiceImpl) Unlock(ctx context.Context, entryID, adminID string) error {
	entry, err := s.ledger.GetByID(ctx, entryID)
	if err != nil {
		return err
	}
	if !entry.Locked {
		return timesheet.ErrEntryUnlocked
	}

	return s.ledger.SetLock(ctx, []string{entryID}, false, adminID, time.Now())
}
