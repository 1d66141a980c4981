package timesheet

import (
	"time"

	"github.com/kestrelhq/ops-backend-go/internal/pkg/validator"
)

// ========================================
// TIMESHEET DTOs
// ========================================

// SubmitEntryRequest creates or updates the caller's entry for one date.
// ActorID is the authenticated identity, threaded in by the handler.
type SubmitEntryRequest struct {
	ActorID    string  `json:"-"`
	Date       string  `json:"date"` // YYYY-MM-DD
	Hours      float64 `json:"hours_worked"`
	Note       *string `json:"notes,omitempty"`
	ClientName *string `json:"client,omitempty"`
}

func (r *SubmitEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ActorID) {
		errs = append(errs, validator.ValidationError{
			Field:   "actor",
			Message: "acting identity is required",
		})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}
	if !validator.IsValidHours(r.Hours) {
		errs = append(errs, validator.ValidationError{
			Field:   "hours_worked",
			Message: "hours_worked must be between 0 and 24",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ParsedDate returns the submission date. Call Validate first.
func (r *SubmitEntryRequest) ParsedDate() time.Time {
	d, _ := validator.IsValidDate(r.Date)
	return d
}

type DeleteEntryRequest struct {
	EntryID string `json:"-"`
	ActorID string `json:"-"`
	IsAdmin bool   `json:"-"`
}

type ListRangeRequest struct {
	WorkerID  string `json:"-"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
}

func (r *ListRangeRequest) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (r *ListRangeRequest) Range() (time.Time, time.Time) {
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	return start, end
}

// LockEntriesRequest freezes a batch of rows. Admin only.
type LockEntriesRequest struct {
	AdminID  string   `json:"-"`
	EntryIDs []string `json:"entry_ids"`
}

func (r *LockEntriesRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.EntryIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "entry_ids",
			Message: "at least one entry id is required",
		})
	}
	for _, id := range r.EntryIDs {
		if validator.IsEmpty(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "entry_ids",
				Message: "entry ids must not be empty",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EntryResponse struct {
	ID         string  `json:"id"`
	WorkerID   string  `json:"worker_id"`
	WorkerName *string `json:"worker_name,omitempty"`
	Date       string  `json:"date"`
	Hours      float64 `json:"hours_worked"`
	Note       *string `json:"notes,omitempty"`
	ClientName *string `json:"client,omitempty"`
	IsLocked   bool    `json:"is_locked"`
	LockedBy   *string `json:"locked_by,omitempty"`
	LockedAt   *string `json:"locked_at,omitempty"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

func NewEntryResponse(e TimeEntry) EntryResponse {
	resp := EntryResponse{
		ID:         e.ID,
		WorkerID:   e.WorkerID,
		WorkerName: e.WorkerName,
		Date:       e.Date.Format("2006-01-02"),
		Hours:      e.Hours,
		Note:       e.Note,
		ClientName: e.ClientName,
		IsLocked:   e.Locked,
		LockedBy:   e.LockedBy,
		CreatedAt:  e.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:  e.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
	if e.LockedAt != nil {
		lockedAt := e.LockedAt.Format("2006-01-02 15:04:05")
		resp.LockedAt = &lockedAt
	}
	return resp
}

type SummaryResponse struct {
	WorkerID     string  `json:"worker_id"`
	WorkerName   string  `json:"worker_name,omitempty"`
	EntryCount   int     `json:"entry_count"`
	TotalHours   float64 `json:"total_hours"`
	AverageHours float64 `json:"average_hours"`
	HourlyRate   string  `json:"hourly_rate"`
	Pay          string  `json:"pay"`
}

func NewSummaryResponse(s PeriodSummary) SummaryResponse {
	return SummaryResponse{
		WorkerID:     s.WorkerID,
		WorkerName:   s.WorkerName,
		EntryCount:   s.EntryCount,
		TotalHours:   s.TotalHours,
		AverageHours: s.AverageHours,
		HourlyRate:   s.HourlyRate.StringFixed(2),
		Pay:          s.Pay.StringFixed(2),
	}
}

type RangeResponse struct {
	Entries []EntryResponse `json:"entries"`
	Summary SummaryResponse `json:"summary"`
}

// MonthReportResponse is the admin view: one summary row per worker.
type MonthReportResponse struct {
	PeriodMonth int               `json:"period_month"`
	PeriodYear  int               `json:"period_year"`
	Workers     []SummaryResponse `json:"workers"`
}
