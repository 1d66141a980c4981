package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kestrelhq/ops-backend-go/internal/domain/timesheet"
	"github.com/kestrelhq/ops-backend-go/internal/handler/http/response"
)

type TimesheetHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListWorker(w http.ResponseWriter, r *http.Request)
	MonthReport(w http.ResponseWriter, r *http.Request)
	Lock(w http.ResponseWriter, r *http.Request)
	Unlock(w http.ResponseWriter, r *http.Request)
}

type TimesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService) TimesheetHandler {
	return &TimesheetHandlerImpl{timesheetService: timesheetService}
}

// Submit implements TimesheetHandler.
func (h *TimesheetHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	act, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var submitReq timesheet.SubmitEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&submitReq); err != nil {
		slog.Error("Submit entry decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	submitReq.ActorID = act.ID

	entry, err := h.timesheetService.Submit(r.Context(), submitReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Time entry saved", entry)
}

// Delete implements TimesheetHandler.
func (h *TimesheetHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	act, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	err = h.timesheetService.Delete(r.Context(), timesheet.DeleteEntryRequest{
		EntryID: chi.URLParam(r, "entryID"),
		ActorID: act.ID,
		IsAdmin: act.IsAdmin(),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time entry deleted", nil)
}

// rangeFromQuery reads start/end date query params, defaulting to the
// current calendar month.
func rangeFromQuery(r *http.Request) (string, string) {
	start := r.URL.Query().Get("start_date")
	end := r.URL.Query().Get("end_date")
	if start == "" || end == "" {
		now := time.Now()
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		start = first.Format("2006-01-02")
		end = first.AddDate(0, 1, -1).Format("2006-01-02")
	}
	return start, end
}

// ListMine implements TimesheetHandler.
func (h *TimesheetHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	act, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	start, end := rangeFromQuery(r)
	resp, err := h.timesheetService.ListRange(r.Context(), timesheet.ListRangeRequest{
		WorkerID:  act.ID,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// ListWorker implements TimesheetHandler. Manager view of one worker's ledger.
func (h *TimesheetHandlerImpl) ListWorker(w http.ResponseWriter, r *http.Request) {
	start, end := rangeFromQuery(r)
	resp, err := h.timesheetService.ListRange(r.Context(), timesheet.ListRangeRequest{
		WorkerID:  chi.URLParam(r, "workerID"),
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}

// MonthReport implements TimesheetHandler.
func (h *TimesheetHandlerImpl) MonthReport(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	month := int(now.Month())
	year := now.Year()

	if m := r.URL.Query().Get("month"); m != "" {
		parsed, err := strconv.Atoi(m)
		if err != nil || parsed < 1 || parsed > 12 {
			response.BadRequest(w, "month must be between 1 and 12", nil)
			return
		}
		month = parsed
	}
	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			response.BadRequest(w, "year must be a number", nil)
			return
		}
		year = parsed
	}

	report, err := h.timesheetService.MonthReport(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}

// Lock implements TimesheetHandler.
func (h *TimesheetHandlerImpl) Lock(w http.ResponseWriter, r *http.Request) {
	act, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var lockReq timesheet.LockEntriesRequest
	if err := json.NewDecoder(r.Body).Decode(&lockReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	lockReq.AdminID = act.ID

	if err := h.timesheetService.Lock(r.Context(), lockReq); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time entries locked", nil)
}

// Unlock implements TimesheetHandler.
func (h *TimesheetHandlerImpl) Unlock(w http.ResponseWriter, r *http.Request) {
	act, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.timesheetService.Unlock(r.Context(), chi.URLParam(r, "entryID"), act.ID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time entry unlocked", nil)
}
