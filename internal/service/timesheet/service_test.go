package timesheet

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelhq/ops-backend-go/internal/domain/timesheet"
	"github.com/kestrelhq/ops-backend-go/internal/domain/user"
)

type fakeLedger struct {
	entries map[string]timesheet.TimeEntry
	nextID  int
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{entries: make(map[string]timesheet.TimeEntry)}
}

func (f *fakeLedger) Upsert(ctx context.Context, entry timesheet.TimeEntry) (timesheet.TimeEntry, error) {
	for id, e := range f.entries {
		if e.WorkerID == entry.WorkerID && e.Date.Equal(entry.Date) {
			e.Hours = entry.Hours
			e.Note = entry.Note
			e.ClientName = entry.ClientName
			e.UpdatedAt = time.Now()
			f.entries[id] = e
			return e, nil
		}
	}
	f.nextID++
	entry.ID = fmt.Sprintf("entry-%d", f.nextID)
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt
	f.entries[entry.ID] = entry
	return entry, nil
}

func (f *fakeLedger) GetByID(ctx context.Context, id string) (timesheet.TimeEntry, error) {
	e, ok := f.entries[id]
	if !ok {
		return timesheet.TimeEntry{}, timesheet.ErrEntryNotFound
	}
	return e, nil
}

func (f *fakeLedger) GetByWorkerAndDate(ctx context.Context, workerID string, date time.Time) (*timesheet.TimeEntry, error) {
	for _, e := range f.entries {
		if e.WorkerID == workerID && e.Date.Equal(date) {
			found := e
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeLedger) ListRange(ctx context.Context, workerID string, start, end time.Time) ([]timesheet.TimeEntry, error) {
	var out []timesheet.TimeEntry
	for _, e := range f.entries {
		if e.WorkerID == workerID && !e.Date.Before(start) && !e.Date.After(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeLedger) ListAllRange(ctx context.Context, start, end time.Time) ([]timesheet.TimeEntry, error) {
	var out []timesheet.TimeEntry
	for _, e := range f.entries {
		if !e.Date.Before(start) && !e.Date.After(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeLedger) Delete(ctx context.Context, id string) error {
	if _, ok := f.entries[id]; !ok {
		return timesheet.ErrEntryNotFound
	}
	delete(f.entries, id)
	return nil
}

func (f *fakeLedger) SetLock(ctx context.Context, ids []string, locked bool, actorID string, at time.Time) error {
	for _, id := range ids {
		e, ok := f.entries[id]
		if !ok {
			continue
		}
		e.Locked = locked
		e.LockedBy = &actorID
		e.LockedAt = &at
		f.entries[id] = e
	}
	return nil
}

type fakeUserRepo struct {
	users map[string]user.User
}

func newFakeUserRepo(users ...user.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[string]user.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) Create(ctx context.Context, newUser user.User) (user.User, error) {
	f.users[newUser.ID] = newUser
	return newUser, nil
}

func (f *fakeUserRepo) List(ctx context.Context) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) LinkGoogleAccount(ctx context.Context, googleID string, email string) (user.User, error) {
	for id, u := range f.users {
		if u.Email == email {
			provider := "google"
			u.OAuthProvider = &provider
			u.OAuthSubject = &googleID
			f.users[id] = u
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	u, ok := f.users[userID]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PasswordHash = &passwordHash
	f.users[userID] = u
	return nil
}

func (f *fakeUserRepo) UpdateHourlyRate(ctx context.Context, userID string, rate string) error {
	u, ok := f.users[userID]
	if !ok {
		return user.ErrUserNotFound
	}
	r, err := decimal.NewFromString(rate)
	if err != nil {
		return err
	}
	u.HourlyRate = r
	f.users[userID] = u
	return nil
}

func testWorker(id, name string, rate string) user.User {
	r, _ := decimal.NewFromString(rate)
	return user.User{
		ID:         id,
		Email:      id + "@example.com",
		FullName:   name,
		Role:       user.RoleWorker,
		HourlyRate: r,
	}
}

func TestSubmitCreatesEntry(t *testing.T) {
	ledger := newFakeLedger()
	users := newFakeUserRepo(testWorker("w1", "Ada Lovelace", "75"))
	svc := NewTimesheetService(nil, ledger, users)

	resp, err := svc.Submit(context.Background(), timesheet.SubmitEntryRequest{
		ActorID: "w1",
		Date:    "2026-03-02",
		Hours:   8,
	})
	require.NoError(t, err)
	assert.Equal(t, "w1", resp.WorkerID)
	assert.Equal(t, "2026-03-02", resp.Date)
	assert.Equal(t, 8.0, resp.Hours)
	assert.False(t, resp.IsLocked)
}

func TestSubmitSameDayReplacesEntry(t *testing.T) {
	ledger := newFakeLedger()
	users := newFakeUserRepo(testWorker("w1", "Ada Lovelace", "75"))
	svc := NewTimesheetService(nil, ledger, users)

	first, err := svc.Submit(context.Background(), timesheet.SubmitEntryRequest{
		ActorID: "w1", Date: "2026-03-02", Hours: 4,
	})
	require.NoError(t, err)

	second, err := svc.Submit(context.Background(), timesheet.SubmitEntryRequest{
		ActorID: "w1", Date: "2026-03-02", Hours: 7.5,
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "same day should update in place")
	assert.Equal(t, 7.5, second.Hours)
	assert.Len(t, ledger.entries, 1)
}

func TestSubmitRejectsLockedEntry(t *testing.T) {
	ledger := newFakeLedger()
	users := newFakeUserRepo(testWorker("w1", "Ada Lovelace", "75"))
	svc := NewTimesheetService(nil, ledger, users)

	resp, err := svc.Submit(context.Background(), timesheet.SubmitEntryRequest{
		ActorID: "w1", Date: "2026-03-02", Hours: 8,
	})
	require.NoError(t, err)

	require.NoError(t, ledger.SetLock(context.Background(), []string{resp.ID}, true, "admin-1", time.Now()))

	_, err = svc.Submit(context.Background(), timesheet.SubmitEntryRequest{
		ActorID: "w1", Date: "2026-03-02", Hours: 6,
	})
	assert.ErrorIs(t, err, timesheet.ErrEntryLocked)
}

func TestSubmitValidation(t *testing.T) {
	ledger := newFakeLedger()
	users := newFakeUserRepo(testWorker("w1", "Ada Lovelace", "75"))
	svc := NewTimesheetService(nil, ledger, users)

	tests := []struct {
		name string
		req  timesheet.SubmitEntryRequest
	}{
		{"negative hours", timesheet.SubmitEntryRequest{ActorID: "w1", Date: "2026-03-02", Hours: -1}},
		{"over 24 hours", timesheet.SubmitEntryRequest{ActorID: "w1", Date: "2026-03-02", Hours: 25}},
		{"bad date", timesheet.SubmitEntryRequest{ActorID: "w1", Date: "03/02/2026", Hours: 8}},
		{"missing actor", timesheet.SubmitEntryRequest{Date: "2026-03-02", Hours: 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Submit(context.Background(), tt.req)
			assert.Error(t, err)
		})
	}
}

func TestSubmitUnknownWorker(t *testing.T) {
	svc := NewTimesheetService(nil, newFakeLedger(), newFakeUserRepo())

	_, err := svc.Submit(context.Background(), timesheet.SubmitEntryRequest{
		ActorID: "ghost", Date: "2026-03-02", Hours: 8,
	})
	assert.ErrorIs(t, err, timesheet.ErrWorkerNotFound)
}

func TestDeleteOwnership(t *testing.T) {
	ledger := newFakeLedger()
	users := newFakeUserRepo(
		testWorker("w1", "Ada Lovelace", "75"),
		testWorker("w2", "Grace Hopper", "80"),
	)
	svc := NewTimesheetService(nil, ledger, users)

	resp, err := svc.Submit(context.Background(), timesheet.SubmitEntryRequest{
		ActorID: "w1", Date: "2026-03-02", Hours: 8,
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), timesheet.DeleteEntryRequest{
		EntryID: resp.ID, ActorID: "w2",
	})
	assert.ErrorIs(t, err, timesheet.ErrNotEntryOwner)

	// Admins may delete anyone's unlocked entry.
	err = svc.Delete(context.Background(), timesheet.DeleteEntryRequest{
		EntryID: resp.ID, ActorID: "admin-1", IsAdmin: true,
	})
	assert.NoError(t, err)
}

func TestDeleteLockedEntryFails(t *testing.T) {
	ledger := newFakeLedger()
	users := newFakeUserRepo(testWorker("w1", "Ada Lovelace", "75"))
	svc := NewTimesheetService(nil, ledger, users)

	resp, err := svc.Submit(context.Background(), timesheet.SubmitEntryRequest{
		ActorID: "w1", Date: "2026-03-02", Hours: 8,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Lock(context.Background(), timesheet.LockEntriesRequest{
		AdminID: "admin-1", EntryIDs: []string{resp.ID},
	}))

	// Locked rows refuse deletion even from an admin.
	err = svc.Delete(context.Background(), timesheet.DeleteEntryRequest{
		EntryID: resp.ID, ActorID: "admin-1", IsAdmin: true,
	})
	assert.ErrorIs(t, err, timesheet.ErrEntryLocked)
}

func TestListRangeSummary(t *testing.T) {
	ledger := newFakeLedger()
	users := newFakeUserRepo(testWorker("w1", "Ada Lovelace", "75"))
	svc := NewTimesheetService(nil, ledger, users)

	for i, hours := range []float64{8, 6, 7.5} {
		_, err := svc.Submit(context.Background(), timesheet.SubmitEntryRequest{
			ActorID: "w1",
			Date:    fmt.Sprintf("2026-03-%02d", i+2),
			Hours:   hours,
		})
		require.NoError(t, err)
	}

	resp, err := svc.ListRange(context.Background(), timesheet.ListRangeRequest{
		WorkerID:  "w1",
		StartDate: "2026-03-01",
		EndDate:   "2026-03-31",
	})
	require.NoError(t, err)

	assert.Len(t, resp.Entries, 3)
	assert.Equal(t, 3, resp.Summary.EntryCount)
	assert.Equal(t, 21.5, resp.Summary.TotalHours)
	assert.InDelta(t, 21.5/3, resp.Summary.AverageHours, 1e-9)
	assert.Equal(t, "1612.50", resp.Summary.Pay)
}

func TestListRangeEmptyPeriod(t *testing.T) {
	users := newFakeUserRepo(testWorker("w1", "Ada Lovelace", "75"))
	svc := NewTimesheetService(nil, newFakeLedger(), users)

	resp, err := svc.ListRange(context.Background(), timesheet.ListRangeRequest{
		WorkerID:  "w1",
		StartDate: "2026-03-01",
		EndDate:   "2026-03-31",
	})
	require.NoError(t, err)

	assert.Empty(t, resp.Entries)
	assert.Equal(t, 0, resp.Summary.EntryCount)
	assert.Equal(t, 0.0, resp.Summary.AverageHours)
	assert.Equal(t, "0.00", resp.Summary.Pay)
}

func TestListRangeInvertedDatesRejected(t *testing.T) {
	users := newFakeUserRepo(testWorker("w1", "Ada Lovelace", "75"))
	svc := NewTimesheetService(nil, newFakeLedger(), users)

	_, err := svc.ListRange(context.Background(), timesheet.ListRangeRequest{
		WorkerID:  "w1",
		StartDate: "2026-03-31",
		EndDate:   "2026-03-01",
	})
	assert.Error(t, err)
}

func TestMonthReportGroupsByWorker(t *testing.T) {
	ledger := newFakeLedger()
	users := newFakeUserRepo(
		testWorker("w1", "Ada Lovelace", "75"),
		testWorker("w2", "Grace Hopper", "80"),
	)
	svc := NewTimesheetService(nil, ledger, users)

	for _, sub := range []timesheet.SubmitEntryRequest{
		{ActorID: "w1", Date: "2026-03-02", Hours: 8},
		{ActorID: "w1", Date: "2026-03-03", Hours: 8},
		{ActorID: "w2", Date: "2026-03-02", Hours: 6},
	} {
		_, err := svc.Submit(context.Background(), sub)
		require.NoError(t, err)
	}

	report, err := svc.MonthReport(context.Background(), 3, 2026)
	require.NoError(t, err)

	require.Len(t, report.Workers, 2)
	byID := make(map[string]timesheet.SummaryResponse)
	for _, w := range report.Workers {
		byID[w.WorkerID] = w
	}
	assert.Equal(t, 16.0, byID["w1"].TotalHours)
	assert.Equal(t, "1200.00", byID["w1"].Pay)
	assert.Equal(t, 6.0, byID["w2"].TotalHours)
	assert.Equal(t, "480.00", byID["w2"].Pay)
}

func TestUnlockRequiresLockedEntry(t *testing.T) {
	ledger := newFakeLedger()
	users := newFakeUserRepo(testWorker("w1", "Ada Lovelace", "75"))
	svc := NewTimesheetService(nil, ledger, users)

	resp, err := svc.Submit(context.Background(), timesheet.SubmitEntryRequest{
		ActorID: "w1", Date: "2026-03-02", Hours: 8,
	})
	require.NoError(t, err)

	err = svc.Unlock(context.Background(), resp.ID, "admin-1")
	assert.ErrorIs(t, err, timesheet.ErrEntryUnlocked)

	require.NoError(t, svc.Lock(context.Background(), timesheet.LockEntriesRequest{
		AdminID: "admin-1", EntryIDs: []string{resp.ID},
	}))

	require.NoError(t, svc.Unlock(context.Background(), resp.ID, "admin-1"))

	entry, err := ledger.GetByID(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.False(t, entry.Locked)
	// The unlock is audited: the columns now name the unlocking admin.
	require.NotNil(t, entry.LockedBy)
	assert.Equal(t, "admin-1", *entry.LockedBy)
	assert.NotNil(t, entry.LockedAt)
}

func TestLockUnknownEntryFails(t *testing.T) {
	users := newFakeUserRepo(testWorker("w1", "Ada Lovelace", "75"))
	svc := NewTimesheetService(nil, newFakeLedger(), users)

	err := svc.Lock(context.Background(), timesheet.LockEntriesRequest{
		AdminID: "admin-1", EntryIDs: []string{"nope"},
	})
	assert.ErrorIs(t, err, timesheet.ErrEntryNotFound)
}
