package invoice

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kestrelhq/ops-backend-go/internal/domain/invoice"
	"github.com/kestrelhq/ops-backend-go/internal/domain/user"
)

type fakeInvoiceRepo struct {
	invoices map[string]invoice.Invoice
	names    map[string]string // worker id -> full name
	nextID   int
}

func newFakeInvoiceRepo(names map[string]string) *fakeInvoiceRepo {
	return &fakeInvoiceRepo{
		invoices: make(map[string]invoice.Invoice),
		names:    names,
	}
}

func (f *fakeInvoiceRepo) withName(inv invoice.Invoice) invoice.Invoice {
	if name, ok := f.names[inv.WorkerID]; ok {
		inv.WorkerName = &name
	}
	return inv
}

func (f *fakeInvoiceRepo) Create(ctx context.Context, inv invoice.Invoice) (invoice.Invoice, error) {
	f.nextID++
	inv.ID = fmt.Sprintf("inv-%d", f.nextID)
	inv.CreatedAt = time.Now()
	inv.UpdatedAt = inv.CreatedAt
	f.invoices[inv.ID] = inv
	return f.withName(inv), nil
}

func (f *fakeInvoiceRepo) GetByID(ctx context.Context, id string) (invoice.Invoice, error) {
	inv, ok := f.invoices[id]
	if !ok {
		return invoice.Invoice{}, invoice.ErrInvoiceNotFound
	}
	return f.withName(inv), nil
}

func (f *fakeInvoiceRepo) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	for _, inv := range f.invoices {
		if inv.InvoiceNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeInvoiceRepo) List(ctx context.Context, filter invoice.ListFilter) ([]invoice.Invoice, int64, error) {
	var out []invoice.Invoice
	for _, inv := range f.invoices {
		if filter.Status != nil && string(inv.Status) != *filter.Status {
			continue
		}
		if filter.WorkerID != nil && inv.WorkerID != *filter.WorkerID {
			continue
		}
		out = append(out, f.withName(inv))
	}
	return out, int64(len(out)), nil
}

func (f *fakeInvoiceRepo) ListNotReceived(ctx context.Context) ([]invoice.Invoice, error) {
	var out []invoice.Invoice
	// Deterministic order: iterate by insertion id.
	for i := 1; i <= f.nextID; i++ {
		inv, ok := f.invoices[fmt.Sprintf("inv-%d", i)]
		if ok && inv.Status != invoice.StatusReceived {
			out = append(out, f.withName(inv))
		}
	}
	return out, nil
}

func (f *fakeInvoiceRepo) UpdateStatus(ctx context.Context, id string, status invoice.InvoiceStatus, paymentDate *time.Time) error {
	inv, ok := f.invoices[id]
	if !ok {
		return invoice.ErrInvoiceNotFound
	}
	inv.Status = status
	inv.PaymentReceivedDate = paymentDate
	inv.UpdatedAt = time.Now()
	f.invoices[id] = inv
	return nil
}

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
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
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	return nil
}

func (f *fakeUserRepo) UpdateHourlyRate(ctx context.Context, userID string, rate string) error {
	return nil
}

func newService() (invoice.InvoiceService, *fakeInvoiceRepo) {
	names := map[string]string{
		"w1": "Ada Lovelace",
		"w2": "Grace Hopper",
	}
	users := &fakeUserRepo{users: map[string]user.User{
		"w1": {ID: "w1", FullName: "Ada Lovelace", Role: user.RoleWorker, HourlyRate: decimal.NewFromInt(75)},
		"w2": {ID: "w2", FullName: "Grace Hopper", Role: user.RoleWorker, HourlyRate: decimal.NewFromInt(80)},
	}}
	repo := newFakeInvoiceRepo(names)
	return NewInvoiceService(nil, repo, users), repo
}

func validCreate(number, workerID string) invoice.CreateInvoiceRequest {
	return invoice.CreateInvoiceRequest{
		AdminID:        "admin-1",
		InvoiceNumber:  number,
		WorkerID:       workerID,
		BilledToName:   "Acme Corp",
		PeriodMonth:    3,
		PeriodYear:     2026,
		IssueDate:      "2026-03-31",
		GrossAmount:    "10000",
		BilledHours:    "160",
		Classification: "w2",
	}
}

func TestCreateInvoice(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.Create(context.Background(), validCreate("INV-2026-001", "w1"))
	require.NoError(t, err)

	assert.Equal(t, "INV-2026-001", resp.InvoiceNumber)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "10000.00", resp.GrossAmount)
	assert.Nil(t, resp.PaymentReceivedDate)
}

func TestCreateDuplicateNumber(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Create(context.Background(), validCreate("INV-2026-001", "w1"))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), validCreate("INV-2026-001", "w2"))
	assert.ErrorIs(t, err, invoice.ErrDuplicateInvoiceNumber)
}

func TestCreateUnknownWorker(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Create(context.Background(), validCreate("INV-2026-001", "ghost"))
	assert.ErrorIs(t, err, invoice.ErrWorkerNotFound)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newService()

	tests := []struct {
		name   string
		mutate func(*invoice.CreateInvoiceRequest)
	}{
		{"negative gross", func(r *invoice.CreateInvoiceRequest) { r.GrossAmount = "-1" }},
		{"negative hours", func(r *invoice.CreateInvoiceRequest) { r.BilledHours = "-40" }},
		{"bad month", func(r *invoice.CreateInvoiceRequest) { r.PeriodMonth = 13 }},
		{"bad classification", func(r *invoice.CreateInvoiceRequest) { r.Classification = "hourly" }},
		{"1099 without payee", func(r *invoice.CreateInvoiceRequest) { r.Classification = "c2c_1099" }},
		{"bad number", func(r *invoice.CreateInvoiceRequest) { r.InvoiceNumber = "no" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreate("INV-2026-009", "w1")
			tt.mutate(&req)
			_, err := svc.Create(context.Background(), req)
			assert.Error(t, err)
		})
	}
}

func TestUpdateStatusReceivedRequiresDate(t *testing.T) {
	svc, _ := newService()

	created, err := svc.Create(context.Background(), validCreate("INV-2026-001", "w1"))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), invoice.UpdateStatusRequest{
		InvoiceID: created.ID,
		AdminID:   "admin-1",
		Status:    "received",
	})
	assert.Error(t, err)

	date := "2026-04-15"
	resp, err := svc.UpdateStatus(context.Background(), invoice.UpdateStatusRequest{
		InvoiceID:           created.ID,
		AdminID:             "admin-1",
		Status:              "received",
		PaymentReceivedDate: &date,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.PaymentReceivedDate)
	assert.Equal(t, "2026-04-15", *resp.PaymentReceivedDate)
}

func TestUpdateStatusAwayFromReceivedClearsDate(t *testing.T) {
	svc, _ := newService()

	created, err := svc.Create(context.Background(), validCreate("INV-2026-001", "w1"))
	require.NoError(t, err)

	date := "2026-04-15"
	_, err = svc.UpdateStatus(context.Background(), invoice.UpdateStatusRequest{
		InvoiceID:           created.ID,
		AdminID:             "admin-1",
		Status:              "received",
		PaymentReceivedDate: &date,
	})
	require.NoError(t, err)

	resp, err := svc.UpdateStatus(context.Background(), invoice.UpdateStatusRequest{
		InvoiceID: created.ID,
		AdminID:   "admin-1",
		Status:    "waiting_on_client",
	})
	require.NoError(t, err)
	assert.Nil(t, resp.PaymentReceivedDate)
}

func TestListPendingGroupsByWorker(t *testing.T) {
	svc, _ := newService()

	for i, tc := range []struct {
		worker string
		gross  string
	}{
		{"w1", "10000"},
		{"w1", "2500.50"},
		{"w2", "8000"},
	} {
		_, err := svc.Create(context.Background(), func() invoice.CreateInvoiceRequest {
			r := validCreate(fmt.Sprintf("INV-2026-%03d", i+1), tc.worker)
			r.GrossAmount = tc.gross
			return r
		}())
		require.NoError(t, err)
	}

	// Mark one of w1's invoices received; it must drop out of the groups.
	date := "2026-04-15"
	_, err := svc.UpdateStatus(context.Background(), invoice.UpdateStatusRequest{
		InvoiceID:           "inv-2",
		AdminID:             "admin-1",
		Status:              "received",
		PaymentReceivedDate: &date,
	})
	require.NoError(t, err)

	resp, err := svc.ListPending(context.Background())
	require.NoError(t, err)

	require.Len(t, resp.Groups, 2)
	assert.Equal(t, "w1", resp.Groups[0].WorkerID)
	assert.Equal(t, "Ada Lovelace", resp.Groups[0].WorkerName)
	assert.Equal(t, "10000.00", resp.Groups[0].TotalAmount)
	assert.Equal(t, "w2", resp.Groups[1].WorkerID)
	assert.Equal(t, "8000.00", resp.Groups[1].TotalAmount)
	assert.Equal(t, "18000.00", resp.TotalAmount)
}

func TestListFilterByStatus(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Create(context.Background(), validCreate("INV-2026-001", "w1"))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), validCreate("INV-2026-002", "w2"))
	require.NoError(t, err)

	date := "2026-04-15"
	_, err = svc.UpdateStatus(context.Background(), invoice.UpdateStatusRequest{
		InvoiceID:           "inv-1",
		AdminID:             "admin-1",
		Status:              "received",
		PaymentReceivedDate: &date,
	})
	require.NoError(t, err)

	status := "received"
	resp, err := svc.List(context.Background(), invoice.ListFilter{Status: &status})
	require.NoError(t, err)

	require.Len(t, resp.Invoices, 1)
	assert.Equal(t, "INV-2026-001", resp.Invoices[0].InvoiceNumber)
	assert.Equal(t, int64(1), resp.TotalItems)
}
