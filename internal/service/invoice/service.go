package invoice

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/kestrelhq/ops-backend-go/internal/domain/invoice"
	"github.com/kestrelhq/ops-backend-go/internal/domain/user"
	"github.com/kestrelhq/ops-backend-go/internal/pkg/database"
)

type InvoiceServiceImpl struct {
	db          *database.DB
	invoiceRepo invoice.InvoiceRepository
	userRepo    user.UserRepository
}

func NewInvoiceService(
	db *database.DB,
	invoiceRepo invoice.InvoiceRepository,
	userRepo user.UserRepository,
) invoice.InvoiceService {
	return &InvoiceServiceImpl{
		db:          db,
		invoiceRepo: invoiceRepo,
		userRepo:    userRepo,
	}
}

// Create implements invoice.InvoiceService.
func (s *InvoiceServiceImpl) Create(ctx context.Context, req invoice.CreateInvoiceRequest) (invoice.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return invoice.InvoiceResponse{}, err
	}

	worker, err := s.userRepo.GetByID(ctx, req.WorkerID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return invoice.InvoiceResponse{}, invoice.ErrWorkerNotFound
		}
		return invoice.InvoiceResponse{}, err
	}

	exists, err := s.invoiceRepo.ExistsByNumber(ctx, req.InvoiceNumber)
	if err != nil {
		return invoice.InvoiceResponse{}, err
	}
	if exists {
		return invoice.InvoiceResponse{}, invoice.ErrDuplicateInvoiceNumber
	}

	created, err := s.invoiceRepo.Create(ctx, req.ToEntity())
	if err != nil {
		return invoice.InvoiceResponse{}, err
	}
	if created.WorkerName == nil {
		created.WorkerName = &worker.FullName
	}

	return invoice.NewInvoiceResponse(created), nil
}

// Get implements invoice.InvoiceService.
func (s *InvoiceServiceImpl) Get(ctx context.Context, id string) (invoice.InvoiceResponse, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return invoice.InvoiceResponse{}, err
	}
	return invoice.NewInvoiceResponse(inv), nil
}

// List implements invoice.InvoiceService.
func (s *InvoiceServiceImpl) List(ctx context.Context, filter invoice.ListFilter) (invoice.ListInvoiceResponse, error) {
	if err := filter.Validate(); err != nil {
		return invoice.ListInvoiceResponse{}, err
	}

	invoices, total, err := s.invoiceRepo.List(ctx, filter)
	if err != nil {
		return invoice.ListInvoiceResponse{}, err
	}

	resp := invoice.ListInvoiceResponse{
		Invoices:   make([]invoice.InvoiceResponse, 0, len(invoices)),
		TotalItems: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	for _, inv := range invoices {
		resp.Invoices = append(resp.Invoices, invoice.NewInvoiceResponse(inv))
	}
	return resp, nil
}

// UpdateStatus implements invoice.InvoiceService. Any status can follow
// any other; moving away from "received" clears the stored payment date.
func (s *InvoiceServiceImpl) UpdateStatus(ctx context.Context, req invoice.UpdateStatusRequest) (invoice.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return invoice.InvoiceResponse{}, err
	}

	if _, err := s.invoiceRepo.GetByID(ctx, req.InvoiceID); err != nil {
		return invoice.InvoiceResponse{}, err
	}

	if err := s.invoiceRepo.UpdateStatus(ctx, req.InvoiceID, invoice.InvoiceStatus(req.Status), req.PaymentDate()); err != nil {
		return invoice.InvoiceResponse{}, err
	}

	updated, err := s.invoiceRepo.GetByID(ctx, req.InvoiceID)
	if err != nil {
		return invoice.InvoiceResponse{}, err
	}
	return invoice.NewInvoiceResponse(updated), nil
}

// ListPending implements invoice.InvoiceService. Groups key off the
// worker reference, so renames and name variants never split a group.
func (s *InvoiceServiceImpl) ListPending(ctx context.Context) (invoice.PendingResponse, error) {
	invoices, err := s.invoiceRepo.ListNotReceived(ctx)
	if err != nil {
		return invoice.PendingResponse{}, err
	}

	grouped := make(map[string][]invoice.Invoice)
	var order []string
	for _, inv := range invoices {
		if _, seen := grouped[inv.WorkerID]; !seen {
			order = append(order, inv.WorkerID)
		}
		grouped[inv.WorkerID] = append(grouped[inv.WorkerID], inv)
	}

	resp := invoice.PendingResponse{
		Groups: make([]invoice.PendingGroup, 0, len(order)),
	}
	grand := decimal.Zero
	for _, workerID := range order {
		invs := grouped[workerID]
		group := invoice.PendingGroup{
			WorkerID: workerID,
			Invoices: make([]invoice.InvoiceResponse, 0, len(invs)),
		}
		subtotal := decimal.Zero
		for _, inv := range invs {
			if inv.WorkerName != nil {
				group.WorkerName = *inv.WorkerName
			}
			subtotal = subtotal.Add(inv.GrossAmount)
			group.Invoices = append(group.Invoices, invoice.NewInvoiceResponse(inv))
		}
		group.TotalAmount = subtotal.StringFixed(2)
		grand = grand.Add(subtotal)
		resp.Groups = append(resp.Groups, group)
	}
	resp.TotalAmount = grand.StringFixed(2)
	return resp, nil
}
