package deduction

import (
	"context"
	"errors"

	"github.com/kestrelhq/ops-backend-go/internal/domain/deduction"
	"github.com/kestrelhq/ops-backend-go/internal/domain/invoice"
	"github.com/kestrelhq/ops-backend-go/internal/pkg/database"
)

type DeductionServiceImpl struct {
	db            *database.DB
	deductionRepo deduction.DeductionRepository
	invoiceRepo   invoice.InvoiceRepository
}

func NewDeductionService(
	db *database.DB,
	deductionRepo deduction.DeductionRepository,
	invoiceRepo invoice.InvoiceRepository,
) deduction.DeductionService {
	return &DeductionServiceImpl{
		db:            db,
		deductionRepo: deductionRepo,
		invoiceRepo:   invoiceRepo,
	}
}

// Save implements deduction.DeductionService. The sheet is replaced
// wholesale and net payable recomputed from the invoice gross on every
// save, so an identical payload always lands on the identical result.
func (s *DeductionServiceImpl) Save(ctx context.Context, req deduction.SaveDeductionRequest) (deduction.DeductionResponse, error) {
	if err := req.Validate(); err != nil {
		return deduction.DeductionResponse{}, err
	}

	inv, err := s.invoiceRepo.GetByID(ctx, req.InvoiceID)
	if err != nil {
		if errors.Is(err, invoice.ErrInvoiceNotFound) {
			return deduction.DeductionResponse{}, deduction.ErrInvoiceNotFound
		}
		return deduction.DeductionResponse{}, err
	}

	// The compensation line must carry the invoice's own classification.
	if string(inv.Classification) != req.CompensationKind {
		return deduction.DeductionResponse{}, deduction.ErrCompensationMismatch
	}

	d := req.ToEntity()
	d.NetPayable = deduction.ComputeNetPayable(inv.GrossAmount, d)

	saved, err := s.deductionRepo.Upsert(ctx, d)
	if err != nil {
		return deduction.DeductionResponse{}, err
	}
	return deduction.NewDeductionResponse(saved), nil
}

// Get implements deduction.DeductionService.
func (s *DeductionServiceImpl) Get(ctx context.Context, invoiceID string) (deduction.DeductionResponse, error) {
	if _, err := s.invoiceRepo.GetByID(ctx, invoiceID); err != nil {
		if errors.Is(err, invoice.ErrInvoiceNotFound) {
			return deduction.DeductionResponse{}, deduction.ErrInvoiceNotFound
		}
		return deduction.DeductionResponse{}, err
	}

	d, err := s.deductionRepo.GetByInvoiceID(ctx, invoiceID)
	if err != nil {
		return deduction.DeductionResponse{}, err
	}
	return deduction.NewDeductionResponse(d), nil
}
