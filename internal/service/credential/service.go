package credential

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/kestrelhq/ops-backend-go/internal/domain/credential"
	"github.com/kestrelhq/ops-backend-go/internal/domain/user"
	"github.com/kestrelhq/ops-backend-go/internal/pkg/email"
	"github.com/kestrelhq/ops-backend-go/internal/repository/postgresql"
)

type CredentialServiceImpl struct {
	db          postgresql.TxBeginner
	requestRepo credential.ChangeRequestRepository
	userRepo    user.UserRepository
	emailSvc    email.EmailService
	portalLink  string
}

func NewCredentialService(
	db postgresql.TxBeginner,
	requestRepo credential.ChangeRequestRepository,
	userRepo user.UserRepository,
	emailSvc email.EmailService,
	portalLink string,
) credential.CredentialService {
	return &CredentialServiceImpl{
		db:          db,
		requestRepo: requestRepo,
		userRepo:    userRepo,
		emailSvc:    emailSvc,
		portalLink:  portalLink,
	}
}

// Request implements credential.CredentialService. The candidate password
// is hashed and parked on the request row; the live credential stays
// untouched until a reviewer approves.
func (s *CredentialServiceImpl) Request(ctx context.Context, req *credential.RequestChangeRequest) (credential.ChangeRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return credential.ChangeRequestResponse{}, err
	}

	u, err := s.userRepo.GetByID(ctx, req.ActorID)
	if err != nil {
		return credential.ChangeRequestResponse{}, err
	}
	if u.PasswordHash == nil {
		return credential.ChangeRequestResponse{}, credential.ErrPasswordMismatch
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return credential.ChangeRequestResponse{}, credential.ErrPasswordMismatch
	}
	if bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.NewPassword)) == nil {
		return credential.ChangeRequestResponse{}, credential.ErrPasswordUnchanged
	}

	pending, err := s.requestRepo.HasPendingForUser(ctx, req.ActorID)
	if err != nil {
		return credential.ChangeRequestResponse{}, err
	}
	if pending {
		return credential.ChangeRequestResponse{}, credential.ErrRequestAlreadyPending
	}

	candidateHash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return credential.ChangeRequestResponse{}, err
	}

	created, err := s.requestRepo.Create(ctx, credential.ChangeRequest{
		UserID:        req.ActorID,
		CandidateHash: string(candidateHash),
	})
	if err != nil {
		return credential.ChangeRequestResponse{}, err
	}
	return credential.ToResponse(created), nil
}

// Approve implements credential.CredentialService. The candidate hash
// becomes the live credential in the same transaction that closes the
// request; neither write lands without the other.
func (s *CredentialServiceImpl) Approve(ctx context.Context, req *credential.ReviewRequest) (credential.ChangeRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return credential.ChangeRequestResponse{}, err
	}

	cr, err := s.requestRepo.GetByID(ctx, req.RequestID)
	if err != nil {
		return credential.ChangeRequestResponse{}, err
	}
	if !cr.IsPending() {
		return credential.ChangeRequestResponse{}, credential.ErrRequestNotPending
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.userRepo.UpdatePassword(txCtx, cr.UserID, cr.CandidateHash); err != nil {
			return err
		}
		return s.requestRepo.UpdateStatus(txCtx, cr.ID, credential.StatusApproved, req.ReviewerID, nil)
	})
	if err != nil {
		return credential.ChangeRequestResponse{}, err
	}

	s.notify(cr, true, "")

	updated, err := s.requestRepo.GetByID(ctx, cr.ID)
	if err != nil {
		return credential.ChangeRequestResponse{}, err
	}
	return credential.ToResponse(updated), nil
}

// Reject implements credential.CredentialService. The live credential is
// never touched; the candidate hash simply dies with the request. A
// reason is mandatory.
func (s *CredentialServiceImpl) Reject(ctx context.Context, req *credential.ReviewRequest) (credential.ChangeRequestResponse, error) {
	if err := req.ValidateReject(); err != nil {
		return credential.ChangeRequestResponse{}, err
	}

	cr, err := s.requestRepo.GetByID(ctx, req.RequestID)
	if err != nil {
		return credential.ChangeRequestResponse{}, err
	}
	if !cr.IsPending() {
		return credential.ChangeRequestResponse{}, credential.ErrRequestNotPending
	}

	if err := s.requestRepo.UpdateStatus(ctx, cr.ID, credential.StatusRejected, req.ReviewerID, &req.Reason); err != nil {
		return credential.ChangeRequestResponse{}, err
	}

	s.notify(cr, false, req.Reason)

	updated, err := s.requestRepo.GetByID(ctx, cr.ID)
	if err != nil {
		return credential.ChangeRequestResponse{}, err
	}
	return credential.ToResponse(updated), nil
}

// Cancel implements credential.CredentialService. Only the requester may
// cancel, and only while the request is still pending.
func (s *CredentialServiceImpl) Cancel(ctx context.Context, req *credential.CancelRequest) error {
	cr, err := s.requestRepo.GetByID(ctx, req.RequestID)
	if err != nil {
		return err
	}
	if cr.UserID != req.ActorID {
		return credential.ErrNotRequestOwner
	}
	if !cr.IsPending() {
		return credential.ErrRequestNotPending
	}

	return s.requestRepo.Delete(ctx, cr.ID)
}

// ListPending implements credential.CredentialService.
func (s *CredentialServiceImpl) ListPending(ctx context.Context) ([]credential.ChangeRequestResponse, error) {
	requests, err := s.requestRepo.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	return credential.ToResponses(requests), nil
}

// ListMine implements credential.CredentialService.
func (s *CredentialServiceImpl) ListMine(ctx context.Context, userID string) ([]credential.ChangeRequestResponse, error) {
	requests, err := s.requestRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return credential.ToResponses(requests), nil
}

// notify emails the requester with the review outcome. Failures are
// logged, never surfaced: the review itself already happened.
func (s *CredentialServiceImpl) notify(cr credential.ChangeRequest, approved bool, reason string) {
	if s.emailSvc == nil || cr.RequesterEmail == nil {
		return
	}

	name := ""
	if cr.RequesterName != nil {
		name = *cr.RequesterName
	}

	var err error
	if approved {
		err = s.emailSvc.SendCredentialApproved(*cr.RequesterEmail, name, s.portalLink)
	} else {
		err = s.emailSvc.SendCredentialRejected(*cr.RequesterEmail, name, reason, s.portalLink)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Failed to send credential review email", "request_id", cr.ID, "error", err)
	}
}
