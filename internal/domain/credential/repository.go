package credential

import (
	"context"
)

// ChangeRequestRepository defines data access for queued credential changes.
type ChangeRequestRepository interface {
	Create(ctx context.Context, req ChangeRequest) (ChangeRequest, error)
	GetByID(ctx context.Context, id string) (ChangeRequest, error)

	// HasPendingForUser guards the one-pending-request-per-user rule.
	HasPendingForUser(ctx context.Context, userID string) (bool, error)

	// UpdateStatus records the review outcome. Reason is nil on approval.
	UpdateStatus(ctx context.Context, id string, status RequestStatus, reviewerID string, reason *string) error

	// Delete removes a request entirely (cancellation).
	Delete(ctx context.Context, id string) error

	ListPending(ctx context.Context) ([]ChangeRequest, error)
	ListByUser(ctx context.Context, userID string) ([]ChangeRequest, error)
}
