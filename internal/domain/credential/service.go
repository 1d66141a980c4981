package credential

import (
	"context"
)

// CredentialService manages the password change approval workflow.
// A worker queues a change with their current and desired password; an
// admin approves or rejects it. The live credential only moves on
// approval.
type CredentialService interface {
	Request(ctx context.Context, req *RequestChangeRequest) (ChangeRequestResponse, error)
	Approve(ctx context.Context, req *ReviewRequest) (ChangeRequestResponse, error)
	Reject(ctx context.Context, req *ReviewRequest) (ChangeRequestResponse, error)
	Cancel(ctx context.Context, req *CancelRequest) error
	ListPending(ctx context.Context) ([]ChangeRequestResponse, error)
	ListMine(ctx context.Context, userID string) ([]ChangeRequestResponse, error)
}
