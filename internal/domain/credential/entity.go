package credential

import (
	"time"
)

type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// ChangeRequest is a queued password change awaiting review. The candidate
// hash lives here, never in the user's live credential field, until a
// reviewer approves the request. Approved and rejected are terminal.
type ChangeRequest struct {
	ID     string
	UserID string

	// CandidateHash is the bcrypt hash of the requested new password.
	CandidateHash string

	Status      RequestStatus
	RequestedAt time.Time

	ReviewedBy      *string
	ReviewedAt      *time.Time
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	RequesterName  *string
	RequesterEmail *string
}

// IsPending reports whether the request can still be reviewed or cancelled.
func (r *ChangeRequest) IsPending() bool {
	return r.Status == StatusPending
}
