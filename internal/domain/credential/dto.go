package credential

import (
	"time"

	"github.com/kestrelhq/ops-backend-go/internal/pkg/validator"
)

type RequestChangeRequest struct {
	ActorID         string `json:"-"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (r *RequestChangeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CurrentPassword) {
		errs = append(errs, validator.ValidationError{
			Field:   "current_password",
			Message: "current password is required",
		})
	}
	if validator.IsEmpty(r.NewPassword) {
		errs = append(errs, validator.ValidationError{
			Field:   "new_password",
			Message: "new password is required",
		})
	} else if len(r.NewPassword) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "new_password",
			Message: "new password must be at least 8 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReviewRequest struct {
	RequestID  string `json:"-"`
	ReviewerID string `json:"-"`
	Reason     string `json:"reason"`
}

func (r *ReviewRequest) Validate() error {
	return r.validate(false)
}

// ValidateReject additionally demands a reason; a rejection without one
// tells the requester nothing.
func (r *ReviewRequest) ValidateReject() error {
	return r.validate(true)
}

func (r *ReviewRequest) validate(requireReason bool) error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{
			Field:   "request_id",
			Message: "request id is required",
		})
	}
	if requireReason && validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "rejection reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CancelRequest struct {
	RequestID string `json:"-"`
	ActorID   string `json:"-"`
}

type ChangeRequestResponse struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	RequesterName   *string    `json:"requester_name,omitempty"`
	RequesterEmail  *string    `json:"requester_email,omitempty"`
	Status          string     `json:"status"`
	ReviewedBy      *string    `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

func ToResponse(cr ChangeRequest) ChangeRequestResponse {
	return ChangeRequestResponse{
		ID:              cr.ID,
		UserID:          cr.UserID,
		RequesterName:   cr.RequesterName,
		RequesterEmail:  cr.RequesterEmail,
		Status:          string(cr.Status),
		ReviewedBy:      cr.ReviewedBy,
		ReviewedAt:      cr.ReviewedAt,
		RejectionReason: cr.RejectionReason,
		CreatedAt:       cr.CreatedAt,
	}
}

func ToResponses(crs []ChangeRequest) []ChangeRequestResponse {
	out := make([]ChangeRequestResponse, 0, len(crs))
	for _, cr := range crs {
		out = append(out, ToResponse(cr))
	}
	return out
}
