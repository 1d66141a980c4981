package response

import (
	"errors"
	"net/http"

	"github.com/kestrelhq/ops-backend-go/internal/domain/auth"
	"github.com/kestrelhq/ops-backend-go/internal/domain/credential"
	"github.com/kestrelhq/ops-backend-go/internal/domain/deduction"
	"github.com/kestrelhq/ops-backend-go/internal/domain/invoice"
	"github.com/kestrelhq/ops-backend-go/internal/domain/timesheet"
	"github.com/kestrelhq/ops-backend-go/internal/domain/user"
	"github.com/kestrelhq/ops-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrPasswordNotSet):
		Unauthorized(w, "Account signs in with Google only")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		Unauthorized(w, "OAuth state mismatch")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")

	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrEntryNotFound):
		NotFound(w, "Time entry not found")
	case errors.Is(err, timesheet.ErrEntryLocked):
		Conflict(w, "Time entry is locked")
	case errors.Is(err, timesheet.ErrEntryUnlocked):
		Conflict(w, "Time entry is not locked")
	case errors.Is(err, timesheet.ErrNotEntryOwner):
		Forbidden(w, "Not the owner of this time entry")
	case errors.Is(err, timesheet.ErrWorkerNotFound):
		NotFound(w, "Worker not found")

	// Invoice domain errors
	case errors.Is(err, invoice.ErrInvoiceNotFound):
		NotFound(w, "Invoice not found")
	case errors.Is(err, invoice.ErrDuplicateInvoiceNumber):
		Conflict(w, "Invoice number already exists")
	case errors.Is(err, invoice.ErrWorkerNotFound):
		NotFound(w, "Billed worker not found")

	// Deduction domain errors
	case errors.Is(err, deduction.ErrDeductionNotFound):
		NotFound(w, "No deductions saved for this invoice")
	case errors.Is(err, deduction.ErrInvoiceNotFound):
		NotFound(w, "Invoice not found")
	case errors.Is(err, deduction.ErrCompensationMismatch):
		Conflict(w, "Compensation kind does not match the invoice classification")

	// Credential workflow errors
	case errors.Is(err, credential.ErrRequestNotFound):
		NotFound(w, "Credential change request not found")
	case errors.Is(err, credential.ErrRequestNotPending):
		Conflict(w, "Credential change request already processed")
	case errors.Is(err, credential.ErrRequestAlreadyPending):
		Conflict(w, "A credential change request is already pending")
	case errors.Is(err, credential.ErrNotRequestOwner):
		Forbidden(w, "Only the requester may cancel this request")
	case errors.Is(err, credential.ErrPasswordMismatch):
		Unauthorized(w, "Current password is incorrect")
	case errors.Is(err, credential.ErrPasswordUnchanged):
		ValidationError(w, map[string]string{
			"new_password": "new password must differ from the current one",
		})

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
