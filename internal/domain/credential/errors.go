package credential

import "errors"

// Credential workflow errors
var (
	ErrRequestNotFound       = errors.New("credential change request not found")
	ErrRequestNotPending     = errors.New("credential change request has already been processed")
	ErrRequestAlreadyPending = errors.New("a credential change request is already pending for this user")
	ErrNotRequestOwner       = errors.New("only the requester may cancel this request")
	ErrPasswordMismatch      = errors.New("current password is incorrect")
	ErrPasswordUnchanged     = errors.New("new password must differ from the current one")
)
