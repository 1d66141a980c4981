package user

import (
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleAdmin   Role = "admin"   // Operations admin - full access
	RoleManager Role = "manager" // Can review requests and submit time for their team
	RoleWorker  Role = "worker"  // Regular worker, owns their own ledger entries
)

type User struct {
	ID            string
	Email         string
	FullName      string
	PasswordHash  *string
	Role          Role
	HourlyRate    decimal.Decimal
	OAuthProvider *string
	OAuthSubject  *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsAdmin checks if user is an operations admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsManager checks if user is manager or admin
func (u *User) IsManager() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}

// CanReview checks if user can review credential change requests
func (u *User) CanReview() bool {
	return u.IsAdmin()
}
