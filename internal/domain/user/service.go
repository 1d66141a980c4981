package user

import (
	"context"
)

// UserService manages account provisioning. Accounts are created by an
// admin; self-registration does not exist.
type UserService interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	Get(ctx context.Context, id string) (UserResponse, error)
	List(ctx context.Context) ([]UserResponse, error)
	SetHourlyRate(ctx context.Context, req UpdateRateRequest) (UserResponse, error)
}
