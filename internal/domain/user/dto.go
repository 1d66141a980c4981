package user

import (
	"github.com/kestrelhq/ops-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateUserRequest struct {
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	Password   string `json:"password"`
	Role       string `json:"role"`
	HourlyRate string `json:"hourly_rate"`
}

func (r *CreateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "a valid email address is required",
		})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}
	if !validator.IsInSlice(r.Role, []string{string(RoleAdmin), string(RoleManager), string(RoleWorker)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of admin, manager, worker",
		})
	}
	if r.HourlyRate != "" {
		rate, ok := validator.IsValidAmount(r.HourlyRate)
		if !ok || rate.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   "hourly_rate",
				Message: "hourly_rate must be a non-negative decimal amount",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateRateRequest struct {
	UserID     string `json:"-"`
	HourlyRate string `json:"hourly_rate"`
}

func (r *UpdateRateRequest) Validate() error {
	var errs validator.ValidationErrors

	rate, ok := validator.IsValidAmount(r.HourlyRate)
	if !ok || rate.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "hourly_rate",
			Message: "hourly_rate must be a non-negative decimal amount",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UserResponse struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	Role       string `json:"role"`
	HourlyRate string `json:"hourly_rate"`
	CreatedAt  string `json:"created_at"`
}

func NewUserResponse(u User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		FullName:   u.FullName,
		Role:       string(u.Role),
		HourlyRate: u.HourlyRate.StringFixed(2),
		CreatedAt:  u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

// RateOrZero parses the optional hourly rate field.
func (r *CreateUserRequest) RateOrZero() decimal.Decimal {
	if r.HourlyRate == "" {
		return decimal.Zero
	}
	rate, _ := decimal.NewFromString(r.HourlyRate)
	return rate
}
