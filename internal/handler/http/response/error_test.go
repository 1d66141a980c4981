package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kestrelhq/ops-backend-go/internal/domain/credential"
	"github.com/kestrelhq/ops-backend-go/internal/domain/invoice"
	"github.com/kestrelhq/ops-backend-go/internal/domain/timesheet"
	"github.com/kestrelhq/ops-backend-go/internal/pkg/validator"
)

func TestHandleErrorStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "validation errors",
			err: validator.ValidationErrors{
				{Field: "hours", Message: "hours must be between 0 and 24"},
			},
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "unchanged password is a validation failure",
			err:  credential.ErrPasswordUnchanged,
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "wrong current password",
			err:  credential.ErrPasswordMismatch,
			want: http.StatusUnauthorized,
		},
		{
			name: "duplicate invoice number",
			err:  invoice.ErrDuplicateInvoiceNumber,
			want: http.StatusConflict,
		},
		{
			name: "locked entry",
			err:  timesheet.ErrEntryLocked,
			want: http.StatusConflict,
		},
		{
			name: "unknown error",
			err:  errors.New("disk on fire"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HandleError(rec, tt.err)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
