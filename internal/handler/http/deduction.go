package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kestrelhq/ops-backend-go/internal/domain/deduction"
	"github.com/kestrelhq/ops-backend-go/internal/handler/http/response"
)

type DeductionHandler interface {
	Save(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
}

type DeductionHandlerImpl struct {
	deductionService deduction.DeductionService
}

func NewDeductionHandler(deductionService deduction.DeductionService) DeductionHandler {
	return &DeductionHandlerImpl{deductionService: deductionService}
}

// Save implements DeductionHandler.
func (h *DeductionHandlerImpl) Save(w http.ResponseWriter, r *http.Request) {
	act, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var saveReq deduction.SaveDeductionRequest
	if err := json.NewDecoder(r.Body).Decode(&saveReq); err != nil {
		slog.Error("Save deduction decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	saveReq.InvoiceID = chi.URLParam(r, "invoiceID")
	saveReq.AdminID = act.ID

	saved, err := h.deductionService.Save(r.Context(), saveReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Deductions saved", saved)
}

// Get implements DeductionHandler.
func (h *DeductionHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.deductionService.Get(r.Context(), chi.URLParam(r, "invoiceID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, d)
}
