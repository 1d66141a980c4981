package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kestrelhq/ops-backend-go/internal/domain/invoice"
	"github.com/kestrelhq/ops-backend-go/internal/handler/http/response"
)

type InvoiceHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
}

type InvoiceHandlerImpl struct {
	invoiceService invoice.InvoiceService
}

func NewInvoiceHandler(invoiceService invoice.InvoiceService) InvoiceHandler {
	return &InvoiceHandlerImpl{invoiceService: invoiceService}
}

// Create implements InvoiceHandler.
func (h *InvoiceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	act, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var createReq invoice.CreateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create invoice decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	createReq.AdminID = act.ID

	created, err := h.invoiceService.Create(r.Context(), createReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Invoice created", created)
}

// Get implements InvoiceHandler.
func (h *InvoiceHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	inv, err := h.invoiceService.Get(r.Context(), chi.URLParam(r, "invoiceID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, inv)
}

// List implements InvoiceHandler.
func (h *InvoiceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter invoice.ListFilter

	q := r.URL.Query()
	if status := q.Get("status"); status != "" {
		filter.Status = &status
	}
	if workerID := q.Get("worker_id"); workerID != "" {
		filter.WorkerID = &workerID
	}
	if month := q.Get("period_month"); month != "" {
		parsed, err := strconv.Atoi(month)
		if err != nil {
			response.BadRequest(w, "period_month must be a number", nil)
			return
		}
		filter.PeriodMonth = &parsed
	}
	if year := q.Get("period_year"); year != "" {
		parsed, err := strconv.Atoi(year)
		if err != nil {
			response.BadRequest(w, "period_year must be a number", nil)
			return
		}
		filter.PeriodYear = &parsed
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))

	resp, err := h.invoiceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := int(resp.TotalItems) / resp.Limit
	if int(resp.TotalItems)%resp.Limit != 0 {
		totalPages++
	}
	response.SuccessWithMeta(w, resp.Invoices, &response.Meta{
		Page:       resp.Page,
		Limit:      resp.Limit,
		TotalItems: resp.TotalItems,
		TotalPages: totalPages,
	})
}

// UpdateStatus implements InvoiceHandler.
func (h *InvoiceHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	act, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var statusReq invoice.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&statusReq); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	statusReq.InvoiceID = chi.URLParam(r, "invoiceID")
	statusReq.AdminID = act.ID

	updated, err := h.invoiceService.UpdateStatus(r.Context(), statusReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Invoice status updated", updated)
}

// ListPending implements InvoiceHandler.
func (h *InvoiceHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	resp, err := h.invoiceService.ListPending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, resp)
}
