package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kestrelhq/ops-backend-go/internal/domain/credential"
	"github.com/kestrelhq/ops-backend-go/internal/handler/http/response"
)

type CredentialHandler interface {
	Request(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
}

type CredentialHandlerImpl struct {
	credentialService credential.CredentialService
}

func NewCredentialHandler(credentialService credential.CredentialService) CredentialHandler {
	return &CredentialHandlerImpl{credentialService: credentialService}
}

// Request implements CredentialHandler.
func (h *CredentialHandlerImpl) Request(w http.ResponseWriter, r *http.Request) {
	act, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var changeReq credential.RequestChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&changeReq); err != nil {
		slog.Error("Credential request decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	changeReq.ActorID = act.ID

	created, err := h.credentialService.Request(r.Context(), &changeReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Password change requested", created)
}

// Approve implements CredentialHandler.
func (h *CredentialHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	act, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	reviewed, err := h.credentialService.Approve(r.Context(), &credential.ReviewRequest{
		RequestID:  chi.URLParam(r, "requestID"),
		ReviewerID: act.ID,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Password change approved", reviewed)
}

// Reject implements CredentialHandler.
func (h *CredentialHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	act, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	reviewReq := credential.ReviewRequest{
		RequestID:  chi.URLParam(r, "requestID"),
		ReviewerID: act.ID,
	}
	// An absent body surfaces as a missing reason, which validation rejects.
	_ = json.NewDecoder(r.Body).Decode(&reviewReq)

	reviewed, err := h.credentialService.Reject(r.Context(), &reviewReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Password change rejected", reviewed)
}

// Cancel implements CredentialHandler.
func (h *CredentialHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	act, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	err = h.credentialService.Cancel(r.Context(), &credential.CancelRequest{
		RequestID: chi.URLParam(r, "requestID"),
		ActorID:   act.ID,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Password change request cancelled", nil)
}

// ListPending implements CredentialHandler.
func (h *CredentialHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	pending, err := h.credentialService.ListPending(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, pending)
}

// ListMine implements CredentialHandler.
func (h *CredentialHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	act, err := actorFromRequest(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	mine, err := h.credentialService.ListMine(r.Context(), act.ID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, mine)
}
