package http

import (
	"net/http"
	"time"

	"creditdesk-backend/internal/domain"
	"creditdesk-backend/internal/service"
)

type ChequeHandler struct {
	cheques service.ChequeService
}

func NewChequeHandler(cheques service.ChequeService) *ChequeHandler {
	return &ChequeHandler{cheques: cheques}
}

func (h *ChequeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c domain.GuaranteeCheque
	if err := decodeBody(r, &c); err != nil {
		respondError(w, err)
		return
	}
	if err := h.cheques.Create(r.Context(), actorFrom(r), &c); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

func (h *ChequeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, domain.NewValidationError("id", "must be an integer"))
		return
	}
	c, err := h.cheques.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (h *ChequeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, domain.NewValidationError("id", "must be an integer"))
		return
	}
	var c domain.GuaranteeCheque
	if err := decodeBody(r, &c); err != nil {
		respondError(w, err)
		return
	}
	c.ID = id
	if err := h.cheques.Update(r.Context(), actorFrom(r), &c); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

func (h *ChequeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, domain.NewValidationError("id", "must be an integer"))
		return
	}
	if err := h.cheques.Delete(r.Context(), actorFrom(r), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *ChequeHandler) ListByCredit(w http.ResponseWriter, r *http.Request) {
	creditID, err := pathID(r, "id")
	if err != nil {
		respondError(w, domain.NewValidationError("id", "must be an integer"))
		return
	}
	cheques, err := h.cheques.ListByCredit(r.Context(), creditID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cheques)
}

type payInCashRequest struct {
	SettledOn time.Time `json:"settled_on,omitempty"`
	Memo      string    `json:"memo,omitempty"`
}

func (h *ChequeHandler) PayInCash(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, domain.NewValidationError("id", "must be an integer"))
		return
	}
	var req payInCashRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	if err := h.cheques.PayInCash(r.Context(), actorFrom(r), id, req.SettledOn, req.Memo); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "paid"})
}

func (h *ChequeHandler) MarkDraftToCollect(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, domain.NewValidationError("id", "must be an integer"))
		return
	}
	draft, err := h.cheques.MarkDraftToCollect(r.Context(), actorFrom(r), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, draft)
}

type deferDraftRequest struct {
	ExpectedOn time.Time `json:"expected_on"`
}

func (h *ChequeHandler) DeferDraft(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, domain.NewValidationError("id", "must be an integer"))
		return
	}
	var req deferDraftRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	draft, err := h.cheques.DeferDraft(r.Context(), actorFrom(r), id, req.ExpectedOn)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, draft)
}

type contactRequest struct {
	Note string `json:"note,omitempty"`
}

func (h *ChequeHandler) RequestClientContact(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, domain.NewValidationError("id", "must be an integer"))
		return
	}
	var req contactRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	draft, err := h.cheques.RequestClientContact(r.Context(), actorFrom(r), id, req.Note)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, draft)
}
