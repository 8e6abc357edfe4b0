package http

import (
	"net/http"

	"creditdesk-backend/internal/domain"
	"creditdesk-backend/internal/service"
)

type SettlementHandler struct {
	settlements service.SettlementService
}

func NewSettlementHandler(settlements service.SettlementService) *SettlementHandler {
	return &SettlementHandler{settlements: settlements}
}

func (h *SettlementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var s domain.Settlement
	if err := decodeBody(r, &s); err != nil {
		respondError(w, err)
		return
	}
	if err := h.settlements.Create(r.Context(), actorFrom(r), &s); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, s)
}

func (h *SettlementHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, domain.NewValidationError("id", "must be an integer"))
		return
	}
	var s domain.Settlement
	if err := decodeBody(r, &s); err != nil {
		respondError(w, err)
		return
	}
	s.ID = id
	if err := h.settlements.Update(r.Context(), actorFrom(r), &s); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, s)
}

func (h *SettlementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, domain.NewValidationError("id", "must be an integer"))
		return
	}
	if err := h.settlements.Delete(r.Context(), actorFrom(r), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *SettlementHandler) ListByCredit(w http.ResponseWriter, r *http.Request) {
	creditID, err := pathID(r, "id")
	if err != nil {
		respondError(w, domain.NewValidationError("id", "must be an integer"))
		return
	}
	settlements, err := h.settlements.ListByCredit(r.Context(), creditID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, settlements)
}

func (h *SettlementHandler) Clear(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, domain.NewValidationError("id", "must be an integer"))
		return
	}
	s, err := h.settlements.ClearCheque(r.Context(), actorFrom(r), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, s)
}
