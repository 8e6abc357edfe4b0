package http

import (
	"net/http"
	"time"

	"creditdesk-backend/internal/domain"
	"creditdesk-backend/internal/service"
)

type AlertHandler struct {
	alerts service.AlertService
}

func NewAlertHandler(alerts service.AlertService) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)
	alerts, total, err := h.alerts.List(r.Context(),
		domain.AlertStatus(r.URL.Query().Get("status")),
		queryInt64(r, "agent_id"),
		page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pageResponse{Items: alerts, Total: total, Page: page, PageSize: pageSize})
}

type handleAlertRequest struct {
	Note string `json:"note,omitempty"`
}

func (h *AlertHandler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, domain.NewValidationError("id", "must be an integer"))
		return
	}
	var req handleAlertRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	alert, err := h.alerts.Handle(r.Context(), actorFrom(r), id, req.Note)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, alert)
}

type deferAlertRequest struct {
	DeferredTo time.Time `json:"deferred_to"`
}

func (h *AlertHandler) Defer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, domain.NewValidationError("id", "must be an integer"))
		return
	}
	var req deferAlertRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	alert, err := h.alerts.Defer(r.Context(), actorFrom(r), id, req.DeferredTo)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, alert)
}
