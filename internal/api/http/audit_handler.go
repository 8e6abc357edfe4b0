package http

import (
	"net/http"
	"time"

	"creditdesk-backend/internal/domain"
	"creditdesk-backend/internal/service"
)

type AuditHandler struct {
	audit service.AuditService
}

func NewAuditHandler(audit service.AuditService) *AuditHandler {
	return &AuditHandler{audit: audit}
}

func queryDate(r *http.Request, name string) *time.Time {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil
	}
	return &t
}

func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt32(r, "page", 1)
	pageSize := queryInt32(r, "page_size", 20)
	filter := domain.AuditFilter{
		Action: domain.ActionType(r.URL.Query().Get("action")),
		Status: domain.AuditStatus(r.URL.Query().Get("status")),
		Agent:  r.URL.Query().Get("agent"),
		Client: r.URL.Query().Get("client"),
		From:   queryDate(r, "from"),
		To:     queryDate(r, "to"),
		Search: r.URL.Query().Get("search"),
	}
	entries, total, err := h.audit.List(r.Context(), filter, page, pageSize)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pageResponse{Items: entries, Total: total, Page: page, PageSize: pageSize})
}

func (h *AuditHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.audit.Stats(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}
