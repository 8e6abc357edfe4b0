package http

import (
	"net/http"
	"time"

	"creditdesk-backend/internal/domain"
	"creditdesk-backend/internal/service"
)

type ReminderHandler struct {
	reminders service.ReminderService
}

func NewReminderHandler(reminders service.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminders: reminders}
}

type reminderListResponse struct {
	Reminders []domain.Reminder      `json:"reminders"`
	Summary   domain.ReminderSummary `json:"summary"`
}

func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.ReminderFilter{
		AgentID: queryInt64(r, "agent_id"),
		Urgency: domain.Urgency(r.URL.Query().Get("urgency")),
		Search:  r.URL.Query().Get("search"),
	}
	reminders, summary, err := h.reminders.List(r.Context(), filter, time.Now())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reminderListResponse{Reminders: reminders, Summary: summary})
}
