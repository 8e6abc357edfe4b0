package jobs

import (
	"context"
	"fmt"
	"time"

	"creditdesk-backend/internal/domain"
	"creditdesk-backend/internal/logger"
)

// SendReminderDigests mails each agent their critical reminders.
func (jr *JobRunner) SendReminderDigests() {
	jr.runWithRecovery("SendReminderDigests", func() {
		ctx := context.Background()
		today := time.Now()

		agents, err := jr.store.AgentRepository.List(ctx)
		if err != nil {
			logger.Error("Failed to list agents for digests", "error", err)
			return
		}

		sent := 0
		for _, agent := range agents {
			filter := domain.ReminderFilter{
				AgentID: agent.ID,
				Urgency: domain.UrgencyCritical,
			}
			reminders, _, err := jr.services.Reminder.List(ctx, filter, today)
			if err != nil {
				logger.Error("Failed to derive reminders for agent", "agent", agent.Username, "error", err)
				continue
			}
			if len(reminders) == 0 {
				continue
			}

			if err := jr.services.Email.SendReminderDigest(ctx, agent.Email, agent.FullName, reminders); err != nil {
				logger.Error("Failed to send reminder digest", "agent", agent.Username, "error", err)
				continue
			}
			sent++

			agentID := agent.ID
			entry := &domain.AuditEntry{
				Action:      domain.ActionReminderSent,
				Description: fmt.Sprintf("Sent digest of %d critical reminder(s) to %s", len(reminders), agent.Username),
				Status:      domain.AuditSuccess,
				AgentID:     &agentID,
			}
			jr.services.Audit.Record(ctx, entry)
		}
		logger.Info("Sent reminder digests", "agents", sent)
	})
}
