package service

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"creditdesk-backend/internal/domain"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host string, port int, username, password, from string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) SendReminderDigest(ctx context.Context, email, name string, reminders []domain.Reminder) error {
	if len(reminders) == 0 {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\nThe following items need your attention today:\n\n", name)
	for _, r := range reminders {
		fmt.Fprintf(&b, "- %s (%s, policy %s, %s)\n",
			r.Message, r.ClientName, r.PolicyNumber, r.Amount.StringFixed(2))
	}
	b.WriteString("\nBest regards,\nThe Credit Desk\n")

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", fmt.Sprintf("Daily reminder digest: %d item(s)", len(reminders)))
	m.SetBody("text/plain", b.String())

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reminder digest: %w", err)
	}
	return nil
}
