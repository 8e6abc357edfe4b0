package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var today = time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)

func TestClassifyDue(t *testing.T) {
	cases := []struct {
		name     string
		due      time.Time
		urgency  Urgency
		surfaced bool
	}{
		{"DueToday", today, UrgencyCritical, true},
		{"TwoDaysOverdue", today.AddDate(0, 0, -2), UrgencyCritical, true},
		{"Tomorrow", today.AddDate(0, 0, 1), UrgencyImportant, true},
		{"InThreeDays", today.AddDate(0, 0, 3), UrgencyImportant, true},
		{"InSevenDays", today.AddDate(0, 0, 7), UrgencyImportant, true},
		{"InEightDays", today.AddDate(0, 0, 8), UrgencyInformational, true},
		{"InThirtyDays", today.AddDate(0, 0, 30), UrgencyInformational, true},
		{"InThirtyOneDays", today.AddDate(0, 0, 31), "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u, ok := ClassifyDue(tc.due, today)
			assert.Equal(t, tc.surfaced, ok)
			assert.Equal(t, tc.urgency, u)
		})
	}
}

func TestClassifyDueIgnoresTimeOfDay(t *testing.T) {
	// A cheque due late tonight is still due today.
	due := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)
	u, ok := ClassifyDue(due, today)
	assert.True(t, ok)
	assert.Equal(t, UrgencyCritical, u)
}

func TestReminderMatches(t *testing.T) {
	r := Reminder{
		Urgency:      UrgencyImportant,
		ClientName:   "Amina Berrada",
		PolicyNumber: "POL-2214",
		ChequeNumber: "CHQ-889",
		AgentID:      7,
		Amount:       decimal.NewFromInt(4000),
	}

	t.Run("AgentFilter", func(t *testing.T) {
		assert.True(t, r.Matches(ReminderFilter{AgentID: 7}))
		assert.False(t, r.Matches(ReminderFilter{AgentID: 8}))
	})

	t.Run("UrgencyCriticalExcludesImportant", func(t *testing.T) {
		assert.False(t, r.Matches(ReminderFilter{Urgency: UrgencyCritical}))
	})

	t.Run("UrgencyImportantIncludesCritical", func(t *testing.T) {
		crit := r
		crit.Urgency = UrgencyCritical
		assert.True(t, crit.Matches(ReminderFilter{Urgency: UrgencyImportant}))
		assert.True(t, r.Matches(ReminderFilter{Urgency: UrgencyImportant}))
	})

	t.Run("SearchIsCaseInsensitiveSubstring", func(t *testing.T) {
		assert.True(t, r.Matches(ReminderFilter{Search: "amina"}))
		assert.True(t, r.Matches(ReminderFilter{Search: "pol-22"}))
		assert.True(t, r.Matches(ReminderFilter{Search: "chq-889"}))
		assert.False(t, r.Matches(ReminderFilter{Search: "nope"}))
	})
}

func TestSummarize(t *testing.T) {
	reminders := []Reminder{
		{Urgency: UrgencyCritical, Amount: decimal.NewFromInt(1000)},
		{Urgency: UrgencyCritical, Amount: decimal.NewFromInt(500)},
		{Urgency: UrgencyImportant, Amount: decimal.NewFromInt(2000)},
		{Urgency: UrgencyInformational, Amount: decimal.NewFromInt(700)},
	}

	s := Summarize(reminders)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Critical)
	assert.Equal(t, 1, s.Important)
	assert.Equal(t, 1, s.Informational)
	assert.True(t, s.CriticalAmount.Equal(decimal.NewFromInt(1500)))
	assert.True(t, s.ImportantAmount.Equal(decimal.NewFromInt(2000)))
}

func TestResolveDueDate(t *testing.T) {
	days, weeks, months := 10, 2, 3
	explicit := today.AddDate(0, 1, 0)

	cases := []struct {
		name   string
		credit Credit
		want   time.Time
	}{
		{"Explicit", Credit{DueDate: &explicit}, explicit},
		{"Days", Credit{DurationDays: &days}, today.AddDate(0, 0, 10)},
		{"Weeks", Credit{DurationWeeks: &weeks}, today.AddDate(0, 0, 14)},
		{"MonthsApproximated", Credit{DurationMonths: &months}, today.AddDate(0, 0, 90)},
		{"DefaultTerm", Credit{}, today.AddDate(0, 0, 30)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.credit.ResolveDueDate(today))
		})
	}
}
