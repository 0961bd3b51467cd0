package purse

import (
	"fmt"
	"strings"
	"time"

	"github.com/etnz/purse/date"
	"github.com/robfig/cron/v3"
)

// Frequency of a recurring payment.
type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

// ParseFrequency parses a frequency name, ignoring case.
func ParseFrequency(s string) (Frequency, error) {
	switch f := Frequency(strings.ToLower(strings.TrimSpace(s))); f {
	case Daily, Weekly, Monthly:
		return f, nil
	default:
		return "", &ValidationError{Field: "frequency", Reason: fmt.Sprintf("%q is not one of daily, weekly, monthly", s)}
	}
}

// RecurringPayment is a recorded intent to pay a bill on a schedule.
// Recording one never moves money, nothing fires it automatically.
type RecurringPayment struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Amount    Money     `json:"amount"`
	Frequency Frequency `json:"frequency"`
	Start     date.Date `json:"startDate"`
	Category  string    `json:"category"`
	Active    bool      `json:"active"`
}

// cronSpec anchors the schedule on the start date, at midnight UTC.
func (r RecurringPayment) cronSpec() string {
	switch r.Frequency {
	case Weekly:
		return fmt.Sprintf("CRON_TZ=UTC 0 0 * * %d", int(r.Start.Weekday()))
	case Monthly:
		// months shorter than the start day are skipped, as cron does.
		return fmt.Sprintf("CRON_TZ=UTC 0 0 %d * *", r.Start.Day())
	default:
		return "CRON_TZ=UTC 0 0 * * *"
	}
}

// NextDue returns when the payment would next be due strictly after t, the
// start date itself being the first due date. It returns the zero time for
// an inactive payment.
func (r RecurringPayment) NextDue(t time.Time) time.Time {
	if !r.Active {
		return time.Time{}
	}
	start := r.Start.Time()
	if t.Before(start) {
		return start
	}
	sched, err := cron.ParseStandard(r.cronSpec())
	if err != nil {
		// cronSpec only produces valid specs
		panic(err)
	}
	return sched.Next(t.UTC())
}

// ToggleRecurring flips the active flag of a recurring payment.
func ToggleRecurring(s *UserState, id string) (RecurringPayment, error) {
	for i, r := range s.Recurring {
		if r.ID == id {
			s.Recurring[i].Active = !r.Active
			return s.Recurring[i], nil
		}
	}
	return RecurringPayment{}, &ValidationError{Field: "recurring payment", Reason: fmt.Sprintf("no recurring payment %q", id)}
}

// DeleteRecurring removes a recurring payment.
func DeleteRecurring(s *UserState, id string) (RecurringPayment, error) {
	for i, r := range s.Recurring {
		if r.ID == id {
			s.Recurring = append(s.Recurring[:i:i], s.Recurring[i+1:]...)
			return r, nil
		}
	}
	return RecurringPayment{}, &ValidationError{Field: "recurring payment", Reason: fmt.Sprintf("no recurring payment %q", id)}
}
