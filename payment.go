package purse

import "github.com/etnz/purse/date"

// Schedule tells whether a bill is paid now or recorded as recurring.
// It is either OneOff or Recurring.
type Schedule interface {
	schedule()
}

// OneOff pays the bill immediately.
type OneOff struct{}

// Recurring records the bill as a recurring payment starting on Start.
type Recurring struct {
	Frequency Frequency
	Start     date.Date
}

func (OneOff) schedule()    {}
func (Recurring) schedule() {}

// BillPayment is a bill payment request.
type BillPayment struct {
	Amount   Money
	Name     string
	Category string
	Schedule Schedule
}

// BillReceipt is the outcome of a bill payment: exactly one of its fields is set.
type BillReceipt struct {
	Transaction *Transaction
	Recurring   *RecurringPayment
}

// ApplyBill pays p now or records it, depending on its schedule.
func (l *Ledger) ApplyBill(s *UserState, p BillPayment) (BillReceipt, error) {
	switch sched := p.Schedule.(type) {
	case OneOff:
		tx, err := l.PayBill(s, p.Amount, p.Name, p.Category)
		if err != nil {
			return BillReceipt{}, err
		}
		return BillReceipt{Transaction: &tx}, nil
	case Recurring:
		r, err := l.RecordRecurring(s, p.Name, p.Amount, sched.Frequency, sched.Start, p.Category)
		if err != nil {
			return BillReceipt{}, err
		}
		return BillReceipt{Recurring: &r}, nil
	case nil:
		return BillReceipt{}, &ValidationError{Field: "schedule", Reason: "missing"}
	default:
		return BillReceipt{}, &ValidationError{Field: "schedule", Reason: "unsupported"}
	}
}
