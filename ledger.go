package purse

import (
	"fmt"
	"strings"
	"time"

	"github.com/etnz/purse/date"
	"github.com/google/uuid"
)

// env is the clock and identifier source shared by the engines.
type env struct {
	now   func() time.Time
	newID func() string
}

func defaultEnv() env {
	return env{now: time.Now, newID: uuid.NewString}
}

// Ledger applies cash operations to a user state. It keeps no state of its
// own: every call borrows the state it is given and either applies the whole
// operation or leaves the state untouched.
type Ledger struct {
	env
	// StrictBills rejects bill payments larger than the balance. Off by
	// default, bills may overdraw the account.
	StrictBills bool
}

// NewLedger returns a ledger engine using the wall clock and random UUIDs.
func NewLedger() *Ledger { return &Ledger{env: defaultEnv()} }

// checkAmount validates a cash amount against the account currency.
func checkAmount(s *UserState, amount Money) error {
	if amount.Currency() != s.Account.Currency {
		return &ValidationError{Field: "amount", Reason: fmt.Sprintf("currency %s does not match account currency %s", amount.Currency(), s.Account.Currency)}
	}
	if !amount.IsPositive() {
		return &ValidationError{Field: "amount", Reason: fmt.Sprintf("must be positive, got %s", amount.Decimal())}
	}
	return nil
}

// PayBill debits a one-off bill payment.
func (l *Ledger) PayBill(s *UserState, amount Money, name, category string) (Transaction, error) {
	if err := checkAmount(s, amount); err != nil {
		return Transaction{}, err
	}
	if strings.TrimSpace(name) == "" {
		return Transaction{}, &ValidationError{Field: "name", Reason: "missing"}
	}
	if l.StrictBills && s.Account.Balance.LessThan(amount) {
		return Transaction{}, &InsufficientFundsError{Need: amount, Have: s.Account.Balance}
	}
	tx := Transaction{
		ID:       l.newID(),
		Type:     Debit,
		Category: category,
		Name:     name,
		Amount:   amount,
		Date:     l.now(),
		Status:   Completed,
		Method:   "balance",
	}
	s.Account.Balance = s.Account.Balance.Sub(amount)
	s.prependTransaction(tx)
	return tx, nil
}

// Deposit credits the balance. Deposit limits are the caller's business.
func (l *Ledger) Deposit(s *UserState, amount Money, method string) (Transaction, error) {
	if err := checkAmount(s, amount); err != nil {
		return Transaction{}, err
	}
	method = strings.TrimSpace(method)
	if method == "" {
		return Transaction{}, &ValidationError{Field: "method", Reason: "missing"}
	}
	tx := Transaction{
		ID:       l.newID(),
		Type:     Credit,
		Category: CategoryDeposit,
		Name:     "Deposit via " + method,
		Amount:   amount,
		Date:     l.now(),
		Status:   Completed,
		Method:   method,
	}
	s.Account.Balance = s.Account.Balance.Add(amount)
	s.prependTransaction(tx)
	return tx, nil
}

// WithdrawCash moves cash out to destination. It is rejected when the
// balance does not cover the amount, and recorded as a debit transaction.
func (l *Ledger) WithdrawCash(s *UserState, amount Money, destination string) (Transaction, error) {
	if err := checkAmount(s, amount); err != nil {
		return Transaction{}, err
	}
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return Transaction{}, &ValidationError{Field: "destination", Reason: "missing"}
	}
	if s.Account.Balance.LessThan(amount) {
		return Transaction{}, &InsufficientFundsError{Need: amount, Have: s.Account.Balance}
	}
	tx := Transaction{
		ID:       l.newID(),
		Type:     Debit,
		Category: CategoryWithdrawal,
		Name:     "Withdrawal to " + destination,
		Amount:   amount,
		Date:     l.now(),
		Status:   Completed,
		Method:   destination,
	}
	s.Account.Balance = s.Account.Balance.Sub(amount)
	s.prependTransaction(tx)
	return tx, nil
}

// RecordRecurring stores a recurring payment intent. The balance is not touched.
func (l *Ledger) RecordRecurring(s *UserState, name string, amount Money, freq Frequency, start date.Date, category string) (RecurringPayment, error) {
	if err := checkAmount(s, amount); err != nil {
		return RecurringPayment{}, err
	}
	if strings.TrimSpace(name) == "" {
		return RecurringPayment{}, &ValidationError{Field: "name", Reason: "missing"}
	}
	freq, err := ParseFrequency(string(freq))
	if err != nil {
		return RecurringPayment{}, err
	}
	if start.IsZero() {
		return RecurringPayment{}, &ValidationError{Field: "start date", Reason: "missing"}
	}
	r := RecurringPayment{
		ID:        l.newID(),
		Name:      name,
		Amount:    amount,
		Frequency: freq,
		Start:     start,
		Category:  category,
		Active:    true,
	}
	s.Recurring = append(s.Recurring, r)
	return r, nil
}
