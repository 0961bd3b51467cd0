package purse

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Session is a logged in user's handle on the wallet. Login creates it,
// Logout releases it. It is safe for concurrent use, and several sessions of
// the same user may be open at once.
type Session struct {
	w      *Wallet
	userID string
	e      *live
	closed atomic.Bool
}

// UserID returns the session's user.
func (s *Session) UserID() string { return s.userID }

// State returns a copy of the user's current state, or the zero UserState
// once the session is logged out.
func (s *Session) State() UserState {
	if s.closed.Load() {
		return UserState{}
	}
	s.e.mu.Lock()
	defer s.e.mu.Unlock()
	return s.e.state.Clone()
}

// Logout clears the current session pointer and releases the session.
// The user's persisted state is kept: logging in again restores it.
func (s *Session) Logout(ctx context.Context) error {
	if !s.closed.CompareAndSwap(false, true) {
		return ErrSessionClosed
	}
	s.w.release(s.userID, s.e)
	if err := s.w.store.Clear(ctx, s.userID); err != nil {
		return err
	}
	s.w.log.WithField("user", s.userID).Info("logged out")
	return nil
}

// apply runs fn on a copy of the user's state under the user's lock. When fn
// succeeds the copy becomes the live state and is saved. A failed save is
// returned as a *PersistenceError along with fn's result: the change stays
// in memory for the rest of the session.
func apply[T any](ctx context.Context, s *Session, op string, fields logrus.Fields, fn func(*UserState) (T, error)) (T, error) {
	var zero T
	if s.closed.Load() {
		return zero, ErrSessionClosed
	}
	s.e.mu.Lock()
	defer s.e.mu.Unlock()

	log := s.w.log.WithFields(fields).WithFields(logrus.Fields{"user": s.userID, "op": op})
	next := s.e.state.Clone()
	res, err := fn(&next)
	if err != nil {
		log.WithError(err).Debug("operation rejected")
		return zero, err
	}
	s.e.state = next

	if err := s.w.store.Save(ctx, s.userID, next); err != nil {
		var pe *PersistenceError
		if !errors.As(err, &pe) {
			err = &PersistenceError{Op: "save", UserID: s.userID, Err: err}
		}
		log.WithError(err).Error("operation applied but not persisted")
		return res, err
	}
	log.Info("operation applied")
	return res, nil
}

// PayBill pays a bill now, or records it as a recurring payment, depending
// on p.Schedule.
func (s *Session) PayBill(ctx context.Context, p BillPayment) (BillReceipt, error) {
	fields := logrus.Fields{"amount": p.Amount.String(), "name": p.Name}
	return apply(ctx, s, "pay-bill", fields, func(st *UserState) (BillReceipt, error) {
		return s.w.ledger.ApplyBill(st, p)
	})
}

// Deposit credits amount to the balance.
func (s *Session) Deposit(ctx context.Context, amount Money, method string) (Transaction, error) {
	fields := logrus.Fields{"amount": amount.String(), "method": method}
	return apply(ctx, s, "deposit", fields, func(st *UserState) (Transaction, error) {
		return s.w.ledger.Deposit(st, amount, method)
	})
}

// WithdrawCash moves amount out of the balance to destination.
func (s *Session) WithdrawCash(ctx context.Context, amount Money, destination string) (Transaction, error) {
	fields := logrus.Fields{"amount": amount.String(), "destination": destination}
	return apply(ctx, s, "withdraw-cash", fields, func(st *UserState) (Transaction, error) {
		return s.w.ledger.WithdrawCash(st, amount, destination)
	})
}

// TradeCrypto buys or sells quantity of asset at the current quote.
func (s *Session) TradeCrypto(ctx context.Context, asset string, quantity Quantity, isBuy bool) (Trade, error) {
	kind := Sell
	if isBuy {
		kind = Buy
	}
	return s.trade(ctx, TradeOrder{Asset: asset, Quantity: quantity, Kind: kind})
}

// WithdrawCrypto sends quantity of asset to an external address.
func (s *Session) WithdrawCrypto(ctx context.Context, asset string, quantity Quantity, address string) (Trade, error) {
	return s.trade(ctx, TradeOrder{Asset: asset, Quantity: quantity, Kind: Withdraw, Address: address})
}

func (s *Session) trade(ctx context.Context, o TradeOrder) (Trade, error) {
	fields := logrus.Fields{"asset": o.Asset, "quantity": o.Quantity.String()}
	return apply(ctx, s, string(o.Kind), fields, func(st *UserState) (Trade, error) {
		return s.w.trader.Execute(ctx, st, o)
	})
}

// ToggleRecurring pauses or resumes a recurring payment.
func (s *Session) ToggleRecurring(ctx context.Context, id string) (RecurringPayment, error) {
	return apply(ctx, s, "toggle-recurring", logrus.Fields{"id": id}, func(st *UserState) (RecurringPayment, error) {
		return ToggleRecurring(st, id)
	})
}

// DeleteRecurring removes a recurring payment.
func (s *Session) DeleteRecurring(ctx context.Context, id string) (RecurringPayment, error) {
	return apply(ctx, s, "delete-recurring", logrus.Fields{"id": id}, func(st *UserState) (RecurringPayment, error) {
		return DeleteRecurring(st, id)
	})
}

// EditRecords lets the caller change the pass-through collections. An error
// from fn discards every change fn made.
func (s *Session) EditRecords(ctx context.Context, fn func(*Records) error) error {
	_, err := apply(ctx, s, "edit-records", nil, func(st *UserState) (struct{}, error) {
		return struct{}{}, fn(&st.Records)
	})
	return err
}

// SetSecurity updates the account's security flags.
func (s *Session) SetSecurity(ctx context.Context, flags SecurityFlags) error {
	_, err := apply(ctx, s, "set-security", nil, func(st *UserState) (struct{}, error) {
		st.Account.Security = flags
		return struct{}{}, nil
	})
	return err
}

// Quote returns the current price of asset.
func (s *Session) Quote(ctx context.Context, asset string) (Quote, error) {
	return s.w.quotes.Quote(ctx, asset)
}

// Valuation prices the user's holdings at the current quotes.
func (s *Session) Valuation(ctx context.Context) (Valuation, error) {
	if s.closed.Load() {
		return Valuation{}, ErrSessionClosed
	}
	return Value(ctx, s.w.quotes, s.State())
}
