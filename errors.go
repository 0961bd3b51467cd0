package purse

import "fmt"

// ValidationError reports a malformed request: a non numeric or non positive
// amount, a missing field, an unknown asset. No state was changed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InsufficientFundsError reports a cash shortfall in the account currency.
type InsufficientFundsError struct {
	Need Money
	Have Money
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: need %s, balance is %s", e.Need, e.Have)
}

// InsufficientHoldingsError reports an asset quantity shortfall.
type InsufficientHoldingsError struct {
	Asset string
	Need  Quantity
	Have  Quantity
}

func (e *InsufficientHoldingsError) Error() string {
	return fmt.Sprintf("insufficient %s holdings: need %s, holding is %s", e.Asset, e.Need, e.Have)
}

// PersistenceError reports a failure of the identity store.
type PersistenceError struct {
	Op     string // load, save, begin, current or clear
	UserID string
	Err    error
}

func (e *PersistenceError) Error() string {
	if e.UserID == "" {
		return fmt.Sprintf("store %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store %s %q: %v", e.Op, e.UserID, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
