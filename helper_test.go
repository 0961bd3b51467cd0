package purse

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

// NGN is a helper for test to create naira money from const
func NGN(v float64) Money { return M(v, "NGN") }

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// noon is the fixed clock used by tests.
var noon = time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return noon }

// sequence returns an id generator producing "id-1", "id-2", ...
func sequence() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// testLedger returns a ledger with a fixed clock and predictable ids.
func testLedger() *Ledger {
	return &Ledger{env: env{now: fixedClock, newID: sequence()}}
}

// funded returns a seed state with balance as cash.
func funded(balance float64) UserState {
	s := SeedState("ada")
	s.Account.Balance = NGN(balance)
	s.Account.Created = noon
	return s
}

// wantErr fails t unless err matches the type of target.
func wantErr[E error](t *testing.T, err error) E {
	t.Helper()
	var target E
	if !errors.As(err, &target) {
		t.Fatalf("error = %v (%T), want %T", err, err, target)
	}
	return target
}
