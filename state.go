package purse

import (
	"slices"
	"time"
)

// SecurityFlags are the account's security settings, as reported by the UI.
type SecurityFlags struct {
	Biometrics bool `json:"biometrics"`
	PIN        bool `json:"pin"`
	TwoFactor  bool `json:"twoFactor"`
}

// Account is the user's profile and cash balance.
type Account struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Country     Country       `json:"country"`
	Currency    string        `json:"currency"`
	Balance     Money         `json:"balance"`
	CreditScore int           `json:"creditScore"`
	Security    SecurityFlags `json:"security"`
	Created     time.Time     `json:"created"` // zero until onboarded
}

// Onboarded reports whether the account went through onboarding.
func (a Account) Onboarded() bool { return !a.Created.IsZero() }

// UserState is everything persisted for one user.
//
// Transactions and Trades are kept newest first.
type UserState struct {
	Account      Account            `json:"account"`
	Transactions []Transaction      `json:"transactions"`
	Trades       []Trade            `json:"trades"`
	Holdings     []CryptoHolding    `json:"holdings"`
	Recurring    []RecurringPayment `json:"recurringPayments"`
	Records
}

// defaultCreditScore is the score shown to new accounts.
const defaultCreditScore = 720

// SeedState is the state of a user that has nothing persisted yet: a Nigerian
// account with no cash and the placeholder crypto holdings.
func SeedState(userID string) UserState {
	cur, _ := LocalCurrency(Nigeria)
	return UserState{
		Account: Account{
			ID:          userID,
			Country:     Nigeria,
			Currency:    cur,
			Balance:     M(0, cur),
			CreditScore: defaultCreditScore,
		},
		Transactions: []Transaction{},
		Trades:       []Trade{},
		Holdings:     seedHoldings(),
		Recurring:    []RecurringPayment{},
	}
}

// Clone returns a deep copy of the state, safe to mutate independently.
func (s UserState) Clone() UserState {
	return UserState{
		Account:      s.Account,
		Transactions: slices.Clone(s.Transactions),
		Trades:       slices.Clone(s.Trades),
		Holdings:     slices.Clone(s.Holdings),
		Recurring:    slices.Clone(s.Recurring),
		Records:      s.Records.clone(),
	}
}

// prependTransaction records tx as the newest transaction.
func (s *UserState) prependTransaction(tx Transaction) {
	s.Transactions = slices.Insert(s.Transactions, 0, tx)
}

// prependTrade records t as the newest trade.
func (s *UserState) prependTrade(t Trade) {
	s.Trades = slices.Insert(s.Trades, 0, t)
}
