package purse

import (
	"fmt"
	"time"
)

// Direction tells whether a transaction takes money out of or brings money into the balance.
type Direction string

const (
	Debit  Direction = "debit"
	Credit Direction = "credit"
)

// Status of a cash transaction.
type Status string

const (
	Completed Status = "completed"
	Pending   Status = "pending"
	Failed    Status = "failed"
)

// Categories recorded by the ledger itself. Bill payments carry the
// category chosen by the user.
const (
	CategoryDeposit    = "Deposit"
	CategoryWithdrawal = "Withdrawal"
)

// Transaction is an immutable entry of the cash ledger.
type Transaction struct {
	ID       string    `json:"id"`
	Type     Direction `json:"type"`
	Category string    `json:"category"`
	Name     string    `json:"name"`
	Amount   Money     `json:"amount"` // magnitude, the sign is given by Type
	Date     time.Time `json:"date"`
	Status   Status    `json:"status"`
	Method   string    `json:"method,omitempty"`
}

// Signed returns the amount with the sign it had on the balance.
func (t Transaction) Signed() Money {
	if t.Type == Debit {
		return t.Amount.Neg()
	}
	return t.Amount
}

func (t Transaction) String() string {
	return fmt.Sprintf("%s %s %s (%s)", t.Date.Format(time.DateOnly), t.Name, t.Signed().SignedString(), t.Status)
}

// TradeKind is the action a trade performed on a holding.
type TradeKind string

const (
	Buy      TradeKind = "buy"
	Sell     TradeKind = "sell"
	Withdraw TradeKind = "withdraw"
)

// Trade is an immutable entry of the crypto trade log.
type Trade struct {
	ID       string    `json:"id"`
	Symbol   string    `json:"symbol"`
	Quantity Quantity  `json:"quantity"`
	PriceUSD Money     `json:"price"` // unit price at execution
	Kind     TradeKind `json:"type"`
	Date     time.Time `json:"date"`
	Address  string    `json:"address,omitempty"` // withdraw only
}

// ValueUSD is the trade's quantity at its execution price.
func (t Trade) ValueUSD() Money { return t.PriceUSD.Mul(t.Quantity) }
