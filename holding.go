package purse

import "strings"

// CryptoHolding is the quantity of one asset owned by a user.
type CryptoHolding struct {
	ID       string   `json:"id"`
	Symbol   string   `json:"symbol"`
	Name     string   `json:"name"`
	Quantity Quantity `json:"amount"`
	ValueUSD Money    `json:"value"` // last known unit price, informational
}

// seedHoldings are the placeholder holdings of a fresh account.
func seedHoldings() []CryptoHolding {
	return []CryptoHolding{
		{ID: "bitcoin", Symbol: "BTC", Name: "Bitcoin", Quantity: Q(0.45), ValueUSD: M(42350, "USD")},
		{ID: "ethereum", Symbol: "ETH", Name: "Ethereum", Quantity: Q(2.1), ValueUSD: M(2250, "USD")},
		{ID: "tether", Symbol: "USDT", Name: "Tether", Quantity: Q(1500), ValueUSD: M(1, "USD")},
	}
}

// holding returns the index of symbol's holding, or -1.
func (s *UserState) holding(symbol string) int {
	for i, h := range s.Holdings {
		if strings.EqualFold(h.Symbol, symbol) {
			return i
		}
	}
	return -1
}

// Holding returns the quantity held of an asset, zero if none.
func (s *UserState) Holding(symbol string) Quantity {
	if i := s.holding(symbol); i >= 0 {
		return s.Holdings[i].Quantity
	}
	return Q(0)
}
