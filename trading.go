package purse

import (
	"context"
	"fmt"
	"strings"
)

// Trader applies crypto trades to a user state. Like Ledger it keeps no
// state: a trade is quoted, converted, validated, applied and logged as one
// unit, and a rejected trade leaves the state untouched.
type Trader struct {
	env
	quotes Quoter
}

// NewTrader returns a trading engine pricing trades with quotes.
func NewTrader(quotes Quoter) *Trader {
	return &Trader{env: defaultEnv(), quotes: quotes}
}

// TradeOrder is a crypto trade request.
type TradeOrder struct {
	Asset    string // id or symbol
	Quantity Quantity
	Kind     TradeKind
	Address  string // destination, withdraw only
}

// Execute runs a trade order against s.
//
// Settlement converts the USD quote into the account currency with the fixed
// fx rate: total = quantity * price * fx. A buy needs the balance to cover
// the total, a sell or a withdraw needs the holding to cover the quantity.
// A withdraw moves the asset off-platform and leaves the balance unchanged.
func (t *Trader) Execute(ctx context.Context, s *UserState, o TradeOrder) (Trade, error) {
	asset, err := LookupAsset(o.Asset)
	if err != nil {
		return Trade{}, err
	}
	if !o.Quantity.IsPositive() {
		return Trade{}, &ValidationError{Field: "quantity", Reason: fmt.Sprintf("must be positive, got %s", o.Quantity)}
	}
	switch o.Kind {
	case Buy, Sell:
	case Withdraw:
		if strings.TrimSpace(o.Address) == "" {
			return Trade{}, &ValidationError{Field: "address", Reason: "missing"}
		}
	default:
		return Trade{}, &ValidationError{Field: "kind", Reason: fmt.Sprintf("unsupported trade %q", o.Kind)}
	}

	// 1. Quote
	quote, err := t.quotes.Quote(ctx, asset.Symbol)
	if err != nil {
		return Trade{}, fmt.Errorf("cannot quote %s: %w", asset.Symbol, err)
	}
	// 2. Convert
	fx, err := FXRate(s.Account.Currency)
	if err != nil {
		return Trade{}, err
	}
	total := quote.PriceUSD.Mul(o.Quantity).Convert(fx, s.Account.Currency)

	// 3. Validate
	i := s.holding(asset.Symbol)
	held := s.Holding(asset.Symbol)
	switch o.Kind {
	case Buy:
		if s.Account.Balance.LessThan(total) {
			return Trade{}, &InsufficientFundsError{Need: total, Have: s.Account.Balance}
		}
	case Sell, Withdraw:
		if held.LessThan(o.Quantity) {
			return Trade{}, &InsufficientHoldingsError{Asset: asset.Symbol, Need: o.Quantity, Have: held}
		}
	}

	// 4. Apply
	if i < 0 {
		s.Holdings = append(s.Holdings, CryptoHolding{ID: asset.ID, Symbol: asset.Symbol, Name: asset.Name})
		i = len(s.Holdings) - 1
	}
	h := &s.Holdings[i]
	switch o.Kind {
	case Buy:
		s.Account.Balance = s.Account.Balance.Sub(total)
		h.Quantity = h.Quantity.Add(o.Quantity)
	case Sell:
		s.Account.Balance = s.Account.Balance.Add(total)
		h.Quantity = h.Quantity.Sub(o.Quantity)
	case Withdraw:
		h.Quantity = h.Quantity.Sub(o.Quantity)
	}
	h.ValueUSD = quote.PriceUSD

	// 5. Log
	trade := Trade{
		ID:       t.newID(),
		Symbol:   strings.ToUpper(asset.Symbol),
		Quantity: o.Quantity,
		PriceUSD: quote.PriceUSD,
		Kind:     o.Kind,
		Date:     t.now(),
	}
	if o.Kind == Withdraw {
		trade.Address = strings.TrimSpace(o.Address)
	}
	s.prependTrade(trade)
	return trade, nil
}
