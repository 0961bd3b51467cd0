package purse

import (
	"context"
	"fmt"
)

// Position is a holding valued at the current quote.
type Position struct {
	Holding    CryptoHolding
	Quote      Quote
	ValueUSD   Money
	ValueLocal Money
}

// Valuation is the market value of a user's holdings.
type Valuation struct {
	Currency   string
	Positions  []Position
	TotalUSD   Money
	TotalLocal Money
	Cash       Money
}

// NetWorth is the cash balance plus the holdings in the account currency.
func (v Valuation) NetWorth() Money { return v.Cash.Add(v.TotalLocal) }

// Value prices every holding of s with quotes.
func Value(ctx context.Context, quotes Quoter, s UserState) (Valuation, error) {
	cur := s.Account.Currency
	fx, err := FXRate(cur)
	if err != nil {
		return Valuation{}, err
	}
	v := Valuation{
		Currency:   cur,
		TotalUSD:   M(0, "USD"),
		TotalLocal: M(0, cur),
		Cash:       s.Account.Balance,
	}
	for _, h := range s.Holdings {
		q, err := quotes.Quote(ctx, h.Symbol)
		if err != nil {
			return Valuation{}, fmt.Errorf("cannot value %s: %w", h.Symbol, err)
		}
		usd := q.PriceUSD.Mul(h.Quantity)
		p := Position{Holding: h, Quote: q, ValueUSD: usd, ValueLocal: usd.Convert(fx, cur)}
		v.Positions = append(v.Positions, p)
		v.TotalUSD = v.TotalUSD.Add(p.ValueUSD)
		v.TotalLocal = v.TotalLocal.Add(p.ValueLocal)
	}
	return v, nil
}
