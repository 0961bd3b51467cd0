package purse

import (
	"context"
	"math/rand/v2"
	"sync"

	"github.com/shopspring/decimal"
)

// Quote is the current USD price of an asset.
type Quote struct {
	Symbol        string
	PriceUSD      Money
	ChangePercent Percent // relative to the asset's open price
}

// Quoter is a source of asset prices. Trading and valuation only ever see
// prices through this interface.
type Quoter interface {
	Quote(ctx context.Context, asset string) (Quote, error)
}

// RandomFeed is a simulated price feed. Prices start at each asset's open and
// drift by a bounded random factor on every Tick.
type RandomFeed struct {
	mu     sync.RWMutex
	rnd    *rand.Rand
	prices map[string]decimal.Decimal // by symbol
}

// NewRandomFeed returns a feed seeded with the catalogue open prices.
// The seed makes the drift reproducible.
func NewRandomFeed(seed uint64) *RandomFeed {
	f := &RandomFeed{
		rnd:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		prices: make(map[string]decimal.Decimal, len(Assets)),
	}
	for _, a := range Assets {
		f.prices[a.Symbol] = a.Open
	}
	return f
}

// Tick moves every price by a factor 1 + U(-1,1)*volatility.
func (f *RandomFeed) Tick() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range Assets {
		factor := 1 + (f.rnd.Float64()*2-1)*a.Volatility
		f.prices[a.Symbol] = f.prices[a.Symbol].Mul(decimal.NewFromFloat(factor)).Round(8)
	}
}

// Set pins the price of an asset.
func (f *RandomFeed) Set(asset string, priceUSD decimal.Decimal) error {
	a, err := LookupAsset(asset)
	if err != nil {
		return err
	}
	if !priceUSD.IsPositive() {
		return &ValidationError{Field: "price", Reason: "must be positive"}
	}
	f.mu.Lock()
	f.prices[a.Symbol] = priceUSD
	f.mu.Unlock()
	return nil
}

func (f *RandomFeed) Quote(_ context.Context, asset string) (Quote, error) {
	a, err := LookupAsset(asset)
	if err != nil {
		return Quote{}, err
	}
	f.mu.RLock()
	price := f.prices[a.Symbol]
	f.mu.RUnlock()
	return newQuote(a, price), nil
}

func newQuote(a Asset, price decimal.Decimal) Quote {
	change := price.Sub(a.Open).Div(a.Open).Mul(decimal.NewFromInt(100))
	return Quote{
		Symbol:        a.Symbol,
		PriceUSD:      M(price, "USD"),
		ChangePercent: Percent(change.InexactFloat64()),
	}
}
