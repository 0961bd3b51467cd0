package purse

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Country is one of the countries an account can be opened in.
type Country string

const (
	Nigeria Country = "Nigeria"
	Ghana   Country = "Ghana"
	Senegal Country = "Senegal"
)

// Countries lists the supported countries in onboarding order.
var Countries = []Country{Nigeria, Ghana, Senegal}

var localCurrencies = map[Country]string{
	Nigeria: "NGN",
	Ghana:   "GHS",
	Senegal: "XOF",
}

// ParseCountry resolves a country name, ignoring case.
func ParseCountry(s string) (Country, error) {
	for _, c := range Countries {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", &ValidationError{Field: "country", Reason: fmt.Sprintf("unsupported country %q", s)}
}

// LocalCurrency returns the currency accounts opened in country are held in.
func LocalCurrency(country Country) (string, error) {
	cur, ok := localCurrencies[country]
	if !ok {
		return "", &ValidationError{Field: "country", Reason: fmt.Sprintf("unsupported country %q", country)}
	}
	return cur, nil
}

// fxRates are units of local currency per USD. They are fixed illustrative
// values used for trade settlement only, no market source is consulted.
var fxRates = map[string]decimal.Decimal{
	"USD": decimal.NewFromInt(1),
	"NGN": decimal.NewFromInt(1550),
	"GHS": decimal.NewFromInt(12),
	"XOF": decimal.NewFromInt(610),
}

// FXRate returns how many units of currency one USD buys.
func FXRate(currency string) (decimal.Decimal, error) {
	rate, ok := fxRates[currency]
	if !ok {
		return decimal.Zero, &ValidationError{Field: "currency", Reason: fmt.Sprintf("no fx rate for %q", currency)}
	}
	return rate, nil
}

// Asset describes a tradable crypto asset.
type Asset struct {
	ID         string          // coin id, e.g. "bitcoin"
	Symbol     string          // ticker, e.g. "BTC"
	Name       string          // display name
	Open       decimal.Decimal // reference USD price change is measured against
	Volatility float64         // max relative move per tick
}

// Assets is the catalogue of tracked assets.
var Assets = []Asset{
	{ID: "bitcoin", Symbol: "BTC", Name: "Bitcoin", Open: decimal.NewFromInt(42350), Volatility: 0.002},
	{ID: "ethereum", Symbol: "ETH", Name: "Ethereum", Open: decimal.NewFromInt(2250), Volatility: 0.003},
	{ID: "tether", Symbol: "USDT", Name: "Tether", Open: decimal.NewFromInt(1), Volatility: 0.0001},
}

// LookupAsset finds an asset by id or symbol, ignoring case.
func LookupAsset(s string) (Asset, error) {
	s = strings.TrimSpace(s)
	for _, a := range Assets {
		if strings.EqualFold(a.ID, s) || strings.EqualFold(a.Symbol, s) {
			return a, nil
		}
	}
	return Asset{}, &ValidationError{Field: "asset", Reason: fmt.Sprintf("unknown asset %q", s)}
}
