package purse

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// HTTPFeed reads prices from a JSON HTTP endpoint.
//
// URL may contain the placeholders {id} and {symbol}, replaced by the asset's
// catalogue id and lower-case symbol. Path is a JSONPath expression locating
// the USD price in the response, e.g. "$.bitcoin.usd" or "$.data[0].price".
type HTTPFeed struct {
	Client *http.Client
	URL    string
	Path   string
}

func (f *HTTPFeed) Quote(ctx context.Context, asset string) (Quote, error) {
	a, err := LookupAsset(asset)
	if err != nil {
		return Quote{}, err
	}
	addr := strings.NewReplacer("{id}", a.ID, "{symbol}", strings.ToLower(a.Symbol)).Replace(f.URL)

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	var jobj any
	if err := jwget(ctx, client, addr, &jobj); err != nil {
		return Quote{}, fmt.Errorf("quote %s: %w", a.Symbol, err)
	}
	path := strings.NewReplacer("{id}", a.ID, "{symbol}", strings.ToLower(a.Symbol)).Replace(f.Path)
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return Quote{}, fmt.Errorf("quote %s: parsing %q: %w", a.Symbol, path, err)
	}
	// jsonpath returns either a single value or a list of matches, keep the first.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	var price decimal.Decimal
	switch v := jval.(type) {
	case float64:
		price = decimal.NewFromFloat(v)
	case string:
		// some APIs return prices as strings
		price, err = decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return Quote{}, fmt.Errorf("quote %s: invalid price %q: %w", a.Symbol, v, err)
		}
	default:
		return Quote{}, fmt.Errorf("quote %s: %q is neither a number nor a string: %v", a.Symbol, path, jval)
	}
	if !price.IsPositive() {
		return Quote{}, fmt.Errorf("quote %s: non positive price %s", a.Symbol, price)
	}
	return newQuote(a, price), nil
}

// jwget performs an HTTP GET request and unmarshals the JSON response into data.
func jwget(ctx context.Context, client *http.Client, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(data)
}
