package renderer

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/etnz/purse"
	"github.com/etnz/purse/date"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// outline parses markdown and returns its headings and the number of rows of
// every table (header excluded).
func outline(t *testing.T, md string) (headings []string, rows []int) {
	t.Helper()
	source := []byte(md)
	root := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(source))
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			var b strings.Builder
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				if s, ok := c.(*ast.Text); ok {
					b.Write(s.Segment.Value(source))
				}
			}
			headings = append(headings, b.String())
		case *extast.Table:
			count := 0
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				if _, ok := c.(*extast.TableRow); ok {
					count++
				}
			}
			rows = append(rows, count)
		}
		return ast.WalkContinue, nil
	})
	return headings, rows
}

func state(t *testing.T) purse.UserState {
	t.Helper()
	s := purse.SeedState("ada")
	s.Account.Name = "Ada"
	s.Account.Balance = purse.M(105000, "NGN")
	s.Account.Security.PIN = true
	at := time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC)
	s.Transactions = []purse.Transaction{
		{ID: "t2", Type: purse.Debit, Category: "Utilities", Name: "Water | Sewage", Amount: purse.M(1200, "NGN"), Date: at, Status: purse.Completed},
		{ID: "t1", Type: purse.Credit, Category: purse.CategoryDeposit, Name: "Deposit via card", Amount: purse.M(5000, "NGN"), Date: at, Status: purse.Completed},
	}
	s.Trades = []purse.Trade{
		{ID: "x1", Symbol: "ETH", Quantity: purse.Q(0.5), PriceUSD: purse.M(2250, "USD"), Kind: purse.Withdraw, Date: at, Address: "0xABC"},
	}
	s.Recurring = []purse.RecurringPayment{
		{ID: "r1", Name: "Rent", Amount: purse.M(250000, "NGN"), Frequency: purse.Monthly, Start: date.New(2025, time.April, 1), Active: true},
		{ID: "r2", Name: "Gym", Amount: purse.M(15000, "NGN"), Frequency: purse.Weekly, Start: date.New(2025, time.January, 6), Active: false},
	}
	return s
}

func valuation(t *testing.T, s purse.UserState) purse.Valuation {
	t.Helper()
	v, err := purse.Value(context.Background(), purse.NewRandomFeed(1), s)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestAccount(t *testing.T) {
	s := state(t)
	md := Account(s, valuation(t, s), true)
	headings, rows := outline(t, md)
	if len(headings) != 2 || headings[0] != "Ada (Nigeria, NGN)" || headings[1] != "Security" {
		t.Errorf("headings = %q\n%s", headings, md)
	}
	if len(rows) != 1 || rows[0] != 4 {
		t.Errorf("table rows = %v, want [4]\n%s", rows, md)
	}
	for _, want := range []string{"- PIN: on", "- Biometrics: off", "log in again"} {
		if !strings.Contains(md, want) {
			t.Errorf("Account() does not contain %q\n%s", want, md)
		}
	}
}

func TestTransactions(t *testing.T) {
	md := Transactions(state(t).Transactions)
	headings, rows := outline(t, md)
	if len(headings) != 1 || headings[0] != "Transactions" {
		t.Errorf("headings = %q", headings)
	}
	if len(rows) != 1 || rows[0] != 2 {
		t.Errorf("table rows = %v, want [2]\n%s", rows, md)
	}
	if !strings.Contains(md, `Water \| Sewage`) || !strings.Contains(md, "2025-03-14 12:00") {
		t.Errorf("Transactions() =\n%s", md)
	}

	if md := Transactions(nil); !strings.Contains(md, "No transactions yet.") {
		t.Errorf("Transactions(nil) =\n%s", md)
	}
}

func TestTrades(t *testing.T) {
	md := Trades(state(t).Trades)
	if _, rows := outline(t, md); len(rows) != 1 || rows[0] != 1 {
		t.Errorf("table rows = %v, want [1]\n%s", rows, md)
	}
	for _, want := range []string{"| withdraw | ETH | 0.5 |", "0xABC"} {
		if !strings.Contains(md, want) {
			t.Errorf("Trades() does not contain %q\n%s", want, md)
		}
	}
}

func TestHoldings(t *testing.T) {
	s := state(t)
	md := Holdings(valuation(t, s))
	_, rows := outline(t, md)
	// three positions and the total
	if len(rows) != 1 || rows[0] != 4 {
		t.Errorf("table rows = %v, want [4]\n%s", rows, md)
	}
	if !strings.Contains(md, "Bitcoin (BTC)") || !strings.Contains(md, "Value (NGN)") {
		t.Errorf("Holdings() =\n%s", md)
	}

	s.Holdings = nil
	if md := Holdings(valuation(t, s)); !strings.Contains(md, "No holdings.") {
		t.Errorf("Holdings() without positions =\n%s", md)
	}
}

func TestQuotes(t *testing.T) {
	feed := purse.NewRandomFeed(1)
	var quotes []purse.Quote
	for _, a := range purse.Assets {
		q, _ := feed.Quote(context.Background(), a.Symbol)
		quotes = append(quotes, q)
	}
	md := Quotes(quotes)
	if _, rows := outline(t, md); len(rows) != 1 || rows[0] != 3 {
		t.Errorf("table rows = %v, want [3]\n%s", rows, md)
	}
	if !strings.Contains(md, "| BTC | $42,350.00 | - |") {
		t.Errorf("Quotes() =\n%s", md)
	}
}

func TestRecurring(t *testing.T) {
	now := time.Date(2025, time.April, 15, 9, 0, 0, 0, time.UTC)
	md := Recurring(state(t).Recurring, now)
	if _, rows := outline(t, md); len(rows) != 1 || rows[0] != 2 {
		t.Errorf("table rows = %v, want [2]\n%s", rows, md)
	}
	for _, want := range []string{"| r1 | Rent |", "| monthly | 2025-04-01 | 2025-05-01 |", "| paused |"} {
		if !strings.Contains(md, want) {
			t.Errorf("Recurring() does not contain %q\n%s", want, md)
		}
	}
}
