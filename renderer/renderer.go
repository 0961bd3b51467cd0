// Package renderer renders wallet state as markdown for the terminal.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
	"time"

	"github.com/etnz/purse"
)

//go:embed templates/*.md
var templatesFS embed.FS

var templates, _ = fs.Sub(templatesFS, "templates")

var funcs = template.FuncMap{
	// cell escapes text for a table cell.
	"cell": func(s string) string { return strings.ReplaceAll(s, "|", `\|`) },
	"datetime": func(t time.Time) string {
		return t.Format("2006-01-02 15:04")
	},
	"day": func(t time.Time) string { return t.Format(time.DateOnly) },
}

type account struct {
	State       purse.UserState
	Valuation   purse.Valuation
	NeedsUnlock bool
}

// Account renders the account summary: balances, crypto value and security.
func Account(s purse.UserState, v purse.Valuation, needsUnlock bool) string {
	partials := map[string]string{
		"account_title":    "account_title.md",
		"account_summary":  "account_summary.md",
		"account_security": "account_security.md",
	}
	return renderTemplate("account", "account.md", partials, account{State: s, Valuation: v, NeedsUnlock: needsUnlock})
}

// Transactions renders cash transactions in the given order.
func Transactions(txs []purse.Transaction) string {
	return renderTemplate("transactions", "transactions.md", nil, txs)
}

// Trades renders the crypto trade log in the given order.
func Trades(trades []purse.Trade) string {
	return renderTemplate("trades", "trades.md", nil, trades)
}

// Holdings renders every position of v with the totals.
func Holdings(v purse.Valuation) string {
	return renderTemplate("holdings", "holdings.md", nil, v)
}

// Quotes renders current prices.
func Quotes(quotes []purse.Quote) string {
	return renderTemplate("quotes", "quotes.md", nil, quotes)
}

type recurring struct {
	purse.RecurringPayment
	NextDue time.Time
}

// Recurring renders recurring payments with their next due date after now.
func Recurring(payments []purse.RecurringPayment, now time.Time) string {
	rows := make([]recurring, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, recurring{RecurringPayment: p, NextDue: p.NextDue(now)})
	}
	return renderTemplate("recurring", "recurring.md", nil, rows)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			content, err = fs.ReadFile(templates, file)
			if err != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, err)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
