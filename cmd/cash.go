package cmd

import (
	"context"
	"flag"
	"strings"

	"github.com/etnz/purse"
	"github.com/etnz/purse/date"
	"github.com/etnz/purse/renderer"
	"github.com/google/subcommands"
)

type balanceCmd struct{}

func (*balanceCmd) Name() string             { return "balance" }
func (*balanceCmd) Synopsis() string         { return "show the account balance and net worth" }
func (*balanceCmd) Usage() string            { return "purse balance\n" }
func (*balanceCmd) SetFlags(f *flag.FlagSet) {}

func (*balanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, s, err := resume(ctx)
	if err != nil {
		return fail(err)
	}
	return printAccount(ctx, s, needsUnlock(ctx, a))
}

// parseAmount parses an amount in the session's account currency.
func parseAmount(s *purse.Session, input string) (purse.Money, error) {
	st := s.State()
	return purse.ParseAmount(input, st.Account.Currency)
}

type depositCmd struct {
	method string
}

func (*depositCmd) Name() string     { return "deposit" }
func (*depositCmd) Synopsis() string { return "add cash to the balance" }
func (*depositCmd) Usage() string {
	return `purse deposit [-method <method>] <amount>

  Credits <amount>, in the account currency, to the balance.
`
}

func (c *depositCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.method, "method", "card", "Funding method, e.g. card, bank or mobile money")
}

func (c *depositCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("deposit expects an amount")
	}
	_, s, err := resume(ctx)
	if err != nil {
		return fail(err)
	}
	amount, err := parseAmount(s, f.Arg(0))
	if err != nil {
		return fail(err)
	}
	tx, err := s.Deposit(ctx, amount, c.method)
	if rejected(err) {
		return fail(err)
	}
	printMarkdown(renderer.Transactions([]purse.Transaction{tx}))
	return applied(err)
}

type withdrawCmd struct {
	to string
}

func (*withdrawCmd) Name() string     { return "withdraw" }
func (*withdrawCmd) Synopsis() string { return "move cash out of the balance" }
func (*withdrawCmd) Usage() string {
	return `purse withdraw -to <destination> <amount>

  Withdraws <amount> to a bank account or mobile money wallet. The balance
  must cover the amount.
`
}

func (c *withdrawCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.to, "to", "", "Destination account")
}

func (c *withdrawCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("withdraw expects an amount")
	}
	_, s, err := resume(ctx)
	if err != nil {
		return fail(err)
	}
	amount, err := parseAmount(s, f.Arg(0))
	if err != nil {
		return fail(err)
	}
	tx, err := s.WithdrawCash(ctx, amount, c.to)
	if rejected(err) {
		return fail(err)
	}
	printMarkdown(renderer.Transactions([]purse.Transaction{tx}))
	return applied(err)
}

type payCmd struct {
	category string
	every    string
	start    string
}

func (*payCmd) Name() string     { return "pay" }
func (*payCmd) Synopsis() string { return "pay a bill now or record a recurring payment" }
func (*payCmd) Usage() string {
	return `purse pay [-category <category>] [-every daily|weekly|monthly [-start <date>]] <amount> <name>

  Pays the bill <name> from the balance. With -every, records a recurring
  payment starting on -start (today by default) instead; recurring payments
  are never paid automatically.
`
}

func (c *payCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "category", "Bills", "Bill category")
	f.StringVar(&c.every, "every", "", "Record a recurring payment with this frequency")
	f.StringVar(&c.start, "start", "", "First due date of a recurring payment (YYYY-MM-DD)")
}

func (c *payCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 {
		return usage("pay expects an amount and a name")
	}
	var schedule purse.Schedule = purse.OneOff{}
	if c.every != "" {
		freq, err := purse.ParseFrequency(c.every)
		if err != nil {
			return fail(err)
		}
		start := date.Today()
		if c.start != "" {
			if start, err = date.Parse(c.start); err != nil {
				return usage("invalid start date %q: %v", c.start, err)
			}
		}
		schedule = purse.Recurring{Frequency: freq, Start: start}
	} else if c.start != "" {
		return usage("-start requires -every")
	}

	a, s, err := resume(ctx)
	if err != nil {
		return fail(err)
	}
	amount, err := parseAmount(s, f.Arg(0))
	if err != nil {
		return fail(err)
	}
	receipt, err := s.PayBill(ctx, purse.BillPayment{
		Amount:   amount,
		Name:     strings.Join(f.Args()[1:], " "),
		Category: c.category,
		Schedule: schedule,
	})
	if rejected(err) {
		return fail(err)
	}
	switch {
	case receipt.Transaction != nil:
		printMarkdown(renderer.Transactions([]purse.Transaction{*receipt.Transaction}))
	case receipt.Recurring != nil:
		printMarkdown(renderer.Recurring([]purse.RecurringPayment{*receipt.Recurring}, a.wallet.Now()))
	}
	return applied(err)
}

type txCmd struct {
	head int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list cash transactions, newest first" }
func (*txCmd) Usage() string {
	return `purse tx [-head <n>]

  Lists the cash transactions, newest first.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.head, "head", 0, "Show only the first N transactions.")
}

func (c *txCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, s, err := resume(ctx)
	if err != nil {
		return fail(err)
	}
	transactions := s.State().Transactions
	if c.head > 0 && len(transactions) > c.head {
		transactions = transactions[:c.head]
	}
	printMarkdown(renderer.Transactions(transactions))
	return subcommands.ExitSuccess
}
