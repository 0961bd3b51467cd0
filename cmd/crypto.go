package cmd

import (
	"context"
	"flag"

	"github.com/etnz/purse"
	"github.com/etnz/purse/renderer"
	"github.com/google/subcommands"
)

type quoteCmd struct{}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "print current crypto prices" }
func (*quoteCmd) Usage() string {
	return `purse quote [<asset>...]

  Prints the USD price of the given assets, all tracked assets by default.
`
}
func (*quoteCmd) SetFlags(f *flag.FlagSet) {}

func (*quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	quotes, err := quoteAll(ctx, a.feed, f.Args())
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Quotes(quotes))
	return subcommands.ExitSuccess
}

// quoteAll quotes assets, or every tracked asset when none is given.
func quoteAll(ctx context.Context, feed purse.Quoter, assets []string) ([]purse.Quote, error) {
	if len(assets) == 0 {
		for _, a := range purse.Assets {
			assets = append(assets, a.Symbol)
		}
	}
	quotes := make([]purse.Quote, 0, len(assets))
	for _, asset := range assets {
		q, err := feed.Quote(ctx, asset)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

type tradeCmd struct {
	buy bool
}

func (c *tradeCmd) Name() string {
	if c.buy {
		return "buy"
	}
	return "sell"
}

func (c *tradeCmd) Synopsis() string {
	if c.buy {
		return "buy crypto with the cash balance"
	}
	return "sell crypto into the cash balance"
}

func (c *tradeCmd) Usage() string {
	return "purse " + c.Name() + ` <asset> <quantity>

  Trades <quantity> of <asset> (BTC, ETH, USDT or their names) at the current
  price, converted to the account currency.
`
}
func (*tradeCmd) SetFlags(f *flag.FlagSet) {}

func (c *tradeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		return usage("%s expects an asset and a quantity", c.Name())
	}
	qty, err := purse.ParseQuantity(f.Arg(1))
	if err != nil {
		return fail(err)
	}
	_, s, err := resume(ctx)
	if err != nil {
		return fail(err)
	}
	trade, err := s.TradeCrypto(ctx, f.Arg(0), qty, c.buy)
	if rejected(err) {
		return fail(err)
	}
	printMarkdown(renderer.Trades([]purse.Trade{trade}))
	return applied(err)
}

type sendCmd struct{}

func (*sendCmd) Name() string     { return "send" }
func (*sendCmd) Synopsis() string { return "withdraw crypto to an external address" }
func (*sendCmd) Usage() string {
	return `purse send <asset> <quantity> <address>

  Moves <quantity> of <asset> off the platform. The cash balance is unchanged.
`
}
func (*sendCmd) SetFlags(f *flag.FlagSet) {}

func (*sendCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		return usage("send expects an asset, a quantity and an address")
	}
	qty, err := purse.ParseQuantity(f.Arg(1))
	if err != nil {
		return fail(err)
	}
	_, s, err := resume(ctx)
	if err != nil {
		return fail(err)
	}
	trade, err := s.WithdrawCrypto(ctx, f.Arg(0), qty, f.Arg(2))
	if rejected(err) {
		return fail(err)
	}
	printMarkdown(renderer.Trades([]purse.Trade{trade}))
	return applied(err)
}

type holdingsCmd struct{}

func (*holdingsCmd) Name() string             { return "holdings" }
func (*holdingsCmd) Synopsis() string         { return "show crypto holdings at current prices" }
func (*holdingsCmd) Usage() string            { return "purse holdings\n" }
func (*holdingsCmd) SetFlags(f *flag.FlagSet) {}

func (*holdingsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, s, err := resume(ctx)
	if err != nil {
		return fail(err)
	}
	v, err := s.Valuation(ctx)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Holdings(v))
	return subcommands.ExitSuccess
}

type tradesCmd struct {
	head int
}

func (*tradesCmd) Name() string     { return "trades" }
func (*tradesCmd) Synopsis() string { return "list crypto trades, newest first" }
func (*tradesCmd) Usage() string    { return "purse trades [-head <n>]\n" }

func (c *tradesCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.head, "head", 0, "Show only the first N trades.")
}

func (c *tradesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, s, err := resume(ctx)
	if err != nil {
		return fail(err)
	}
	trades := s.State().Trades
	if c.head > 0 && len(trades) > c.head {
		trades = trades[:c.head]
	}
	printMarkdown(renderer.Trades(trades))
	return subcommands.ExitSuccess
}
