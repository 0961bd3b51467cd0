package cmd

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/etnz/purse"
	"github.com/etnz/purse/renderer"
	"github.com/google/subcommands"
)

type watchCmd struct {
	count int
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "follow crypto prices as they move" }
func (*watchCmd) Usage() string {
	return `purse watch [-n <count>] [<asset>...]

  Prints prices every PURSE_TICK_INTERVAL until interrupted, or -n times.
  Simulated prices move while watching.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.count, "n", 0, "Stop after N refreshes, 0 to run until interrupted.")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if feed, ok := a.feed.(purse.Ticking); ok {
		ticker, err := purse.NewTicker(feed, a.cfg.TickInterval, a.log)
		if err != nil {
			return fail(err)
		}
		ticker.Start()
		defer ticker.Stop()
	}

	refresh := time.NewTicker(a.cfg.TickInterval)
	defer refresh.Stop()
	for n := 1; ; n++ {
		quotes, err := quoteAll(ctx, a.feed, f.Args())
		if err != nil {
			return fail(err)
		}
		printMarkdown(renderer.Quotes(quotes))
		if c.count > 0 && n >= c.count {
			return subcommands.ExitSuccess
		}
		select {
		case <-ctx.Done():
			return subcommands.ExitSuccess
		case <-refresh.C:
		}
	}
}
