package cmd

import (
	"context"
	"flag"

	"github.com/etnz/purse"
	"github.com/etnz/purse/renderer"
	"github.com/google/subcommands"
)

type recurringCmd struct{}

func (*recurringCmd) Name() string     { return "recurring" }
func (*recurringCmd) Synopsis() string { return "list recurring payments and when they are next due" }
func (*recurringCmd) Usage() string {
	return "purse recurring\n\n  Lists the recorded recurring payments. Use 'purse pay -every' to add one.\n"
}
func (*recurringCmd) SetFlags(f *flag.FlagSet) {}

func (*recurringCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, s, err := resume(ctx)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Recurring(s.State().Recurring, a.wallet.Now()))
	return subcommands.ExitSuccess
}

// recurringEditCmd applies an edit to the recurring payment named by its only argument.
type recurringEditCmd struct {
	name, synopsis string
	edit           func(s *purse.Session, ctx context.Context, id string) (purse.RecurringPayment, error)
}

func (c *recurringEditCmd) Name() string     { return c.name }
func (c *recurringEditCmd) Synopsis() string { return c.synopsis }
func (c *recurringEditCmd) Usage() string {
	return "purse " + c.name + " <id>\n\n  The id is listed by 'purse recurring'.\n"
}
func (*recurringEditCmd) SetFlags(f *flag.FlagSet) {}

func (c *recurringEditCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("%s expects a recurring payment id", c.name)
	}
	a, s, err := resume(ctx)
	if err != nil {
		return fail(err)
	}
	r, err := c.edit(s, ctx, f.Arg(0))
	if rejected(err) {
		return fail(err)
	}
	printMarkdown(renderer.Recurring([]purse.RecurringPayment{r}, a.wallet.Now()))
	return applied(err)
}

func newRecurringToggleCmd() *recurringEditCmd {
	return &recurringEditCmd{name: "recurring-toggle", synopsis: "pause or resume a recurring payment", edit: (*purse.Session).ToggleRecurring}
}

func newRecurringDeleteCmd() *recurringEditCmd {
	return &recurringEditCmd{name: "recurring-delete", synopsis: "delete a recurring payment", edit: (*purse.Session).DeleteRecurring}
}
