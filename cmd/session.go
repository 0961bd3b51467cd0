package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/purse"
	"github.com/etnz/purse/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type loginCmd struct {
	name       string
	country    string
	opening    string
	biometrics bool
	pin        bool
	twoFactor  bool
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "log in, creating the account on first use" }
func (*loginCmd) Usage() string {
	return `purse login [-name <name>] [-country <country>] [-opening <amount>] [-biometrics] [-pin] [-2fa] <user-id>

  Logs in as <user-id>. The first login onboards the account with the given
  profile: name, country (Nigeria, Ghana or Senegal) and opening balance in the
  country's currency. The profile flags are ignored for existing accounts.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Display name of a new account")
	f.StringVar(&c.country, "country", string(purse.Nigeria), "Country of a new account")
	f.StringVar(&c.opening, "opening", "0", "Opening balance of a new account")
	f.BoolVar(&c.biometrics, "biometrics", false, "Enable biometrics on a new account")
	f.BoolVar(&c.pin, "pin", false, "Enable the PIN on a new account")
	f.BoolVar(&c.twoFactor, "2fa", false, "Enable two-factor authentication on a new account")
}

func (c *loginCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return usage("login expects exactly one user id")
	}
	country, err := purse.ParseCountry(c.country)
	if err != nil {
		return fail(err)
	}
	opening, err := decimal.NewFromString(c.opening)
	if err != nil {
		return usage("invalid opening balance %q", c.opening)
	}
	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	s, err := a.wallet.Login(ctx, f.Arg(0), purse.Profile{
		Name:           c.name,
		Country:        country,
		OpeningBalance: opening,
		Security:       purse.SecurityFlags{Biometrics: c.biometrics, PIN: c.pin, TwoFactor: c.twoFactor},
	})
	if err != nil {
		return fail(err)
	}
	return printAccount(ctx, s, false)
}

// printAccount prints the account summary of the session's user.
func printAccount(ctx context.Context, s *purse.Session, needsUnlock bool) subcommands.ExitStatus {
	v, err := s.Valuation(ctx)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.Account(s.State(), v, needsUnlock))
	return subcommands.ExitSuccess
}

type logoutCmd struct{}

func (*logoutCmd) Name() string             { return "logout" }
func (*logoutCmd) Synopsis() string         { return "end the current session" }
func (*logoutCmd) Usage() string            { return "purse logout\n\n  Ends the current session. The account data is kept.\n" }
func (*logoutCmd) SetFlags(f *flag.FlagSet) {}

func (*logoutCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, s, err := resume(ctx)
	if err != nil {
		return fail(err)
	}
	if err := s.Logout(ctx); err != nil {
		return fail(err)
	}
	fmt.Fprintf(stdout, "Logged out %s\n", s.UserID())
	return subcommands.ExitSuccess
}

type whoamiCmd struct{}

func (*whoamiCmd) Name() string             { return "whoami" }
func (*whoamiCmd) Synopsis() string         { return "print the logged in user" }
func (*whoamiCmd) Usage() string            { return "purse whoami\n" }
func (*whoamiCmd) SetFlags(f *flag.FlagSet) {}

func (*whoamiCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, err := openApp()
	if err != nil {
		return fail(err)
	}
	p, ok, err := a.store.Current(ctx)
	if err != nil {
		return fail(err)
	}
	if !ok {
		return fail(purse.ErrNoSession)
	}
	fmt.Fprintf(stdout, "%s (unlocked %s)\n", p.UserID, p.LastUnlock.Local().Format("2006-01-02 15:04"))
	if p.NeedsUnlock(a.wallet.Now()) {
		fmt.Fprintln(stdout, "Session expired, log in again to unlock.")
	}
	return subcommands.ExitSuccess
}

type securityCmd struct {
	biometrics bool
	pin        bool
	twoFactor  bool
}

func (*securityCmd) Name() string     { return "security" }
func (*securityCmd) Synopsis() string { return "set the account security options" }
func (*securityCmd) Usage() string {
	return `purse security [-biometrics] [-pin] [-2fa]

  Replaces the security options of the account, options not given are turned off.
`
}

func (c *securityCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.biometrics, "biometrics", false, "Enable biometrics")
	f.BoolVar(&c.pin, "pin", false, "Enable the PIN")
	f.BoolVar(&c.twoFactor, "2fa", false, "Enable two-factor authentication")
}

func (c *securityCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	a, s, err := resume(ctx)
	if err != nil {
		return fail(err)
	}
	err = s.SetSecurity(ctx, purse.SecurityFlags{Biometrics: c.biometrics, PIN: c.pin, TwoFactor: c.twoFactor})
	if rejected(err) {
		return fail(err)
	}
	if status := printAccount(ctx, s, needsUnlock(ctx, a)); status != subcommands.ExitSuccess {
		return status
	}
	return applied(err)
}

// needsUnlock reports whether the current session is older than purse.UnlockTTL.
func needsUnlock(ctx context.Context, a *app) bool {
	p, ok, err := a.store.Current(ctx)
	return err == nil && ok && p.NeedsUnlock(a.wallet.Now())
}
