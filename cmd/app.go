// Package cmd implements the purse command line.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/purse"
	"github.com/etnz/purse/config"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&topicCmd{}, "help")

	c.Register(&loginCmd{}, "session")
	c.Register(&logoutCmd{}, "session")
	c.Register(&whoamiCmd{}, "session")
	c.Register(&securityCmd{}, "session")

	c.Register(&balanceCmd{}, "cash")
	c.Register(&depositCmd{}, "cash")
	c.Register(&withdrawCmd{}, "cash")
	c.Register(&payCmd{}, "cash")
	c.Register(&txCmd{}, "cash")

	c.Register(&recurringCmd{}, "recurring payments")
	c.Register(newRecurringToggleCmd(), "recurring payments")
	c.Register(newRecurringDeleteCmd(), "recurring payments")

	c.Register(&quoteCmd{}, "crypto")
	c.Register(&tradeCmd{buy: true}, "crypto")
	c.Register(&tradeCmd{}, "crypto")
	c.Register(&sendCmd{}, "crypto")
	c.Register(&holdingsCmd{}, "crypto")
	c.Register(&tradesCmd{}, "crypto")
	c.Register(&watchCmd{}, "crypto")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var envFile = flag.String("env-file", ".env", "Path to an optional .env file")
var dataDir = flag.String("data-dir", "", "Directory holding the wallet data, overrides PURSE_DATA_DIR")
var plain = flag.Bool("plain", false, "Print raw markdown instead of styled output")

// stdout is where commands print their results.
var stdout io.Writer = os.Stdout

// app is everything a command needs to run.
type app struct {
	cfg    *config.Config
	log    *logrus.Logger
	store  *purse.FileStore
	feed   purse.Quoter
	wallet *purse.Wallet
}

// openApp loads the configuration and opens the wallet on the data directory.
func openApp() (*app, error) {
	cfg, err := config.Load(*envFile)
	if err != nil {
		return nil, err
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	log, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		return nil, err
	}
	store, err := purse.NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	var feed purse.Quoter
	if cfg.QuoteURL != "" {
		feed = &purse.HTTPFeed{Client: &http.Client{Timeout: 10 * time.Second}, URL: cfg.QuoteURL, Path: cfg.QuotePath}
		log.WithField("url", cfg.QuoteURL).Debug("using http prices")
	} else {
		feed = purse.NewRandomFeed(uint64(time.Now().UnixNano()))
	}

	w := purse.NewWallet(store, feed, purse.WithLogger(log), purse.WithStrictBills(cfg.StrictBills))
	return &app{cfg: cfg, log: log, store: store, feed: feed, wallet: w}, nil
}

// resume opens the app and the current session.
func resume(ctx context.Context) (*app, *purse.Session, error) {
	a, err := openApp()
	if err != nil {
		return nil, nil, err
	}
	s, err := a.wallet.Resume(ctx)
	if err != nil {
		return nil, nil, err
	}
	return a, s, nil
}

// fail prints err and returns the matching exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	var verr *purse.ValidationError
	if errors.As(err, &verr) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}

// applied reports the outcome of an operation that changed the state: a
// persistence failure is printed but the operation did happen.
func applied(err error) subcommands.ExitStatus {
	var perr *purse.PersistenceError
	if errors.As(err, &perr) {
		fmt.Fprintf(os.Stderr, "Warning: the operation was applied but could not be saved: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// usage prints a usage error about the positional arguments.
func usage(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitUsageError
}

// printMarkdown renders markdown for the terminal, or prints it raw with -plain.
func printMarkdown(md string) {
	if *plain {
		fmt.Fprint(stdout, md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}

// rejected reports whether err means the operation did not happen.
func rejected(err error) bool {
	var perr *purse.PersistenceError
	return err != nil && !errors.As(err, &perr)
}
