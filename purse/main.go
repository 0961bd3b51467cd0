// Command purse manages a cash and crypto wallet from the terminal.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/purse/cmd"
	"github.com/google/subcommands"
)

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	// when invoked by the shell for completion, this prints the candidates and exits.
	cmd.Completion(commander).Complete("purse")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
