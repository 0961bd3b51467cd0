package cmd

import (
	"flag"

	"github.com/etnz/purse"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// argsPredictor is implemented by commands that can predict their positional arguments.
type argsPredictor interface {
	PredictArgs() complete.Predictor
}

// Completion describes the commands registered in c for shell completion.
func Completion(c *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: make(map[string]complete.Predictor),
	}
	c.VisitAll(func(f *flag.Flag) { root.Flags[f.Name] = predictFlag(f) })
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		sub := &complete.Command{Flags: make(map[string]complete.Predictor)}
		fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(fs)
		fs.VisitAll(func(f *flag.Flag) { sub.Flags[f.Name] = predictFlag(f) })
		if p, ok := cmd.(argsPredictor); ok {
			sub.Args = p.PredictArgs()
		}
		root.Sub[cmd.Name()] = sub
	})
	return root
}

func predictFlag(f *flag.Flag) complete.Predictor {
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return predict.Nothing
	}
	switch f.Name {
	case "every":
		return predict.Set{string(purse.Daily), string(purse.Weekly), string(purse.Monthly)}
	case "country":
		countries := make(predict.Set, 0, len(purse.Countries))
		for _, c := range purse.Countries {
			countries = append(countries, string(c))
		}
		return countries
	case "data-dir":
		return predict.Dirs("*")
	case "env-file":
		return predict.Files("*")
	default:
		return predict.Something
	}
}

// assets predicts asset symbols.
func assets() complete.Predictor {
	symbols := make(predict.Set, 0, len(purse.Assets))
	for _, a := range purse.Assets {
		symbols = append(symbols, a.Symbol)
	}
	return symbols
}

func (*tradeCmd) PredictArgs() complete.Predictor { return assets() }
func (*sendCmd) PredictArgs() complete.Predictor  { return assets() }
func (*quoteCmd) PredictArgs() complete.Predictor { return assets() }
func (*watchCmd) PredictArgs() complete.Predictor { return assets() }
