package cmd

import (
	"flag"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// predictors overrides the prediction of flags by name.
var predictors = map[string]complete.Predictor{
	"action": predict.Set{"buy", "sell", "cash-dividend", "stock-dividend", "capital-injection", "deposit", "withdraw"},
	"config": predict.Files("*.toml"),
	"ledger": predict.Files("*"),
	"o":      predict.Files("*"),
}

// Completion returns the shell completion tree of sbk: global flags, every
// subcommand and its flags.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(flag.CommandLine),
	}
	for _, cmds := range Commands {
		for _, c := range cmds {
			root.Sub[c.Name()] = subCompletion(c)
		}
	}
	return root
}

func subCompletion(c subcommands.Command) *complete.Command {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(fs)
	sub := &complete.Command{Flags: flagPredictors(fs)}
	if c.Name() == "import" {
		sub.Args = predict.Files("*.csv")
	}
	return sub
}

func flagPredictors(fs *flag.FlagSet) map[string]complete.Predictor {
	res := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		switch p, ok := predictors[f.Name]; {
		case ok:
			res[f.Name] = p
		case isBool(f):
			res[f.Name] = predict.Nothing
		default:
			res[f.Name] = predict.Something
		}
	})
	return res
}

// isBool reports whether f is a boolean flag, which takes no value.
func isBool(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}
