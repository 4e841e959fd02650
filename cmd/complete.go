package cmd

import (
	"context"
	"flag"

	"github.com/etnz/fintrack"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors complete flag values by flag name, other flags take
// anything.
var flagPredictors = map[string]complete.Predictor{
	"folder":   predict.Dirs("*"),
	"f":        predict.Files("*"),
	"format":   predict.Set{"grid", "markdown"},
	"kind":     predict.Set(fintrack.KindNames()),
	"sheet":    complete.PredictFunc(predictSheets),
	"v":        predict.Nothing,
	"balance":  predict.Nothing,
	"summary":  predict.Nothing,
	"currency": predict.Set{"EUR", "USD", "GBP", "CHF", "JPY"},
}

// Completion describes commands and their flags for shell completion.
func Completion(commands []subcommands.Command) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command, len(commands)),
		Flags: predictors(flag.CommandLine),
	}
	for _, c := range commands {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		sub := &complete.Command{Flags: predictors(fs)}
		if c.Name() == "topic" {
			sub.Args = complete.PredictFunc(predictTopics)
		}
		root.Sub[c.Name()] = sub
	}
	return root
}

func predictors(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		p, ok := flagPredictors[f.Name]
		if !ok {
			p = predict.Something
		}
		flags[f.Name] = p
	})
	return flags
}

func predictSheets(string) []string {
	book, err := fintrack.Open(context.Background(), folder())
	if err != nil {
		return nil
	}
	return book.Names()
}
