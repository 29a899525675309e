package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/attribution/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion: install with COMP_INSTALL=1 rca.
	sub := make(map[string]*complete.Command)
	for _, c := range cmd.Commands {
		sub[c.Name()] = &complete.Command{}
	}
	completer := &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"weights":    predict.Files("*.csv"),
			"nav":        predict.Files("*.csv"),
			"cache-file": predict.Files("*.jsonl"),
			"benchmarks": predict.Files("*.yaml"),
			"source":     predict.Set{"yahoo", "eodhd"},
		},
	}
	completer.Complete("rca")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
