// Package cmd implements the CLI application to compute portfolio
// attribution reports.
package cmd

import (
	"flag"
	"fmt"

	"github.com/etnz/attribution"
	"github.com/etnz/attribution/eodhd"
	"github.com/etnz/attribution/yahoo"
	"github.com/google/subcommands"
)

// Commands lists the subcommands.
// A main package will register each of them and Execute() the user-selected one.
var Commands = []subcommands.Command{
	&analyzeCmd{},
	&monthlyCmd{},
	&quarterlyCmd{},
	&topCmd{},
	&benchmarksCmd{},
	&perfCmd{},
	&fetchCmd{},
	&serveCmd{},
	&assistCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var weightsFile = flag.String("weights", "weights.csv", "Path to the holdings snapshot file (CSV with a Ticker column and day-first date columns)")
var navFile = flag.String("nav", "", "Path to the NAV override file (same shape as the weights file, cells hold prices)")
var cacheFile = flag.String("cache-file", "prices.jsonl", "Path to the price cache file (JSONL format)")
var sourceName = flag.String("source", "yahoo", "Price source to use: yahoo or eodhd")
var eodhdAPIKey = flag.String("eodhd-api-key", "", "EODHD API key for -source eodhd.\n If missing it will read the environment variable \"EODHD_API_KEY\". You can get one at https://eodhd.com/")
var benchmarksFile = flag.String("benchmarks", "", "Path to a YAML benchmark registry replacing the default one")

// newSource builds the configured price source.
func newSource() (attribution.Source, error) {
	switch *sourceName {
	case "yahoo":
		return &yahoo.Client{}, nil
	case "eodhd":
		return eodhd.NewClient(*eodhdAPIKey)
	default:
		return nil, fmt.Errorf("unknown source %q, want yahoo or eodhd", *sourceName)
	}
}

// runAnalysis runs the full attribution over the app's shared flags.
func runAnalysis() (*attribution.Report, error) {
	source, err := newSource()
	if err != nil {
		return nil, err
	}
	req := attribution.Request{
		WeightsPath: *weightsFile,
		NAVPath:     *navFile,
		CachePath:   *cacheFile,
		Source:      source,
	}
	if *benchmarksFile != "" {
		if req.Benchmarks, err = attribution.LoadBenchmarks(*benchmarksFile); err != nil {
			return nil, err
		}
	}
	return attribution.Run(req)
}
