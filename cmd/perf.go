package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/attribution"
	"github.com/etnz/attribution/date"
	"github.com/etnz/attribution/renderer"
	"github.com/google/subcommands"
)

type perfCmd struct {
	date string
}

func (*perfCmd) Name() string     { return "perf" }
func (*perfCmd) Synopsis() string { return "display trailing YTD/3M/6M/1Y returns per holding" }
func (*perfCmd) Usage() string {
	return `rca perf [-d <date>] [ticker...]

  Displays trailing returns for each holding (or only the given tickers)
  as of a reference date. A window with no resolvable start price shows
  as zero instead of failing the whole table.

Usage Examples:
# All holdings as of today.
$ rca perf

# Two tickers as of a past date.
$ rca perf -d 2024-06-28 AAPL SHOP.TO

`
}

func (c *perfCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Reference date for the trailing windows (defaults to today)")
}

func (c *perfCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	asOf := date.Today()
	if c.date != "" {
		var err error
		if asOf, err = date.Parse(c.date); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	calc, holdings, err := newCalculator()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	tickers := f.Args()
	if len(tickers) == 0 {
		tickers = holdings.Tickers()
	}

	perfs := make([]attribution.Performance, 0, len(tickers))
	for _, ticker := range tickers {
		perfs = append(perfs, calc.TrailingPerformance(ticker, asOf))
	}

	var b strings.Builder
	renderer.RenderPerformance(&b, asOf, perfs)
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

// newCalculator assembles a return calculator over the app's shared flags,
// for commands that need returns without a full attribution run.
func newCalculator() (*attribution.Calculator, *attribution.Holdings, error) {
	weights, err := os.Open(*weightsFile)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open weights file %q: %w", *weightsFile, err)
	}
	defer weights.Close()
	holdings, err := attribution.ReadHoldingsCSV(weights)
	if err != nil {
		return nil, nil, err
	}

	nav := attribution.NewOverrides()
	if *navFile != "" {
		navF, err := os.Open(*navFile)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open NAV file %q: %w", *navFile, err)
		}
		defer navF.Close()
		if nav, err = attribution.ReadOverridesCSV(navF); err != nil {
			return nil, nil, err
		}
	}

	source, err := newSource()
	if err != nil {
		return nil, nil, err
	}

	resolver := attribution.NewResolver(attribution.LoadPriceCache(*cacheFile), source)
	resolver.Overrides = nav
	classes := attribution.NewClassifier().Classify(holdings, nav)
	return attribution.NewCalculator(resolver, classes, attribution.DefaultFXTicker), holdings, nil
}
