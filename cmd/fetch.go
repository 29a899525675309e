package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/attribution"
	"github.com/google/subcommands"
)

type fetchCmd struct{}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "prefetch and cache every price the analysis needs" }
func (*fetchCmd) Usage() string {
	return `rca fetch [-weights <file>] [-nav <file>] [-cache-file <file>]

  Resolves the price of every holding, benchmark and the FX pair at every
  checkpoint date, and persists them to the cache file. A later analyze
  run then works offline. Tickers with no price available are reported
  but do not stop the fetch.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	weights, err := os.Open(*weightsFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot open weights file %q: %v\n", *weightsFile, err)
		return subcommands.ExitFailure
	}
	defer weights.Close()
	holdings, err := attribution.ReadHoldingsCSV(weights)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	nav := attribution.NewOverrides()
	if *navFile != "" {
		navF, err := os.Open(*navFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot open NAV file %q: %v\n", *navFile, err)
			return subcommands.ExitFailure
		}
		defer navF.Close()
		if nav, err = attribution.ReadOverridesCSV(navF); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	source, err := newSource()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	cache := attribution.LoadPriceCache(*cacheFile)
	resolver := attribution.NewResolver(cache, source)
	resolver.Overrides = nav
	classes := attribution.NewClassifier().Classify(holdings, nav)

	// Everything the analysis will look up: holdings, FX pair, benchmarks.
	tickers := make([]string, 0, len(holdings.Tickers())+8)
	for _, ticker := range holdings.Tickers() {
		if classes[ticker] == attribution.Cash {
			continue
		}
		tickers = append(tickers, ticker)
	}
	tickers = append(tickers, attribution.DefaultFXTicker)
	for _, b := range attribution.DefaultBenchmarks() {
		tickers = append(tickers, b.Ticker)
	}

	missing := 0
	for _, ticker := range tickers {
		for _, on := range holdings.Checkpoints() {
			if _, err := resolver.Resolve(ticker, on); err != nil {
				var unavailable *attribution.PriceUnavailableError
				if errors.As(err, &unavailable) {
					fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
					missing++
					continue
				}
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				return subcommands.ExitFailure
			}
		}
	}

	if err := cache.Save(*cacheFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving cache: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Cached %d prices to %s (%d unavailable)\n", cache.Len(), *cacheFile, missing)
	return subcommands.ExitSuccess
}
