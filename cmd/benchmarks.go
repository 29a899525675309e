package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/attribution/renderer"
	"github.com/google/subcommands"
)

type benchmarksCmd struct{}

func (*benchmarksCmd) Name() string     { return "benchmarks" }
func (*benchmarksCmd) Synopsis() string { return "display benchmark returns over the same periods" }
func (*benchmarksCmd) Usage() string {
	return `rca benchmarks [-benchmarks <file>]

  Displays the return of every registered benchmark over the portfolio's
  periods. Benchmark returns are raw price ratios in the index's own
  currency, never FX-adjusted.
`
}

func (c *benchmarksCmd) SetFlags(f *flag.FlagSet) {}

func (c *benchmarksCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := runAnalysis()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	var b strings.Builder
	renderer.RenderBenchmarks(&b, report)
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
