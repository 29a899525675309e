package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/attribution/renderer"
	"github.com/google/subcommands"
)

type analyzeCmd struct {
	csvFile string
}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "compute and display the full attribution report" }
func (*analyzeCmd) Usage() string {
	return `rca analyze [-weights <file>] [-nav <file>] [-csv <file>]

  Computes per-period returns and contributions for every holding, rolls
  them up monthly and quarterly with top contributor/disruptor buckets,
  and displays the full report.

Usage Examples:
# Full report from the default weights.csv.
$ rca analyze

# Also export the period table to a spreadsheet-friendly file.
$ rca analyze -csv report.csv

`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.csvFile, "csv", "", "Also export the period table as CSV to this file")
}

func (c *analyzeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := runAnalysis()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.csvFile != "" {
		out, err := os.Create(c.csvFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.csvFile, err)
			return subcommands.ExitFailure
		}
		defer out.Close()
		if err := renderer.WriteCSV(out, report); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", c.csvFile, err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Exported period table to %s\n", c.csvFile)
	}

	printMarkdown(renderer.RenderAnalysis(report))
	return subcommands.ExitSuccess
}
