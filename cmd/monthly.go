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

type monthlyCmd struct{}

func (*monthlyCmd) Name() string     { return "monthly" }
func (*monthlyCmd) Synopsis() string { return "display the monthly attribution rollups" }
func (*monthlyCmd) Usage() string {
	return `rca monthly [-weights <file>] [-nav <file>]

  Displays the calendar-month rollups with their top contributor and
  disruptor buckets.
`
}

func (c *monthlyCmd) SetFlags(f *flag.FlagSet) {}

func (c *monthlyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := runAnalysis()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	var b strings.Builder
	renderer.RenderMonthly(&b, report)
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
