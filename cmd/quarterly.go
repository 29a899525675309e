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

type quarterlyCmd struct{}

func (*quarterlyCmd) Name() string     { return "quarterly" }
func (*quarterlyCmd) Synopsis() string { return "display the quarterly attribution rollups" }
func (*quarterlyCmd) Usage() string {
	return `rca quarterly [-weights <file>] [-nav <file>]

  Displays the quarter rollups with their top contributor and disruptor
  buckets. A trailing partial quarter is not displayed.
`
}

func (c *quarterlyCmd) SetFlags(f *flag.FlagSet) {}

func (c *quarterlyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := runAnalysis()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	var b strings.Builder
	renderer.RenderQuarterly(&b, report)
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
