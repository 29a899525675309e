package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/attribution"
	"github.com/etnz/attribution/renderer"
	"github.com/google/subcommands"
)

type topCmd struct {
	window string
}

func (*topCmd) Name() string     { return "top" }
func (*topCmd) Synopsis() string { return "display top contributors and disruptors" }
func (*topCmd) Usage() string {
	return `rca top [-window <label>]

  Displays the top 5 contributors, the top 5 disruptors, the Other
  Holdings rollup and the Total Portfolio line for one window.
  Without -window, shows the latest month.

Usage Examples:
# Latest month.
$ rca top

# A specific month or quarter.
$ rca top -window March
$ rca top -window "Q1 2024"

`
}

func (c *topCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.window, "window", "", "Window label to display (month name or \"Q1 2024\"). Latest month by default.")
}

func (c *topCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, err := runAnalysis()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	wr, err := pickWindow(report, c.window)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	var b strings.Builder
	renderer.RenderTop(&b, wr)
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

func pickWindow(report *attribution.Report, label string) (attribution.WindowReport, error) {
	if label == "" {
		if len(report.Monthly) == 0 {
			return attribution.WindowReport{}, fmt.Errorf("no monthly window available")
		}
		return report.Monthly[len(report.Monthly)-1], nil
	}
	for _, wr := range report.Monthly {
		if strings.EqualFold(wr.Window.Label, label) {
			return wr, nil
		}
	}
	for _, wr := range report.Quarterly {
		if strings.EqualFold(wr.Window.Label, label) {
			return wr, nil
		}
	}
	return attribution.WindowReport{}, fmt.Errorf("no window labeled %q", label)
}
