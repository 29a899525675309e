package renderer

import (
	"fmt"
	"io"

	"github.com/etnz/attribution"
)

// RenderMonthly prints one section per monthly window: the per-ticker
// rollup table followed by the ranked top buckets.
func RenderMonthly(w io.Writer, report *attribution.Report) {
	if len(report.Monthly) == 0 {
		return
	}
	fmt.Fprintf(w, "## Monthly\n\n")
	for _, wr := range report.Monthly {
		renderWindow(w, wr)
	}
}

// RenderQuarterly prints one section per quarter.
func RenderQuarterly(w io.Writer, report *attribution.Report) {
	if len(report.Quarterly) == 0 {
		return
	}
	fmt.Fprintf(w, "## Quarterly\n\n")
	for _, wr := range report.Quarterly {
		renderWindow(w, wr)
	}
}

// RenderTop prints only the ranked buckets of one window.
func RenderTop(w io.Writer, wr attribution.WindowReport) {
	fmt.Fprintf(w, "### %s (%s)\n\n", wr.Window.Label, wr.Window.Span)
	renderBuckets(w, wr.Top)
}

func renderWindow(w io.Writer, wr attribution.WindowReport) {
	fmt.Fprintf(w, "### %s (%s)\n\n", wr.Window.Label, wr.Window.Span)

	fmt.Fprintln(w, "| Ticker | Weight | Return | Contribution |")
	fmt.Fprintln(w, "|:---|---:|---:|---:|")
	for _, agg := range wr.Aggregates {
		printAggregate(w, agg, false)
	}
	fmt.Fprintln(w, "")

	renderBuckets(w, wr.Top)
}

// renderBuckets prints the contributors and disruptors with the Other
// Holdings rollup and the Total Portfolio cross-check.
func renderBuckets(w io.Writer, top attribution.Buckets) {
	fmt.Fprintln(w, "| | Weight | Return | Contribution |")
	fmt.Fprintln(w, "|:---|---:|---:|---:|")
	fmt.Fprintln(w, "| **Top Contributors** | | | |")
	for _, agg := range top.Contributors {
		printAggregate(w, agg, false)
	}
	fmt.Fprintln(w, "| **Top Disruptors** | | | |")
	for _, agg := range top.Disruptors {
		printAggregate(w, agg, false)
	}
	printAggregate(w, top.Other, false)
	printAggregate(w, top.Total, true)
	fmt.Fprintln(w, "")
}

func printAggregate(w io.Writer, agg attribution.Aggregate, bold bool) {
	name := agg.Ticker
	if bold {
		name = "**" + name + "**"
	}
	fmt.Fprintf(w, "| %s | %s | %s | %s |\n",
		name,
		attribution.Percent(agg.Weight),
		attribution.Percent(agg.Return).SignedString(),
		attribution.Percent(agg.Contribution).SignedString())
}
