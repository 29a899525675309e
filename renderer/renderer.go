// Package renderer formats attribution reports as markdown tables and CSV
// files. It never recomputes anything: every number comes straight from
// the report.
package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/attribution"
)

// RenderAnalysis renders the full attribution report to a markdown string:
// the per-period table, the monthly and quarterly rollups with their top
// buckets, the benchmark table and the resolved price appendix.
func RenderAnalysis(report *attribution.Report) string {
	var b strings.Builder
	renderTitle(&b, report)
	renderPeriods(&b, report)
	RenderMonthly(&b, report)
	RenderQuarterly(&b, report)
	RenderBenchmarks(&b, report)
	renderPrices(&b, report)
	return b.String()
}

func renderTitle(w io.Writer, report *attribution.Report) {
	fmt.Fprintf(w, "# Portfolio Attribution %s\n\n", report.Span)
	fmt.Fprintf(w, "*%d holdings over %d periods, reporting in %s*\n\n", len(report.Rows), len(report.Periods), report.Base)
}

// renderPeriods prints the per-ticker, per-period attribution table: one
// column group per period plus the YTD columns, sorted by YTD contribution.
func renderPeriods(w io.Writer, report *attribution.Report) {
	fmt.Fprintf(w, "## Periods\n\n")

	// Header
	fmt.Fprint(w, "| Ticker |")
	for _, p := range report.Periods {
		fmt.Fprintf(w, " %s w | %s r | %s c |", p.To, p.To, p.To)
	}
	fmt.Fprintln(w, " YTD r | YTD c |")

	// Separator
	fmt.Fprint(w, "|:---|")
	for range report.Periods {
		fmt.Fprint(w, "---:|---:|---:|")
	}
	fmt.Fprintln(w, "---:|---:|")

	// Rows
	for _, row := range report.Rows {
		fmt.Fprintf(w, "| %s ", row.Ticker)
		for _, cell := range row.Cells {
			fmt.Fprintf(w, "| %s | %s | %s ",
				attribution.Percent(cell.Weight),
				attribution.Percent(cell.Return).SignedString(),
				attribution.Percent(cell.Contribution).SignedString())
		}
		fmt.Fprintf(w, "| %s | %s |\n",
			attribution.Percent(row.YTDReturn).SignedString(),
			attribution.Percent(row.YTDContribution).SignedString())
	}
	fmt.Fprintln(w, "")
}

// RenderBenchmarks prints one row per benchmark, one column per period, in
// registry order.
func RenderBenchmarks(w io.Writer, report *attribution.Report) {
	if len(report.Benchmarks) == 0 {
		return
	}
	fmt.Fprintf(w, "## Benchmarks\n\n")

	fmt.Fprint(w, "| Benchmark |")
	for _, p := range report.Periods {
		fmt.Fprintf(w, " %s |", p.To)
	}
	fmt.Fprintln(w, "")

	fmt.Fprint(w, "|:---|")
	for range report.Periods {
		fmt.Fprint(w, "---:|")
	}
	fmt.Fprintln(w, "")

	for _, bench := range report.Benchmarks {
		fmt.Fprintf(w, "| %s ", bench.Name)
		for _, p := range report.Periods {
			fmt.Fprintf(w, "| %s ", attribution.Percent(report.BenchRows[bench.Name][p]).SignedString())
		}
		fmt.Fprintln(w, "|")
	}
	fmt.Fprintln(w, "")
}

// renderPrices prints the resolved checkpoint prices, each in the currency
// the instrument is quoted in.
func renderPrices(w io.Writer, report *attribution.Report) {
	ConditionalBlock(w, func(w io.Writer) bool {
		fmt.Fprintf(w, "## Prices\n\n")

		fmt.Fprint(w, "| Ticker |")
		checkpoints := report.Checkpoints()
		for _, on := range checkpoints {
			fmt.Fprintf(w, " %s |", on)
		}
		fmt.Fprintln(w, "")
		fmt.Fprint(w, "|:---|")
		for range checkpoints {
			fmt.Fprint(w, "---:|")
		}
		fmt.Fprintln(w, "")

		printed := false
		for _, row := range report.Rows {
			prices, ok := report.Prices[row.Ticker]
			if !ok {
				continue
			}
			printed = true
			fmt.Fprintf(w, "| %s ", row.Ticker)
			for _, on := range checkpoints {
				price, ok := prices[on]
				if !ok {
					fmt.Fprint(w, "| - ")
					continue
				}
				fmt.Fprintf(w, "| %s ", attribution.M(price, report.Quoted[row.Ticker]))
			}
			fmt.Fprintln(w, "|")
		}
		fmt.Fprintln(w, "")
		return printed
	})
}
