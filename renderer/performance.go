package renderer

import (
	"fmt"
	"io"

	"github.com/etnz/attribution"
	"github.com/etnz/attribution/date"
)

// RenderPerformance prints trailing returns, one row per ticker.
func RenderPerformance(w io.Writer, asOf date.Date, perfs []attribution.Performance) {
	fmt.Fprintf(w, "# Trailing Performance on %s\n\n", asOf)
	fmt.Fprintln(w, "| Ticker | YTD | 3M | 6M | 1Y |")
	fmt.Fprintln(w, "|:---|---:|---:|---:|---:|")
	for _, p := range perfs {
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s |\n",
			p.Ticker,
			p.YTD.SignedString(),
			p.ThreeM.SignedString(),
			p.SixM.SignedString(),
			p.OneYear.SignedString())
	}
	fmt.Fprintln(w, "")
}
