package attribution

import (
	"log"

	"github.com/etnz/attribution/date"
)

// Performance holds a ticker's trailing returns as of a reference date.
type Performance struct {
	Ticker  string  `json:"ticker"`
	YTD     Percent `json:"ytd"`
	ThreeM  Percent `json:"threeMonths"`
	SixM    Percent `json:"sixMonths"`
	OneYear Percent `json:"oneYear"`
}

// TrailingPerformance computes a ticker's year-to-date and trailing 3, 6 and
// 12 month returns as of a reference date, with the calculator's usual FX
// policy. A window whose starting price cannot be resolved reports 0.0 for
// that window only: trailing views are informational and should degrade
// rather than abort.
func (c *Calculator) TrailingPerformance(ticker string, asOf date.Date) Performance {
	perf := Performance{Ticker: ticker}

	yearStart := date.New(asOf.Year(), 1, 1)
	perf.YTD = c.softReturn(ticker, date.NewRange(yearStart, asOf))
	perf.ThreeM = c.softReturn(ticker, date.NewRange(asOf.Add(-91), asOf))
	perf.SixM = c.softReturn(ticker, date.NewRange(asOf.Add(-182), asOf))
	perf.OneYear = c.softReturn(ticker, date.NewRange(asOf.Add(-365), asOf))
	return perf
}

func (c *Calculator) softReturn(ticker string, span date.Range) Percent {
	r, err := c.Return(ticker, span)
	if err != nil {
		log.Printf("warning: no %s return over %s: %v", ticker, span, err)
		return 0
	}
	return Percent(r)
}
