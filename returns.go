package attribution

import (
	"github.com/etnz/attribution/date"
)

// ReturnSet holds the fractional return of every ticker over every period.
type ReturnSet map[string]map[date.Range]float64

// Get returns the recorded return for (ticker, period), or 0.0.
func (rs ReturnSet) Get(ticker string, period date.Range) float64 {
	return rs[ticker][period]
}

// Calculator computes FX-adjusted period returns from resolved prices.
//
// The currency-adjustment policy is driven by the ticker classification
// resolved at ingestion: NAV-priced and domestic instruments use the raw
// price-ratio return; foreign instruments compound it with the base FX
// pair return over the same period.
type Calculator struct {
	resolver *Resolver
	classes  map[string]Class
	fxTicker string
}

// NewCalculator returns a calculator over the given resolver and ticker
// classification. fxTicker is the base-currency FX pair (e.g. "CAD=X").
func NewCalculator(resolver *Resolver, classes map[string]Class, fxTicker string) *Calculator {
	return &Calculator{resolver: resolver, classes: classes, fxTicker: fxTicker}
}

// rawReturn is the simple price-ratio return of a ticker over a range.
func (c *Calculator) rawReturn(ticker string, period date.Range) (float64, error) {
	start, err := c.resolver.Resolve(ticker, period.From)
	if err != nil {
		return 0, err
	}
	end, err := c.resolver.Resolve(ticker, period.To)
	if err != nil {
		return 0, err
	}
	return end/start - 1, nil
}

// fxReturn is the return of the base FX pair over a range.
func (c *Calculator) fxReturn(period date.Range) (float64, error) {
	return c.rawReturn(c.fxTicker, period)
}

// Return computes the (possibly FX-adjusted) return of a ticker over one
// period. Cash is always exactly 0.0 and performs no price lookup. Missing
// price data is a hard failure: there is no default and no skip.
func (c *Calculator) Return(ticker string, period date.Range) (float64, error) {
	class := c.classes[ticker]
	if class == Cash {
		return 0.0, nil
	}
	raw, err := c.rawReturn(ticker, period)
	if err != nil {
		return 0, err
	}
	if class == NAVPriced || class == Domestic {
		return raw, nil
	}
	fx, err := c.fxReturn(period)
	if err != nil {
		return 0, err
	}
	if fx == 0 {
		// compounding would re-round the raw return
		return raw, nil
	}
	return (1+raw)*(1+fx) - 1, nil
}

// Returns computes the full per-ticker, per-period return table.
func (c *Calculator) Returns(tickers []string, periods []date.Range) (ReturnSet, error) {
	rs := make(ReturnSet, len(tickers))
	for _, ticker := range tickers {
		rs[ticker] = make(map[date.Range]float64, len(periods))
		for _, period := range periods {
			r, err := c.Return(ticker, period)
			if err != nil {
				return nil, err
			}
			rs[ticker][period] = r
		}
	}
	return rs, nil
}

// YTDReturn computes the year-to-date return of a ticker as a direct
// first-to-last price ratio over the whole checkpoint span, with the same
// FX policy as period returns. It is deliberately not the compounded
// product of period returns: the direct ratio avoids compounding error
// accumulation, at the cost of diverging from the period table when
// NAV/market sourcing differs across sub-periods.
func (c *Calculator) YTDReturn(ticker string, span date.Range) (float64, error) {
	return c.Return(ticker, span)
}
