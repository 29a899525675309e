package attribution

import (
	"fmt"

	"github.com/etnz/attribution/date"
)

// DefaultLookback is the size in calendar days of the price resolution
// window. It balances tolerance for weekend/holiday clusters against the
// risk of returning a price many trading days removed from the requested
// date; the nearest available price within the window is always accepted.
const DefaultLookback = 10

// Resolver resolves a closing price for a ticker on a date: NAV overrides
// first, then the cache, then a fetch-and-cache fallback to the external
// source. A request for a non-trading day silently resolves to the close
// of the latest trading day within the lookback window, cached under the
// requested date.
type Resolver struct {
	Cache     *PriceCache
	Source    Source
	Overrides *Overrides
	Lookback  int // calendar days, DefaultLookback if zero
}

// NewResolver returns a resolver over the given cache and source, with no
// NAV overrides and the default lookback window.
func NewResolver(cache *PriceCache, source Source) *Resolver {
	return &Resolver{Cache: cache, Source: source, Lookback: DefaultLookback}
}

// Resolve returns the price of a ticker on a date, or a
// *PriceUnavailableError when no price can be found anywhere in the
// resolution window.
func (r *Resolver) Resolve(ticker string, on date.Date) (float64, error) {
	if price, ok := r.Overrides.Get(ticker, on); ok {
		return price, nil
	}
	if price, ok := r.Cache.Get(ticker, on); ok {
		return price, nil
	}

	lookback := r.Lookback
	if lookback <= 0 {
		lookback = DefaultLookback
	}
	hist, err := r.Source.Daily(ticker, on.Add(-lookback), on)
	if err != nil {
		return 0, fmt.Errorf("fetching %s for %s: %w", ticker, on, err)
	}
	if hist.Len() == 0 {
		return 0, &PriceUnavailableError{Ticker: ticker, On: on}
	}

	// Latest trading day in the window, cached under the requested date.
	_, price := hist.Latest()
	r.Cache.Put(ticker, on, price)
	return price, nil
}
