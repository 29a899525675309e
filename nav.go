package attribution

import (
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/etnz/attribution/date"
)

// Overrides holds authoritative NAV prices for fund instruments. When a
// ticker carries an override for a date, that price is used instead of a
// fetched market quote, and no currency adjustment is applied.
type Overrides struct {
	prices map[string]*date.History[float64]
}

// NewOverrides returns an empty override set.
func NewOverrides() *Overrides {
	return &Overrides{prices: make(map[string]*date.History[float64])}
}

// Set records a NAV price for a ticker on a date.
func (o *Overrides) Set(ticker string, on date.Date, price float64) {
	hist, ok := o.prices[ticker]
	if !ok {
		hist = &date.History[float64]{}
		o.prices[ticker] = hist
	}
	hist.Append(on, price)
}

// Has reports whether the ticker carries any NAV overrides.
func (o *Overrides) Has(ticker string) bool {
	if o == nil {
		return false
	}
	_, ok := o.prices[ticker]
	return ok
}

// Get returns the NAV price for (ticker, date) if one exists.
func (o *Overrides) Get(ticker string, on date.Date) (float64, bool) {
	if o == nil {
		return 0, false
	}
	hist, ok := o.prices[ticker]
	if !ok {
		return 0, false
	}
	return hist.Get(on)
}

// Tickers returns the sorted list of tickers carrying overrides.
func (o *Overrides) Tickers() []string {
	if o == nil {
		return nil
	}
	tickers := make([]string, 0, len(o.prices))
	for t := range o.prices {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	return tickers
}

// ReadOverridesCSV ingests a NAV file. It shares the holdings file shape (a
// "Ticker" column plus day-first date columns) but cells hold prices, so no
// percentage normalization is applied. Empty cells are skipped.
func ReadOverridesCSV(r io.Reader) (*Overrides, error) {
	header, records, err := readSnapshotCSV(r)
	if err != nil {
		return nil, err
	}
	dates, err := parseCheckpointHeader(header)
	if err != nil {
		return nil, err
	}

	o := NewOverrides()
	for line, record := range records {
		ticker := strings.TrimSpace(record[0])
		if ticker == "" {
			return nil, invalidInput("line %d: empty ticker", line+2)
		}
		for i, cell := range record[1:] {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			price, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, invalidInput("line %d: NAV %q for %s is not a number: %v", line+2, cell, ticker, err)
			}
			if price <= 0 {
				return nil, invalidInput("line %d: NAV %v for %s is not positive", line+2, price, ticker)
			}
			o.Set(ticker, dates[i], price)
		}
	}
	return o, nil
}
