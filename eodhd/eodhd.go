// Package eodhd fetches daily closing prices from the EODHD.com API.
//
// Holdings files use Yahoo-style symbols (AAPL, SHOP.TO, ^GSPC, CAD=X);
// this package translates them to EODHD's own symbology before fetching.
package eodhd

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/etnz/attribution/date"
)

const apiKeyEnv = "EODHD_API_KEY"

// Client fetches daily prices from EODHD.com. It implements the price
// source interface of the attribution engine.
type Client struct {
	apiKey string
	http   *http.Client // lazily set to a daily-caching client
}

// NewClient returns a client with the given API key, or the EODHD_API_KEY
// environment variable when the key is empty.
func NewClient(apiKey string) (*Client, error) {
	if apiKey == "" {
		apiKey = os.Getenv(apiKeyEnv)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("missing EODHD API key: pass -eodhd-api-key or set %s. You can get one at https://eodhd.com/", apiKeyEnv)
	}
	return &Client{apiKey: apiKey}, nil
}

// Daily returns the adjusted daily closes of a Yahoo-style symbol over
// [from, to] inclusive. An empty history means EODHD has no data for that
// window.
func (c *Client) Daily(ticker string, from, to date.Date) (date.History[float64], error) {
	if base, quote, ok := splitFXPair(ticker); ok {
		return c.dailyForex(base, quote, from, to)
	}
	_, close, err := c.daily(symbol(ticker), from, to)
	return close, err
}

// symbol translates a Yahoo-style symbol into EODHD's symbology: indices
// use the INDX virtual exchange, exchange-suffixed symbols pass through,
// and bare symbols default to the US exchange group.
func symbol(ticker string) string {
	if strings.HasPrefix(ticker, "^") {
		return strings.TrimPrefix(ticker, "^") + ".INDX"
	}
	if strings.Contains(ticker, ".") {
		return ticker
	}
	return ticker + ".US"
}

// splitFXPair recognizes Yahoo FX symbols: "CAD=X" is USD/CAD,
// "EURCAD=X" is EUR/CAD.
func splitFXPair(ticker string) (base, quote string, ok bool) {
	pair, found := strings.CutSuffix(ticker, "=X")
	if !found {
		return "", "", false
	}
	switch len(pair) {
	case 3:
		return "USD", pair, true
	case 6:
		return pair[:3], pair[3:], true
	}
	return "", "", false
}

// dailyForex returns the daily rates for a currency pair.
func (c *Client) dailyForex(base, quote string, from, to date.Date) (date.History[float64], error) {
	// The ticker for forex is in the format "baseQuote.FOREX".
	ticker := fmt.Sprintf("%s%s.FOREX", base, quote)
	open, _, err := c.daily(ticker, from.Add(1), to.Add(1))
	if err != nil {
		return date.History[float64]{}, err
	}
	// eodhd forex sucks, the so called close value is probably buggy and equal to the open most of the time.
	// Instead the open of the next day is the closer to the truth, so be it.
	var close date.History[float64]
	for t, v := range open.Values() {
		close.Append(t.Add(-1), v)
	}
	return close, nil
}

// daily returns the daily open and close prices of an EODHD symbol,
// adjusted for splits.
func (c *Client) daily(symbol string, from, to date.Date) (open, close date.History[float64], err error) {
	// https://eodhd.com/api/eod/NVD.F?api_token=demo&fmt=json
	// [
	//
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"high": 684.219,
	//		"low": 648.659,
	//		"close": 668.445,
	//		"adjusted_close": 67.705,
	//		"volume": 0
	//	  },

	// nota bene: the api also supports from and to – the format is ‘YYYY-MM-DD’.
	// Bounds are included in the response.

	addr := fmt.Sprintf("https://eodhd.com/api/eod/%s?fmt=json&api_token=%s&from=%s&to=%s", symbol, c.apiKey, from, to)
	type Info struct {
		Date  date.Date `json:"date"`
		Close float64   `json:"adjusted_close"`
		Open  float64   `json:"open"`
	}

	// that's the payload
	content := make([]Info, 0)
	if err := c.getJSON(addr, &content); err != nil {
		return open, close, err
	}

	for _, info := range content {
		close.Append(info.Date, info.Close)
		open.Append(info.Date, info.Open)
	}
	return
}
