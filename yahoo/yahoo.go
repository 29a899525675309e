// Package yahoo fetches daily closing prices from the Yahoo Finance chart
// API. It needs no API key, which makes it the default source: holdings
// files already use Yahoo symbology, so symbols pass through untranslated.
package yahoo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/attribution/date"
)

// Client fetches daily prices from Yahoo Finance. The zero value is usable.
type Client struct {
	// HTTP is the client used for requests, http.DefaultClient when nil.
	HTTP *http.Client
}

// Daily returns the adjusted daily closes of a symbol over [from, to]
// inclusive. An empty history means Yahoo has no data for that window.
func (c *Client) Daily(ticker string, from, to date.Date) (date.History[float64], error) {
	var prices date.History[float64]

	addr := fmt.Sprintf(
		"https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1d&period1=%d&period2=%d&events=div%%2Csplit",
		url.PathEscape(ticker), epoch(from), epoch(to.Add(1)))

	var jobj any
	if err := c.jwget(addr, &jobj); err != nil {
		return prices, fmt.Errorf("error in wget %q: %w", ticker, err)
	}

	timestamps, err := floats(jobj, "$.chart.result[0].timestamp[*]")
	if err != nil {
		// A known symbol with no bars in the window has no timestamp array.
		return prices, nil
	}
	closes, err := floats(jobj, "$.chart.result[0].indicators.adjclose[0].adjclose[*]")
	if err != nil {
		// Some instruments (FX pairs, indices) carry no adjclose series.
		closes, err = floats(jobj, "$.chart.result[0].indicators.quote[0].close[*]")
		if err != nil {
			return prices, fmt.Errorf("error parsing %q: %w", ticker, err)
		}
	}
	if len(timestamps) != len(closes) {
		return prices, fmt.Errorf("error parsing %q: %d timestamps for %d closes", ticker, len(timestamps), len(closes))
	}

	for i, ts := range timestamps {
		on := date.New(time.Unix(int64(ts), 0).UTC().Date())
		if on.Before(from) || on.After(to) || math.IsNaN(closes[i]) {
			continue
		}
		prices.Append(on, closes[i])
	}
	return prices, nil
}

// epoch is the Unix time of a date's midnight UTC.
func epoch(on date.Date) int64 {
	return time.Date(on.Year(), on.Month(), on.Day(), 0, 0, 0, 0, time.UTC).Unix()
}

// floats evaluates a jsonpath expression expected to yield a list of
// numbers. Null entries (Yahoo emits them for halted bars) come back as
// NaN so positions stay aligned with the timestamp list.
func floats(jobj any, path string) ([]float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("%q %w", path, err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("%q not a list", path)
	}
	vals := make([]float64, 0, len(jlist))
	for _, jv := range jlist {
		if jv == nil {
			vals = append(vals, math.NaN())
			continue
		}
		v, ok := jv.(float64)
		if !ok {
			return nil, fmt.Errorf("%q holds a non float %v", path, jv)
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// jwget performs an HTTP GET request and unmarshals the JSON response into
// the provided data structure. Yahoo rejects the default Go user agent, so
// the request spoofs a browser one.
func (c *Client) jwget(addr string, data any) error {
	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequest(http.MethodGet, addr, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) Gecko/20100101 Firefox/124.0")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("cannot http GET %v/%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	_, err = io.Copy(&buf, resp.Body)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return json.Unmarshal(buf.Bytes(), data)
}
