package attribution

import (
	"encoding/csv"
	"io"
	"slices"
	"sort"
	"strings"

	"github.com/etnz/attribution/date"
	"github.com/shopspring/decimal"
)

// Holdings is a set of portfolio weight snapshots: per ticker, the
// fractional weight recorded at each checkpoint date. Weights arriving as
// percentages (>= 1.0) are normalized by dividing by 100, exactly once, at
// ingestion.
type Holdings struct {
	weights     map[string]*date.History[float64]
	checkpoints []date.Date
}

// NewHoldings returns an empty holdings set.
func NewHoldings() *Holdings {
	return &Holdings{weights: make(map[string]*date.History[float64])}
}

var oneHundred = decimal.NewFromInt(100)

// normalizeWeight converts a raw weight cell into a fraction. Values >= 1.0
// are treated as percentages and divided by 100; the division is performed
// in decimal so "61.5" normalizes exactly to 0.615.
func normalizeWeight(raw decimal.Decimal) float64 {
	if raw.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		raw = raw.Div(oneHundred)
	}
	return raw.InexactFloat64()
}

// Set records a ticker's weight at a checkpoint date, normalizing
// percentage values. The checkpoint date is registered even for tickers
// seen for the first time.
func (h *Holdings) Set(ticker string, on date.Date, weight float64) {
	h.addCheckpoint(on)
	hist, ok := h.weights[ticker]
	if !ok {
		hist = &date.History[float64]{}
		h.weights[ticker] = hist
	}
	hist.Append(on, normalizeWeight(decimal.NewFromFloat(weight)))
}

func (h *Holdings) addCheckpoint(on date.Date) {
	if slices.Contains(h.checkpoints, on) {
		return
	}
	h.checkpoints = append(h.checkpoints, on)
	sort.Slice(h.checkpoints, func(i, j int) bool { return h.checkpoints[i].Before(h.checkpoints[j]) })
}

// Tickers returns the sorted list of tickers carrying at least one weight.
func (h *Holdings) Tickers() []string {
	tickers := make([]string, 0, len(h.weights))
	for t := range h.weights {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	return tickers
}

// Checkpoints returns the sorted checkpoint dates.
func (h *Holdings) Checkpoints() []date.Date { return slices.Clone(h.checkpoints) }

// WeightAt returns the weight of a ticker at a checkpoint date, or 0.0 when
// the ticker has no recorded weight there. Each checkpoint's weights are
// authoritative only for that checkpoint: there is no carry-forward.
func (h *Holdings) WeightAt(ticker string, on date.Date) float64 {
	hist, ok := h.weights[ticker]
	if !ok {
		return 0.0
	}
	w, _ := hist.Get(on)
	return w
}

// Periods derives the N-1 contiguous periods between the N sorted
// checkpoint dates. Each period's start is the previous period's end, so
// the periods partition [first, last] with no gaps or overlaps.
func (h *Holdings) Periods() ([]date.Range, error) {
	if len(h.checkpoints) < 2 {
		return nil, invalidInput("need at least 2 checkpoint dates, got %d", len(h.checkpoints))
	}
	periods := make([]date.Range, 0, len(h.checkpoints)-1)
	for i := 0; i < len(h.checkpoints)-1; i++ {
		periods = append(periods, date.NewRange(h.checkpoints[i], h.checkpoints[i+1]))
	}
	return periods, nil
}

// ReadHoldingsCSV ingests a holdings snapshot file. The first column must
// be "Ticker"; every other column header is a day-first checkpoint date
// (e.g. "31/01/2024"). Cells hold weights as fractions (< 1.0) or
// percentages (>= 1.0, with or without a % sign); empty cells are skipped.
// Malformed dates or weights fail immediately with ErrInvalidInput, before
// any price resolution is attempted.
func ReadHoldingsCSV(r io.Reader) (*Holdings, error) {
	header, records, err := readSnapshotCSV(r)
	if err != nil {
		return nil, err
	}

	h := NewHoldings()
	dates, err := parseCheckpointHeader(header)
	if err != nil {
		return nil, err
	}
	for _, on := range dates {
		h.addCheckpoint(on)
	}

	for line, record := range records {
		ticker := strings.TrimSpace(record[0])
		if ticker == "" {
			return nil, invalidInput("line %d: empty ticker", line+2)
		}
		for i, cell := range record[1:] {
			cell = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(cell), "%"))
			if cell == "" {
				continue
			}
			raw, err := decimal.NewFromString(cell)
			if err != nil {
				return nil, invalidInput("line %d: weight %q for %s is not a number: %v", line+2, cell, ticker, err)
			}
			hist, ok := h.weights[ticker]
			if !ok {
				hist = &date.History[float64]{}
				h.weights[ticker] = hist
			}
			hist.Append(dates[i], normalizeWeight(raw))
		}
		if _, ok := h.weights[ticker]; !ok {
			// A ticker row with only empty cells still belongs to the portfolio.
			h.weights[ticker] = &date.History[float64]{}
		}
	}
	return h, nil
}

// parseCheckpointHeader parses and validates the date columns of a
// snapshot file header.
func parseCheckpointHeader(header []string) ([]date.Date, error) {
	dates := make([]date.Date, 0, len(header)-1)
	for _, col := range header[1:] {
		on, err := date.ParseDayFirst(strings.TrimSpace(col))
		if err != nil {
			return nil, invalidInput("column %q: %v", col, err)
		}
		if slices.Contains(dates, on) {
			return nil, invalidInput("duplicate checkpoint date %s", on)
		}
		dates = append(dates, on)
	}
	return dates, nil
}

// readSnapshotCSV reads and structurally validates a snapshot-shaped CSV
// file (holdings or NAV): a "Ticker" first column and at least one date column.
func readSnapshotCSV(r io.Reader) (header []string, records [][]string, err error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, invalidInput("malformed CSV: %v", err)
	}
	if len(rows) == 0 {
		return nil, nil, invalidInput("empty file")
	}
	header = rows[0]
	if len(header) < 2 {
		return nil, nil, invalidInput("want a Ticker column and at least one date column, got %d columns", len(header))
	}
	if !strings.EqualFold(strings.TrimSpace(header[0]), "Ticker") {
		return nil, nil, invalidInput("first column must be %q, got %q", "Ticker", header[0])
	}
	for i, row := range rows[1:] {
		if len(row) != len(header) {
			return nil, nil, invalidInput("line %d: %d cells, want %d", i+2, len(row), len(header))
		}
	}
	return header, rows[1:], nil
}
