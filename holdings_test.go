package attribution

import (
	"errors"
	"strings"
	"testing"

	"github.com/etnz/attribution/date"
	"github.com/shopspring/decimal"
)

func TestNormalizeWeight(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{in: "61.5", want: 0.615},
		{in: "6.15", want: 0.0615},
		{in: "1", want: 0.01},
		{in: "0.615", want: 0.615},
		{in: "0.9999", want: 0.9999},
		{in: "0", want: 0},
		{in: "100", want: 1},
	}
	for _, tt := range tests {
		raw, err := decimal.NewFromString(tt.in)
		if err != nil {
			t.Fatalf("bad test input %q: %v", tt.in, err)
		}
		if got := normalizeWeight(raw); got != tt.want {
			t.Errorf("normalizeWeight(%s) = %v want %v", tt.in, got, tt.want)
		}
	}
}

const weightsCSV = `Ticker,31/01/2024,29/02/2024,28/03/2024
AAA.TO,50,60,40
BBB,6.15%,6.15,
$CASH$,0.10,0.10,0.10
EMPTY,,,
`

func TestReadHoldingsCSV(t *testing.T) {
	h, err := ReadHoldingsCSV(strings.NewReader(weightsCSV))
	if err != nil {
		t.Fatalf("ReadHoldingsCSV() error = %v", err)
	}

	wantTickers := []string{"$CASH$", "AAA.TO", "BBB", "EMPTY"}
	gotTickers := h.Tickers()
	if len(gotTickers) != len(wantTickers) {
		t.Fatalf("Tickers() = %v want %v", gotTickers, wantTickers)
	}
	for i := range wantTickers {
		if gotTickers[i] != wantTickers[i] {
			t.Errorf("Tickers()[%d] = %q want %q", i, gotTickers[i], wantTickers[i])
		}
	}

	jan := date.MustParse("2024-01-31")
	feb := date.MustParse("2024-02-29")
	mar := date.MustParse("2024-03-28")

	if got := h.WeightAt("AAA.TO", jan); got != 0.5 {
		t.Errorf("WeightAt(AAA.TO, jan) = %v want 0.5", got)
	}
	if got := h.WeightAt("BBB", jan); got != 0.0615 {
		t.Errorf("WeightAt(BBB, jan) = %v want 0.0615", got)
	}
	if got := h.WeightAt("BBB", feb); got != 0.0615 {
		t.Errorf("WeightAt(BBB, feb) = %v want 0.0615", got)
	}
	// Empty cell: no carry-forward from february.
	if got := h.WeightAt("BBB", mar); got != 0.0 {
		t.Errorf("WeightAt(BBB, mar) = %v want 0.0", got)
	}
	if got := h.WeightAt("EMPTY", jan); got != 0.0 {
		t.Errorf("WeightAt(EMPTY, jan) = %v want 0.0", got)
	}
	if got := h.WeightAt("UNKNOWN", jan); got != 0.0 {
		t.Errorf("WeightAt(UNKNOWN, jan) = %v want 0.0", got)
	}
}

func TestPeriods(t *testing.T) {
	h, err := ReadHoldingsCSV(strings.NewReader(weightsCSV))
	if err != nil {
		t.Fatalf("ReadHoldingsCSV() error = %v", err)
	}
	periods, err := h.Periods()
	if err != nil {
		t.Fatalf("Periods() error = %v", err)
	}
	if len(periods) != 2 {
		t.Fatalf("len(Periods()) = %v want 2", len(periods))
	}
	if periods[0].String() != "2024-01-31..2024-02-29" {
		t.Errorf("Periods()[0] = %v want 2024-01-31..2024-02-29", periods[0])
	}
	if periods[1].String() != "2024-02-29..2024-03-28" {
		t.Errorf("Periods()[1] = %v want 2024-02-29..2024-03-28", periods[1])
	}
	// Contiguity: each period starts where the previous one ends.
	if periods[1].From != periods[0].To {
		t.Errorf("periods are not contiguous: %v then %v", periods[0], periods[1])
	}
}

func TestPeriodsNeedTwoCheckpoints(t *testing.T) {
	h := NewHoldings()
	h.Set("AAA.TO", date.MustParse("2024-01-31"), 0.5)
	if _, err := h.Periods(); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("Periods() error = %v, want ErrInvalidInput", err)
	}
}

func TestReadHoldingsCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{name: "empty file", csv: ""},
		{name: "no date column", csv: "Ticker\nAAA.TO\n"},
		{name: "wrong first column", csv: "Symbol,31/01/2024\nAAA.TO,50\n"},
		{name: "bad date header", csv: "Ticker,2024-01-31\nAAA.TO,50\n"},
		{name: "duplicate date", csv: "Ticker,31/01/2024,31/01/2024\nAAA.TO,50,50\n"},
		{name: "bad weight", csv: "Ticker,31/01/2024\nAAA.TO,abc\n"},
		{name: "empty ticker", csv: "Ticker,31/01/2024\n,50\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadHoldingsCSV(strings.NewReader(tt.csv))
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("ReadHoldingsCSV() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestReadOverridesCSV(t *testing.T) {
	nav, err := ReadOverridesCSV(strings.NewReader("Ticker,31/01/2024,29/02/2024\nFUND,25.10,\nOTHER,,12.5\n"))
	if err != nil {
		t.Fatalf("ReadOverridesCSV() error = %v", err)
	}
	// NAV prices are never normalized, 25.10 stays 25.10.
	if got, ok := nav.Get("FUND", date.MustParse("2024-01-31")); !ok || got != 25.10 {
		t.Errorf("Get(FUND, jan) = %v, %v want 25.1, true", got, ok)
	}
	if _, ok := nav.Get("FUND", date.MustParse("2024-02-29")); ok {
		t.Error("Get(FUND, feb) should report no override")
	}
	if !nav.Has("FUND") || !nav.Has("OTHER") {
		t.Error("Has() should report both override tickers")
	}
	if nav.Has("AAA.TO") {
		t.Error("Has(AAA.TO) should be false")
	}
}

func TestReadOverridesCSVRejectsNonPositive(t *testing.T) {
	_, err := ReadOverridesCSV(strings.NewReader("Ticker,31/01/2024\nFUND,-1\n"))
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("ReadOverridesCSV() error = %v, want ErrInvalidInput", err)
	}
}
