package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/attribution"
	"github.com/etnz/attribution/date"
)

func testReport() *attribution.Report {
	p1 := date.NewRange(date.MustParse("2024-01-31"), date.MustParse("2024-02-29"))
	p2 := date.NewRange(date.MustParse("2024-02-29"), date.MustParse("2024-03-28"))

	rows := []attribution.Row{
		{
			Ticker: "$CASH$",
			Cells: []attribution.Cell{
				{Weight: 0.1}, {Weight: 0.1},
			},
		},
		{
			Ticker: "AAA.TO",
			Cells: []attribution.Cell{
				{Weight: 0.5, Return: 0.10, Contribution: 0.05},
				{Weight: 0.6, Return: -0.10, Contribution: -0.06},
			},
			YTDReturn:       -0.01,
			YTDContribution: -0.01,
		},
	}

	windows := attribution.MonthlyWindows([]date.Range{p1, p2})
	monthly := make([]attribution.WindowReport, 0, len(windows))
	for _, w := range windows {
		aggs := attribution.AggregateWindow(rows, w)
		monthly = append(monthly, attribution.WindowReport{Window: w, Aggregates: aggs, Top: attribution.RankBuckets(aggs)})
	}

	return &attribution.Report{
		Base:       "CAD",
		Span:       date.NewRange(p1.From, p2.To),
		Periods:    []date.Range{p1, p2},
		Rows:       rows,
		Monthly:    monthly,
		Benchmarks: []attribution.Benchmark{{Name: "S&P 500", Ticker: "^GSPC"}},
		BenchRows: map[string]map[date.Range]float64{
			"S&P 500": {p1: 0.05, p2: -0.02},
		},
		Prices: map[string]map[date.Date]float64{
			"AAA.TO": {p1.From: 100, p1.To: 110, p2.To: 99},
		},
		Quoted: map[string]string{"AAA.TO": "CAD"},
	}
}

func TestRenderAnalysis(t *testing.T) {
	md := RenderAnalysis(testReport())

	for _, want := range []string{
		"# Portfolio Attribution 2024-01-31..2024-03-28",
		"## Periods",
		"| AAA.TO ",
		"+10.00%",
		"-10.00%",
		"+5.00%",  // period 1 contribution
		"-6.00%",  // period 2 contribution
		"-1.00%",  // YTD
		"## Monthly",
		"### February",
		"### March",
		"Other Holdings",
		"Total Portfolio",
		"## Benchmarks",
		"| S&P 500 ",
		"## Prices",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("RenderAnalysis() missing %q", want)
		}
	}

	// Zero returns render as "-", not "+0.00%".
	if strings.Contains(md, "+0.00%") {
		t.Error("zero values must render as '-'")
	}
}

func TestRenderBenchmarksEmpty(t *testing.T) {
	var b strings.Builder
	report := testReport()
	report.Benchmarks = nil
	RenderBenchmarks(&b, report)
	if b.Len() != 0 {
		t.Errorf("RenderBenchmarks() with no benchmarks wrote %q", b.String())
	}
}

func TestWriteCSV(t *testing.T) {
	var b strings.Builder
	if err := WriteCSV(&b, testReport()); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (header + 2 rows)", len(lines))
	}

	wantHeader := "Ticker,2024-02-29 weight,2024-02-29 return,2024-02-29 contribution,2024-03-28 weight,2024-03-28 return,2024-03-28 contribution,YTD return,YTD contribution"
	if lines[0] != wantHeader {
		t.Errorf("header = %q\nwant %q", lines[0], wantHeader)
	}
	wantRow := "AAA.TO,0.5,0.1,0.05,0.6,-0.1,-0.06,-0.01,-0.01"
	if lines[2] != wantRow {
		t.Errorf("row = %q\nwant %q", lines[2], wantRow)
	}
}
