package attribution

import (
	"testing"

	"github.com/etnz/attribution/date"
)

func scenarioRows(t *testing.T) ([]Row, []date.Range) {
	t.Helper()
	h := NewHoldings()
	jan, feb, mar := date.MustParse("2024-01-31"), date.MustParse("2024-02-29"), date.MustParse("2024-03-28")
	h.Set("AAA.TO", jan, 0.5)
	h.Set("AAA.TO", feb, 0.6)
	h.Set("AAA.TO", mar, 0.4)
	h.Set("$CASH$", jan, 0.1)
	h.Set("$CASH$", feb, 0.1)
	h.Set("$CASH$", mar, 0.1)

	periods, err := h.Periods()
	if err != nil {
		t.Fatalf("Periods() error = %v", err)
	}

	returns := ReturnSet{
		"AAA.TO": {periods[0]: 0.10, periods[1]: -0.10},
		"$CASH$": {periods[0]: 0.0, periods[1]: 0.0},
	}
	ytd := map[string]float64{"AAA.TO": -0.01, "$CASH$": 0.0}
	return BuildRows(h, returns, ytd, periods), periods
}

func TestBuildRows(t *testing.T) {
	rows, _ := scenarioRows(t)
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %v want 2", len(rows))
	}

	// Sorted by descending YTD contribution: cash (0.0) above AAA.TO (-0.01).
	if rows[0].Ticker != "$CASH$" || rows[1].Ticker != "AAA.TO" {
		t.Fatalf("row order = %q, %q want $CASH$, AAA.TO", rows[0].Ticker, rows[1].Ticker)
	}

	aaa := rows[1]
	within(t, aaa.Cells[0].Contribution, 0.05, "AAA.TO contribution p1")
	within(t, aaa.Cells[1].Contribution, -0.06, "AAA.TO contribution p2")
	within(t, aaa.YTDContribution, -0.01, "AAA.TO YTD contribution")
	within(t, aaa.YTDReturn, -0.01, "AAA.TO YTD return")

	cash := rows[0]
	for i, cell := range cash.Cells {
		if cell.Return != 0.0 || cell.Contribution != 0.0 {
			t.Errorf("cash cell %d = %+v want zero return and contribution", i, cell)
		}
	}
}

func TestBuildRowsZeroWeightForUnknownCheckpoint(t *testing.T) {
	h := NewHoldings()
	jan, feb, mar := date.MustParse("2024-01-31"), date.MustParse("2024-02-29"), date.MustParse("2024-03-28")
	h.Set("AAA.TO", jan, 0.5)
	h.Set("AAA.TO", feb, 0.6)
	h.Set("AAA.TO", mar, 0.4)
	h.Set("BBB", feb, 0.2) // enters the portfolio in february

	periods, err := h.Periods()
	if err != nil {
		t.Fatal(err)
	}
	returns := ReturnSet{
		"AAA.TO": {periods[0]: 0.10, periods[1]: -0.10},
		"BBB":    {periods[0]: 0.50, periods[1]: 0.50},
	}
	rows := BuildRows(h, returns, map[string]float64{}, periods)

	var bbb Row
	for _, row := range rows {
		if row.Ticker == "BBB" {
			bbb = row
		}
	}
	// January weight is 0.0, not carried back, so the period-1
	// contribution is zero despite the 50% return.
	within(t, bbb.Cells[0].Contribution, 0.0, "BBB contribution p1")
	within(t, bbb.Cells[1].Contribution, 0.1, "BBB contribution p2")
}

func monthlyPeriods(dates ...string) []date.Range {
	var periods []date.Range
	for i := 0; i+1 < len(dates); i++ {
		periods = append(periods, date.NewRange(date.MustParse(dates[i]), date.MustParse(dates[i+1])))
	}
	return periods
}

func TestMonthlyWindows(t *testing.T) {
	periods := monthlyPeriods("2024-01-05", "2024-01-31", "2024-02-15", "2024-02-29", "2024-03-28")
	windows := MonthlyWindows(periods)

	if len(windows) != 3 {
		t.Fatalf("len(windows) = %v want 3", len(windows))
	}
	if windows[0].Label != "January" || windows[1].Label != "February" || windows[2].Label != "March" {
		t.Fatalf("labels = %q, %q, %q", windows[0].Label, windows[1].Label, windows[2].Label)
	}

	// A period belongs to the month its END date falls in.
	if len(windows[0].Periods) != 1 {
		t.Errorf("january has %d periods, want 1", len(windows[0].Periods))
	}
	if len(windows[1].Periods) != 2 {
		t.Errorf("february has %d periods, want 2", len(windows[1].Periods))
	}
	// February's span bridges from january's last period end.
	if windows[1].Span.From != date.MustParse("2024-01-31") {
		t.Errorf("february span from = %v want 2024-01-31", windows[1].Span.From)
	}
	if windows[1].Span.To != date.MustParse("2024-02-29") {
		t.Errorf("february span to = %v want 2024-02-29", windows[1].Span.To)
	}
}

func TestMonthlyWindowsDropBeforeFirstJanuary(t *testing.T) {
	periods := monthlyPeriods("2023-12-01", "2023-12-29", "2024-01-31", "2024-02-29")
	windows := MonthlyWindows(periods)

	if len(windows) != 2 {
		t.Fatalf("len(windows) = %v want 2", len(windows))
	}
	if windows[0].Label != "January" {
		t.Errorf("first window = %q want January", windows[0].Label)
	}
	// The dropped december period still provides january's span start.
	if windows[0].Span.From != date.MustParse("2023-12-29") {
		t.Errorf("january span from = %v want 2023-12-29", windows[0].Span.From)
	}
}

func TestQuarterlyWindows(t *testing.T) {
	periods := monthlyPeriods("2024-01-05", "2024-01-31", "2024-02-29", "2024-03-28", "2024-04-30")
	monthly := MonthlyWindows(periods)
	if len(monthly) != 4 {
		t.Fatalf("len(monthly) = %v want 4", len(monthly))
	}

	quarters := QuarterlyWindows(monthly)
	// April is a trailing partial group: no quarter for it.
	if len(quarters) != 1 {
		t.Fatalf("len(quarters) = %v want 1", len(quarters))
	}
	q := quarters[0]
	if q.Label != "Q1 2024" {
		t.Errorf("label = %q want %q", q.Label, "Q1 2024")
	}
	if len(q.Periods) != 3 {
		t.Errorf("quarter has %d periods, want 3", len(q.Periods))
	}
	if q.Span.From != date.MustParse("2024-01-05") || q.Span.To != date.MustParse("2024-03-28") {
		t.Errorf("span = %v want 2024-01-05..2024-03-28", q.Span)
	}
}

func TestMonthlyContributionsSumToYTD(t *testing.T) {
	// Over a january-starting year, every period lands in exactly one
	// monthly window, so the monthly contributions of a ticker must add up
	// to its YTD contribution.
	h := NewHoldings()
	d0, d1, d2, d3 := date.MustParse("2024-01-05"), date.MustParse("2024-01-31"),
		date.MustParse("2024-02-29"), date.MustParse("2024-03-28")
	h.Set("AAA.TO", d0, 0.5)
	h.Set("AAA.TO", d1, 0.55)
	h.Set("AAA.TO", d2, 0.6)
	h.Set("AAA.TO", d3, 0.4)
	h.Set("BBB", d0, 0.2)
	h.Set("BBB", d1, 0.25)
	h.Set("BBB", d2, 0.15)
	h.Set("BBB", d3, 0.3)

	periods, err := h.Periods()
	if err != nil {
		t.Fatal(err)
	}
	returns := ReturnSet{
		"AAA.TO": {periods[0]: 0.03, periods[1]: 0.10, periods[2]: -0.10},
		"BBB":    {periods[0]: -0.02, periods[1]: 0.04, periods[2]: 0.01},
	}
	rows := BuildRows(h, returns, map[string]float64{}, periods)
	windows := MonthlyWindows(periods)
	if len(windows) != 3 {
		t.Fatalf("len(windows) = %v want 3", len(windows))
	}

	sums := make(map[string]float64)
	for _, w := range windows {
		for _, agg := range AggregateWindow(rows, w) {
			sums[agg.Ticker] += agg.Contribution
		}
	}
	for _, row := range rows {
		within(t, sums[row.Ticker], row.YTDContribution, "monthly contribution sum for "+row.Ticker)
	}
}

func TestAggregateWindow(t *testing.T) {
	rows, _ := scenarioRows(t)
	// One period per month here: aggregate over both as one synthetic window.
	w := Window{Label: "all", Periods: []int{0, 1}}

	aggs := AggregateWindow(rows, w)
	var aaa Aggregate
	for _, agg := range aggs {
		if agg.Ticker == "AAA.TO" {
			aaa = agg
		}
	}

	// Weight is the latest period's weight in the window.
	within(t, aaa.Weight, 0.6, "aggregate weight")
	// Contribution is the plain sum.
	within(t, aaa.Contribution, -0.01, "aggregate contribution")
	// Return is weight-averaged over positive weights:
	// (0.5*0.10 + 0.6*-0.10) / 1.1
	within(t, aaa.Return, -0.01/1.1, "aggregate return")
}

func TestAggregateWindowZeroWeights(t *testing.T) {
	rows := []Row{{Ticker: "ZZZ", Cells: []Cell{{Weight: 0, Return: 0.5, Contribution: 0}}}}
	aggs := AggregateWindow(rows, Window{Periods: []int{0}})
	if aggs[0].Return != 0.0 {
		t.Errorf("zero-weight aggregate return = %v want 0.0", aggs[0].Return)
	}
}

func TestRankBuckets(t *testing.T) {
	aggs := []Aggregate{
		{Ticker: "A", Weight: 0.10, Return: 0.10, Contribution: 0.060},
		{Ticker: "B", Weight: 0.10, Return: 0.10, Contribution: 0.050},
		{Ticker: "C", Weight: 0.10, Return: 0.10, Contribution: 0.040},
		{Ticker: "D", Weight: 0.10, Return: 0.10, Contribution: 0.030},
		{Ticker: "E", Weight: 0.10, Return: 0.10, Contribution: 0.020},
		{Ticker: "F", Weight: 0.10, Return: 0.02, Contribution: 0.010},
		{Ticker: "G", Weight: 0.10, Return: 0.01, Contribution: 0.005},
		{Ticker: "X", Weight: 0.10, Return: -0.10, Contribution: -0.020},
		{Ticker: "Y", Weight: 0.10, Return: -0.05, Contribution: -0.010},
		{Ticker: "Z", Weight: 0.10, Return: 0.0, Contribution: 0.0},
	}
	b := RankBuckets(aggs)

	if len(b.Contributors) != 5 {
		t.Fatalf("len(Contributors) = %v want 5", len(b.Contributors))
	}
	if b.Contributors[0].Ticker != "A" || b.Contributors[4].Ticker != "E" {
		t.Errorf("contributors = %v", tickersOf(b.Contributors))
	}

	if len(b.Disruptors) != 2 {
		t.Fatalf("len(Disruptors) = %v want 2", len(b.Disruptors))
	}
	// Most negative first.
	if b.Disruptors[0].Ticker != "X" || b.Disruptors[1].Ticker != "Y" {
		t.Errorf("disruptors = %v", tickersOf(b.Disruptors))
	}

	// Other sums F, G and the zero-contribution Z.
	if b.Other.Ticker != "Other Holdings" {
		t.Errorf("Other.Ticker = %q", b.Other.Ticker)
	}
	within(t, b.Other.Weight, 0.30, "Other.Weight")
	within(t, b.Other.Contribution, 0.015, "Other.Contribution")
	// Weight-averaged return over F, G, Z.
	within(t, b.Other.Return, (0.1*0.02+0.1*0.01+0.1*0.0)/0.3, "Other.Return")

	// Total sums over literally all tickers.
	if b.Total.Ticker != "Total Portfolio" {
		t.Errorf("Total.Ticker = %q", b.Total.Ticker)
	}
	within(t, b.Total.Weight, 1.0, "Total.Weight")
	within(t, b.Total.Contribution, 0.185, "Total.Contribution")
}

func TestRankBucketsStableTies(t *testing.T) {
	aggs := []Aggregate{
		{Ticker: "N1", Contribution: -0.01},
		{Ticker: "N2", Contribution: -0.01},
		{Ticker: "N3", Contribution: -0.01},
	}
	b := RankBuckets(aggs)
	if len(b.Disruptors) != 3 {
		t.Fatalf("len(Disruptors) = %v want 3", len(b.Disruptors))
	}
	// Equal contributions keep input order.
	for i, want := range []string{"N1", "N2", "N3"} {
		if b.Disruptors[i].Ticker != want {
			t.Errorf("Disruptors[%d] = %q want %q", i, b.Disruptors[i].Ticker, want)
		}
	}
}

func tickersOf(aggs []Aggregate) []string {
	names := make([]string, len(aggs))
	for i, a := range aggs {
		names[i] = a.Ticker
	}
	return names
}
