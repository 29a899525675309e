package attribution

import (
	"fmt"
	"sort"

	"github.com/etnz/attribution/date"
)

// Cell holds one ticker's weight, return and contribution for one period.
type Cell struct {
	Weight       float64 `json:"weight"`
	Return       float64 `json:"return"`
	Contribution float64 `json:"contribution"`
}

// Row is one ticker's full attribution line: one cell per period, in
// period order, plus the year-to-date aggregates. Rows are immutable after
// construction; presentation layers only format them.
type Row struct {
	Ticker          string  `json:"ticker"`
	Cells           []Cell  `json:"cells"`
	YTDReturn       float64 `json:"ytdReturn"`
	YTDContribution float64 `json:"ytdContribution"`
}

// BuildRows combines weights and returns into attribution rows, one per
// ticker, sorted by descending YTD contribution: the ticker contributing
// most positively to the portfolio's return comes first.
//
// Contribution for (ticker, period) is the weight at the period start
// times the period return; a ticker with no recorded weight at that
// checkpoint contributes with weight 0.0 (weights are never carried
// forward). YTD contribution is the additive sum of period contributions,
// deliberately independent of the direct-ratio YTD return.
func BuildRows(h *Holdings, returns ReturnSet, ytdReturns map[string]float64, periods []date.Range) []Row {
	tickers := h.Tickers()
	rows := make([]Row, 0, len(tickers))
	for _, ticker := range tickers {
		row := Row{Ticker: ticker, Cells: make([]Cell, 0, len(periods))}
		for _, period := range periods {
			weight := h.WeightAt(ticker, period.From)
			ret := returns.Get(ticker, period)
			cell := Cell{Weight: weight, Return: ret, Contribution: weight * ret}
			row.YTDContribution += cell.Contribution
			row.Cells = append(row.Cells, cell)
		}
		row.YTDReturn = ytdReturns[ticker]
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].YTDContribution > rows[j].YTDContribution })
	return rows
}

// Window is a monthly or quarterly aggregation window: a label, the date
// span it covers, and the indexes of the periods rolled into it, in
// chronological order of period end.
type Window struct {
	Label   string        `json:"label"`
	Span    date.Range    `json:"span"`
	Periods []int         `json:"periods"`
	Month   date.MonthKey `json:"-"`
}

// MonthlyWindows groups periods into calendar-month windows. A period
// belongs to the month its end date falls in. Aggregation always begins at
// the first January appearing in the period set (periods ending in a prior
// December are dropped from the monthly view), reflecting a fiscal year
// equal to the calendar year. Each window's span starts at the previous
// month's last period end, bridging months with no gap.
func MonthlyWindows(periods []date.Range) []Window {
	byMonth := make(map[date.MonthKey][]int)
	for i, p := range periods {
		key := date.MonthOf(p.To)
		byMonth[key] = append(byMonth[key], i)
	}

	keys := make([]date.MonthKey, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })

	first := 0
	for i, k := range keys {
		if k.Month == 1 {
			first = i
			break
		}
	}
	keys = keys[first:]

	windows := make([]Window, 0, len(keys))
	for i, key := range keys {
		idxs := byMonth[key]
		sort.Slice(idxs, func(a, b int) bool { return periods[idxs[a]].To.Before(periods[idxs[b]].To) })

		var span date.Range
		span.To = periods[idxs[len(idxs)-1]].To
		if i > 0 {
			prev := byMonth[keys[i-1]]
			span.From = latestEnd(periods, prev)
		} else {
			span.From = earliestStart(periods, idxs)
		}

		windows = append(windows, Window{
			Label:   key.Name(),
			Span:    span,
			Periods: idxs,
			Month:   key,
		})
	}
	return windows
}

// QuarterlyWindows rolls consecutive groups of three monthly windows into
// quarter windows. A trailing partial group (fewer than three months) gets
// no quarter aggregate.
func QuarterlyWindows(monthly []Window) []Window {
	var quarters []Window
	for i := 0; i+3 <= len(monthly); i += 3 {
		group := monthly[i : i+3]
		var idxs []int
		for _, m := range group {
			idxs = append(idxs, m.Periods...)
		}
		first := group[0].Month
		quarters = append(quarters, Window{
			Label:   fmt.Sprintf("Q%d %d", first.Quarter(), first.Year),
			Span:    date.NewRange(group[0].Span.From, group[2].Span.To),
			Periods: idxs,
			Month:   first,
		})
	}
	return quarters
}

func latestEnd(periods []date.Range, idxs []int) date.Date {
	end := periods[idxs[0]].To
	for _, i := range idxs[1:] {
		if periods[i].To.After(end) {
			end = periods[i].To
		}
	}
	return end
}

func earliestStart(periods []date.Range, idxs []int) date.Date {
	start := periods[idxs[0]].From
	for _, i := range idxs[1:] {
		if periods[i].From.Before(start) {
			start = periods[i].From
		}
	}
	return start
}

// Aggregate is one ticker's rollup over an aggregation window: weight is a
// snapshot (the chronologically latest period's weight within the window,
// not a sum or average), return is the weight-averaged period return over
// periods with positive weight, contribution is the plain sum.
type Aggregate struct {
	Ticker       string  `json:"ticker"`
	Weight       float64 `json:"weight"`
	Return       float64 `json:"return"`
	Contribution float64 `json:"contribution"`
}

// AggregateWindow rolls every row up over one window, preserving row order.
func AggregateWindow(rows []Row, w Window) []Aggregate {
	aggs := make([]Aggregate, 0, len(rows))
	for _, row := range rows {
		agg := Aggregate{Ticker: row.Ticker}
		var weightedSum, weightSum float64
		for _, i := range w.Periods {
			cell := row.Cells[i]
			agg.Contribution += cell.Contribution
			if cell.Weight > 0 {
				weightedSum += cell.Weight * cell.Return
				weightSum += cell.Weight
			}
		}
		if weightSum > 0 {
			agg.Return = weightedSum / weightSum
		}
		if len(w.Periods) > 0 {
			// w.Periods is sorted by period end; the last one is the latest.
			agg.Weight = row.Cells[w.Periods[len(w.Periods)-1]].Weight
		}
		aggs = append(aggs, agg)
	}
	return aggs
}

// topN is the size of the contributor and disruptor buckets.
const topN = 5

// Buckets ranks a window's aggregates into the top contributors, the top
// disruptors, a summed Other Holdings bucket, and a Total Portfolio
// cross-check row.
type Buckets struct {
	Contributors []Aggregate `json:"contributors"`
	Disruptors   []Aggregate `json:"disruptors"`
	Other        Aggregate   `json:"other"`
	Total        Aggregate   `json:"total"`
}

// RankBuckets computes the top-5 positive contributions (Contributors),
// the top-5 most negative (Disruptors), and sums every remaining ticker
// into Other Holdings (weight and contribution summed, return
// weight-averaged). Ties keep the stable order of the input. Total
// Portfolio sums weight and contribution across literally all tickers,
// independent of how the buckets were cut.
func RankBuckets(aggs []Aggregate) Buckets {
	desc := make([]Aggregate, len(aggs))
	copy(desc, aggs)
	sort.SliceStable(desc, func(i, j int) bool { return desc[i].Contribution > desc[j].Contribution })
	asc := make([]Aggregate, len(aggs))
	copy(asc, aggs)
	sort.SliceStable(asc, func(i, j int) bool { return asc[i].Contribution < asc[j].Contribution })

	var b Buckets
	picked := make(map[string]bool)
	for _, a := range desc {
		if a.Contribution > 0 && len(b.Contributors) < topN {
			b.Contributors = append(b.Contributors, a)
			picked[a.Ticker] = true
		}
	}
	for _, a := range asc {
		if a.Contribution < 0 && len(b.Disruptors) < topN {
			b.Disruptors = append(b.Disruptors, a)
			picked[a.Ticker] = true
		}
	}

	b.Other.Ticker = "Other Holdings"
	var otherWeighted, otherWeightSum float64
	for _, a := range aggs {
		b.Total.Weight += a.Weight
		b.Total.Contribution += a.Contribution
		if picked[a.Ticker] {
			continue
		}
		b.Other.Weight += a.Weight
		b.Other.Contribution += a.Contribution
		if a.Weight > 0 {
			otherWeighted += a.Weight * a.Return
			otherWeightSum += a.Weight
		}
	}
	if otherWeightSum > 0 {
		b.Other.Return = otherWeighted / otherWeightSum
	}
	b.Total.Ticker = "Total Portfolio"
	return b
}
