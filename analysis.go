package attribution

import (
	"fmt"
	"log"
	"os"

	"github.com/etnz/attribution/date"
)

// Request bundles everything an attribution run needs: where the inputs
// are, how to fetch prices, and the knobs that have defaults.
type Request struct {
	WeightsPath string // holdings snapshot CSV, required
	NAVPath     string // NAV override CSV, optional
	CachePath   string // price cache JSONL, optional
	Source      Source // market-data provider, required

	// Optional overrides; zero values select the CAD defaults.
	Benchmarks []Benchmark
	Classifier Classifier
	FXTicker   string
	Base       string // reporting currency code
}

// WindowReport is one aggregation window with its per-ticker rollups and
// ranked buckets.
type WindowReport struct {
	Window     Window      `json:"window"`
	Aggregates []Aggregate `json:"aggregates"`
	Top        Buckets     `json:"top"`
}

// Report is the complete, immutable result of an attribution run.
// Presentation layers (markdown, CSV, HTTP) format it without recomputing
// anything.
type Report struct {
	Base       string                            `json:"base"`
	Span       date.Range                        `json:"span"`
	Periods    []date.Range                      `json:"periods"`
	Rows       []Row                             `json:"rows"`
	Monthly    []WindowReport                    `json:"monthly"`
	Quarterly  []WindowReport                    `json:"quarterly"`
	Benchmarks []Benchmark                       `json:"benchmarks"`
	BenchRows  map[string]map[date.Range]float64 `json:"benchmarkReturns"`
	Prices     map[string]map[date.Date]float64  `json:"prices"`
	Quoted     map[string]string                 `json:"quoted"`
}

// Checkpoints returns the report's checkpoint dates, recovered from the
// contiguous periods.
func (r *Report) Checkpoints() []date.Date {
	if len(r.Periods) == 0 {
		return nil
	}
	checkpoints := make([]date.Date, 0, len(r.Periods)+1)
	checkpoints = append(checkpoints, r.Periods[0].From)
	for _, p := range r.Periods {
		checkpoints = append(checkpoints, p.To)
	}
	return checkpoints
}

// Run executes a full attribution analysis: ingest the holdings and NAV
// files, resolve every needed price, compute per-period returns and
// contributions, roll them up into monthly and quarterly windows with
// ranked buckets, and compute benchmark returns over the same periods.
//
// Input errors and unavailable prices abort the whole run; a partial
// attribution table would silently misstate the portfolio return. Cache
// persistence failures are only logged.
func Run(req Request) (*Report, error) {
	weights, err := os.Open(req.WeightsPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open weights file %q: %w", req.WeightsPath, err)
	}
	defer weights.Close()
	holdings, err := ReadHoldingsCSV(weights)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", req.WeightsPath, err)
	}

	nav := NewOverrides()
	if req.NAVPath != "" {
		navFile, err := os.Open(req.NAVPath)
		if err != nil {
			return nil, fmt.Errorf("cannot open NAV file %q: %w", req.NAVPath, err)
		}
		defer navFile.Close()
		if nav, err = ReadOverridesCSV(navFile); err != nil {
			return nil, fmt.Errorf("reading %q: %w", req.NAVPath, err)
		}
	}

	cache := NewPriceCache()
	if req.CachePath != "" {
		cache = LoadPriceCache(req.CachePath)
	}

	report, err := Analyze(holdings, nav, cache, req)
	if err != nil {
		return nil, err
	}

	if req.CachePath != "" {
		if err := cache.Save(req.CachePath); err != nil {
			log.Printf("warning: could not persist price cache: %v", err)
		}
	}
	return report, nil
}

// Analyze is the in-memory core of Run, for callers that already hold the
// parsed inputs (tests, the HTTP server).
func Analyze(holdings *Holdings, nav *Overrides, cache *PriceCache, req Request) (*Report, error) {
	classifier := req.Classifier
	if classifier.CashTicker == "" {
		classifier = NewClassifier()
	}
	fxTicker := req.FXTicker
	if fxTicker == "" {
		fxTicker = DefaultFXTicker
	}
	base := req.Base
	if base == "" {
		base = DefaultBaseCurrency
	}
	benchmarks := req.Benchmarks
	if benchmarks == nil {
		benchmarks = DefaultBenchmarks()
	}

	periods, err := holdings.Periods()
	if err != nil {
		return nil, err
	}
	span := date.NewRange(periods[0].From, periods[len(periods)-1].To)

	resolver := NewResolver(cache, req.Source)
	resolver.Overrides = nav
	classes := classifier.Classify(holdings, nav)
	calc := NewCalculator(resolver, classes, fxTicker)

	tickers := holdings.Tickers()
	returns, err := calc.Returns(tickers, periods)
	if err != nil {
		return nil, err
	}
	ytd := make(map[string]float64, len(tickers))
	for _, ticker := range tickers {
		if ytd[ticker], err = calc.YTDReturn(ticker, span); err != nil {
			return nil, err
		}
	}

	rows := BuildRows(holdings, returns, ytd, periods)
	monthly := MonthlyWindows(periods)
	quarterly := QuarterlyWindows(monthly)

	benchReturns, err := BenchmarkReturns(resolver, benchmarks, periods)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Base:       base,
		Span:       span,
		Periods:    periods,
		Rows:       rows,
		Benchmarks: benchmarks,
		BenchRows:  benchReturns,
		Prices:     resolvedPrices(resolver, classes, tickers, holdings.Checkpoints()),
		Quoted:     quoteCurrencies(classes, base),
	}
	for _, w := range monthly {
		aggs := AggregateWindow(rows, w)
		report.Monthly = append(report.Monthly, WindowReport{Window: w, Aggregates: aggs, Top: RankBuckets(aggs)})
	}
	for _, w := range quarterly {
		aggs := AggregateWindow(rows, w)
		report.Quarterly = append(report.Quarterly, WindowReport{Window: w, Aggregates: aggs, Top: RankBuckets(aggs)})
	}
	return report, nil
}

// quoteCurrencies maps each priced ticker to the currency its quotes are
// expressed in: the reporting currency for domestic and NAV-priced
// instruments, USD for foreign ones.
func quoteCurrencies(classes map[string]Class, base string) map[string]string {
	quoted := make(map[string]string, len(classes))
	for ticker, class := range classes {
		switch class {
		case Cash:
			continue
		case Foreign:
			quoted[ticker] = "USD"
		default:
			quoted[ticker] = base
		}
	}
	return quoted
}

// resolvedPrices collects the checkpoint prices the run already resolved,
// for the report's price appendix. Every lookup hits the cache or the NAV
// overrides at this point, so this never triggers a fetch.
func resolvedPrices(resolver *Resolver, classes map[string]Class, tickers []string, checkpoints []date.Date) map[string]map[date.Date]float64 {
	prices := make(map[string]map[date.Date]float64, len(tickers))
	for _, ticker := range tickers {
		if classes[ticker] == Cash {
			continue
		}
		prices[ticker] = make(map[date.Date]float64, len(checkpoints))
		for _, on := range checkpoints {
			price, err := resolver.Resolve(ticker, on)
			if err != nil {
				continue
			}
			prices[ticker][on] = price
		}
	}
	return prices
}
