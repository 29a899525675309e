package attribution

import (
	"fmt"
	"os"

	"github.com/etnz/attribution/date"
	"gopkg.in/yaml.v3"
)

// Benchmark maps a display name to the underlying index or FX-pair ticker.
type Benchmark struct {
	Name   string `yaml:"name" json:"name"`
	Ticker string `yaml:"ticker" json:"ticker"`
}

// DefaultBenchmarks returns the built-in benchmark registry, in display
// order. The FX pair comes first: its return is the currency adjustment
// applied to foreign holdings, shown as a benchmark in its own right.
func DefaultBenchmarks() []Benchmark {
	return []Benchmark{
		{Name: "USD/CAD", Ticker: DefaultFXTicker},
		{Name: "S&P 500", Ticker: "^GSPC"},
		{Name: "Dow Jones", Ticker: "^DJI"},
		{Name: "Nasdaq", Ticker: "^IXIC"},
		{Name: "ACWI", Ticker: "ACWI"},
		{Name: "TSX60", Ticker: DefaultDomesticIndex},
	}
}

// LoadBenchmarks reads a benchmark registry from a YAML file of
// {name, ticker} entries, replacing the default registry.
func LoadBenchmarks(path string) ([]Benchmark, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read benchmarks file %q: %w", path, err)
	}
	var benchmarks []Benchmark
	if err := yaml.Unmarshal(content, &benchmarks); err != nil {
		return nil, fmt.Errorf("cannot parse benchmarks file %q: %w", path, err)
	}
	for i, b := range benchmarks {
		if b.Name == "" || b.Ticker == "" {
			return nil, fmt.Errorf("benchmarks file %q: entry %d must have both name and ticker", path, i)
		}
	}
	return benchmarks, nil
}

// BenchmarkReturns computes the raw price-ratio return of every benchmark
// over every period, through the shared resolver. Benchmark returns are
// never FX-adjusted: they are reported in their domestic currency, and the
// FX-pair entry's raw ratio is the FX return itself.
func BenchmarkReturns(resolver *Resolver, benchmarks []Benchmark, periods []date.Range) (map[string]map[date.Range]float64, error) {
	returns := make(map[string]map[date.Range]float64, len(benchmarks))
	for _, b := range benchmarks {
		returns[b.Name] = make(map[date.Range]float64, len(periods))
		for _, period := range periods {
			start, err := resolver.Resolve(b.Ticker, period.From)
			if err != nil {
				return nil, err
			}
			end, err := resolver.Resolve(b.Ticker, period.To)
			if err != nil {
				return nil, err
			}
			returns[b.Name][period] = end/start - 1
		}
	}
	return returns, nil
}
