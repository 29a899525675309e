package attribution

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/etnz/attribution/date"
)

// PriceCache maps (ticker, date) to a closing price. It only grows:
// historical closing prices are immutable facts once recorded, so there is
// no eviction. The cache is persisted as a JSONL file, one entry per line,
// human-readable and git-friendly.
type PriceCache struct {
	entries map[string]float64
}

// NewPriceCache returns an empty cache.
func NewPriceCache() *PriceCache {
	return &PriceCache{entries: make(map[string]float64)}
}

// cacheKey is the unique identifier of a cached price: ticker and day, no
// time component.
func cacheKey(ticker string, on date.Date) string {
	return ticker + "_" + on.String()
}

// Get returns the cached price for (ticker, date) if present.
func (c *PriceCache) Get(ticker string, on date.Date) (float64, bool) {
	price, ok := c.entries[cacheKey(ticker, on)]
	return price, ok
}

// Put records a price for (ticker, date), overwriting any previous entry.
func (c *PriceCache) Put(ticker string, on date.Date, price float64) {
	c.entries[cacheKey(ticker, on)] = price
}

// Len returns the number of cached prices.
func (c *PriceCache) Len() int { return len(c.entries) }

// jprice is the persisted form of one cache entry.
type jprice struct {
	Ticker string    `json:"ticker"`
	On     date.Date `json:"on"`
	Close  float64   `json:"close"`
}

// LoadPriceCache reads a cache file. A missing, unreadable or corrupt file
// yields an empty cache rather than failing the run: the cache is an
// optimization, not a source of truth.
func LoadPriceCache(path string) *PriceCache {
	c := NewPriceCache()
	f, err := os.Open(path)
	if err != nil {
		return c
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var jp jprice
		if err := json.Unmarshal(line, &jp); err != nil {
			log.Printf("warning: ignoring corrupt cache file %q: %v", path, err)
			return NewPriceCache()
		}
		c.entries[cacheKey(jp.Ticker, jp.On)] = jp.Close
	}
	if err := scanner.Err(); err != nil {
		log.Printf("warning: ignoring unreadable cache file %q: %v", path, err)
		return NewPriceCache()
	}
	return c
}

// Save persists the cache, sorted by key for stable diffs. Failures are
// returned for the caller to log; a failed save never invalidates the
// analysis computed from the in-memory cache.
func (c *PriceCache) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("cannot create cache directory %q: %w", dir, err)
		}
	}

	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		ticker, on, err := splitCacheKey(k)
		if err != nil {
			return err
		}
		line, err := json.Marshal(jprice{Ticker: ticker, On: on, Close: c.entries[k]})
		if err != nil {
			return err
		}
		b.Write(line)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("cannot write cache file %q: %w", path, err)
	}
	return nil
}

// splitCacheKey recovers the ticker and date from a cache key. The date is
// the fixed-width ISO suffix, so tickers containing '_' are safe.
func splitCacheKey(key string) (string, date.Date, error) {
	const isoLen = len(date.DateFormat)
	if len(key) < isoLen+1 {
		return "", date.Date{}, fmt.Errorf("malformed cache key %q", key)
	}
	on, err := date.Parse(key[len(key)-isoLen:])
	if err != nil {
		return "", date.Date{}, fmt.Errorf("malformed cache key %q: %w", key, err)
	}
	return key[:len(key)-isoLen-1], on, nil
}
