package attribution

import "github.com/etnz/attribution/date"

// Source fetches daily closing prices from an external market-data
// provider. Implementations return the close for every trading day in
// [from, to] inclusive; an empty history means the provider has no data
// for that window (unknown ticker or no trading activity), which is not an
// error by itself.
type Source interface {
	Daily(ticker string, from, to date.Date) (date.History[float64], error)
}
