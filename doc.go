// Package attribution computes time-weighted portfolio return attribution.
//
// Given a sequence of holdings snapshots (ticker weights at dated
// checkpoints) and a market price source, it produces per-ticker,
// per-period returns and contributions, rolled up into monthly, quarterly
// and year-to-date aggregates, alongside a set of benchmark returns.
//
// The engine resolves closing prices through a persistent on-disk price
// cache, substitutes user-supplied NAV prices for fund instruments, and
// converts foreign returns into the reporting currency by compounding with
// the base FX pair return over the same period.
package attribution
