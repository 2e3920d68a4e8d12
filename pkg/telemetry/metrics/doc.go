// Package metrics exposes Prometheus metrics for callisto's validation
// runs: run counts and durations, file counts, and diagnostics broken down
// by rule and severity. Metrics live on a private registry so embedding
// callisto as a library never pollutes the global Prometheus state.
//
// The endpoint is only served in watch mode, where runs repeat and a
// scraper has something to follow; one-shot lint runs record to the
// collector but exit before a scrape.
package metrics
