// Package source provides word-count sources: interchangeable backends that
// resolve a corpus identifier to its raw (term, count) table.
//
// # Sources
//
// Every backend implements [Source]:
//
//   - [Static]: an immutable in-memory [Catalog] (the compiled-in reference
//     catalog, or one loaded from a TOML/YAML fixture file)
//   - [Remote]: an HTTP count service answering GET <base>/<corpus> with
//     [[term, count], ...]
//   - [Redis]: one sorted set per corpus
//   - [Mongo]: one document per (corpus, term)
//
// [Open] selects a backend from a [Config]; callers depend only on [Source].
//
// # Errors
//
// Failures wrap one of two sentinels so callers can tell them apart:
//
//   - [ErrNotFound]: the source does not know the corpus
//   - [ErrUnavailable]: the source could not be reached, answered with an
//     unexpected status, or sent something that is not a count table
//
// Use errors.Is to check:
//
//	counts, err := src.Fetch(ctx, "alice.txt")
//	if errors.Is(err, source.ErrNotFound) {
//	    // unknown corpus
//	}
//
// # Ordering
//
// Sources return counts in the order the backing store holds them; the
// reference catalog is sorted by count, descending. Nothing downstream
// re-sorts.
//
// Sources never cache or deduplicate: each Fetch is an independent lookup.
package source
