// Package identity resolves free-text credit names and natural title keys
// to surrogate ids.
//
// The Cache is run-scoped state: constructed fresh at the start of a
// pipeline run, bulk-preloaded from storage, extended as the run creates
// people, and discarded when the run ends. Matching is exact on the
// normalized form (Normalize); there is no fuzzy matching and no
// deduplication heuristic beyond it.
package identity
