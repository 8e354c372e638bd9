// Package staging extracts (title, credit name) pairs from the
// denormalized catalog export into a per-role staging table.
//
// The export arrives as one wide row per title with comma-separated credit
// strings. The extractor splits those strings into individual staging rows
// carrying the owning title's natural key and a processed flag that starts
// false. Rebuilds are truncate-and-recreate, so re-staging the same export
// always leaves exactly one row per extracted pair.
//
// Sources are pluggable: TableSource reads a pre-loaded export table,
// ObjectSource reads a CSV export straight from the storage bucket.
package staging
