// Package storage provides the object-storage client used to fetch
// denormalized catalog exports (CSV) from an S3-compatible bucket.
//
// The Client interface wraps the subset of minio operations the pipeline
// consumes, which keeps feature tests free of a live endpoint: tests supply
// a fake Client serving readers from memory.
package storage
