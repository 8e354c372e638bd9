// Package logger builds the application's zap logger from configuration.
//
// Commands and features share one logger shape: console encoding with
// colored levels for interactive use, json encoding for scheduled runs.
// WithRayID decorates a logger with the per-request trace id inside HTTP
// handlers so ETL log lines triggered over the API stay correlated.
package logger
