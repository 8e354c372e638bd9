// Package server holds the HTTP server configuration consumed by the
// start command. The Fiber application itself is assembled in cmd/start.go
// from the features registered with the loader.
package server
