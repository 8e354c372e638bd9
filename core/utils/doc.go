// Package utils provides small type-conversion helpers for values scanned
// from raw database rows, where the concrete Go type depends on the driver.
package utils
