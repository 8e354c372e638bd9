// Package database handles database connections and schema inspection.
//
// It wraps GORM to configure MySQL (shared analytics database) or SQLite
// (local runs) connections from the application's configuration.
//
// # Connect
//
// Connect establishes the connection, applies pool limits and statement
// timeouts, and verifies it with a ping. The credit pipeline treats a
// failure here as fatal.
//
// # Schema Inspection
//
// The catalog schema is managed outside this repository, so the inspector
// verifies rather than migrates: GetTableColumns retrieves column
// definitions (SHOW COLUMNS on MySQL, PRAGMA table_info on SQLite) and
// VerifyTables reports missing tables or columns. A missing staging or
// ledger table detected up front is surfaced before any processing starts.
package database
