// Package catalog is the credit-reconciliation pipeline: it turns the
// denormalized catalog export (titles with embedded cast and director
// strings) into normalized people, role, and relationship rows.
//
// The pipeline runs in two phases per role:
//
//  1. Staging: the export's credit strings are split into one staging row
//     per (title, name) pair with a processed flag (package staging).
//
//  2. Reconciliation: unprocessed staging rows are resolved against the
//     identity cache and materialized as relationship rows in batches,
//     resumably (packages identity and reconcile).
//
// The Service in this package is the operational surface shared by the CLI
// commands and the HTTP handler: staging rebuilds, processing, status,
// run history, and schema verification.
package catalog
