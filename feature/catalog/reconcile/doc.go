// Package reconcile turns staged credit rows into normalized relationship
// rows, resumably and without duplicating existing data.
//
// # Architecture
//
// Three pieces cooperate:
//
//  1. Engine: reconciles one staging row. It resolves the owning title
//     (skipping rows whose title is unknown; titles are never created),
//     resolves the credit name to a person (creating person and role rows
//     when the name is new, or repairing a person missing its role marker),
//     and inserts the relationship unless it already exists. All writes for
//     a row share one transaction.
//
//  2. RoleAdapter: binds the engine to one role's tables (actors or
//     directors), so the same engine populates actors_titles and
//     directors_titles.
//
//  3. Coordinator: pages through unprocessed staging rows in id order,
//     invokes the engine per row, commits each batch's processed flags in
//     one transaction, and keeps the run ledger current.
//
// # Failure and resume semantics
//
// A row failure rolls back only that row's writes, leaves its processed
// flag false, and the run continues; the row is retried on the next run.
// Infrastructure failures (batch select, flag commit) abort the run and
// finalize its ledger entry as failed. Because every relationship insert is
// preceded by an existence check and person creation is keyed by normalized
// name through the run cache, re-running after any interruption converges
// on the same final relationship set.
package reconcile
