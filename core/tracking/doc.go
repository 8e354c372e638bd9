// Package tracking maintains the processing_status run ledger.
//
// Every pipeline run gets one ledger row: created in status "started",
// moved to "processing" as batches complete, and finalized as "completed"
// or "failed" with its counters and end time. The ledger powers the runs
// dashboard and gives operators the resume picture after a crash.
//
// Ledger writes sit off the critical path. A failed insert or update is
// logged and swallowed so the data processing it describes is never
// aborted by its own bookkeeping.
package tracking
