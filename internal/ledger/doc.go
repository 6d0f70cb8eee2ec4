// Package ledger persists per-video processing and publication state in
// SQLite.
//
// The ledger is the first and cheapest deduplication tier: the pipeline
// consults it before probing the filesystem or querying the destination
// catalog. It is deliberately not trusted alone — a crash between "file
// produced" and "row marked uploaded" is an expected state that the remote
// reconciler repairs by back-filling rows.
//
// All writes are single-row, single-statement autocommits; no transaction
// ever spans a network call. RecordStarted uses insert-if-absent semantics
// so concurrent or repeated passes over the same video are harmless.
//
// Rows are never deleted during normal operation. Schema changes bump the
// version in schema.go; operators clear or back up the database with the
// ledger maintenance commands.
package ledger
