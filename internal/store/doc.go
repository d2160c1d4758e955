// Package store provides durable persistence and reconciliation for
// tournament records.
//
// Records live in a relational table keyed per observation, with the
// content fingerprint as the reconciliation identity: at most one active
// row exists per fingerprint, repeated observations merge into it, and
// rows are only ever deactivated by the retention sweep, never deleted.
// Every scrape pass appends exactly one row to the scrape log regardless
// of outcome.
//
// The default backend is a local sqlite file; setting a PostgreSQL DSN
// switches the same schema onto Postgres. Read queries degrade to empty
// results on store faults so consumers always have a safe response, while
// the write path surfaces faults to the scheduler.
package store
