// Package journal keeps an SQLite audit trail of rename runs.
//
// Each run gets a row in runs with its root, catalog, dry-run flag, final
// status and outcome counts; every per-entry decision lands in entries. The
// journal is written alongside the filesystem work and is never consulted to
// undo it.
//
// Schema changes bump schemaVersion in schema.go; users delete the database
// to adopt the new schema.
package journal
