// Package renamerun wires configuration, logging, the catalog, the renamer
// and the journal into a single rename invocation.
//
// A run holds an exclusive lock under the state directory, tags every log
// line with a fresh run ID, parses the catalog, renames files, then renames
// directories, and records the outcome in the journal when enabled.
package renamerun
