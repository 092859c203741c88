// Package config loads, normalizes, and validates songrenamer configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours the SONGRENAMER_STATE_DIR environment override. The
// Config type gathers every knob the CLI and the rename run need: where the
// log and journal live, how the catalog is delimited, and which files count
// as audio.
package config
