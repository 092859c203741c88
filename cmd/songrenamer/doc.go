// Package main hosts the songrenamer CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once, then hands off to the
// internal packages: rename drives a full run through renamerun, catalog
// show parses a catalog without touching the filesystem, history reads the
// rename journal, and config scaffolds or checks the TOML file.
package main
