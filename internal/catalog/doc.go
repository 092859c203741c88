// Package catalog parses delimited catalog files into the lookup tables the
// renamers consume: songs keyed by ISRC code and albums keyed by
// digits-only UPC code.
//
// Every parse rebuilds both tables from scratch. Duplicate keys follow a
// last-write-wins policy applied through Upsert, whose conflict callback is
// where divergent duplicates get reported.
package catalog
