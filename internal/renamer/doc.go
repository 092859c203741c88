// Package renamer applies catalog names to an audio library on disk.
//
// RenameFiles matches each audio file's trailing code segment against the
// song table and renames it to "{sequence}-{track}{ext}"; RenameDirectories
// matches directory names against the album table and renames them to the
// album name. Each pass snapshots the tree before touching it, and Run always
// renames files before directories so no collected file path is invalidated
// by a directory rename.
//
// Renames are not transactional. The first OS error (including an existing
// target) aborts the pass and leaves earlier renames in place.
package renamer
