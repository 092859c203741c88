// Package logging builds the slog loggers used by songrenamer.
//
// Every run writes a line-oriented log (timestamp, level, message and
// key=value attributes) to a fixed file, optionally mirrored to a terminal.
// Components never reach for a process-wide logger: they receive a
// *slog.Logger and tag it with NewComponentLogger.
package logging
