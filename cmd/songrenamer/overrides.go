package main

import (
	"fmt"
	"strings"

	"songrenamer/internal/config"
)

// logOverrides are the logging and parsing flags shared by commands that
// read a catalog.
type logOverrides struct {
	warn      bool
	quiet     bool
	delimiter string
	logFile   string
}

func (o logOverrides) apply(cfg *config.Config) error {
	if o.warn {
		cfg.Logging.Level = "warn"
	}
	if o.quiet {
		cfg.Logging.Console = config.ConsoleNever
	}
	if o.delimiter != "" {
		if _, err := config.ParseDelimiter(o.delimiter); err != nil {
			return fmt.Errorf("--delimiter: %w", err)
		}
		cfg.Catalog.Delimiter = o.delimiter
	}
	if path := strings.TrimSpace(o.logFile); path != "" {
		expanded, err := config.ExpandPath(path)
		if err != nil {
			return fmt.Errorf("--log-file: %w", err)
		}
		cfg.Logging.File = expanded
	}
	return cfg.Validate()
}
