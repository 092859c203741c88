package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	return c.validateRename()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		return errors.New("paths.state_dir must be set")
	}
	if strings.TrimSpace(c.Logging.File) == "" {
		return errors.New("logging.file must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q is invalid (use 'console' or 'json')", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is invalid (use debug, info, warn, or error)", c.Logging.Level)
	}
	switch c.Logging.Console {
	case ConsoleAuto, ConsoleAlways, ConsoleNever:
	default:
		return fmt.Errorf("logging.console %q is invalid (use auto, always, or never)", c.Logging.Console)
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if _, err := ParseDelimiter(c.Catalog.Delimiter); err != nil {
		return fmt.Errorf("catalog.delimiter: %w", err)
	}
	return nil
}

func (c *Config) validateRename() error {
	if len(c.Rename.Extensions) == 0 {
		return errors.New("rename.extensions must include at least one extension")
	}
	return nil
}
