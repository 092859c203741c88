package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	c.normalizeRename()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("SONGRENAMER_STATE_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.StateDir = strings.TrimSpace(value)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir()
	}
	var err error
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Logging.File) == "" {
		c.Logging.File = defaultLogFile
	}
	if c.Logging.File, err = expandPath(c.Logging.File); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	switch c.Logging.Level {
	case "":
		c.Logging.Level = defaultLogLevel
	case "warning":
		c.Logging.Level = "warn"
	}
	c.Logging.Console = strings.ToLower(strings.TrimSpace(c.Logging.Console))
	if c.Logging.Console == "" {
		c.Logging.Console = defaultLogConsole
	}
}

func (c *Config) normalizeRename() {
	if len(c.Rename.Extensions) == 0 {
		c.Rename.Extensions = append([]string(nil), DefaultExtensions...)
		return
	}
	exts := make([]string, 0, len(c.Rename.Extensions))
	seen := make(map[string]struct{}, len(c.Rename.Extensions))
	for _, ext := range c.Rename.Extensions {
		normalized := NormalizeExtension(ext)
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		exts = append(exts, normalized)
	}
	c.Rename.Extensions = exts
}

// NormalizeExtension lowercases ext and guarantees a leading dot.
func NormalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
