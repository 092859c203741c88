package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Console mirroring modes for Logging.Console.
const (
	ConsoleAuto   = "auto"
	ConsoleAlways = "always"
	ConsoleNever  = "never"
)

// Paths contains directory configuration.
type Paths struct {
	// StateDir holds the run lock and the rename journal.
	StateDir string `toml:"state_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	File    string `toml:"file"`
	Format  string `toml:"format"`
	Level   string `toml:"level"`
	Console string `toml:"console"` // auto | always | never
}

// Catalog contains configuration for reading catalog files.
type Catalog struct {
	Delimiter string `toml:"delimiter"`
}

// Rename contains configuration for the file and directory renamers.
type Rename struct {
	Extensions []string `toml:"extensions"`
	// NormalizeDirectoryCodes strips non-digits from directory names before
	// the album lookup, mirroring how catalog UPCs are stored.
	NormalizeDirectoryCodes bool `toml:"normalize_directory_codes"`
}

// Journal contains configuration for the rename audit trail.
type Journal struct {
	Enabled bool `toml:"enabled"`
}

// Config encapsulates all configuration values for songrenamer.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Logging Logging `toml:"logging"`
	Catalog Catalog `toml:"catalog"`
	Rename  Rename  `toml:"rename"`
	Journal Journal `toml:"journal"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("songrenamer.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state directory and the log file's parent.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, filepath.Dir(c.Logging.File)} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LockPath is the exclusive lock held for the duration of a rename run.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "songrenamer.lock")
}

// JournalPath is the SQLite database recording rename runs.
func (c *Config) JournalPath() string {
	return filepath.Join(c.Paths.StateDir, "journal.db")
}

// CatalogDelimiter returns the configured delimiter as a rune.
func (c *Config) CatalogDelimiter() rune {
	r, _ := ParseDelimiter(c.Catalog.Delimiter)
	return r
}

// ParseDelimiter accepts a single character or the escapes `\t` and "tab".
func ParseDelimiter(value string) (rune, error) {
	switch value {
	case "":
		return ',', nil
	case `\t`, "tab", "\t":
		return '\t', nil
	}
	runes := []rune(value)
	if len(runes) != 1 {
		return 0, fmt.Errorf("delimiter %q must be a single character", value)
	}
	switch runes[0] {
	case '"', '\r', '\n':
		return 0, fmt.Errorf("delimiter %q is not allowed", value)
	}
	return runes[0], nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultStateDir() string {
	if base, ok := os.LookupEnv("XDG_STATE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "songrenamer")
	}
	return "~/.local/state/songrenamer"
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
