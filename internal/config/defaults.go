package config

const (
	defaultConfigPath       = "~/.config/songrenamer/config.toml"
	defaultLogFile          = "renamer.log"
	defaultLogFormat        = "console"
	defaultLogLevel         = "debug"
	defaultLogConsole       = ConsoleAuto
	defaultCatalogDelimiter = ","
	defaultJournalEnabled   = true
)

// DefaultExtensions is the audio extension allow-list used when
// rename.extensions is unset.
var DefaultExtensions = []string{".mp3", ".wav", ".aiff", ".aac", ".mp4", ".flac", ".m4a", ".ogg"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir(),
		},
		Logging: Logging{
			File:    defaultLogFile,
			Format:  defaultLogFormat,
			Level:   defaultLogLevel,
			Console: defaultLogConsole,
		},
		Catalog: Catalog{
			Delimiter: defaultCatalogDelimiter,
		},
		Rename: Rename{
			Extensions:              append([]string(nil), DefaultExtensions...),
			NormalizeDirectoryCodes: true,
		},
		Journal: Journal{
			Enabled: defaultJournalEnabled,
		},
	}
}
