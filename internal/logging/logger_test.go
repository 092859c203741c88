package logging_test

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"songrenamer/internal/config"
	"songrenamer/internal/logging"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.File = filepath.Join(t.TempDir(), "logs", "renamer.log")
	cfg.Logging.Console = config.ConsoleNever

	logger, closer, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	defer closer.Close()
	logger.Debug("parsing catalog", logging.String("path", "catalog.csv"))

	content := readLog(t, cfg.Logging.File)
	if !strings.Contains(content, "DEBUG parsing catalog path=catalog.csv") {
		t.Fatalf("expected debug line in log, got %q", content)
	}
}

func TestConsoleLineShape(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "renamer.log")
	logger, closer, err := logging.New(logging.Options{Level: "debug", Format: "console", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer closer.Close()

	logging.NewComponentLogger(logger, "renamer").Warn("song mapping not found", logging.String(logging.FieldPath, "/music/a b.mp3"))

	line := strings.TrimSpace(readLog(t, logPath))
	fields := strings.SplitN(line, " ", 3)
	if len(fields) != 3 {
		t.Fatalf("unexpected line %q", line)
	}
	if fields[1] != "WARNING" {
		t.Fatalf("level = %q, want WARNING", fields[1])
	}
	if !strings.HasPrefix(fields[2], "renamer: song mapping not found") {
		t.Fatalf("unexpected message section %q", fields[2])
	}
	if !strings.Contains(line, `path="/music/a b.mp3"`) {
		t.Fatalf("expected quoted path attribute, got %q", line)
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should be rendered as prefix only, got %q", line)
	}
}

func TestLevelFiltersFileOutput(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "renamer.log")
	logger, closer, err := logging.New(logging.Options{Level: "warn", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer closer.Close()
	logger.Info("renaming file")
	logger.Warn("skipping")

	content := readLog(t, logPath)
	if strings.Contains(content, "renaming file") {
		t.Fatalf("info record should be filtered at warn level: %q", content)
	}
	if !strings.Contains(content, "skipping") {
		t.Fatalf("warn record missing: %q", content)
	}
}

func TestConsoleMirrorNeverBelowInfo(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "renamer.log")
	var console bytes.Buffer
	logger, closer, err := logging.New(logging.Options{
		Level:        "debug",
		OutputPaths:  []string{logPath},
		Console:      &console,
		ConsoleLevel: "info",
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer closer.Close()
	logger.Debug("debug detail")
	logger.Info("renaming file")

	if strings.Contains(console.String(), "debug detail") {
		t.Fatalf("console should not receive debug: %q", console.String())
	}
	if !strings.Contains(console.String(), "renaming file") {
		t.Fatalf("console missing info record: %q", console.String())
	}
	if !strings.Contains(readLog(t, logPath), "debug detail") {
		t.Fatal("log file should receive debug record")
	}
}

func TestNewJSONLogger(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "renamer.json")
	logger, closer, err := logging.New(logging.Options{Format: "json", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer closer.Close()
	logger.Warn("json message", logging.String("k", "v"))

	content := readLog(t, logPath)
	for _, want := range []string{`"level":"warning"`, `"msg":"json message"`, `"k":"v"`, `"ts":`} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %s in %q", want, content)
		}
	}
}

func TestCloserReleasesLogFiles(t *testing.T) {
	dir := t.TempDir()
	paths := []string{filepath.Join(dir, "a.log"), filepath.Join(dir, "b.log"), "stderr"}
	logger, closer, err := logging.New(logging.Options{Level: "info", OutputPaths: paths})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("renaming file")

	if err := closer.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if err := closer.Close(); !errors.Is(err, os.ErrClosed) {
		t.Fatalf("expected both log files closed, second Close err=%v", err)
	}
	if _, err := os.Stderr.Stat(); err != nil {
		t.Fatalf("stderr should stay open: %v", err)
	}
	for _, path := range paths[:2] {
		if !strings.Contains(readLog(t, path), "renaming file") {
			t.Fatalf("expected record in %s", path)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARNING", slog.LevelWarn},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := logging.ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestTeeHandlerCollapsesNil(t *testing.T) {
	if _, ok := logging.TeeHandler(nil, nil).(logging.NoopHandler); !ok {
		t.Fatal("expected NoopHandler when every handler is nil")
	}
	var buf bytes.Buffer
	inner := slog.NewTextHandler(&buf, nil)
	if logging.TeeHandler(nil, inner) != inner {
		t.Fatal("expected single handler to be returned unwrapped")
	}
}

func TestTeeHandlerRespectsEachLevel(t *testing.T) {
	var infoBuf, warnBuf bytes.Buffer
	h := logging.TeeHandler(
		slog.NewJSONHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&warnBuf, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	slog.New(h).With("run_id", "abc").Info("info message")

	if !strings.Contains(infoBuf.String(), `"run_id":"abc"`) {
		t.Fatalf("expected attrs propagated, got %q", infoBuf.String())
	}
	if warnBuf.Len() != 0 {
		t.Fatalf("warn handler should not receive info, got %q", warnBuf.String())
	}
}
