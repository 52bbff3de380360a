package logging_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"episodecheck/internal/logging"
	"episodecheck/internal/services"
	"episodecheck/internal/testsupport"
)

func newFileLogger(t *testing.T, format, level string) (func(), string) {
	t.Helper()
	logPath := filepath.Join(t.TempDir(), "test.log")
	logger, err := logging.New(logging.Options{Format: format, Level: level, OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	emit := func() {
		ctx := services.WithSeriesItem(services.WithRequestID(context.Background(), "req-xyz"), "Q100")
		log := logging.WithContext(ctx, logging.NewComponentLogger(logger, "seriescheck"))
		log.Info("checked series", logging.Int("episodes", 12), logging.String("name", "Test Series"))
	}
	return emit, logPath
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("hello from config")

	content := readLog(t, filepath.Join(cfg.Paths.LogDir, "episodecheck.log"))
	if !strings.Contains(content, "hello from config") {
		t.Fatalf("expected message in log file, got %q", content)
	}
}

func TestConsoleLoggerFormat(t *testing.T) {
	emit, path := newFileLogger(t, "console", "info")
	emit()
	line := strings.TrimSpace(readLog(t, path))

	for _, fragment := range []string{
		" INFO seriescheck: checked series",
		"episodes=12",
		`name="Test Series"`,
		"request_id=req-xyz",
		"series_item=Q100",
	} {
		if !strings.Contains(line, fragment) {
			t.Fatalf("expected %q in %q", fragment, line)
		}
	}
	if strings.Contains(line, "component=") {
		t.Fatalf("component should be a prefix, got %q", line)
	}
	if strings.Contains(line, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", line)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	emit, path := newFileLogger(t, "console", "debug")
	emit()
	if content := readLog(t, path); !strings.Contains(content, ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestJSONLoggerKeys(t *testing.T) {
	emit, path := newFileLogger(t, "json", "info")
	emit()

	var record map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(readLog(t, path))), &record); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if record["level"] != "info" || record["msg"] != "checked series" {
		t.Fatalf("unexpected record: %#v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key, got %#v", record)
	}
	if record[logging.FieldComponent] != "seriescheck" || record[logging.FieldSeriesItem] != "Q100" {
		t.Fatalf("missing structured fields: %#v", record)
	}
}

func TestLevelFiltering(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "warn.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "warn", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("dropped")
	logging.WarnWithContext(logger, "cache unavailable", "cache_read_failed")

	content := readLog(t, logPath)
	if strings.Contains(content, "dropped") {
		t.Fatalf("info line should be filtered, got %q", content)
	}
	for _, fragment := range []string{"cache unavailable", "event_type=cache_read_failed", "error_hint=", "impact="} {
		if !strings.Contains(content, fragment) {
			t.Fatalf("expected %q in %q", fragment, content)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLogger(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), 100) {
		t.Fatal("nop logger should never be enabled")
	}
	logging.WithContext(context.Background(), nil).Info("ignored")
}
