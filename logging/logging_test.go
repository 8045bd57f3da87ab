package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/nathoo/battlecore/config"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battle.log")
	logger, err := New(config.Log{Level: "info", File: path, Encoding: "json"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("attack", zap.String("battle", "b1"), zap.Int("damage", 12))
	logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line (debug filtered), got %d: %q", len(lines), data)
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "attack" || entry["battle"] != "b1" || entry["damage"] != float64(12) {
		t.Errorf("entry = %v", entry)
	}
	if entry["level"] != "info" {
		t.Errorf("level = %v", entry["level"])
	}
}

func TestNew_BadLevel(t *testing.T) {
	if _, err := New(config.Log{Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestQuiet(t *testing.T) {
	logger, err := Quiet(config.Log{Level: "info"})
	if err != nil {
		t.Fatal(err)
	}
	if logger.Core().Enabled(zap.ErrorLevel) {
		t.Error("quiet logger without a file should discard everything")
	}

	path := filepath.Join(t.TempDir(), "tui.log")
	logger, err = Quiet(config.Log{Level: "warn", File: path, Encoding: "console"})
	if err != nil {
		t.Fatal(err)
	}
	logger.Warn("presenter failed")
	logger.Sync()
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "presenter failed") {
		t.Errorf("log file = %q", data)
	}
}
