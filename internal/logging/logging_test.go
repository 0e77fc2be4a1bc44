package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWithoutBaseDir(t *testing.T) {
	path, err := Init(Options{})
	if err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if path != "" {
		t.Errorf("Init() path = %q, want empty", path)
	}
}

func TestInitWritesRunLog(t *testing.T) {
	dir := t.TempDir()

	path, err := Init(Options{BaseDir: dir, FileLevel: "DEBUG"})
	if err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if !strings.HasPrefix(path, filepath.Join(dir, "run", "logs")) {
		t.Errorf("run log %q not under %s/run/logs", path, dir)
	}

	slog.Debug("provisioning", "stage", "environment")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading run log: %v", err)
	}
	if !strings.Contains(string(data), "provisioning") {
		t.Errorf("run log missing record: %q", data)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
