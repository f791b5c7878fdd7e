package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestLogLevels(t *testing.T) {
	tests := []struct {
		level    string
		expected []string
		excluded []string
	}{
		{level: "error", expected: []string{"ERROR"}, excluded: []string{"WARN", "INFO", "DEBUG"}},
		{level: "warn", expected: []string{"ERROR", "WARN"}, excluded: []string{"INFO", "DEBUG"}},
		{level: "info", expected: []string{"ERROR", "WARN", "INFO"}, excluded: []string{"DEBUG"}},
		{level: "debug", expected: []string{"ERROR", "WARN", "INFO", "DEBUG"}},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			if err := InitWithFileConfig(tt.level, FileConfig{}, &buf); err != nil {
				t.Fatalf("failed to init logger: %v", err)
			}
			Log.Debug("debug message")
			Log.Info("info message")
			Log.Warn("warn message")
			Log.Error("error message")
			Sync()
			out := buf.String()
			for _, exp := range tt.expected {
				if !strings.Contains(out, exp) {
					t.Errorf("expected %s in log output", exp)
				}
			}
			for _, exc := range tt.excluded {
				if strings.Contains(out, exc) {
					t.Errorf("unexpected %s in log output for level %s", exc, tt.level)
				}
			}
		})
	}
}

func TestBadLevel(t *testing.T) {
	if err := InitWithFileConfig("loud", FileConfig{}, nil); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestFileOutput(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "wscrew.log")
	err := InitWithFileConfig("debug", FileConfig{Path: logFile, MaxSizeMB: 1, MaxBackups: 1}, nil)
	if err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	Log.Debug("bridge skipped", zap.Int("loop1", 3), zap.Int("loop2", 4))
	Sync()
	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	for _, want := range []string{`"level":"debug"`, `"msg":"bridge skipped"`, `"loop1":3`} {
		if !strings.Contains(string(content), want) {
			t.Errorf("expected %s in %s", want, content)
		}
	}
}

func TestDefaultFileConfig(t *testing.T) {
	cfg := DefaultFileConfig("/tmp/test.log")
	if cfg.Path != "/tmp/test.log" {
		t.Errorf("expected path /tmp/test.log, got %s", cfg.Path)
	}
	if cfg.MaxSizeMB != 10 || cfg.MaxBackups != 3 || cfg.MaxAgeDays != 7 || !cfg.Compress {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}
