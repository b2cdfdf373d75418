package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexbotov/slots/internal/config"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		logger, err := New(config.Default().Log)
		if err != nil {
			t.Fatalf("Failed to build logger: %v", err)
		}
		defer logger.Sync()

		if logger.Core().Enabled(zapcore.InfoLevel) {
			t.Error("Expected info to be disabled at the default warn level")
		}
		if !logger.Core().Enabled(zapcore.WarnLevel) {
			t.Error("Expected warn to be enabled")
		}
	})

	t.Run("JSONToFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "slots.log")
		logger, err := New(config.LogConfig{Level: "info", Format: "json", Output: path})
		if err != nil {
			t.Fatalf("Failed to build logger: %v", err)
		}

		logger.Info("round complete")
		logger.Sync()

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("Failed to read log file: %v", err)
		}
		if !strings.Contains(string(data), `"msg":"round complete"`) {
			t.Errorf("Expected JSON log line, got %s", data)
		}
	})

	t.Run("InvalidLevel", func(t *testing.T) {
		if _, err := New(config.LogConfig{Level: "loud", Format: "console"}); err == nil {
			t.Error("Expected error for invalid level")
		}
	})

	t.Run("InvalidFormat", func(t *testing.T) {
		if _, err := New(config.LogConfig{Level: "info", Format: "xml"}); err == nil {
			t.Error("Expected error for invalid format")
		}
	})
}
