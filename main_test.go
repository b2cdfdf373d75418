package main

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexbotov/slots/internal/game"
)

func TestRun(t *testing.T) {
	t.Setenv("SLOTS_LOG_LEVEL", "error")

	t.Run("MissingConfigFile", func(t *testing.T) {
		err := run([]string{"-config", filepath.Join(t.TempDir(), "missing.yaml")})
		if err == nil {
			t.Fatal("Expected an error for a missing config file")
		}
		if !strings.Contains(err.Error(), "failed to load config") {
			t.Errorf("Expected config load error, got %v", err)
		}
	})

	t.Run("UnknownFlag", func(t *testing.T) {
		if err := run([]string{"-nope"}); err == nil {
			t.Error("Expected an error for an unknown flag")
		}
	})

	t.Run("Help", func(t *testing.T) {
		if err := run([]string{"-h"}); err != nil {
			t.Errorf("Expected help to succeed, got %v", err)
		}
	})

	t.Run("Simulation", func(t *testing.T) {
		if err := run([]string{"-simulate", "50", "-seed", "7", "-json"}); err != nil {
			t.Errorf("Expected simulation to succeed, got %v", err)
		}
	})

	t.Run("SimulationErrorReturned", func(t *testing.T) {
		err := run([]string{"-simulate", "10", "-seed", "7", "-lines", "9"})
		if !errors.Is(err, game.ErrInvalidLines) {
			t.Errorf("Expected ErrInvalidLines, got %v", err)
		}
	})
}
