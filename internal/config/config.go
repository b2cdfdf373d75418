// Package config provides configuration management for the slot machine
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Draw policies accepted by GameConfig.DrawPolicy
const (
	DrawPolicyRemoval     = "removal"
	DrawPolicyReplacement = "replacement"
)

// SymbolPoolSize is the pool length of the built-in symbol table (A:4, B:6, C:7, D:9).
// Rows cannot exceed it when columns are drawn without replacement.
const SymbolPoolSize = 26

// DepositCeiling caps MaxDeposit so the balance keeps headroom for winnings
const DepositCeiling int64 = 1_000_000_000_000_000

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all configuration for the slot machine
type Config struct {
	Game  GameConfig  `yaml:"game"`
	Log   LogConfig   `yaml:"log"`
	Audit AuditConfig `yaml:"audit"`
}

// GameConfig holds the machine layout and bet bounds
type GameConfig struct {
	Rows       int    `yaml:"rows"`
	Columns    int    `yaml:"columns"`
	MaxLines   int    `yaml:"max_lines"`
	MinBet     int64  `yaml:"min_bet"`
	MaxBet     int64  `yaml:"max_bet"`
	MaxDeposit int64  `yaml:"max_deposit"`
	Currency   string `yaml:"currency"`
	DrawPolicy string `yaml:"draw_policy"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console, json
	Output string `yaml:"output"` // stderr, stdout or a file path
}

// AuditConfig holds audit trail configuration
type AuditConfig struct {
	LargeWin int64 `yaml:"large_win"` // winnings at or above this are flagged
}

// Default returns the built-in configuration: a 3x3 machine, up to 3 lines,
// bets from 1 to 100 per line.
func Default() *Config {
	return &Config{
		Game: GameConfig{
			Rows:       3,
			Columns:    3,
			MaxLines:   3,
			MinBet:     1,
			MaxBet:     100,
			MaxDeposit: 1_000_000_000,
			Currency:   "Rs.",
			DrawPolicy: DrawPolicyRemoval,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
			Output: "stderr",
		},
		Audit: AuditConfig{
			LargeWin: 500,
		},
	}
}

// Load builds the configuration from defaults, then the optional YAML file at
// path, then SLOTS_* environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.Game.Rows = getEnvAsInt("SLOTS_ROWS", cfg.Game.Rows)
	cfg.Game.Columns = getEnvAsInt("SLOTS_COLUMNS", cfg.Game.Columns)
	cfg.Game.MaxLines = getEnvAsInt("SLOTS_MAX_LINES", cfg.Game.MaxLines)
	cfg.Game.MinBet = int64(getEnvAsInt("SLOTS_MIN_BET", int(cfg.Game.MinBet)))
	cfg.Game.MaxBet = int64(getEnvAsInt("SLOTS_MAX_BET", int(cfg.Game.MaxBet)))
	cfg.Game.MaxDeposit = int64(getEnvAsInt("SLOTS_MAX_DEPOSIT", int(cfg.Game.MaxDeposit)))
	cfg.Game.Currency = getEnv("SLOTS_CURRENCY", cfg.Game.Currency)
	cfg.Game.DrawPolicy = strings.ToLower(getEnv("SLOTS_DRAW_POLICY", cfg.Game.DrawPolicy))
	cfg.Log.Level = getEnv("SLOTS_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getEnv("SLOTS_LOG_FORMAT", cfg.Log.Format)
	cfg.Log.Output = getEnv("SLOTS_LOG_OUTPUT", cfg.Log.Output)
	cfg.Audit.LargeWin = int64(getEnvAsInt("SLOTS_LARGE_WIN", int(cfg.Audit.LargeWin)))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the machine layout and bet bounds
func (c *Config) Validate() error {
	g := c.Game
	switch {
	case g.Rows < 1 || g.Columns < 1:
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalidConfig, g.Rows, g.Columns)
	case g.MaxLines < 1 || g.MaxLines > g.Rows:
		return fmt.Errorf("%w: max_lines must be between 1 and rows (%d), got %d", ErrInvalidConfig, g.Rows, g.MaxLines)
	case g.MinBet < 1 || g.MinBet > g.MaxBet:
		return fmt.Errorf("%w: bet bounds must satisfy 1 <= min_bet <= max_bet, got %d..%d", ErrInvalidConfig, g.MinBet, g.MaxBet)
	case g.MaxDeposit < 1 || g.MaxDeposit > DepositCeiling:
		return fmt.Errorf("%w: max_deposit must be between 1 and %d, got %d", ErrInvalidConfig, DepositCeiling, g.MaxDeposit)
	case g.DrawPolicy != DrawPolicyRemoval && g.DrawPolicy != DrawPolicyReplacement:
		return fmt.Errorf("%w: unknown draw_policy %q", ErrInvalidConfig, g.DrawPolicy)
	case g.DrawPolicy == DrawPolicyRemoval && g.Rows > SymbolPoolSize:
		return fmt.Errorf("%w: %d rows exceed the %d-symbol pool", ErrInvalidConfig, g.Rows, SymbolPoolSize)
	case c.Audit.LargeWin < 0:
		return fmt.Errorf("%w: large_win must not be negative", ErrInvalidConfig)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
