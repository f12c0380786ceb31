// Package config provides YAML-based configuration loading and spawn
// presets for the 2048 engine and its leaderboard.
package config

import (
	"errors"
	"fmt"
)

// Config contains all configuration for the 2048 engine.
type Config struct {
	Spawn       SpawnConfig       `yaml:"spawn"`
	Rules       RulesConfig       `yaml:"rules"`
	History     HistoryConfig     `yaml:"history"`
	Leaderboard LeaderboardConfig `yaml:"leaderboard"`
	Storage     StorageConfig     `yaml:"storage"`
}

// SpawnConfig defines how new tiles appear.
type SpawnConfig struct {
	FourChance   float64 `yaml:"four_chance"`   // Probability of a 4 instead of a 2 (0.0-1.0)
	InitialTiles int     `yaml:"initial_tiles"` // Tiles placed on a new board
}

// RulesConfig defines win conditions.
type RulesConfig struct {
	WinTile int `yaml:"win_tile"` // 0 disables the win flag
}

// HistoryConfig defines the undo stack.
type HistoryConfig struct {
	Limit int `yaml:"limit"` // 0 keeps every snapshot
}

// LeaderboardConfig defines the leaderboard file.
type LeaderboardConfig struct {
	Path string `yaml:"path"`
	Size int    `yaml:"size"`
}

// StorageConfig defines the game history database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Spawn.FourChance < 0 || c.Spawn.FourChance > 1 {
		return fmt.Errorf("%w: spawn.four_chance %v not in [0, 1]", ErrInvalidConfig, c.Spawn.FourChance)
	}
	if c.Spawn.InitialTiles < 0 || c.Spawn.InitialTiles > 16 {
		return fmt.Errorf("%w: spawn.initial_tiles %d not in [0, 16]", ErrInvalidConfig, c.Spawn.InitialTiles)
	}
	if c.Rules.WinTile < 0 || (c.Rules.WinTile > 0 && !isPowerOfTwo(c.Rules.WinTile)) {
		return fmt.Errorf("%w: rules.win_tile %d is not a power of two", ErrInvalidConfig, c.Rules.WinTile)
	}
	if c.History.Limit < 0 {
		return fmt.Errorf("%w: history.limit %d is negative", ErrInvalidConfig, c.History.Limit)
	}
	if c.Leaderboard.Size <= 0 {
		return fmt.Errorf("%w: leaderboard.size %d must be positive", ErrInvalidConfig, c.Leaderboard.Size)
	}
	return nil
}

func isPowerOfTwo(n int) bool {
	return n >= 2 && n&(n-1) == 0
}

// SpawnPreset represents a named spawn distribution.
type SpawnPreset string

const (
	SpawnUniform SpawnPreset = "uniform" // 50/50 between 2 and 4
	SpawnClassic SpawnPreset = "classic" // 90/10, the common 2048 rule
	SpawnHard    SpawnPreset = "hard"    // 75/25
)

// FourChanceForPreset returns the four_chance for a spawn preset.
func FourChanceForPreset(preset SpawnPreset) (float64, bool) {
	switch preset {
	case SpawnUniform:
		return 0.5, true
	case SpawnClassic:
		return 0.1, true
	case SpawnHard:
		return 0.25, true
	default:
		return 0, false
	}
}

// ApplySpawnPreset modifies the config based on a spawn preset.
// An empty preset leaves the config unchanged.
func ApplySpawnPreset(cfg *Config, preset SpawnPreset) error {
	if preset == "" {
		return nil
	}
	chance, ok := FourChanceForPreset(preset)
	if !ok {
		return fmt.Errorf("%w: unknown spawn preset %q (want uniform, classic or hard)", ErrInvalidConfig, preset)
	}
	cfg.Spawn.FourChance = chance
	return nil
}
