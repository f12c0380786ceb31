package config

import (
	_ "embed"
)

//go:embed defaults/t2048.yaml
var defaultT2048YAML []byte

// DefaultConfig returns the default 2048 configuration.
func DefaultConfig() Config {
	return Config{
		Spawn: SpawnConfig{
			FourChance:   0.5,
			InitialTiles: 2,
		},
		Rules: RulesConfig{
			WinTile: 2048,
		},
		History: HistoryConfig{
			Limit: 0,
		},
		Leaderboard: LeaderboardConfig{
			Path: "leaderboard.json",
			Size: 5,
		},
		Storage: StorageConfig{
			DBPath: "~/.arcade/t2048.db",
		},
	}
}

// DefaultYAML returns the embedded default config file contents.
func DefaultYAML() []byte {
	return defaultT2048YAML
}
