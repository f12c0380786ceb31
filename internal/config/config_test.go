package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, yaml.Unmarshal(DefaultYAML(), &cfg))

	assert.Equal(t, DefaultConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	content := []byte("spawn:\n  four_chance: 0.1\nhistory:\n  limit: 50\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.InDelta(t, 0.1, cfg.Spawn.FourChance, 1e-9)
	assert.Equal(t, 50, cfg.History.Limit)

	// Unset keys keep their defaults
	assert.Equal(t, 2, cfg.Spawn.InitialTiles)
	assert.Equal(t, 2048, cfg.Rules.WinTile)
	assert.Equal(t, 5, cfg.Leaderboard.Size)
}

func TestLoadCustomPathMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadCustomPathMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("spawn: [unclosed"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadCustomPathInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  win_tile: 1000\n"), 0o600))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"four chance above one", func(c *Config) { c.Spawn.FourChance = 1.5 }},
		{"four chance negative", func(c *Config) { c.Spawn.FourChance = -0.1 }},
		{"too many initial tiles", func(c *Config) { c.Spawn.InitialTiles = 17 }},
		{"win tile not power of two", func(c *Config) { c.Rules.WinTile = 3 }},
		{"negative history limit", func(c *Config) { c.History.Limit = -1 }},
		{"empty leaderboard", func(c *Config) { c.Leaderboard.Size = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	disabled := DefaultConfig()
	disabled.Rules.WinTile = 0
	assert.NoError(t, disabled.Validate(), "win_tile 0 disables the win flag")
}

func TestApplySpawnPreset(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, ApplySpawnPreset(&cfg, SpawnClassic))
	assert.InDelta(t, 0.1, cfg.Spawn.FourChance, 1e-9)

	require.NoError(t, ApplySpawnPreset(&cfg, SpawnHard))
	assert.InDelta(t, 0.25, cfg.Spawn.FourChance, 1e-9)

	require.NoError(t, ApplySpawnPreset(&cfg, ""))
	assert.InDelta(t, 0.25, cfg.Spawn.FourChance, 1e-9, "empty preset keeps the current value")

	require.NoError(t, ApplySpawnPreset(&cfg, SpawnUniform))
	assert.InDelta(t, 0.5, cfg.Spawn.FourChance, 1e-9)

	assert.ErrorIs(t, ApplySpawnPreset(&cfg, "impossible"), ErrInvalidConfig)
}

func TestExpandHome(t *testing.T) {
	got, err := ExpandHome("/abs/path.db")
	require.NoError(t, err)
	assert.Equal(t, "/abs/path.db", got)

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err = ExpandHome("~/.arcade/t2048.db")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".arcade", "t2048.db"), got)
}
