// t2048 is a headless driver for the 2048 puzzle engine.
//
// Usage:
//
//	t2048 replay <moves...>       - Play a move script and print the result
//	t2048 replay --game <id>      - Re-run a stored game and verify its score
//	t2048 leaderboard             - Show the leaderboard file
//	t2048 leaderboard add <score> - Submit a score to the leaderboard
//	t2048 scores                  - Show stored games and statistics
//
// Global flags:
//
//	--seed <value>        - Set RNG seed for reproducible spawns
//	--config <path>       - Custom config YAML
//	--spawn <preset>      - Spawn preset: uniform, classic, hard
//	--db <path>           - Set database path (default: from config)
//	--leaderboard <path>  - Set leaderboard file (default: from config)
package main

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048/internal/config"
	"github.com/vovakirdan/t2048/internal/games/t2048"
	"github.com/vovakirdan/t2048/internal/leaderboard"
)

var (
	// Global flags
	flagSeed        int64
	flagConfig      string
	flagSpawn       string
	flagDBPath      string
	flagLeaderboard string
	flagVerbose     bool
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "t2048",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "t2048",
	Short: "2048 puzzle engine driver",
	Long: `t2048 drives the 2048 puzzle engine from move scripts.

Available commands:
  replay       - Play a move script (or a stored game) and print the result
  leaderboard  - Show or update the top scores file
  scores       - View stored games and statistics

Examples:
  t2048 replay LLURDD --seed 42
  t2048 replay --file moves.txt --json
  t2048 replay --game 6f1c...
  t2048 leaderboard
  t2048 scores --limit 5`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagVerbose {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagSpawn, "spawn", "", "Spawn preset: uniform, classic, hard")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to games database (default: from config)")
	rootCmd.PersistentFlags().StringVar(&flagLeaderboard, "leaderboard", "", "Path to leaderboard file (default: from config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadConfig resolves the config file and applies command-line overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplySpawnPreset(&cfg, config.SpawnPreset(flagSpawn)); err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagLeaderboard != "" {
		cfg.Leaderboard.Path = flagLeaderboard
	}
	logger.Debug("config loaded",
		"four_chance", cfg.Spawn.FourChance,
		"win_tile", cfg.Rules.WinTile,
		"history_limit", cfg.History.Limit,
		"leaderboard", cfg.Leaderboard.Path,
		"db", cfg.Storage.DBPath,
	)
	return cfg, nil
}

// engineOptions maps the config onto engine options.
func engineOptions(cfg config.Config) t2048.Options {
	return t2048.Options{
		FourChance:   cfg.Spawn.FourChance,
		WinTile:      cfg.Rules.WinTile,
		HistoryLimit: cfg.History.Limit,
		InitialTiles: cfg.Spawn.InitialTiles,
	}
}

// resolveSeed returns the --seed value, or a time-based seed when unset.
func resolveSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

func openLeaderboard(cfg config.Config) *leaderboard.Leaderboard {
	return leaderboard.New(cfg.Leaderboard.Path, leaderboard.WithLimit(cfg.Leaderboard.Size))
}
