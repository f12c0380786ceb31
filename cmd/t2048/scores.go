package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048/internal/storage"
)

var (
	flagLimit  int
	flagRecent bool
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show stored games and statistics",
	Long: `Display the best stored games and aggregated statistics.

Every finished game is stored with its seed and move script, so it can be
re-run with 't2048 replay --game <id>'.

Examples:
  t2048 scores
  t2048 scores --limit 5
  t2048 scores --recent
  t2048 scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagLimit, "limit", "n", 10, "Number of games to show")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Order by date instead of score")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all stored games")
}

func runScores(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagClear {
		if err := store.ClearGames(); err != nil {
			return err
		}
		fmt.Fprintln(out, "All stored games deleted.")
		return nil
	}

	var games []storage.GameRecord
	if flagRecent {
		games, err = store.RecentGames(flagLimit)
	} else {
		games, err = store.TopGames(flagLimit)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(out, titleStyle.Render("Games - 2048"))
	fmt.Fprintln(out)

	if len(games) == 0 {
		fmt.Fprintln(out, "No games recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Finish a game with 't2048 replay' to record the first one!")
		return nil
	}

	fmt.Fprintln(out, renderGames(games))
	fmt.Fprintln(out)

	stats, err := store.Stats()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, renderStats(stats))
	return nil
}
