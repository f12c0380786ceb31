package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the top scores",
	Long: `Display the leaderboard file, best score first.

The leaderboard keeps the top scores (5 by default) in a JSON file,
leaderboard.json in the working directory unless configured otherwise.

Examples:
  t2048 leaderboard
  t2048 leaderboard --leaderboard ~/scores.json
  t2048 leaderboard add 2048`,
	Args: cobra.NoArgs,
	RunE: runLeaderboard,
}

var leaderboardAddCmd = &cobra.Command{
	Use:   "add <score>",
	Short: "Submit a score to the leaderboard",
	Args:  cobra.ExactArgs(1),
	RunE:  runLeaderboardAdd,
}

func init() {
	leaderboardCmd.AddCommand(leaderboardAddCmd)
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	lb := openLeaderboard(cfg)
	records, err := lb.Load()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render("Leaderboard"))
	if len(records) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		return nil
	}
	fmt.Fprintln(out, renderLeaderboard(records))
	return nil
}

func runLeaderboardAdd(cmd *cobra.Command, args []string) error {
	score, err := strconv.Atoi(args[0])
	if err != nil || score < 0 {
		return fmt.Errorf("invalid score %q", args[0])
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	lb := openLeaderboard(cfg)
	qualifies, err := lb.Qualifies(score)
	if err != nil {
		return err
	}

	records, err := lb.Save(score)
	if err != nil {
		return err
	}
	if !qualifies {
		logger.Info("score did not make the leaderboard", "score", score)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, titleStyle.Render("Leaderboard"))
	fmt.Fprintln(out, renderLeaderboard(records))
	return nil
}
