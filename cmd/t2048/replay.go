package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/t2048/internal/config"
	"github.com/vovakirdan/t2048/internal/games/t2048"
	"github.com/vovakirdan/t2048/internal/leaderboard"
	"github.com/vovakirdan/t2048/internal/storage"
)

var (
	flagScriptFile string
	flagJSON       bool
	flagNoRecord   bool
	flagGameID     string
)

// errReplayMismatch is returned when a stored game does not reproduce.
var errReplayMismatch = errors.New("replay does not reproduce the stored game")

var replayCmd = &cobra.Command{
	Use:   "replay [moves...]",
	Short: "Play a move script and print the result",
	Long: `Start a new game and apply a move script to it.

Moves:
  U D L R        - Up, Down, Left, Right (case-insensitive)
  Z              - Undo the last move
  up down left right undo
                 - The same as words

Moves may be grouped ("LLUR") and separated by spaces or commas.
When the game ends with no moves left, the score is submitted to the
leaderboard and the game is stored in the database.

Examples:
  t2048 replay LLURDD --seed 42
  t2048 replay left left up undo --seed 7
  t2048 replay --file moves.txt --json
  echo "LURD LURD" | t2048 replay --file -
  t2048 replay --game 6f1c2a4e-...`,
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().StringVarP(&flagScriptFile, "file", "f", "", "Read the move script from a file (- for stdin)")
	replayCmd.Flags().BoolVar(&flagJSON, "json", false, "Print a JSON snapshot after every step")
	replayCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not submit the result to the leaderboard or database")
	replayCmd.Flags().StringVar(&flagGameID, "game", "", "Re-run a stored game by id and verify its score")
}

// replayResult is the outcome of one scripted game.
type replayResult struct {
	Seed      int64
	Options   t2048.Options
	Script    string
	State     *t2048.GameState
	Snapshots []t2048.Snapshot
}

// replay plays steps on a fresh game seeded with seed. The returned
// snapshots hold the starting position followed by one entry per step.
func replay(opts t2048.Options, seed int64, steps []t2048.Step) (replayResult, error) {
	engine := t2048.NewSeededEngine(seed, opts)
	state := engine.NewGame()

	res := replayResult{
		Seed:      seed,
		Options:   engine.Options(),
		Script:    t2048.FormatScript(steps),
		State:     state,
		Snapshots: make([]t2048.Snapshot, 0, len(steps)+1),
	}
	res.Snapshots = append(res.Snapshots, state.Snapshot())

	err := engine.Play(state, steps, func(i int, step t2048.Step, mr t2048.MoveResult) {
		snap := state.Snapshot()
		snap.Step = i + 1
		snap.Action = step.String()
		res.Snapshots = append(res.Snapshots, snap)

		logger.Debug("step",
			"n", snap.Step,
			"action", snap.Action,
			"moved", mr.Moved,
			"gain", mr.ScoreDelta,
			"score", snap.Score,
		)
	})
	if err != nil {
		return res, err
	}
	return res, nil
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if flagGameID != "" {
		return runStoredReplay(cmd, cfg, flagGameID)
	}

	script, err := readScript(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	steps, err := t2048.ParseScript(script)
	if err != nil {
		return fmt.Errorf("invalid move script: %w", err)
	}

	seed := resolveSeed()
	res, err := replay(engineOptions(cfg), seed, steps)
	if err != nil {
		return err
	}

	if err := printReplay(cmd.OutOrStdout(), res); err != nil {
		return err
	}

	if flagNoRecord || !res.State.IsTerminal() {
		return nil
	}
	return recordGame(cmd.OutOrStdout(), cfg, res)
}

// runStoredReplay re-runs a stored game and checks that it reproduces.
func runStoredReplay(cmd *cobra.Command, cfg config.Config, id string) error {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	game, err := store.Game(id)
	if err != nil {
		return err
	}

	steps, err := t2048.ParseScript(game.Script)
	if err != nil {
		return fmt.Errorf("stored game %s has an invalid script: %w", id, err)
	}

	res, err := replay(storedOptions(game), game.Seed, steps)
	if err != nil {
		return err
	}

	if err := printReplay(cmd.OutOrStdout(), res); err != nil {
		return err
	}

	final := res.State.Snapshot()
	if final.Score != game.Score || final.MaxTile != game.MaxTile {
		return fmt.Errorf("%w: stored score %d (max %d), replayed %d (max %d)",
			errReplayMismatch, game.Score, game.MaxTile, final.Score, final.MaxTile)
	}

	if !flagJSON {
		fmt.Fprintln(cmd.OutOrStdout(), goodStyle.Render("verified")+" "+labelStyle.Render("game "+id))
	}
	return nil
}

// storedOptions rebuilds the engine rules a game was recorded with.
// The current config is not consulted.
func storedOptions(g storage.GameRecord) t2048.Options {
	return t2048.Options{
		FourChance:   g.FourChance,
		InitialTiles: g.InitialTiles,
		HistoryLimit: g.HistoryLimit,
		WinTile:      g.WinTile,
	}
}

// readScript returns the move script from --file or the arguments.
func readScript(stdin io.Reader, args []string) (string, error) {
	if flagScriptFile == "" {
		return strings.Join(args, " "), nil
	}
	if len(args) > 0 {
		return "", errors.New("use either --file or move arguments, not both")
	}

	if flagScriptFile == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("cannot read script from stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(flagScriptFile)
	if err != nil {
		return "", fmt.Errorf("cannot read script: %w", err)
	}
	return string(data), nil
}

// printReplay writes either the JSON snapshots or the final board.
func printReplay(w io.Writer, res replayResult) error {
	if flagJSON {
		enc := json.NewEncoder(w)
		for _, snap := range res.Snapshots {
			if err := enc.Encode(snap); err != nil {
				return fmt.Errorf("cannot encode snapshot: %w", err)
			}
		}
		return nil
	}

	final := res.State.Snapshot()
	fmt.Fprintln(w, renderBoard(final.Board))
	fmt.Fprintln(w, renderSummary(final))
	fmt.Fprintf(w, "%s %d  %s %s\n",
		labelStyle.Render("Seed:"), res.Seed,
		labelStyle.Render("Script:"), res.Script)
	return nil
}

// recordGame submits a finished game to the leaderboard and the database.
// Storage failures are logged and do not fail the command.
func recordGame(w io.Writer, cfg config.Config, res replayResult) error {
	final := res.State.Snapshot()

	lb := openLeaderboard(cfg)
	records, err := lb.Save(final.Score)
	if err != nil {
		if errors.Is(err, leaderboard.ErrCorrupt) {
			logger.Warn("leaderboard file is corrupt, score not saved", "path", lb.Path(), "error", err)
		} else {
			return err
		}
	} else if !flagJSON {
		fmt.Fprintln(w)
		fmt.Fprintln(w, titleStyle.Render("Leaderboard"))
		fmt.Fprintln(w, renderLeaderboard(records))
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open games database", "error", err)
		return nil
	}
	defer store.Close()

	id, err := store.SaveGame(storage.GameRecord{
		Seed:         res.Seed,
		FourChance:   res.Options.FourChance,
		InitialTiles: res.Options.InitialTiles,
		HistoryLimit: res.Options.HistoryLimit,
		WinTile:      res.Options.WinTile,
		Script:       res.Script,
		Score:        final.Score,
		MaxTile:      final.MaxTile,
		Moves:        final.Moves,
		Undos:        final.Undos,
		Won:          final.Won,
		Terminal:     final.Status == t2048.StatusTerminal,
	})
	if err != nil {
		logger.Warn("could not store game", "error", err)
		return nil
	}

	logger.Info("game stored", "id", id, "score", final.Score)
	return nil
}
