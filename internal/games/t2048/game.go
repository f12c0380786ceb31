package t2048

import (
	"fmt"
	"math/rand"
	"time"
)

// Status is the engine-level game status.
type Status string

const (
	StatusPlaying  Status = "playing"
	StatusTerminal Status = "terminal"
)

// DefaultWinTile is the classic target tile.
const DefaultWinTile = 2048

// Options tunes an Engine.
type Options struct {
	FourChance   float64 // Probability of spawning 4 instead of 2
	WinTile      int     // Tile value that sets Won; 0 disables
	HistoryLimit int     // Max undo snapshots; 0 is unbounded
	InitialTiles int     // Tiles spawned by NewGame
}

// DefaultOptions returns the standard rules: uniform 2/4 spawns, a 2048
// target, unbounded history and two starting tiles.
func DefaultOptions() Options {
	return Options{
		FourChance:   DefaultFourChance,
		WinTile:      DefaultWinTile,
		HistoryLimit: 0,
		InitialTiles: 2,
	}
}

// Engine applies moves to caller-owned GameState values.
// Its only internal state is the spawner's random source; calls must be
// serialized by the caller.
type Engine struct {
	spawner *Spawner
	opts    Options
}

// NewEngine creates an engine drawing spawns from rng.
// A nil rng is replaced with a time-seeded source.
func NewEngine(rng *rand.Rand, opts Options) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.InitialTiles < 0 {
		opts.InitialTiles = 0
	}
	return &Engine{
		spawner: NewSpawner(rng, opts.FourChance),
		opts:    opts,
	}
}

// NewSeededEngine creates an engine with a deterministic random source.
func NewSeededEngine(seed int64, opts Options) *Engine {
	return NewEngine(rand.New(rand.NewSource(seed)), opts)
}

// Options returns the engine's options.
func (e *Engine) Options() Options {
	return e.opts
}

// GameState is the full state of one game. It is owned by the caller and
// mutated only through Engine methods.
type GameState struct {
	board    Board
	score    int
	moves    int
	undos    int
	won      bool
	terminal bool
	history  *History
}

// NewGame returns an empty board with the initial tiles spawned,
// score 0 and an empty history.
func (e *Engine) NewGame() *GameState {
	s := &GameState{history: NewHistory(e.opts.HistoryLimit)}
	for iter := 0; iter < e.opts.InitialTiles; iter++ {
		e.spawner.Spawn(&s.board)
	}
	e.evaluate(s)
	return s
}

// Reset starts a fresh game. It is equivalent to NewGame.
func (e *Engine) Reset() *GameState {
	return e.NewGame()
}

// FromBoard builds a state from an existing position with an empty history.
func (e *Engine) FromBoard(board Board, score int) *GameState {
	s := &GameState{
		board:   board,
		score:   score,
		history: NewHistory(e.opts.HistoryLimit),
	}
	e.evaluate(s)
	return s
}

// ApplyMove attempts a move on s.
//
// An invalid direction returns ErrInvalidDirection and leaves s untouched.
// Otherwise a snapshot is pushed first, even if the move turns out to be a
// no-op, so one Undo reverses exactly one ApplyMove. When the board
// changes, the merged board and score are committed, one tile is spawned
// and the terminal and won flags are re-evaluated.
func (e *Engine) ApplyMove(s *GameState, dir Direction) (MoveResult, error) {
	if !dir.Valid() {
		return MoveResult{Board: s.board}, fmt.Errorf("%w: %d", ErrInvalidDirection, int(dir))
	}

	s.history.Push(s.entry())

	res, err := Move(s.board, dir)
	if err != nil {
		return res, err
	}
	if !res.Moved {
		return res, nil
	}

	s.board = res.Board
	s.score += res.ScoreDelta
	s.moves++

	if tile, ok := e.spawner.Spawn(&s.board); ok {
		res.Spawned = &tile
	}

	e.evaluate(s)
	return res, nil
}

// Undo restores the most recent snapshot. It reports false, and does
// nothing, when the history is empty. The terminal flag is recomputed from
// the restored board, so undoing the move that ended the game leaves
// StatusTerminal.
func (e *Engine) Undo(s *GameState) bool {
	entry, ok := s.history.Pop()
	if !ok {
		return false
	}

	s.board = entry.Board
	s.score = entry.Score
	s.moves = entry.Moves
	s.won = entry.Won
	s.undos++
	s.terminal = IsTerminal(s.board)
	return true
}

// evaluate refreshes the derived flags after the board changed.
func (e *Engine) evaluate(s *GameState) {
	if !s.won && e.opts.WinTile > 0 && MaxTile(s.board) >= e.opts.WinTile {
		s.won = true
	}
	s.terminal = IsTerminal(s.board)
}

// entry captures the current state for the history stack.
func (s *GameState) entry() Entry {
	return Entry{
		Score: s.score,
		Board: s.board,
		Moves: s.moves,
		Won:   s.won,
	}
}

// Board returns a copy of the current board.
func (s *GameState) Board() Board {
	return s.board
}

// Score returns the cumulative score.
func (s *GameState) Score() int {
	return s.score
}

// Moves returns the number of moves that changed the board.
func (s *GameState) Moves() int {
	return s.moves
}

// Undos returns how many snapshots have been restored.
func (s *GameState) Undos() int {
	return s.undos
}

// HistoryLen returns the number of undo snapshots available.
func (s *GameState) HistoryLen() int {
	return s.history.Len()
}

// IsTerminal reports whether no move can change the board.
func (s *GameState) IsTerminal() bool {
	return s.terminal
}

// Won reports whether the win tile has been reached.
func (s *GameState) Won() bool {
	return s.won
}

// MaxTile returns the highest tile on the board.
func (s *GameState) MaxTile() int {
	return MaxTile(s.board)
}

// Status returns StatusTerminal once no move is possible.
func (s *GameState) Status() Status {
	if s.terminal {
		return StatusTerminal
	}
	return StatusPlaying
}
