// Package storage provides SQLite-based persistence for finished 2048 games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when a game id has no stored record.
var ErrNotFound = errors.New("storage: game not found")

// Store manages the SQLite database connection for game persistence.
type Store struct {
	db *sql.DB
}

// GameRecord is one stored game. Seed, Script and the rule fields are
// enough to replay it.
type GameRecord struct {
	ID           string
	Seed         int64
	FourChance   float64
	InitialTiles int
	HistoryLimit int
	WinTile      int
	Script       string
	Score        int
	MaxTile      int
	Moves        int
	Undos        int
	Won          bool
	Terminal     bool
	CreatedAt    time.Time
}

// Stats contains aggregated statistics over all stored games.
type Stats struct {
	GamesCount int
	WonCount   int
	HighScore  int
	BestTile   int
	AvgScore   float64
	TotalMoves int64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS games (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			four_chance REAL NOT NULL,
			initial_tiles INTEGER NOT NULL DEFAULT 2,
			history_limit INTEGER NOT NULL DEFAULT 0,
			win_tile INTEGER NOT NULL DEFAULT 2048,
			script TEXT NOT NULL,
			score INTEGER NOT NULL,
			max_tile INTEGER NOT NULL,
			moves INTEGER NOT NULL DEFAULT 0,
			undos INTEGER NOT NULL DEFAULT 0,
			won INTEGER NOT NULL DEFAULT 0,
			terminal INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_games_score ON games(score DESC);
		CREATE INDEX IF NOT EXISTS idx_games_created ON games(created_at);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// Databases created before the rule columns existed
	added := []struct{ name, def string }{
		{"initial_tiles", "INTEGER NOT NULL DEFAULT 2"},
		{"history_limit", "INTEGER NOT NULL DEFAULT 0"},
		{"win_tile", "INTEGER NOT NULL DEFAULT 2048"},
	}
	for _, col := range added {
		if err := s.addColumnIfMissing("games", col.name, col.def); err != nil {
			return err
		}
	}
	return nil
}

// addColumnIfMissing adds a column to table unless it already exists.
func (s *Store) addColumnIfMissing(table, column, def string) error {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`,
		table, column,
	).Scan(&count)
	if err != nil {
		return fmt.Errorf("cannot inspect table %s: %w", table, err)
	}
	if count > 0 {
		return nil
	}

	_, err = s.db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, def))
	if err != nil {
		return fmt.Errorf("cannot add column %s.%s: %w", table, column, err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGame records a game and returns its generated id.
// A non-empty g.ID is kept as is.
func (s *Store) SaveGame(g GameRecord) (string, error) {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}

	_, err := s.db.Exec(
		`INSERT INTO games
		 (id, seed, four_chance, initial_tiles, history_limit, win_tile,
		  script, score, max_tile, moves, undos, won, terminal)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Seed, g.FourChance, g.InitialTiles, g.HistoryLimit, g.WinTile,
		g.Script, g.Score, g.MaxTile,
		g.Moves, g.Undos, g.Won, g.Terminal,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save game: %w", err)
	}

	return g.ID, nil
}

const gameColumns = `id, seed, four_chance, initial_tiles, history_limit, win_tile, script, score, max_tile, moves, undos, won, terminal, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGame(row rowScanner) (GameRecord, error) {
	var g GameRecord
	var createdAt any
	err := row.Scan(
		&g.ID,
		&g.Seed,
		&g.FourChance,
		&g.InitialTiles,
		&g.HistoryLimit,
		&g.WinTile,
		&g.Script,
		&g.Score,
		&g.MaxTile,
		&g.Moves,
		&g.Undos,
		&g.Won,
		&g.Terminal,
		&createdAt,
	)
	if err != nil {
		return GameRecord{}, err
	}
	g.CreatedAt = parseTimestamp(createdAt)
	return g, nil
}

// Game retrieves a game by id.
func (s *Store) Game(id string) (GameRecord, error) {
	row := s.db.QueryRow(`SELECT `+gameColumns+` FROM games WHERE id = ?`, id)

	g, err := scanGame(row)
	if errors.Is(err, sql.ErrNoRows) {
		return GameRecord{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return GameRecord{}, fmt.Errorf("storage: cannot query game: %w", err)
	}
	return g, nil
}

// TopGames retrieves the best N games, ordered by score descending.
func (s *Store) TopGames(limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryGames(
		`SELECT `+gameColumns+` FROM games ORDER BY score DESC, created_at ASC LIMIT ?`,
		limit,
	)
}

// RecentGames retrieves the most recently stored games.
func (s *Store) RecentGames(limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryGames(
		`SELECT `+gameColumns+` FROM games ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
}

func (s *Store) queryGames(query string, args ...any) ([]GameRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var games []GameRecord
	for rows.Next() {
		g, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return games, nil
}

// HighScore returns the highest stored score.
// Returns 0 if no games exist.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM games").Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// Stats retrieves aggregated statistics over all stored games.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(score), 0),
		        COALESCE(MAX(max_tile), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(moves), 0), MAX(created_at)
		 FROM games`,
	).Scan(
		&stats.GamesCount,
		&stats.WonCount,
		&stats.HighScore,
		&stats.BestTile,
		&stats.AvgScore,
		&stats.TotalMoves,
		&lastPlayed,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTimestamp(lastPlayed)

	return stats, nil
}

// ClearGames deletes all stored games.
func (s *Store) ClearGames() error {
	if _, err := s.db.Exec("DELETE FROM games"); err != nil {
		return fmt.Errorf("storage: cannot clear games: %w", err)
	}
	return nil
}

// parseTimestamp handles both time.Time and string datetime values.
func parseTimestamp(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
