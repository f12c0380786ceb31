package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file was not created")
}

func TestSaveAndGetGame(t *testing.T) {
	store := openTestStore(t)

	in := GameRecord{
		Seed:         42,
		FourChance:   0.5,
		InitialTiles: 3,
		HistoryLimit: 10,
		WinTile:      1024,
		Script:       "LLURZD",
		Score:        1364,
		MaxTile:      128,
		Moves:        5,
		Undos:        1,
		Won:          false,
		Terminal:     true,
	}

	id, err := store.SaveGame(in)
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err, "generated id should be a uuid")

	got, err := store.Game(id)
	require.NoError(t, err)

	assert.Equal(t, id, got.ID)
	assert.Equal(t, in.Seed, got.Seed)
	assert.InDelta(t, in.FourChance, got.FourChance, 1e-9)
	assert.Equal(t, in.InitialTiles, got.InitialTiles)
	assert.Equal(t, in.HistoryLimit, got.HistoryLimit)
	assert.Equal(t, in.WinTile, got.WinTile)
	assert.Equal(t, in.Script, got.Script)
	assert.Equal(t, in.Score, got.Score)
	assert.Equal(t, in.MaxTile, got.MaxTile)
	assert.Equal(t, in.Moves, got.Moves)
	assert.Equal(t, in.Undos, got.Undos)
	assert.False(t, got.Won)
	assert.True(t, got.Terminal)
}

func TestSaveGameKeepsExplicitID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveGame(GameRecord{ID: "fixed", Score: 8})
	require.NoError(t, err)
	assert.Equal(t, "fixed", id)

	_, err = store.SaveGame(GameRecord{ID: "fixed", Score: 16})
	assert.Error(t, err, "duplicate ids are rejected")
}

func TestGameNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Game("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTopGames(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200, 75} {
		_, err := store.SaveGame(GameRecord{Score: score})
		require.NoError(t, err)
	}

	games, err := store.TopGames(3)
	require.NoError(t, err)
	require.Len(t, games, 3)
	assert.Equal(t, 200, games[0].Score)
	assert.Equal(t, 100, games[1].Score)
	assert.Equal(t, 75, games[2].Score)

	all, err := store.TopGames(0)
	require.NoError(t, err)
	assert.Len(t, all, 4, "non-positive limit falls back to the default")
}

func TestRecentGames(t *testing.T) {
	store := openTestStore(t)

	for _, script := range []string{"L", "LR", "LRU"} {
		_, err := store.SaveGame(GameRecord{Script: script})
		require.NoError(t, err)
	}

	games, err := store.RecentGames(2)
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "LRU", games[0].Script)
	assert.Equal(t, "LR", games[1].Script)
}

func TestHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	require.NoError(t, err)
	assert.Equal(t, 0, high)

	for _, score := range []int{12, 3400, 560} {
		_, err := store.SaveGame(GameRecord{Score: score})
		require.NoError(t, err)
	}

	high, err = store.HighScore()
	require.NoError(t, err)
	assert.Equal(t, 3400, high)
}

func TestStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats()
	require.NoError(t, err)
	assert.Equal(t, 0, empty.GamesCount)
	assert.True(t, empty.LastPlayed.IsZero())

	games := []GameRecord{
		{Score: 100, MaxTile: 64, Moves: 10},
		{Score: 300, MaxTile: 2048, Moves: 30, Won: true},
	}
	for _, g := range games {
		_, err := store.SaveGame(g)
		require.NoError(t, err)
	}

	stats, err := store.Stats()
	require.NoError(t, err)
	assert.Equal(t, 2, stats.GamesCount)
	assert.Equal(t, 1, stats.WonCount)
	assert.Equal(t, 300, stats.HighScore)
	assert.Equal(t, 2048, stats.BestTile)
	assert.InDelta(t, 200.0, stats.AvgScore, 1e-9)
	assert.Equal(t, int64(40), stats.TotalMoves)
	assert.False(t, stats.LastPlayed.IsZero())
}

func TestClearGames(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveGame(GameRecord{Score: 10})
	require.NoError(t, err)

	require.NoError(t, store.ClearGames())

	games, err := store.TopGames(10)
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestPersistenceAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	require.NoError(t, err)
	id, err := store.SaveGame(GameRecord{Seed: 9, Script: "UD", Score: 4})
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Game(id)
	require.NoError(t, err)
	assert.Equal(t, int64(9), got.Seed)
	assert.Equal(t, "UD", got.Script)
}

func TestParseTimestamp(t *testing.T) {
	got := parseTimestamp("2024-03-05 10:11:12")
	assert.Equal(t, 2024, got.Year())
	assert.Equal(t, 12, got.Second())

	assert.True(t, parseTimestamp(nil).IsZero())
	assert.True(t, parseTimestamp("garbage").IsZero())
}

func TestMigrateAddsRuleColumns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "old.db")

	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	_, err = db.Exec(`
		CREATE TABLE games (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			four_chance REAL NOT NULL,
			script TEXT NOT NULL,
			score INTEGER NOT NULL,
			max_tile INTEGER NOT NULL,
			moves INTEGER NOT NULL DEFAULT 0,
			undos INTEGER NOT NULL DEFAULT 0,
			won INTEGER NOT NULL DEFAULT 0,
			terminal INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		INSERT INTO games (id, seed, four_chance, script, score, max_tile)
		VALUES ('old', 5, 0.5, 'LR', 4, 4);
	`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	store, err := Open(dbPath)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.Game("old")
	require.NoError(t, err)
	assert.Equal(t, 2, got.InitialTiles)
	assert.Equal(t, 0, got.HistoryLimit)
	assert.Equal(t, 2048, got.WinTile)

	// Reopening an up-to-date database is a no-op
	store2, err := Open(dbPath)
	require.NoError(t, err)
	require.NoError(t, store2.Close())
}
