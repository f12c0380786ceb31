// Package leaderboard persists the best scores in a small JSON file.
//
// Records are stored as a JSON list of {"score": N, "label": "..."} objects,
// sorted by score descending and truncated to a fixed size. Files written by
// older versions as a list of "Score: N" strings are still readable.
package leaderboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const (
	// DefaultPath is the leaderboard file, relative to the working directory.
	DefaultPath = "leaderboard.json"

	// DefaultLimit is the number of records retained.
	DefaultLimit = 5
)

// ErrCorrupt is returned when the leaderboard file cannot be decoded.
var ErrCorrupt = errors.New("leaderboard: corrupt data")

// Record is one leaderboard entry.
type Record struct {
	Score int    `json:"score"`
	Label string `json:"label"`
}

// NewRecord creates a record with the standard display label.
func NewRecord(score int) Record {
	return Record{Score: score, Label: fmt.Sprintf("Score: %d", score)}
}

// UnmarshalJSON accepts both the structured form and the legacy
// "Score: N" string form.
func (r *Record) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var label string
		if err := json.Unmarshal(data, &label); err != nil {
			return err
		}
		score, err := parseLegacyLabel(label)
		if err != nil {
			return err
		}
		*r = Record{Score: score, Label: label}
		return nil
	}

	var raw struct {
		Score *int   `json:"score"`
		Label string `json:"label"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Score == nil {
		return fmt.Errorf("record %s has no score", string(data))
	}

	*r = Record{Score: *raw.Score, Label: raw.Label}
	if r.Label == "" {
		r.Label = NewRecord(r.Score).Label
	}
	return nil
}

// parseLegacyLabel extracts N from "Score: N".
func parseLegacyLabel(label string) (int, error) {
	fields := strings.Fields(label)
	if len(fields) != 2 || fields[0] != "Score:" {
		return 0, fmt.Errorf("unrecognized legacy record %q", label)
	}
	score, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, fmt.Errorf("legacy record %q: %w", label, err)
	}
	return score, nil
}

// Leaderboard reads and writes a leaderboard file.
type Leaderboard struct {
	path  string
	limit int
}

// Option configures a Leaderboard.
type Option func(*Leaderboard)

// WithLimit sets the number of records retained. Values below 1 are ignored.
func WithLimit(n int) Option {
	return func(l *Leaderboard) {
		if n > 0 {
			l.limit = n
		}
	}
}

// New creates a leaderboard backed by path. An empty path uses DefaultPath.
func New(path string, opts ...Option) *Leaderboard {
	if path == "" {
		path = DefaultPath
	}
	l := &Leaderboard{path: path, limit: DefaultLimit}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the backing file path.
func (l *Leaderboard) Path() string {
	return l.path
}

// Limit returns the number of records retained.
func (l *Leaderboard) Limit() int {
	return l.limit
}

// Load returns the stored records, best first. A missing file yields an
// empty list; unreadable or malformed contents are reported as errors.
func (l *Leaderboard) Load() ([]Record, error) {
	data, err := os.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leaderboard: cannot read %s: %w", l.path, err)
	}

	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, l.path, err)
	}

	return l.normalize(records), nil
}

// Save adds a score, keeps the best records and writes the file.
// It returns the records as persisted.
func (l *Leaderboard) Save(score int) ([]Record, error) {
	records, err := l.Load()
	if err != nil {
		return nil, err
	}

	records = l.normalize(append(records, NewRecord(score)))
	if err := l.write(records); err != nil {
		return nil, err
	}
	return records, nil
}

// Qualifies reports whether score would enter the leaderboard.
func (l *Leaderboard) Qualifies(score int) (bool, error) {
	records, err := l.Load()
	if err != nil {
		return false, err
	}
	if len(records) < l.limit {
		return true, nil
	}
	return score > records[len(records)-1].Score, nil
}

// normalize sorts records by score descending and truncates to the limit.
// Equal scores keep their existing order.
func (l *Leaderboard) normalize(records []Record) []Record {
	if records == nil {
		records = []Record{}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Score > records[j].Score
	})
	if len(records) > l.limit {
		records = records[:l.limit]
	}
	return records
}

// write replaces the file through a temp file in the same directory.
func (l *Leaderboard) write(records []Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("leaderboard: cannot encode records: %w", err)
	}

	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("leaderboard: cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".leaderboard-*.json")
	if err != nil {
		return fmt.Errorf("leaderboard: cannot create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("leaderboard: cannot write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("leaderboard: cannot close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, l.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("leaderboard: cannot replace %s: %w", l.path, err)
	}

	return nil
}
