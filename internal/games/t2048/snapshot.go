package t2048

// Snapshot captures the observable game state for determinism testing and replay.
type Snapshot struct {
	Step    int    `json:"step"`
	Action  string `json:"action,omitempty"`
	Score   int    `json:"score"`
	Moves   int    `json:"moves"`
	Undos   int    `json:"undos"`
	Board   Board  `json:"board"`
	MaxTile int    `json:"max_tile"`
	History int    `json:"history"`
	Won     bool   `json:"won"`
	Status  Status `json:"status"`
}

// Snapshot returns the current game snapshot.
func (s *GameState) Snapshot() Snapshot {
	return Snapshot{
		Score:   s.score,
		Moves:   s.moves,
		Undos:   s.undos,
		Board:   s.board,
		MaxTile: MaxTile(s.board),
		History: s.history.Len(),
		Won:     s.won,
		Status:  s.Status(),
	}
}
