package t2048

import "math/rand"

// DefaultFourChance gives an even split between spawning 2 and 4.
const DefaultFourChance = 0.5

// Tile is a value placed at a board position.
type Tile struct {
	X     int
	Y     int
	Value int
}

// Spawner places new tiles on empty cells using an injected random source.
type Spawner struct {
	rng        *rand.Rand
	fourChance float64
}

// NewSpawner creates a spawner that draws from rng.
// fourChance is the probability of spawning a 4 instead of a 2, clamped to [0, 1].
func NewSpawner(rng *rand.Rand, fourChance float64) *Spawner {
	switch {
	case fourChance < 0:
		fourChance = 0
	case fourChance > 1:
		fourChance = 1
	}
	return &Spawner{rng: rng, fourChance: fourChance}
}

// FourChance returns the probability of spawning a 4.
func (s *Spawner) FourChance() float64 {
	return s.fourChance
}

// Spawn picks an empty cell uniformly at random and sets it to 2 or 4.
// A full board is left untouched and ok is false.
func (s *Spawner) Spawn(b *Board) (tile Tile, ok bool) {
	cells := EmptyCells(*b)
	if len(cells) == 0 {
		return Tile{}, false
	}

	cell := cells[s.rng.Intn(len(cells))]

	value := 2
	if s.rng.Float64() < s.fourChance {
		value = 4
	}

	b[cell.Y][cell.X] = value
	return Tile{X: cell.X, Y: cell.Y, Value: value}, true
}
