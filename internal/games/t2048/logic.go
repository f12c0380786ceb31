// Package t2048 implements the 2048 sliding-tile puzzle engine.
// It covers line merging, directional moves, tile spawning, terminal
// detection and undo history. The package performs no I/O and keeps no
// global state: callers own every GameState and thread it through the Engine.
package t2048

import (
	"errors"
	"fmt"
	"strings"
)

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// BoardSize is the board dimension.
const BoardSize = 4

// ErrInvalidDirection is returned for directions outside Up/Down/Left/Right.
var ErrInvalidDirection = errors.New("t2048: invalid direction")

// Directions lists every valid direction in declaration order.
var Directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// Valid reports whether d is one of the four recognized directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// String returns the lower-case direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// Letter returns the single-letter script form (U, D, L, R).
func (d Direction) Letter() byte {
	switch d {
	case DirUp:
		return 'U'
	case DirDown:
		return 'D'
	case DirLeft:
		return 'L'
	case DirRight:
		return 'R'
	default:
		return '?'
	}
}

// ParseDirection accepts a direction name or its first letter, in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "u", "up":
		return DirUp, nil
	case "d", "down":
		return DirDown, nil
	case "l", "left":
		return DirLeft, nil
	case "r", "right":
		return DirRight, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// Board represents a 4x4 game board indexed as board[y][x].
// Zero is an empty cell; any other value is a power of two >= 2.
type Board [BoardSize][BoardSize]int

// Line is one row or column ordered from the near edge to the far edge.
type Line [BoardSize]int

// Cell addresses a board position.
type Cell struct {
	X, Y int
}

// MergeLine compacts a line toward index 0 and merges equal neighbours.
// A tile produced by a merge is never merged again in the same call.
// Returns the new line and the score gained (sum of merged tile values).
func MergeLine(line Line) (Line, int) {
	result, score, _ := mergeLine(line)
	return result, score
}

// mergeLine is MergeLine that also reports the number of merge events.
func mergeLine(line Line) (result Line, score, merges int) {
	var tiles [BoardSize]int
	n := 0
	for _, v := range line {
		if v != 0 {
			tiles[n] = v
			n++
		}
	}

	writePos := 0
	for i := 0; i < n; i++ {
		if i+1 < n && tiles[i] == tiles[i+1] {
			merged := tiles[i] * 2
			result[writePos] = merged
			score += merged
			merges++
			i++ // the partner tile is consumed
		} else {
			result[writePos] = tiles[i]
		}
		writePos++
	}

	return result, score, merges
}

// lineCell maps position k of line i for dir onto board coordinates.
// k = 0 is the near edge, the edge tiles travel toward.
func lineCell(dir Direction, i, k int) Cell {
	switch dir {
	case DirLeft:
		return Cell{X: k, Y: i}
	case DirRight:
		return Cell{X: BoardSize - 1 - k, Y: i}
	case DirUp:
		return Cell{X: i, Y: k}
	default:
		return Cell{X: i, Y: BoardSize - 1 - k}
	}
}

// Line extracts line i for the given direction.
func (b Board) Line(dir Direction, i int) Line {
	var l Line
	for k := 0; k < BoardSize; k++ {
		c := lineCell(dir, i, k)
		l[k] = b[c.Y][c.X]
	}
	return l
}

// setLine writes l back through the inverse of the Line mapping.
func (b *Board) setLine(dir Direction, i int, l Line) {
	for k := 0; k < BoardSize; k++ {
		c := lineCell(dir, i, k)
		b[c.Y][c.X] = l[k]
	}
}

// MoveResult is the outcome of sliding a board in one direction.
type MoveResult struct {
	Board      Board // Board after merging, before any spawn
	ScoreDelta int   // Sum of merged tile values
	Moved      bool  // Whether any cell changed
	Merges     int   // Number of merge events
	Spawned    *Tile // Tile placed after the move, set by Engine.ApplyMove
}

// Move slides and merges every line of board toward dir.
// The input board is not modified.
func Move(board Board, dir Direction) (MoveResult, error) {
	if !dir.Valid() {
		return MoveResult{Board: board}, fmt.Errorf("%w: %d", ErrInvalidDirection, int(dir))
	}

	res := MoveResult{Board: board}
	for i := 0; i < BoardSize; i++ {
		src := board.Line(dir, i)
		merged, score, merges := mergeLine(src)
		res.Board.setLine(dir, i, merged)
		res.ScoreDelta += score
		res.Merges += merges

		if merged != src {
			res.Moved = true
		}
	}

	return res, nil
}

// EmptyCells returns coordinates of all empty cells in row-major order.
func EmptyCells(board Board) []Cell {
	var cells []Cell
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if board[y][x] == 0 {
				cells = append(cells, Cell{X: x, Y: y})
			}
		}
	}
	return cells
}

// HasEmptyCell returns true if there's at least one empty cell.
func HasEmptyCell(board Board) bool {
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if board[y][x] == 0 {
				return true
			}
		}
	}
	return false
}

// HasPossibleMerge returns true if any two orthogonal neighbours are equal.
func HasPossibleMerge(board Board) bool {
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			val := board[y][x]
			if x < BoardSize-1 && board[y][x+1] == val {
				return true
			}
			if y < BoardSize-1 && board[y+1][x] == val {
				return true
			}
		}
	}
	return false
}

// CanMove returns true if some direction would change the board.
func CanMove(board Board) bool {
	return HasEmptyCell(board) || HasPossibleMerge(board)
}

// IsTerminal reports whether the board is full and no two orthogonal
// neighbours share a value. Diagonal neighbours are not considered.
func IsTerminal(board Board) bool {
	return !CanMove(board)
}

// MaxTile returns the maximum tile value on the board.
func MaxTile(board Board) int {
	maxVal := 0
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			if board[y][x] > maxVal {
				maxVal = board[y][x]
			}
		}
	}
	return maxVal
}

// Sum returns the total of all tile values.
func (b Board) Sum() int {
	total := 0
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			total += b[y][x]
		}
	}
	return total
}

// String formats the board as four space-separated rows.
func (b Board) String() string {
	var sb strings.Builder
	for y := 0; y < BoardSize; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < BoardSize; x++ {
			if x > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "%5d", b[y][x])
		}
	}
	return sb.String()
}
