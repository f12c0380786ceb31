package t2048

import (
	"fmt"
	"strings"
	"unicode"
)

// Step is one scripted action: a move or an undo.
type Step struct {
	Dir  Direction
	Undo bool
}

// String returns the script letter for the step.
func (s Step) String() string {
	if s.Undo {
		return "Z"
	}
	return string(s.Dir.Letter())
}

// ParseScript parses a move script.
//
// Tokens are separated by whitespace or commas. A token is either a word
// (up, down, left, right, undo) or a run of letters where U, D, L and R
// are moves and Z is an undo, e.g. "LLUR z down". Letters are case-insensitive.
func ParseScript(script string) ([]Step, error) {
	tokens := strings.FieldsFunc(script, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})

	steps := make([]Step, 0, len(tokens))
	for ti, tok := range tokens {
		switch strings.ToLower(tok) {
		case "undo":
			steps = append(steps, Step{Undo: true})
			continue
		case "up", "down", "left", "right":
			dir, err := ParseDirection(tok)
			if err != nil {
				return nil, err
			}
			steps = append(steps, Step{Dir: dir})
			continue
		}

		for ri, r := range []rune(tok) {
			if unicode.ToLower(r) == 'z' {
				steps = append(steps, Step{Undo: true})
				continue
			}
			dir, err := ParseDirection(string(r))
			if err != nil {
				return nil, fmt.Errorf("token %d character %d: %w", ti+1, ri+1, err)
			}
			steps = append(steps, Step{Dir: dir})
		}
	}

	return steps, nil
}

// FormatScript renders steps in compact letter form, the inverse of ParseScript.
func FormatScript(steps []Step) string {
	var sb strings.Builder
	sb.Grow(len(steps))
	for _, s := range steps {
		sb.WriteString(s.String())
	}
	return sb.String()
}

// Play applies steps to s in order. visit, when non-nil, is called after
// every step with the step's result; undo steps report the restored board.
func (e *Engine) Play(s *GameState, steps []Step, visit func(i int, step Step, res MoveResult)) error {
	for i, step := range steps {
		var res MoveResult
		if step.Undo {
			e.Undo(s)
			res = MoveResult{Board: s.board}
		} else {
			r, err := e.ApplyMove(s, step.Dir)
			if err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
			res = r
		}

		if visit != nil {
			visit(i, step, res)
		}
	}
	return nil
}
