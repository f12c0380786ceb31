package t2048

import (
	"errors"
	"strings"
	"testing"
)

func TestParseScript(t *testing.T) {
	steps, err := ParseScript("LLur z down,undo  Right")
	if err != nil {
		t.Fatalf("ParseScript() error: %v", err)
	}

	expected := []Step{
		{Dir: DirLeft},
		{Dir: DirLeft},
		{Dir: DirUp},
		{Dir: DirRight},
		{Undo: true},
		{Dir: DirDown},
		{Undo: true},
		{Dir: DirRight},
	}

	if len(steps) != len(expected) {
		t.Fatalf("ParseScript() returned %d steps, want %d", len(steps), len(expected))
	}
	for i := range expected {
		if steps[i] != expected[i] {
			t.Errorf("step %d = %+v, want %+v", i, steps[i], expected[i])
		}
	}

	if got := FormatScript(steps); got != "LLURZDZR" {
		t.Errorf("FormatScript() = %q, want LLURZDZR", got)
	}
}

func TestParseScriptEmpty(t *testing.T) {
	steps, err := ParseScript("  , ")
	if err != nil {
		t.Fatalf("ParseScript() error: %v", err)
	}
	if len(steps) != 0 {
		t.Errorf("ParseScript() returned %d steps, want 0", len(steps))
	}
}

func TestParseScriptRejectsUnknownLetters(t *testing.T) {
	_, err := ParseScript("LL X")
	if !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("ParseScript() error = %v, want ErrInvalidDirection", err)
	}

	_, err = ParseScript("ULR dé")
	if err == nil || !strings.Contains(err.Error(), "token 2 character 2") {
		t.Errorf("ParseScript(ULR dé) error = %v, want position token 2 character 2", err)
	}

	_, err = ParseScript("sideways")
	if !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("ParseScript(sideways) error = %v, want ErrInvalidDirection", err)
	}
}

func TestPlayIsDeterministic(t *testing.T) {
	steps, err := ParseScript("LURDLLZDRUZULD")
	if err != nil {
		t.Fatalf("ParseScript() error: %v", err)
	}

	run := func() (Snapshot, int) {
		e := NewSeededEngine(2048, DefaultOptions())
		s := e.NewGame()
		visited := 0
		if err := e.Play(s, steps, func(int, Step, MoveResult) { visited++ }); err != nil {
			t.Fatalf("Play() error: %v", err)
		}
		return s.Snapshot(), visited
	}

	first, visited := run()
	second, _ := run()

	if visited != len(steps) {
		t.Errorf("visit called %d times, want %d", visited, len(steps))
	}
	if first != second {
		t.Errorf("replays diverged:\n%+v\nvs\n%+v", first, second)
	}
	if first.Undos != 2 {
		t.Errorf("Undos = %d, want 2", first.Undos)
	}
}
