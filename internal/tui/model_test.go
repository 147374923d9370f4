package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/philscott2006-consultbeyond/parlor/internal/model"
	"github.com/philscott2006-consultbeyond/parlor/internal/store"
	"github.com/philscott2006-consultbeyond/parlor/internal/tour"
)

func newTestModel(t *testing.T, cfg model.Config) *Model {
	t.Helper()
	st, err := store.Open()
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	start, err := tour.ParseSquare(cfg.Start)
	if err != nil {
		t.Fatalf("ParseSquare failed: %v", err)
	}
	tr, err := tour.Build(start)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return NewModel(cfg, st, tr)
}

func defaultConfig() model.Config {
	return model.Config{Start: "a1", WeakTop: 5, WeakWindow: 10}
}

func (m *Model) submitGuess(guess string) {
	m.input.SetValue(guess)
	m.submitInput()
}

func playRound(m *Model, missSteps map[int]bool) {
	for !m.session.Done() {
		step := m.session.Step()
		guess := m.order[step+1].String()
		if missSteps[step] {
			// The walk never revisits its first square, so it is always wrong.
			guess = m.order[0].String()
		}
		m.submitGuess(guess)
	}
}

func TestSubmitAdvancesSession(t *testing.T) {
	m := newTestModel(t, defaultConfig())

	m.submitGuess("b3")
	if m.session.Answered() != 1 {
		t.Fatalf("Answered() = %d, want 1", m.session.Answered())
	}
	if !strings.Contains(m.feedback, "Correct") {
		t.Fatalf("feedback = %q, want correct marker", m.feedback)
	}
}

func TestWrongGuessShowsExpectedSquare(t *testing.T) {
	m := newTestModel(t, defaultConfig())

	m.submitGuess("c2")
	if m.session.Answered() != 1 {
		t.Fatalf("Answered() = %d, want 1", m.session.Answered())
	}
	if !strings.Contains(m.feedback, "b3") {
		t.Fatalf("feedback = %q, want the expected square", m.feedback)
	}
}

func TestMalformedGuessKeepsPosition(t *testing.T) {
	m := newTestModel(t, defaultConfig())

	m.submitGuess("z9")
	if m.session.Answered() != 0 {
		t.Fatalf("Answered() = %d after malformed guess, want 0", m.session.Answered())
	}
	if m.feedback == "" {
		t.Fatal("malformed guess produced no feedback")
	}
	if m.input.Value() != "" {
		t.Fatalf("input not cleared: %q", m.input.Value())
	}
}

func TestEmptyInputIgnored(t *testing.T) {
	m := newTestModel(t, defaultConfig())

	m.submitGuess("  ")
	if m.session.Answered() != 0 {
		t.Fatalf("Answered() = %d after empty submit, want 0", m.session.Answered())
	}
}

func TestFinishedRoundIsStored(t *testing.T) {
	m := newTestModel(t, defaultConfig())

	playRound(m, nil)
	if m.phase != phaseSummary {
		t.Fatalf("phase = %d after finishing, want summary", m.phase)
	}

	rounds, err := m.store.ListRounds(context.Background())
	if err != nil {
		t.Fatalf("ListRounds failed: %v", err)
	}
	if len(rounds) != 1 {
		t.Fatalf("stored %d rounds, want 1", len(rounds))
	}
	if rounds[0].Correct != 63 || rounds[0].Incorrect != 0 {
		t.Fatalf("stored tally = (%d, %d), want (63, 0)", rounds[0].Correct, rounds[0].Incorrect)
	}
	if rounds[0].Direction != "forward" {
		t.Fatalf("stored direction = %q, want forward", rounds[0].Direction)
	}
}

func TestReviewRoundIsNotStored(t *testing.T) {
	m := newTestModel(t, defaultConfig())

	playRound(m, map[int]bool{3: true, 10: true})
	if len(m.lastMisses) != 2 {
		t.Fatalf("lastMisses = %v, want two steps", m.lastMisses)
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	m = updated.(*Model)
	if !m.reviewing {
		t.Fatal("pressing m did not start a review")
	}
	if m.session.Len() != 2 {
		t.Fatalf("review session Len() = %d, want 2", m.session.Len())
	}

	playRound(m, nil)
	if m.phase != phaseSummary {
		t.Fatalf("phase = %d after review, want summary", m.phase)
	}
	rounds, err := m.store.ListRounds(context.Background())
	if err != nil {
		t.Fatalf("ListRounds failed: %v", err)
	}
	if len(rounds) != 1 {
		t.Fatalf("stored %d rounds after review, want 1", len(rounds))
	}
}

func TestRestartClearsReviewState(t *testing.T) {
	m := newTestModel(t, defaultConfig())

	playRound(m, map[int]bool{0: true})
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	m = updated.(*Model)

	m.startRound()
	if m.reviewing {
		t.Fatal("startRound left reviewing set")
	}
	if m.session.Len() != 63 {
		t.Fatalf("new round Len() = %d, want 63", m.session.Len())
	}
}

func TestBoardHiddenWhenConfigured(t *testing.T) {
	cfg := defaultConfig()
	cfg.HideBoard = true
	m := newTestModel(t, cfg)

	if board := m.renderBoard(); board != "" {
		t.Fatalf("renderBoard = %q with hide-board set, want empty", board)
	}
}

func TestBoardHiddenDuringReview(t *testing.T) {
	m := newTestModel(t, defaultConfig())

	playRound(m, map[int]bool{0: true})
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	m = updated.(*Model)

	if board := m.renderBoard(); board != "" {
		t.Fatalf("renderBoard = %q during review, want empty", board)
	}
}

func TestReverseRoundStoresDirection(t *testing.T) {
	cfg := defaultConfig()
	cfg.Reverse = true
	m := newTestModel(t, cfg)

	if got := m.session.Prompt().String(); got != "g6" {
		t.Fatalf("first reverse prompt = %s, want g6", got)
	}
	playRound(m, nil)

	rounds, err := m.store.ListRounds(context.Background())
	if err != nil {
		t.Fatalf("ListRounds failed: %v", err)
	}
	if len(rounds) != 1 || rounds[0].Direction != "reverse" {
		t.Fatalf("stored rounds = %+v, want one reverse round", rounds)
	}
}
