// Package quiz implements the tour recall drill.
package quiz

import (
	"errors"
	"sort"
	"strings"

	"github.com/philscott2006-consultbeyond/parlor/internal/tour"
)

// ErrSessionComplete is returned when a guess is submitted after the
// final step.
var ErrSessionComplete = errors.New("quiz session is complete")

// Result reports the outcome of one checked guess.
type Result struct {
	Step     int
	From     tour.Square
	Guess    tour.Square
	Expected tour.Square
	Correct  bool
}

// Session drills recall of a tour one transition at a time: at each step
// it presents a square and expects the square the direction-ordered
// sequence visits next. A full session over a 64-square tour asks 63
// guesses. Sessions are independent values; several may drill the same
// tour concurrently.
type Session struct {
	order     []tour.Square
	steps     []int
	pos       int
	correct   int
	incorrect int
	misses    []int
	direction tour.Direction
}

// New starts a session over every transition of the tour in the given
// direction.
func New(t tour.Tour, d tour.Direction) *Session {
	steps := make([]int, t.Len()-1)
	for i := range steps {
		steps[i] = i
	}
	return &Session{order: t.Sequence(d), steps: steps, direction: d}
}

// NewReview starts a session restricted to a subset of transition steps,
// walked in ascending order with duplicates dropped. Valid steps run from
// 0 through Len-2; anything else fails with a RangeError.
func NewReview(t tour.Tour, d tour.Direction, steps []int) (*Session, error) {
	if len(steps) == 0 {
		return nil, &tour.RangeError{What: "review step count", N: 0, Min: 1, Max: t.Len() - 1}
	}
	sorted := make([]int, len(steps))
	copy(sorted, steps)
	sort.Ints(sorted)
	unique := sorted[:0]
	for i, step := range sorted {
		if step < 0 || step > t.Len()-2 {
			return nil, &tour.RangeError{What: "review step", N: step, Min: 0, Max: t.Len() - 2}
		}
		if i > 0 && step == sorted[i-1] {
			continue
		}
		unique = append(unique, step)
	}
	return &Session{order: t.Sequence(d), steps: unique, direction: d}, nil
}

// Direction returns the traversal direction the session drills.
func (s *Session) Direction() tour.Direction {
	return s.direction
}

// Len returns how many guesses the session asks in total.
func (s *Session) Len() int {
	return len(s.steps)
}

// Answered returns how many guesses have been checked so far.
func (s *Session) Answered() int {
	return s.pos
}

// Done reports whether every step has been answered.
func (s *Session) Done() bool {
	return s.pos >= len(s.steps)
}

// Step returns the transition index the session is waiting on; once the
// session is done it returns the final transition index.
func (s *Session) Step() int {
	if s.Done() {
		return s.steps[len(s.steps)-1]
	}
	return s.steps[s.pos]
}

// Prompt returns the square to continue from; once the session is done it
// returns the last expected square.
func (s *Session) Prompt() tour.Square {
	if s.Done() {
		return s.order[s.steps[len(s.steps)-1]+1]
	}
	return s.order[s.steps[s.pos]]
}

// Submit checks a guess against the square the sequence visits next and
// advances the session.
func (s *Session) Submit(guess tour.Square) (Result, error) {
	if s.Done() {
		return Result{}, ErrSessionComplete
	}
	step := s.steps[s.pos]
	result := Result{
		Step:     step,
		From:     s.order[step],
		Guess:    guess,
		Expected: s.order[step+1],
	}
	result.Correct = guess == result.Expected
	if result.Correct {
		s.correct++
	} else {
		s.incorrect++
		s.misses = append(s.misses, step)
	}
	s.pos++
	return result, nil
}

// SubmitNotation trims and lowercases a guess in algebraic notation, then
// submits it. Malformed notation fails with a NotationError and leaves
// the session unchanged.
func (s *Session) SubmitNotation(input string) (Result, error) {
	if s.Done() {
		return Result{}, ErrSessionComplete
	}
	guess, err := tour.ParseSquare(strings.ToLower(strings.TrimSpace(input)))
	if err != nil {
		return Result{}, err
	}
	return s.Submit(guess)
}

// Tally returns the number of correct and incorrect guesses so far.
func (s *Session) Tally() (correct, incorrect int) {
	return s.correct, s.incorrect
}

// Misses returns the transition steps answered incorrectly, in the order
// they were asked.
func (s *Session) Misses() []int {
	out := make([]int, len(s.misses))
	copy(out, s.misses)
	return out
}

// Reset rewinds the session to its first step and clears the tally.
func (s *Session) Reset() {
	s.pos = 0
	s.correct = 0
	s.incorrect = 0
	s.misses = nil
}
