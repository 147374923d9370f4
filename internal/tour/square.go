// Package tour builds open knight's tours and their traversal views.
package tour

import "fmt"

// Size is the side length of the board.
const Size = 8

// Square identifies a board square by zero-based file and rank:
// a1 is {0, 0}, h8 is {7, 7}.
type Square struct {
	File int
	Rank int
}

// Valid reports whether both coordinates lie on the board.
func (s Square) Valid() bool {
	return s.File >= 0 && s.File < Size && s.Rank >= 0 && s.Rank < Size
}

// String renders the square in algebraic notation ("a1".."h8").
func (s Square) String() string {
	if !s.Valid() {
		return fmt.Sprintf("off-board(%d,%d)", s.File, s.Rank)
	}
	return string([]byte{byte('a' + s.File), byte('1' + s.Rank)})
}

// ParseSquare converts lowercase algebraic notation ("a1".."h8") into a
// Square. Anything else fails with a NotationError.
func ParseSquare(input string) (Square, error) {
	if len(input) != 2 {
		return Square{}, &NotationError{Input: input}
	}
	sq := Square{File: int(input[0]) - 'a', Rank: int(input[1]) - '1'}
	if !sq.Valid() {
		return Square{}, &NotationError{Input: input}
	}
	return sq, nil
}
