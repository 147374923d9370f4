package tour

import "fmt"

// NotationError reports a string that is not valid algebraic notation.
type NotationError struct {
	Input string
}

func (e *NotationError) Error() string {
	return fmt.Sprintf("invalid square notation %q (want a file a-h and a rank 1-8)", e.Input)
}

// RangeError reports a value outside its permitted bounds.
type RangeError struct {
	What string
	N    int
	Min  int
	Max  int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %d out of range [%d, %d]", e.What, e.N, e.Min, e.Max)
}

// IncompleteError reports a tour that dead-ended before covering the
// board. The partial path is discarded; only its length is kept.
type IncompleteError struct {
	Start   Square
	Visited int
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("tour from %s dead-ended after %d of %d squares", e.Start, e.Visited, Size*Size)
}
