package tour

// Direction selects the traversal order of a tour.
type Direction int

const (
	// Forward walks the tour from its starting square.
	Forward Direction = iota
	// Reverse walks the tour from its final square back to the start.
	Reverse
)

// String returns the lowercase direction name.
func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// knightOffsets lists candidate moves as (file, rank) deltas in a fixed
// probe order: clockwise, starting from one o'clock. Warnsdorff ties are
// broken by the earliest candidate in this order.
var knightOffsets = [8][2]int{
	{1, 2}, {2, 1}, {2, -1}, {1, -2},
	{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

// Tour is an open knight's tour: every board square visited exactly once,
// each step a legal knight move from the previous square. Tours are
// immutable once built; accessors hand out copies.
type Tour struct {
	squares [Size * Size]Square
}

// Build computes the tour starting at start using Warnsdorff's rule: each
// step moves to the unvisited square with the fewest onward unvisited
// moves, ties broken by knightOffsets order, so equal starts always yield
// identical tours. The heuristic dead-ends from some starting squares;
// those fail with an IncompleteError instead of returning a short tour.
func Build(start Square) (Tour, error) {
	if start.File < 0 || start.File >= Size {
		return Tour{}, &RangeError{What: "start file", N: start.File, Min: 0, Max: Size - 1}
	}
	if start.Rank < 0 || start.Rank >= Size {
		return Tour{}, &RangeError{What: "start rank", N: start.Rank, Min: 0, Max: Size - 1}
	}
	var t Tour
	var visited [Size][Size]bool
	t.squares[0] = start
	visited[start.File][start.Rank] = true
	current := start
	for i := 1; i < len(t.squares); i++ {
		next, ok := nextMove(current, &visited)
		if !ok {
			return Tour{}, &IncompleteError{Start: start, Visited: i}
		}
		visited[next.File][next.Rank] = true
		t.squares[i] = next
		current = next
	}
	return t, nil
}

func nextMove(from Square, visited *[Size][Size]bool) (Square, bool) {
	var best Square
	bestDegree := len(knightOffsets) + 1
	found := false
	for _, d := range knightOffsets {
		candidate := Square{File: from.File + d[0], Rank: from.Rank + d[1]}
		if !candidate.Valid() || visited[candidate.File][candidate.Rank] {
			continue
		}
		if degree := onwardMoves(candidate, visited); degree < bestDegree {
			bestDegree = degree
			best = candidate
			found = true
		}
	}
	return best, found
}

func onwardMoves(from Square, visited *[Size][Size]bool) int {
	count := 0
	for _, d := range knightOffsets {
		candidate := Square{File: from.File + d[0], Rank: from.Rank + d[1]}
		if candidate.Valid() && !visited[candidate.File][candidate.Rank] {
			count++
		}
	}
	return count
}

// Len returns the number of squares in the tour.
func (t Tour) Len() int {
	return len(t.squares)
}

// At returns the square at position i in build order. It panics when i is
// outside [0, Len).
func (t Tour) At(i int) Square {
	return t.squares[i]
}

// Sequence returns a fresh copy of the tour ordered by direction.
func (t Tour) Sequence(d Direction) []Square {
	out := make([]Square, len(t.squares))
	if d == Reverse {
		for i, sq := range t.squares {
			out[len(out)-1-i] = sq
		}
		return out
	}
	copy(out, t.squares[:])
	return out
}

// Prefix returns the first n squares of the direction-ordered sequence.
// n outside [0, Len] fails with a RangeError.
func (t Tour) Prefix(d Direction, n int) ([]Square, error) {
	if n < 0 || n > len(t.squares) {
		return nil, &RangeError{What: "prefix length", N: n, Min: 0, Max: len(t.squares)}
	}
	return t.Sequence(d)[:n], nil
}
