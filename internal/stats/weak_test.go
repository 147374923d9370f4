package stats

import (
	"testing"

	"github.com/philscott2006-consultbeyond/parlor/internal/model"
)

func TestSelectWeakSquaresOrdersByAccuracy(t *testing.T) {
	aggs := []model.SquareAggregate{
		{Square: "a4", Correct: 9, Incorrect: 1},
		{Square: "d7", Correct: 1, Incorrect: 3},
		{Square: "b3", Correct: 10, Incorrect: 0},
		{Square: "g5", Correct: 2, Incorrect: 2},
	}

	weak := SelectWeakSquares(aggs, 0)
	if len(weak) != 3 {
		t.Fatalf("selected %d squares, want 3 (b3 was never missed)", len(weak))
	}
	want := []string{"d7", "g5", "a4"}
	for i, square := range want {
		if weak[i].Square != square {
			t.Fatalf("weak[%d] = %s, want %s", i, weak[i].Square, square)
		}
	}
}

func TestSelectWeakSquaresCapsAtTop(t *testing.T) {
	aggs := []model.SquareAggregate{
		{Square: "a4", Correct: 9, Incorrect: 1},
		{Square: "d7", Correct: 1, Incorrect: 3},
		{Square: "g5", Correct: 2, Incorrect: 2},
	}

	weak := SelectWeakSquares(aggs, 1)
	if len(weak) != 1 || weak[0].Square != "d7" {
		t.Fatalf("SelectWeakSquares top 1 = %v, want just d7", weak)
	}
}

func TestSelectWeakSquaresTiesBreakOnName(t *testing.T) {
	aggs := []model.SquareAggregate{
		{Square: "h2", Correct: 1, Incorrect: 1},
		{Square: "c6", Correct: 1, Incorrect: 1},
	}

	weak := SelectWeakSquares(aggs, 0)
	if weak[0].Square != "c6" || weak[1].Square != "h2" {
		t.Fatalf("tied squares out of order: %v", weak)
	}
}

func TestSelectWeakSquaresEmptyInput(t *testing.T) {
	if weak := SelectWeakSquares(nil, 5); len(weak) != 0 {
		t.Fatalf("SelectWeakSquares(nil) = %v, want empty", weak)
	}
}
