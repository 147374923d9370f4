package tour

import (
	"errors"
	"testing"
)

func TestParseSquareRoundTrip(t *testing.T) {
	for file := 0; file < Size; file++ {
		for rank := 0; rank < Size; rank++ {
			want := Square{File: file, Rank: rank}
			notation := want.String()
			got, err := ParseSquare(notation)
			if err != nil {
				t.Fatalf("ParseSquare(%q) failed: %v", notation, err)
			}
			if got != want {
				t.Fatalf("ParseSquare(%q) = %+v, want %+v", notation, got, want)
			}
		}
	}
}

func TestSquareCornersUseAlgebraicNotation(t *testing.T) {
	cases := []struct {
		square Square
		want   string
	}{
		{Square{File: 0, Rank: 0}, "a1"},
		{Square{File: 7, Rank: 0}, "h1"},
		{Square{File: 0, Rank: 7}, "a8"},
		{Square{File: 7, Rank: 7}, "h8"},
		{Square{File: 4, Rank: 3}, "e4"},
	}
	for _, tc := range cases {
		if got := tc.square.String(); got != tc.want {
			t.Fatalf("%+v.String() = %q, want %q", tc.square, got, tc.want)
		}
	}
}

func TestParseSquareRejectsMalformedInput(t *testing.T) {
	inputs := []string{"", "a", "a0", "a9", "i1", "h9", "1a", "aa", "11", "a1 ", " a1", "A1", "b10"}
	for _, input := range inputs {
		_, err := ParseSquare(input)
		if err == nil {
			t.Fatalf("ParseSquare(%q) accepted malformed input", input)
		}
		var notationErr *NotationError
		if !errors.As(err, &notationErr) {
			t.Fatalf("ParseSquare(%q): expected NotationError, got %T", input, err)
		}
		if notationErr.Input != input {
			t.Fatalf("error carries input %q, want %q", notationErr.Input, input)
		}
	}
}
