package stats

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/philscott2006-consultbeyond/parlor/internal/model"
	"github.com/philscott2006-consultbeyond/parlor/internal/store"
)

func TestBuildSummaryCollectsStoreData(t *testing.T) {
	st, err := store.Open()
	if err != nil {
		t.Fatalf("store.Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	rounds := []struct {
		endedAt time.Time
		squares []model.SquareStats
	}{
		{base, []model.SquareStats{{Square: "f6", Correct: 0, Incorrect: 2, LatencySumMs: 2000, LatencyCount: 2}}},
		{base.Add(time.Hour), []model.SquareStats{{Square: "f6", Correct: 1, Incorrect: 0, LatencySumMs: 400, LatencyCount: 1}}},
	}
	for _, r := range rounds {
		_, err := st.InsertRound(context.Background(), model.RoundStats{
			StartedAt:  r.endedAt.Add(-time.Minute),
			EndedAt:    r.endedAt,
			Direction:  "forward",
			Start:      "a1",
			Correct:    60,
			Incorrect:  3,
			DurationMs: 60000,
		}, r.squares)
		if err != nil {
			t.Fatalf("InsertRound failed: %v", err)
		}
	}

	summary, err := BuildSummary(context.Background(), st, 5, 10)
	if err != nil {
		t.Fatalf("BuildSummary failed: %v", err)
	}
	if len(summary.Rounds) != 2 {
		t.Fatalf("Rounds = %d, want 2", len(summary.Rounds))
	}
	if len(summary.SquareAggs) != 1 || summary.SquareAggs[0].Square != "f6" {
		t.Fatalf("SquareAggs = %v, want one f6 entry", summary.SquareAggs)
	}
	if len(summary.WeakSquares) != 1 || summary.WeakSquares[0].Square != "f6" {
		t.Fatalf("WeakSquares = %v, want one f6 entry", summary.WeakSquares)
	}
}

func TestRenderSittingSummary(t *testing.T) {
	rounds := []model.RoundAggregate{
		{Correct: 63, Incorrect: 0, DurationMs: 60000},
		{Correct: 31, Incorrect: 32, DurationMs: 60000},
	}

	var b strings.Builder
	if err := RenderSittingSummary(&b, rounds); err != nil {
		t.Fatalf("RenderSittingSummary failed: %v", err)
	}
	out := b.String()
	for _, want := range []string{"This sitting", "Rounds: 2", "Best accuracy: 100.0%", "Accuracy trend: "} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderSittingSummaryEmpty(t *testing.T) {
	var b strings.Builder
	if err := RenderSittingSummary(&b, nil); err != nil {
		t.Fatalf("RenderSittingSummary failed: %v", err)
	}
	if got := b.String(); got != "No rounds recorded yet.\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestRenderTroubleSquares(t *testing.T) {
	weak := []model.SquareAggregate{
		{Square: "d7", Correct: 1, Incorrect: 3},
	}

	var b strings.Builder
	if err := RenderTroubleSquares(&b, weak, 10); err != nil {
		t.Fatalf("RenderTroubleSquares failed: %v", err)
	}
	out := b.String()
	if !strings.Contains(out, "Trouble squares (last 10 rounds)") {
		t.Fatalf("output missing header:\n%s", out)
	}
	if !strings.Contains(out, "d7") || !strings.Contains(out, "25.0%") {
		t.Fatalf("output missing d7 row:\n%s", out)
	}
}

func TestRenderTroubleSquaresEmpty(t *testing.T) {
	var b strings.Builder
	if err := RenderTroubleSquares(&b, nil, 10); err != nil {
		t.Fatalf("RenderTroubleSquares failed: %v", err)
	}
	if got := b.String(); got != "No trouble squares yet.\n" {
		t.Fatalf("output = %q", got)
	}
}

func TestRenderSquareTableSortsWorstFirst(t *testing.T) {
	aggs := []model.SquareAggregate{
		{Square: "a4", Correct: 9, Incorrect: 1, LatencySumMs: 5000, LatencyCount: 10},
		{Square: "d7", Correct: 1, Incorrect: 3, LatencySumMs: 4000, LatencyCount: 4},
	}

	var b strings.Builder
	if err := RenderSquareTable(&b, aggs); err != nil {
		t.Fatalf("RenderSquareTable failed: %v", err)
	}
	out := b.String()
	if strings.Index(out, "d7") > strings.Index(out, "a4") {
		t.Fatalf("d7 should sort before a4:\n%s", out)
	}
	if !strings.Contains(out, "1000.0") {
		t.Fatalf("output missing d7 latency:\n%s", out)
	}
}
