package stats

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/philscott2006-consultbeyond/parlor/internal/model"
	"github.com/philscott2006-consultbeyond/parlor/internal/store"
)

// Summary contains precomputed data for round reporting.
type Summary struct {
	Rounds      []model.RoundAggregate
	SquareAggs  []model.SquareAggregate
	WeakSquares []model.SquareAggregate
}

// BuildSummary loads and prepares data for round reporting. Weak squares
// are selected from the weakWindow most recent rounds.
func BuildSummary(ctx context.Context, st *store.Store, weakTop, weakWindow int) (Summary, error) {
	rounds, err := st.ListRounds(ctx)
	if err != nil {
		return Summary{}, err
	}
	aggs, err := st.SquareAggregates(ctx)
	if err != nil {
		return Summary{}, err
	}
	recent, err := st.RecentSquareAggregates(ctx, weakWindow)
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Rounds:      rounds,
		SquareAggs:  aggs,
		WeakSquares: SelectWeakSquares(recent, weakTop),
	}, nil
}

// RenderSittingSummary prints aggregate accuracy across the stored rounds.
func RenderSittingSummary(w io.Writer, rounds []model.RoundAggregate) error {
	if len(rounds) == 0 {
		_, err := fmt.Fprintln(w, "No rounds recorded yet.")
		return err
	}
	var totalAcc float64
	bestAcc := 0.0
	accs := make([]float64, len(rounds))
	for i, r := range rounds {
		_, acc := RoundMetrics(r.Correct, r.Incorrect, r.DurationMs)
		totalAcc += acc
		accs[i] = acc
		if acc > bestAcc {
			bestAcc = acc
		}
	}
	count := float64(len(rounds))
	if _, err := fmt.Fprintln(w, "This sitting"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Rounds: %d\n", len(rounds)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Avg accuracy: %.1f%%\n", (totalAcc/count)*100); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Best accuracy: %.1f%%\n", bestAcc*100); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Accuracy trend: %s\n", Sparkline(accs)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderTroubleSquares prints the squares most often missed recently.
func RenderTroubleSquares(w io.Writer, weak []model.SquareAggregate, window int) error {
	if len(weak) == 0 {
		_, err := fmt.Fprintln(w, "No trouble squares yet.")
		return err
	}
	if _, err := fmt.Fprintf(w, "Trouble squares (last %d rounds)\n", window); err != nil {
		return err
	}
	headers := []string{"Square", "Accuracy", "Incorrect"}
	rows := make([][]string, 0, len(weak))
	for _, agg := range weak {
		rows = append(rows, []string{
			agg.Square,
			fmt.Sprintf("%.1f%%", accuracy(agg)*100),
			fmt.Sprintf("%d", agg.Incorrect),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// RenderSquareTable prints per-square aggregates, lowest accuracy first.
func RenderSquareTable(w io.Writer, aggs []model.SquareAggregate) error {
	if len(aggs) == 0 {
		_, err := fmt.Fprintln(w, "No square stats found.")
		return err
	}
	sorted := make([]model.SquareAggregate, len(aggs))
	copy(sorted, aggs)
	sort.Slice(sorted, func(i, j int) bool {
		ai := accuracy(sorted[i])
		aj := accuracy(sorted[j])
		if ai == aj {
			return sorted[i].Square < sorted[j].Square
		}
		return ai < aj
	})

	if _, err := fmt.Fprintln(w, "Per-Square (All Rounds)"); err != nil {
		return err
	}
	headers := []string{"Square", "Accuracy", "Avg Latency (ms)", "Correct", "Incorrect"}
	rows := make([][]string, 0, len(sorted))
	for _, agg := range sorted {
		lat := 0.0
		if agg.LatencyCount > 0 {
			lat = float64(agg.LatencySumMs) / float64(agg.LatencyCount)
		}
		rows = append(rows, []string{
			agg.Square,
			fmt.Sprintf("%.1f%%", accuracy(agg)*100),
			fmt.Sprintf("%.1f", lat),
			fmt.Sprintf("%d", agg.Correct),
			fmt.Sprintf("%d", agg.Incorrect),
		})
	}
	rightAlign := map[int]bool{1: true, 2: true, 3: true, 4: true}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}
