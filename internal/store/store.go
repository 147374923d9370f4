// Package store handles SQLite persistence for quiz rounds.
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/philscott2006-consultbeyond/parlor/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for round data. Rounds live only for the
// lifetime of the process.
type Store struct {
	db *sql.DB
}

// Open creates the in-memory SQLite database and applies migrations.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	// Every pooled connection would get its own empty :memory: database.
	db.SetMaxOpenConns(1)
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			direction TEXT NOT NULL,
			start_square TEXT NOT NULL,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS round_square_stats (
			round_id INTEGER NOT NULL,
			square TEXT NOT NULL,
			correct INTEGER NOT NULL,
			incorrect INTEGER NOT NULL,
			latency_sum_ms INTEGER NOT NULL,
			latency_count INTEGER NOT NULL,
			PRIMARY KEY (round_id, square)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_rounds_ended_at ON rounds(ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_round_square_stats_square ON round_square_stats(square);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRound stores a completed round and its per-square stats.
func (s *Store) InsertRound(ctx context.Context, stats model.RoundStats, squares []model.SquareStats) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO rounds (started_at, ended_at, direction, start_square, correct, incorrect, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		stats.StartedAt.Format(time.RFC3339Nano),
		stats.EndedAt.Format(time.RFC3339Nano),
		stats.Direction,
		stats.Start,
		stats.Correct,
		stats.Incorrect,
		stats.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(squares) > 0 {
		// Assign to the outer err so the deferred rollback sees failures;
		// a leaked open tx would wedge the single :memory: connection.
		var stmt *sql.Stmt
		stmt, err = tx.PrepareContext(ctx,
			`INSERT INTO round_square_stats (round_id, square, correct, incorrect, latency_sum_ms, latency_count)
			 VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, sq := range squares {
			if _, err = stmt.ExecContext(ctx, id, sq.Square, sq.Correct, sq.Incorrect, sq.LatencySumMs, sq.LatencyCount); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListRounds returns every stored round, oldest first.
func (s *Store) ListRounds(ctx context.Context) ([]model.RoundAggregate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, ended_at, direction, correct, incorrect, duration_ms
		 FROM rounds
		 ORDER BY ended_at ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var rounds []model.RoundAggregate
	for rows.Next() {
		var agg model.RoundAggregate
		var endedAt string
		if err := rows.Scan(&agg.RoundID, &endedAt, &agg.Direction, &agg.Correct, &agg.Incorrect, &agg.DurationMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, endedAt)
		if err != nil {
			return nil, err
		}
		agg.EndedAt = parsed
		rounds = append(rounds, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return rounds, nil
}

// RecentSquareAggregates aggregates square stats over the most recent rounds.
func (s *Store) RecentSquareAggregates(ctx context.Context, window int) ([]model.SquareAggregate, error) {
	if window <= 0 {
		return nil, nil
	}
	query := `WITH recent_rounds AS (
		SELECT id FROM rounds
		ORDER BY ended_at DESC
		LIMIT ?
	)
	SELECT rs.square, SUM(rs.correct) AS correct, SUM(rs.incorrect) AS incorrect,
		SUM(rs.latency_sum_ms) AS latency_sum_ms, SUM(rs.latency_count) AS latency_count
	FROM round_square_stats rs
	JOIN recent_rounds r ON r.id = rs.round_id
	GROUP BY rs.square`

	rows, err := s.db.QueryContext(ctx, query, window)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.SquareAggregate
	for rows.Next() {
		var agg model.SquareAggregate
		if err := rows.Scan(&agg.Square, &agg.Correct, &agg.Incorrect, &agg.LatencySumMs, &agg.LatencyCount); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// SquareAggregates aggregates square stats across every stored round.
func (s *Store) SquareAggregates(ctx context.Context) ([]model.SquareAggregate, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT square, SUM(correct) AS correct, SUM(incorrect) AS incorrect,
			SUM(latency_sum_ms) AS latency_sum_ms, SUM(latency_count) AS latency_count
		 FROM round_square_stats
		 GROUP BY square`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.SquareAggregate
	for rows.Next() {
		var agg model.SquareAggregate
		if err := rows.Scan(&agg.Square, &agg.Correct, &agg.Incorrect, &agg.LatencySumMs, &agg.LatencyCount); err != nil {
			return nil, err
		}
		result = append(result, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
