// Package model defines shared data structures.
package model

import "time"

// Config defines quiz settings.
type Config struct {
	Start      string
	Reverse    bool
	HideBoard  bool
	WeakTop    int
	WeakWindow int
}

// RoundStats captures a completed quiz round.
type RoundStats struct {
	StartedAt  time.Time
	EndedAt    time.Time
	Direction  string
	Start      string
	Correct    int
	Incorrect  int
	DurationMs int64
}

// SquareStats stores per-square stats for a round.
type SquareStats struct {
	Square       string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}

// SquareAggregate aggregates square stats across rounds.
type SquareAggregate struct {
	Square       string
	Correct      int
	Incorrect    int
	LatencySumMs int64
	LatencyCount int64
}

// RoundAggregate summarizes a round for reporting.
type RoundAggregate struct {
	RoundID    int64
	EndedAt    time.Time
	Direction  string
	Correct    int
	Incorrect  int
	DurationMs int64
}
