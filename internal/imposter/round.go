package imposter

import (
	"fmt"
	"math/rand"
)

// MinPlayers is the smallest group a round supports: one imposter plus two
// prompt holders.
const MinPlayers = 3

// Assignment is the secret card dealt to one player.
type Assignment struct {
	Imposter bool
	Prompt   string
}

// Round holds the secret setup for one game: the drawn topic, which seat
// holds the imposter, and every player's card in seat order.
type Round struct {
	Topic         string
	ImposterIndex int
	Assignments   []Assignment
}

// GenerateRound deals a round for the given number of players from the
// provided topic pools. The rng drives every draw, so a fixed seed
// reproduces the full round.
func GenerateRound(players int, rng *rand.Rand, sets map[string][]string) (Round, error) {
	if players < MinPlayers {
		return Round{}, fmt.Errorf("the game needs at least %d players, got %d", MinPlayers, players)
	}
	if err := validateSets(sets); err != nil {
		return Round{}, err
	}

	// Map iteration order is randomized, so draw from sorted topic names to
	// keep rounds reproducible for a given seed.
	names := Topics(sets)
	topic := names[rng.Intn(len(names))]
	imposter := rng.Intn(players)
	prompts := samplePrompts(sets[topic], players-1, rng)

	assignments := make([]Assignment, players)
	next := 0
	for seat := range assignments {
		if seat == imposter {
			assignments[seat] = Assignment{Imposter: true}
			continue
		}
		assignments[seat] = Assignment{Prompt: prompts[next]}
		next++
	}
	return Round{Topic: topic, ImposterIndex: imposter, Assignments: assignments}, nil
}

// samplePrompts draws count prompts from the pool. While the pool is large
// enough it samples without replacement; a smaller pool is dealt out in
// full, shuffled, then topped up with repeat draws.
func samplePrompts(pool []string, count int, rng *rand.Rand) []string {
	if count <= 0 {
		return nil
	}
	if len(pool) >= count {
		out := make([]string, count)
		for i, idx := range rng.Perm(len(pool))[:count] {
			out[i] = pool[idx]
		}
		return out
	}
	out := append([]string(nil), pool...)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	for len(out) < count {
		out = append(out, pool[rng.Intn(len(pool))])
	}
	return out[:count]
}
