package imposter

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestGenerateRoundDealsExactlyOneImposter(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	round, err := GenerateRound(5, rng, DefaultSets())
	if err != nil {
		t.Fatalf("GenerateRound failed: %v", err)
	}

	if len(round.Assignments) != 5 {
		t.Fatalf("dealt %d assignments, want 5", len(round.Assignments))
	}
	imposters := 0
	for seat, a := range round.Assignments {
		if a.Imposter {
			imposters++
			if seat != round.ImposterIndex {
				t.Fatalf("imposter card at seat %d, ImposterIndex = %d", seat, round.ImposterIndex)
			}
			if a.Prompt != "" {
				t.Fatalf("imposter card carries prompt %q", a.Prompt)
			}
			continue
		}
		if a.Prompt == "" {
			t.Fatalf("seat %d dealt an empty prompt", seat)
		}
	}
	if imposters != 1 {
		t.Fatalf("dealt %d imposters, want 1", imposters)
	}
}

func TestGenerateRoundPromptsComeFromDrawnTopic(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	sets := DefaultSets()
	round, err := GenerateRound(4, rng, sets)
	if err != nil {
		t.Fatalf("GenerateRound failed: %v", err)
	}

	pool := map[string]bool{}
	for _, prompt := range sets[round.Topic] {
		pool[prompt] = true
	}
	for seat, a := range round.Assignments {
		if a.Imposter {
			continue
		}
		if !pool[a.Prompt] {
			t.Fatalf("seat %d prompt %q not in topic %q", seat, a.Prompt, round.Topic)
		}
	}
}

func TestGenerateRoundRejectsSmallGroups(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, players := range []int{-1, 0, 2} {
		if _, err := GenerateRound(players, rng, DefaultSets()); err == nil {
			t.Fatalf("GenerateRound(%d) succeeded, want error", players)
		}
	}
}

func TestGenerateRoundIsSeedReproducible(t *testing.T) {
	first, err := GenerateRound(6, rand.New(rand.NewSource(42)), DefaultSets())
	if err != nil {
		t.Fatalf("GenerateRound failed: %v", err)
	}
	second, err := GenerateRound(6, rand.New(rand.NewSource(42)), DefaultSets())
	if err != nil {
		t.Fatalf("GenerateRound failed: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same seed dealt different rounds:\n%+v\n%+v", first, second)
	}
}

func TestGenerateRoundShortPoolDealsEveryPromptOnce(t *testing.T) {
	sets := map[string][]string{"tiny": {"alpha", "beta"}}
	rng := rand.New(rand.NewSource(3))
	round, err := GenerateRound(6, rng, sets)
	if err != nil {
		t.Fatalf("GenerateRound failed: %v", err)
	}

	seen := map[string]int{}
	for _, a := range round.Assignments {
		if !a.Imposter {
			seen[a.Prompt]++
		}
	}
	if seen["alpha"] == 0 || seen["beta"] == 0 {
		t.Fatalf("short pool skipped a prompt: %v", seen)
	}
	if seen["alpha"]+seen["beta"] != 5 {
		t.Fatalf("dealt %d prompts, want 5", seen["alpha"]+seen["beta"])
	}
}

func TestGenerateRoundSingleTopicPoolAlwaysDrawsIt(t *testing.T) {
	sets := map[string][]string{"space": DefaultSets()["space"]}
	round, err := GenerateRound(3, rand.New(rand.NewSource(9)), sets)
	if err != nil {
		t.Fatalf("GenerateRound failed: %v", err)
	}
	if round.Topic != "space" {
		t.Fatalf("Topic = %q, want space", round.Topic)
	}
}
