// Package imposter assigns secret prompts for the fact-bluffing party game.
package imposter

import (
	_ "embed"
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"
)

//go:embed facts.toml
var builtinFacts string

type factsFile struct {
	Topics map[string][]string `toml:"topics"`
}

var defaultSets = mustParseFacts(builtinFacts)

func mustParseFacts(data string) map[string][]string {
	var file factsFile
	if _, err := toml.Decode(data, &file); err != nil {
		panic(fmt.Sprintf("built-in fact file is malformed: %v", err))
	}
	if err := validateSets(file.Topics); err != nil {
		panic(fmt.Sprintf("built-in fact file is malformed: %v", err))
	}
	return file.Topics
}

// DefaultSets returns the built-in topic pools. The result is a fresh copy
// each call.
func DefaultSets() map[string][]string {
	sets := make(map[string][]string, len(defaultSets))
	for topic, prompts := range defaultSets {
		sets[topic] = append([]string(nil), prompts...)
	}
	return sets
}

// LoadSets reads topic pools from a TOML file laid out like the built-in
// facts.toml.
func LoadSets(path string) (map[string][]string, error) {
	var file factsFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return nil, err
	}
	if err := validateSets(file.Topics); err != nil {
		return nil, fmt.Errorf("fact file %s: %w", path, err)
	}
	return file.Topics, nil
}

func validateSets(sets map[string][]string) error {
	if len(sets) == 0 {
		return fmt.Errorf("no topics defined")
	}
	for topic, prompts := range sets {
		if len(prompts) == 0 {
			return fmt.Errorf("topic %q has no prompts", topic)
		}
		for _, prompt := range prompts {
			if prompt == "" {
				return fmt.Errorf("topic %q has an empty prompt", topic)
			}
		}
	}
	return nil
}

// Topics lists the topic names in a pool, sorted alphabetically.
func Topics(sets map[string][]string) []string {
	names := make([]string, 0, len(sets))
	for topic := range sets {
		names = append(names, topic)
	}
	sort.Strings(names)
	return names
}
