// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Tour     TourConfig     `toml:"tour"`
	Quiz     QuizConfig     `toml:"quiz"`
	Imposter ImposterConfig `toml:"imposter"`
}

// TourConfig maps tour-related settings.
type TourConfig struct {
	Start   *string `toml:"start"`
	Reverse *bool   `toml:"reverse"`
}

// QuizConfig maps quiz-related settings.
type QuizConfig struct {
	HideBoard  *bool `toml:"hide-board"`
	WeakTop    *int  `toml:"weak-top"`
	WeakWindow *int  `toml:"weak-window"`
}

// ImposterConfig maps party game settings.
type ImposterConfig struct {
	Facts *string `toml:"facts"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// DefaultTemplate is the starter config written by the config subcommand.
// Both binaries share the file, so the template covers every section.
func DefaultTemplate() string {
	return `# parlor configuration
# Uncomment a value to enable it. CLI flags override config values.

[tour]
# start = "a1"        # Starting square for the tour
# reverse = false     # Walk the tour from its final square

[quiz]
# hide-board = false  # Hide the board while guessing
# weak-top = 5        # Number of trouble squares to report
# weak-window = 10    # Number of recent rounds to compute trouble squares

[imposter]
# facts = ""          # Path to a custom facts file
`
}
