// Package main provides the CLI entrypoint for the imposter party game.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/philscott2006-consultbeyond/parlor/internal/config"
	"github.com/philscott2006-consultbeyond/parlor/internal/imposter"
	"github.com/philscott2006-consultbeyond/parlor/internal/partyui"
	"github.com/philscott2006-consultbeyond/parlor/internal/stats"
)

const (
	ansiAccent = "\x1b[33m"
	ansiReset  = "\x1b[0m"
)

var (
	roundSeed  int64
	roundTopic string
	roundFacts string

	topicsFacts string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "imposter <players>",
		Short:         "Deal a round of the imposter party game",
		Args:          cobra.ExactArgs(1),
		RunE:          runRoundCmd,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.Flags().Int64Var(&roundSeed, "seed", 0, "random seed for the deal (defaults to the current time)")
	rootCmd.Flags().StringVar(&roundTopic, "topic", "", "restrict the round to a single topic")
	rootCmd.Flags().StringVar(&roundFacts, "facts", "", "path to a custom TOML fact file")

	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func newTopicsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topics",
		Short: "List the available topics and their prompt counts",
		Args:  cobra.NoArgs,
		RunE:  runTopicsCmd,
	}
	cmd.Flags().StringVar(&topicsFacts, "facts", "", "path to a custom TOML fact file")
	return cmd
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create the config file if needed and open it in $EDITOR",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runRoundCmd(cmd *cobra.Command, args []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "facts", &roundFacts, fileCfg.Imposter.Facts)

	players, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid player count %q", args[0])
	}

	sets, err := loadFactSets(roundFacts)
	if err != nil {
		return err
	}

	if roundTopic != "" {
		pool, ok := sets[roundTopic]
		if !ok {
			return fmt.Errorf("unknown topic %q (available: %s)", roundTopic, strings.Join(imposter.Topics(sets), ", "))
		}
		sets = map[string][]string{roundTopic: pool}
	}

	if !cmd.Flags().Changed("seed") {
		roundSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(roundSeed))

	round, err := imposter.GenerateRound(players, rng, sets)
	if err != nil {
		return err
	}

	program := tea.NewProgram(partyui.NewModel(round), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func runTopicsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "facts", &topicsFacts, fileCfg.Imposter.Facts)

	sets, err := loadFactSets(topicsFacts)
	if err != nil {
		return err
	}

	useColor := stats.ShouldUseColor(os.Stdout, false)
	out := cmd.OutOrStdout()
	for _, name := range imposter.Topics(sets) {
		label := name
		if useColor {
			label = ansiAccent + name + ansiReset
		}
		if _, err := fmt.Fprintf(out, "%s (%d prompts)\n", label, len(sets[name])); err != nil {
			return err
		}
	}
	return nil
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := config.EnsureFile(path, config.DefaultTemplate()); err != nil {
		return err
	}
	return config.OpenInEditor(path)
}

// loadFactSets resolves the prompt pools for a round. An explicit path must
// load cleanly; otherwise the facts file in the config directory is used
// when present, falling back to the built-in pools.
func loadFactSets(path string) (map[string][]string, error) {
	if path != "" {
		return imposter.LoadSets(path)
	}
	fallback := config.DefaultFactsPath()
	if _, err := os.Stat(fallback); err == nil {
		return imposter.LoadSets(fallback)
	}
	return imposter.DefaultSets(), nil
}

// applyStringConfig sets the flag variable from the config file value
// unless the flag was explicitly provided on the command line.
func applyStringConfig(cmd *cobra.Command, name string, target *string, value *string) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}
