// Package main provides the CLI entrypoint for the knightour trainer.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/philscott2006-consultbeyond/parlor/internal/config"
	"github.com/philscott2006-consultbeyond/parlor/internal/model"
	"github.com/philscott2006-consultbeyond/parlor/internal/render"
	"github.com/philscott2006-consultbeyond/parlor/internal/stats"
	"github.com/philscott2006-consultbeyond/parlor/internal/store"
	"github.com/philscott2006-consultbeyond/parlor/internal/tour"
	"github.com/philscott2006-consultbeyond/parlor/internal/tui"
)

const (
	defaultStart      = "a1"
	defaultSteps      = 64
	defaultWeakTop    = 5
	defaultWeakWindow = 10
)

var (
	tourStart   string
	tourReverse bool

	showSteps  int
	boardSteps int

	quizHideBoard  bool
	quizWeakTop    int
	quizWeakWindow int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "knightour",
		Short:         "Knight's tour walks and recall drills",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&tourStart, "start", defaultStart, "starting square in algebraic notation (a1-h8)")
	rootCmd.PersistentFlags().BoolVar(&tourReverse, "reverse", false, "walk the tour from its final square back to the start")

	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newBoardCmd())
	rootCmd.AddCommand(newQuizCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the tour as a numbered move list",
		Args:  cobra.NoArgs,
		RunE:  runShowCmd,
	}
	cmd.Flags().IntVar(&showSteps, "steps", defaultSteps, "number of moves to print (0-64)")
	return cmd
}

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Print the tour as move numbers on a board diagram",
		Args:  cobra.NoArgs,
		RunE:  runBoardCmd,
	}
	cmd.Flags().IntVar(&boardSteps, "steps", defaultSteps, "number of moves to place on the board (0-64)")
	return cmd
}

func newQuizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Start an interactive recall drill over the tour",
		Args:  cobra.NoArgs,
		RunE:  runQuizCmd,
	}
	cmd.Flags().BoolVar(&quizHideBoard, "hide-board", false, "hide the board diagram while guessing")
	cmd.Flags().IntVar(&quizWeakTop, "weak-top", defaultWeakTop, "number of trouble squares to report after a round")
	cmd.Flags().IntVar(&quizWeakWindow, "weak-window", defaultWeakWindow, "number of recent rounds the trouble report looks back over")
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

func runShowCmd(cmd *cobra.Command, _ []string) error {
	if _, err := loadFileConfig(cmd); err != nil {
		return err
	}

	tr, err := buildTour()
	if err != nil {
		return err
	}
	squares, err := tr.Prefix(direction(), showSteps)
	if err != nil {
		return fmt.Errorf("invalid --steps: %w", err)
	}

	out := render.Columns(render.MoveList(squares), stats.TerminalWidth())
	if out == "" {
		return nil
	}
	if _, err := fmt.Fprintln(cmd.OutOrStdout(), out); err != nil {
		return err
	}
	return nil
}

func runBoardCmd(cmd *cobra.Command, _ []string) error {
	if _, err := loadFileConfig(cmd); err != nil {
		return err
	}

	tr, err := buildTour()
	if err != nil {
		return err
	}
	squares, err := tr.Prefix(direction(), boardSteps)
	if err != nil {
		return fmt.Errorf("invalid --steps: %w", err)
	}

	if _, err := fmt.Fprintln(cmd.OutOrStdout(), render.Board(squares)); err != nil {
		return err
	}
	return nil
}

func runQuizCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig(cmd)
	if err != nil {
		return err
	}
	applyBoolConfig(cmd, "hide-board", &quizHideBoard, fileCfg.Quiz.HideBoard)
	applyIntConfig(cmd, "weak-top", &quizWeakTop, fileCfg.Quiz.WeakTop)
	applyIntConfig(cmd, "weak-window", &quizWeakWindow, fileCfg.Quiz.WeakWindow)

	if quizWeakTop < 0 {
		return fmt.Errorf("--weak-top must be >= 0, got %d", quizWeakTop)
	}
	if quizWeakWindow < 0 {
		return fmt.Errorf("--weak-window must be >= 0, got %d", quizWeakWindow)
	}

	tr, err := buildTour()
	if err != nil {
		return err
	}

	st, err := store.Open()
	if err != nil {
		return fmt.Errorf("failed to open round store: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close round store: %v\n", cerr)
		}
	}()

	cfg := model.Config{
		Start:      tourStart,
		Reverse:    tourReverse,
		HideBoard:  quizHideBoard,
		WeakTop:    quizWeakTop,
		WeakWindow: quizWeakWindow,
	}

	program := tea.NewProgram(tui.NewModel(cfg, st, tr), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
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

// loadFileConfig reads the config file and applies the tour settings every
// command shares. CLI flags take precedence over config file values.
func loadFileConfig(cmd *cobra.Command) (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "start", &tourStart, fileCfg.Tour.Start)
	applyBoolConfig(cmd, "reverse", &tourReverse, fileCfg.Tour.Reverse)
	return fileCfg, nil
}

func buildTour() (tour.Tour, error) {
	start, err := tour.ParseSquare(tourStart)
	if err != nil {
		return tour.Tour{}, fmt.Errorf("invalid --start: %w", err)
	}
	tr, err := tour.Build(start)
	if err != nil {
		return tour.Tour{}, err
	}
	return tr, nil
}

func direction() tour.Direction {
	if tourReverse {
		return tour.Reverse
	}
	return tour.Forward
}

// applyStringConfig sets the flag variable from the config file value
// unless the flag was explicitly provided on the command line.
func applyStringConfig(cmd *cobra.Command, name string, target *string, value *string) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target *int, value *int) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target *bool, value *bool) {
	if value == nil || cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	// Best-effort logging to stderr.
	_, _ = fmt.Fprintf(os.Stderr, format, args...)
}
