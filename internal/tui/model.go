// Package tui provides the Bubble Tea quiz interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/philscott2006-consultbeyond/parlor/internal/model"
	"github.com/philscott2006-consultbeyond/parlor/internal/quiz"
	"github.com/philscott2006-consultbeyond/parlor/internal/render"
	"github.com/philscott2006-consultbeyond/parlor/internal/stats"
	"github.com/philscott2006-consultbeyond/parlor/internal/store"
	"github.com/philscott2006-consultbeyond/parlor/internal/tour"
)

type phase int

const (
	phaseGuess phase = iota
	phaseSummary
)

type squareStat struct {
	correct      int
	incorrect    int
	latencySumMs int64
	latencyCount int64
}

var (
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	accentStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle     = accentStyle.Copy().Bold(true)
	promptStyle    = accentStyle.Copy().Bold(true)
)

// Model implements the Bubble Tea quiz UI.
type Model struct {
	config    model.Config
	store     *store.Store
	tour      tour.Tour
	direction tour.Direction
	order     []tour.Square
	session   *quiz.Session
	reviewing bool

	width  int
	height int

	input   textinput.Model
	history viewport.Model
	phase   phase

	started   bool
	startedAt time.Time
	promptAt  time.Time

	feedback    string
	squareStats map[string]*squareStat

	lastMisses    []int
	lastCorrect   int
	lastIncorrect int
	lastDuration  int64
	lastAcc       float64
	bestAcc       float64
	hasLast       bool
}

// NewModel constructs a quiz TUI model for the given tour.
func NewModel(cfg model.Config, st *store.Store, tr tour.Tour) *Model {
	direction := tour.Forward
	if cfg.Reverse {
		direction = tour.Reverse
	}
	m := &Model{
		config:    cfg,
		store:     st,
		tour:      tr,
		direction: direction,
		order:     tr.Sequence(direction),
		input:     newGuessInput(),
		history:   viewport.New(0, 0),
	}
	m.startRound()
	return m
}

func newGuessInput() textinput.Model {
	input := textinput.New()
	input.Prompt = "Next square: "
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutHistory()
		return m, nil
	case tea.KeyMsg:
		if m.phase == phaseSummary {
			return m.updateSummary(msg)
		}
		return m.updateGuess(msg)
	default:
		return m, nil
	}
}

func (m *Model) updateGuess(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		m.submitInput()
		return m, nil
	default:
		if !m.started && msg.Type == tea.KeyRunes {
			m.started = true
			m.startedAt = time.Now()
			m.promptAt = m.startedAt
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) updateSummary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc", "q":
		return m, tea.Quit
	case "r":
		m.startRound()
		return m, textinput.Blink
	case "m":
		if len(m.lastMisses) == 0 {
			return m, nil
		}
		m.startReview()
		return m, textinput.Blink
	case "g", "home":
		m.history.GotoTop()
		return m, nil
	case "G", "end":
		m.history.GotoBottom()
		return m, nil
	default:
		var cmd tea.Cmd
		m.history, cmd = m.history.Update(msg)
		return m, cmd
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.phase == phaseSummary {
		return m.viewSummary()
	}
	return m.viewGuess()
}

func (m *Model) viewGuess() string {
	parts := []string{titleStyle.Render("Knight's Tour Recall")}
	if board := m.renderBoard(); board != "" {
		parts = append(parts, board)
	}
	label := "Move"
	if m.reviewing {
		label = "Review"
	}
	parts = append(parts, fmt.Sprintf("%s %d of %d · from %s",
		label, m.session.Answered()+1, m.session.Len(), promptStyle.Render(m.session.Prompt().String())))
	parts = append(parts, m.input.View())
	if m.feedback != "" {
		parts = append(parts, m.feedback)
	}
	content := strings.Join(parts, "\n\n")
	if m.width == 0 || m.height == 0 {
		return content
	}
	footer := m.renderFooter()
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) viewSummary() string {
	title := titleStyle.Render("Round Summary")
	help := "r new round · g/G scroll · q quit"
	if len(m.lastMisses) > 0 {
		help = "r new round · m review misses · g/G scroll · q quit"
	}
	return title + "\n" + m.history.View() + "\n" + footerStyle.Render(help)
}

// renderBoard shows the squares revealed so far. Review rounds hide the
// board since it would spell out the answers.
func (m *Model) renderBoard() string {
	if m.config.HideBoard || m.reviewing {
		return ""
	}
	visited := m.order[:m.session.Answered()+1]
	grid := render.Cells(visited)
	prompt := m.session.Prompt()
	lines := make([]string, 0, tour.Size+2)
	lines = append(lines, footerStyle.Render(render.FileHeader))
	for rank := tour.Size - 1; rank >= 0; rank-- {
		cells := make([]string, tour.Size)
		for file := 0; file < tour.Size; file++ {
			cell := fmt.Sprintf("%2s", grid[rank][file])
			switch {
			case prompt.File == file && prompt.Rank == rank:
				cells[file] = promptStyle.Render(cell)
			case grid[rank][file] == ".":
				cells[file] = pendingStyle.Render(cell)
			default:
				cells[file] = correctStyle.Render(cell)
			}
		}
		lines = append(lines, fmt.Sprintf("%d %s", rank+1, strings.Join(cells, " ")))
	}
	lines = append(lines, footerStyle.Render(render.FileHeader))
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	correct, incorrect := m.session.Tally()
	segments := []string{fmt.Sprintf("Score %d/%d", correct, correct+incorrect)}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %.1f%%", m.lastAcc*100))
		segments = append(segments, fmt.Sprintf("Best %.1f%%", m.bestAcc*100))
	}
	segments = append(segments, "enter check · esc quit")
	return footerStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) submitInput() {
	if strings.TrimSpace(m.input.Value()) == "" {
		return
	}
	result, err := m.session.SubmitNotation(m.input.Value())
	if err != nil {
		m.feedback = incorrectStyle.Render(err.Error())
		m.input.SetValue("")
		return
	}
	m.recordResult(result)
	m.input.SetValue("")
	m.promptAt = time.Now()
	if m.session.Done() {
		m.finishRound()
	}
}

func (m *Model) recordResult(result quiz.Result) {
	entry := m.squareEntry(result.Expected.String())
	if result.Correct {
		entry.correct++
		if !m.promptAt.IsZero() {
			delta := time.Since(m.promptAt)
			entry.latencySumMs += delta.Milliseconds()
			entry.latencyCount++
		}
		m.feedback = correctStyle.Render("✓ Correct!")
		return
	}
	entry.incorrect++
	m.feedback = incorrectStyle.Render(fmt.Sprintf("✗ The next square was %s.", result.Expected))
}

func (m *Model) squareEntry(square string) *squareStat {
	if m.squareStats == nil {
		m.squareStats = map[string]*squareStat{}
	}
	entry, ok := m.squareStats[square]
	if !ok {
		entry = &squareStat{}
		m.squareStats[square] = entry
	}
	return entry
}

func (m *Model) startRound() {
	m.session = quiz.New(m.tour, m.direction)
	m.reviewing = false
	m.resetRoundState()
}

func (m *Model) startReview() {
	session, err := quiz.NewReview(m.tour, m.direction, m.lastMisses)
	if err != nil {
		m.feedback = incorrectStyle.Render(err.Error())
		return
	}
	m.session = session
	m.reviewing = true
	m.resetRoundState()
}

func (m *Model) resetRoundState() {
	m.started = false
	m.startedAt = time.Time{}
	m.promptAt = time.Time{}
	m.feedback = ""
	m.squareStats = map[string]*squareStat{}
	m.input.SetValue("")
	m.input.Focus()
	m.phase = phaseGuess
}

// finishRound stores the completed round and switches to the summary.
// Review rounds re-drill known misses, so they are not recorded.
func (m *Model) finishRound() {
	endedAt := time.Now()
	correct, incorrect := m.session.Tally()
	duration := endedAt.Sub(m.startedAt).Milliseconds()

	if !m.reviewing {
		round := model.RoundStats{
			StartedAt:  m.startedAt,
			EndedAt:    endedAt,
			Direction:  m.direction.String(),
			Start:      m.config.Start,
			Correct:    correct,
			Incorrect:  incorrect,
			DurationMs: duration,
		}
		squares := make([]model.SquareStats, 0, len(m.squareStats))
		for square, entry := range m.squareStats {
			squares = append(squares, model.SquareStats{
				Square:       square,
				Correct:      entry.correct,
				Incorrect:    entry.incorrect,
				LatencySumMs: entry.latencySumMs,
				LatencyCount: entry.latencyCount,
			})
		}
		if _, err := m.store.InsertRound(context.Background(), round, squares); err != nil {
			logErrf("failed to save round: %v\n", err)
		}
	}

	m.lastMisses = m.session.Misses()
	m.lastCorrect = correct
	m.lastIncorrect = incorrect
	m.lastDuration = duration
	_, acc := stats.RoundMetrics(correct, incorrect, duration)
	m.lastAcc = acc
	if acc > m.bestAcc {
		m.bestAcc = acc
	}
	m.hasLast = true

	m.input.Blur()
	m.phase = phaseSummary
	m.history.SetContent(m.renderSummaryContent())
	m.history.GotoTop()
}

func (m *Model) renderSummaryContent() string {
	var b strings.Builder
	spm, acc := stats.RoundMetrics(m.lastCorrect, m.lastIncorrect, m.lastDuration)
	fmt.Fprintln(&b, "This round")
	if m.reviewing {
		fmt.Fprintln(&b, "Review round (not recorded)")
	}
	fmt.Fprintf(&b, "Score: %d/%d (%.1f%%)\n", m.lastCorrect, m.lastCorrect+m.lastIncorrect, acc*100)
	fmt.Fprintf(&b, "Duration: %.1fs\n", float64(m.lastDuration)/1000)
	fmt.Fprintf(&b, "Squares per minute: %.1f\n", spm)
	fmt.Fprintln(&b, "")

	summary, err := stats.BuildSummary(context.Background(), m.store, m.config.WeakTop, m.config.WeakWindow)
	if err != nil {
		fmt.Fprintf(&b, "Failed to load stats: %v\n", err)
		return strings.TrimRight(b.String(), "\n")
	}
	if err := stats.RenderSittingSummary(&b, summary.Rounds); err != nil {
		return b.String()
	}
	if err := stats.RenderTroubleSquares(&b, summary.WeakSquares, m.config.WeakWindow); err != nil {
		return b.String()
	}
	if err := stats.RenderSquareTable(&b, summary.SquareAggs); err != nil {
		return b.String()
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) layoutHistory() {
	m.history.Width = m.width
	height := m.height - 2
	if height < 1 {
		height = 1
	}
	m.history.Height = height
}

func logErrf(format string, args ...any) {
	// Best-effort logging to stderr.
	_, _ = fmt.Fprintf(os.Stderr, format, args...)
}
