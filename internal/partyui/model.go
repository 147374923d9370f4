// Package partyui provides the Bubble Tea pass-and-play briefing for the
// imposter game.
package partyui

import (
	"fmt"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/philscott2006-consultbeyond/parlor/internal/imposter"
	"github.com/philscott2006-consultbeyond/parlor/internal/render"
)

type phase int

const (
	phaseHandoff phase = iota
	phaseCard
	phaseDiscussion
	phaseTopicReveal
	phaseImposterReveal
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	alertStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	cardStyle   = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
)

// Model walks a dealt round through its pass-and-play phases: a handoff
// and a secret card per player, then discussion, then the reveals.
type Model struct {
	round  imposter.Round
	player int
	phase  phase

	width  int
	height int
}

// NewModel constructs a briefing UI for the dealt round.
func NewModel(round imposter.Round) *Model {
	return &Model{round: round}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m, m.advance()
		}
		if msg.String() == "q" {
			return m, tea.Quit
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m *Model) advance() tea.Cmd {
	switch m.phase {
	case phaseHandoff:
		m.phase = phaseCard
	case phaseCard:
		m.player++
		if m.player < len(m.round.Assignments) {
			m.phase = phaseHandoff
		} else {
			m.phase = phaseDiscussion
		}
	case phaseDiscussion:
		m.phase = phaseTopicReveal
	case phaseTopicReveal:
		m.phase = phaseImposterReveal
	case phaseImposterReveal:
		return tea.Quit
	}
	return nil
}

// View implements tea.Model.
func (m *Model) View() string {
	content := m.renderContent()
	if m.width == 0 || m.height == 0 {
		return content
	}
	footer := footerStyle.Render(m.footerHelp())
	if m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	bodyHeight := m.height - 1
	body := lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) renderContent() string {
	switch m.phase {
	case phaseHandoff:
		return m.card(
			titleStyle.Render(fmt.Sprintf("Player %d", m.player+1)),
			fmt.Sprintf("Pass the screen to player %d.", m.player+1),
			"Everyone else, look away.")
	case phaseCard:
		assignment := m.round.Assignments[m.player]
		if assignment.Imposter {
			return m.card(
				alertStyle.Render("You drew the imposter card!"),
				"Listen to everyone else's stories, then invent your own and try to blend in.")
		}
		return m.card(
			titleStyle.Render(fmt.Sprintf("Secret topic: %s", displayTopic(m.round.Topic))),
			"Your prompt when the spotlight is on you:",
			assignment.Prompt)
	case phaseDiscussion:
		return m.card(
			titleStyle.Render("Discussion"),
			"Everyone has seen their prompt.",
			"Take turns telling your story, then vote on who you think the imposter is.")
	case phaseTopicReveal:
		return m.card(
			titleStyle.Render("The topic was"),
			displayTopic(m.round.Topic))
	case phaseImposterReveal:
		return m.card(
			alertStyle.Render("The imposter was"),
			fmt.Sprintf("Player %d", m.round.ImposterIndex+1))
	}
	return ""
}

func (m *Model) card(lines ...string) string {
	width := cardWidth(m.width)
	wrapped := make([]string, len(lines))
	for i, line := range lines {
		wrapped[i] = render.Wrap(line, width)
	}
	return cardStyle.Width(width).Render(strings.Join(wrapped, "\n\n"))
}

func (m *Model) footerHelp() string {
	switch m.phase {
	case phaseHandoff:
		return "enter show card · q quit"
	case phaseCard:
		return "enter hide card and pass on · q quit"
	case phaseDiscussion:
		return "enter reveal topic · q quit"
	case phaseTopicReveal:
		return "enter reveal imposter · q quit"
	default:
		return "enter quit"
	}
}

func cardWidth(width int) int {
	if width <= 0 {
		return 60
	}
	w := int(float64(width) * 0.70)
	if w > 60 {
		w = 60
	}
	if w < 20 {
		w = 20
	}
	return w
}

func displayTopic(topic string) string {
	out := strings.ReplaceAll(topic, "_", " ")
	runes := []rune(out)
	if len(runes) == 0 {
		return out
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
