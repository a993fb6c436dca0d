package tui

import (
	"fmt"
	"html"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/flashdeck/flashdeck/internal/view"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	deckPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(30)

	cardPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(1, 2)

	activeDeckStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	cursorDeckStyle = lipgloss.NewStyle().
			Reverse(true)

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99"))

	counterStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	markStyle = lipgloss.NewStyle().
			Reverse(true).
			Foreground(lipgloss.Color("220"))

	faintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114"))

	shuffleOnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))
)

func (m Model) View() string {
	snap := m.sess.Snapshot()

	left := m.renderDeckList(snap.ActiveDeckID)
	right := m.renderCardPane()
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)

	sections := []string{
		titleStyle.Render("Flashdeck"),
		body,
	}
	if m.prompt != promptNone {
		sections = append(sections, m.renderPrompt())
	}
	if m.status != "" {
		sections = append(sections, statusStyle.Render(m.status))
	}
	sections = append(sections, faintStyle.Render(m.helpLine()))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderDeckList(activeDeckID string) string {
	entries := view.ProjectDeckList(m.decks.Decks(), activeDeckID)

	var b strings.Builder
	b.WriteString(labelStyle.Render("Decks"))
	b.WriteString("\n")

	if len(entries) == 0 {
		b.WriteString(faintStyle.Render("No decks yet. Press n."))
	}

	for i, entry := range entries {
		line := fmt.Sprintf("%s  %d cards", truncate(entry.Name, 20), entry.CardCount)
		switch {
		case i == m.deckCursor:
			line = cursorDeckStyle.Render(line)
		case entry.Active:
			line = activeDeckStyle.Render(line)
		}
		b.WriteString(line)
		if i < len(entries)-1 {
			b.WriteString("\n")
		}
	}

	return deckPaneStyle.Render(b.String())
}

func (m Model) renderCardPane() string {
	snap := m.sess.Snapshot()
	vm := view.Project(snap)

	width := m.width - 40
	if width < 30 {
		width = 30
	}

	var b strings.Builder

	if m.searching || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	}

	switch {
	case vm.CardVisible:
		label := vm.Label
		if snap.Shuffled {
			label += shuffleOnStyle.Render("  [shuffled]")
		}
		b.WriteString(labelStyle.Render(label))
		b.WriteString("\n\n")
		b.WriteString(renderHighlighted(vm.Text))
		b.WriteString("\n\n")
		b.WriteString(counterStyle.Render(vm.Counter))

	case vm.EmptyVisible:
		b.WriteString(faintStyle.Render("No cards to show."))
		b.WriteString("\n\n")
		b.WriteString(counterStyle.Render(vm.Counter))

	default:
		b.WriteString(faintStyle.Render(vm.Text))
		b.WriteString("\n\n")
		b.WriteString(counterStyle.Render(vm.Counter))
	}

	return cardPaneStyle.Width(width).Render(b.String())
}

func (m Model) renderPrompt() string {
	switch m.prompt {
	case promptConfirmDelete:
		return "Delete this card? (y/n)"
	case promptConfirmReset:
		return "Reset all decks to default? This cannot be undone. (y/n)"
	default:
		return m.input.Placeholder + ": " + m.input.View()
	}
}

func (m Model) helpLine() string {
	if m.searching {
		return "enter apply · esc clear"
	}
	if m.prompt != promptNone {
		return "enter confirm · esc cancel"
	}
	return "↑/↓ decks · enter study · space flip · ←/→ nav · s shuffle · / search · n new deck · a/e/d card · R reset · q quit"
}

// renderHighlighted converts the projector's marked-up text to styled
// terminal output: <mark> spans get the highlight style and entities
// are unescaped back to plain text.
func renderHighlighted(marked string) string {
	var b strings.Builder
	rest := marked
	for {
		start := strings.Index(rest, "<mark>")
		if start < 0 {
			b.WriteString(html.UnescapeString(rest))
			return b.String()
		}
		end := strings.Index(rest[start:], "</mark>")
		if end < 0 {
			b.WriteString(html.UnescapeString(rest))
			return b.String()
		}
		b.WriteString(html.UnescapeString(rest[:start]))
		span := rest[start+len("<mark>") : start+end]
		b.WriteString(markStyle.Render(html.UnescapeString(span)))
		rest = rest[start+end+len("</mark>"):]
	}
}
