// Package tui is the rendering collaborator: a bubbletea program that
// draws the deck list and card panes from the projector's view-models
// and translates key presses into session and store calls. It holds no
// study state of its own.
package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/flashdeck/flashdeck/internal/session"
	"github.com/flashdeck/flashdeck/internal/store"
	"github.com/flashdeck/flashdeck/pkg/logger"
	"github.com/flashdeck/flashdeck/pkg/models"
)

type promptKind int

const (
	promptNone promptKind = iota
	promptNewDeck
	promptAddQuestion
	promptAddAnswer
	promptEditQuestion
	promptEditAnswer
	promptConfirmDelete
	promptConfirmReset
)

// searchTickMsg re-renders after the debounce quiet period so the
// filtered view appears without another key press.
type searchTickMsg struct{}

type Model struct {
	decks *store.DeckStore
	sess  *session.Session
	log   *logger.Logger

	width  int
	height int

	deckCursor int
	searching  bool
	search     textinput.Model

	prompt      promptKind
	input       textinput.Model
	pendingText string // question captured by the first step of a two-step prompt
	pendingCard int    // card id being edited or deleted

	status        string
	debounceDelay time.Duration
}

func NewModel(decks *store.DeckStore, sess *session.Session, log *logger.Logger, debounceDelay time.Duration) Model {
	search := textinput.New()
	search.Placeholder = "Search cards..."
	search.CharLimit = 100
	search.Width = 30

	input := textinput.New()
	input.CharLimit = 500
	input.Width = 50

	return Model{
		decks:         decks,
		sess:          sess,
		log:           log,
		search:        search,
		input:         input,
		debounceDelay: debounceDelay,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case searchTickMsg:
		// Nothing to do: the refresh is the render that follows.
		return m, nil

	case tea.KeyMsg:
		if m.prompt != promptNone {
			return m.updatePrompt(msg)
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateNormal(msg)
	}

	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.deckCursor > 0 {
			m.deckCursor--
		}
	case "down", "j":
		if m.deckCursor < len(m.decks.Decks())-1 {
			m.deckCursor++
		}
	case "enter":
		decks := m.decks.Decks()
		if m.deckCursor < len(decks) {
			if err := m.sess.SelectDeck(decks[m.deckCursor].ID); err != nil {
				m.status = err.Error()
			}
			m.search.SetValue("")
		}

	case " ", "f":
		m.sess.Flip()
	case "right", "l":
		m.sess.Next()
	case "left", "h":
		m.sess.Previous()
	case "s":
		m.sess.ToggleShuffle()

	case "/":
		if m.sess.Snapshot().ActiveDeckID != "" {
			m.searching = true
			m.search.Focus()
			return m, textinput.Blink
		}

	case "n":
		return m.openPrompt(promptNewDeck, "Deck name", "")

	case "a":
		if m.sess.Snapshot().ActiveDeckID != "" {
			return m.openPrompt(promptAddQuestion, "Question", "")
		}

	case "e":
		if card, ok := m.currentCard(); ok {
			m.pendingCard = card.ID
			return m.openPrompt(promptEditQuestion, "Question", card.Question)
		}

	case "d":
		if card, ok := m.currentCard(); ok {
			m.pendingCard = card.ID
			m.prompt = promptConfirmDelete
		}

	case "R":
		m.prompt = promptConfirmReset
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.sess.Search("")
		return m, nil
	case "enter":
		m.searching = false
		m.search.Blur()
		m.sess.Search(m.search.Value())
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.sess.SetSearchQuery(m.search.Value())

	refresh := tea.Tick(m.debounceDelay+20*time.Millisecond, func(time.Time) tea.Msg {
		return searchTickMsg{}
	})
	return m, tea.Batch(cmd, refresh)
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.prompt {
	case promptConfirmDelete:
		if s := msg.String(); s == "y" || s == "Y" {
			m.deleteCurrentCard()
		}
		m.prompt = promptNone
		return m, nil

	case promptConfirmReset:
		if s := msg.String(); s == "y" || s == "Y" {
			m.decks.Reset()
			m.sess.Clear()
			m.deckCursor = 0
			m.search.SetValue("")
			m.status = "Decks reset to defaults"
		}
		m.prompt = promptNone
		return m, nil
	}

	switch msg.String() {
	case "esc":
		m.prompt = promptNone
		m.input.Blur()
		return m, nil
	case "enter":
		return m.submitPrompt()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submitPrompt() (tea.Model, tea.Cmd) {
	value := m.input.Value()

	switch m.prompt {
	case promptNewDeck:
		deck, err := m.decks.CreateDeck(value)
		if err != nil {
			m.status = "Deck not created: name is required"
			m.prompt = promptNone
			return m, nil
		}
		m.prompt = promptNone
		if err := m.sess.SelectDeck(deck.ID); err == nil {
			m.deckCursor = len(m.decks.Decks()) - 1
		}
		m.status = "Created deck " + deck.Name

	case promptAddQuestion:
		m.pendingText = value
		return m.openPrompt(promptAddAnswer, "Answer", "")

	case promptAddAnswer:
		m.prompt = promptNone
		deckID := m.sess.Snapshot().ActiveDeckID
		if _, err := m.decks.AddCard(deckID, m.pendingText, value); err != nil {
			m.status = "Card not added: question and answer are required"
			return m, nil
		}
		m.sess.RefreshDeck()
		m.status = "Card added"

	case promptEditQuestion:
		m.pendingText = value
		if card, ok := m.currentCard(); ok {
			return m.openPrompt(promptEditAnswer, "Answer", card.Answer)
		}
		m.prompt = promptNone

	case promptEditAnswer:
		m.prompt = promptNone
		deckID := m.sess.Snapshot().ActiveDeckID
		if err := m.decks.EditCard(deckID, m.pendingCard, m.pendingText, value); err != nil {
			m.status = "Card not saved: question and answer are required"
			return m, nil
		}
		m.sess.RefreshDeck()
		m.status = "Card saved"
	}

	return m, nil
}

func (m *Model) openPrompt(kind promptKind, placeholder, initial string) (tea.Model, tea.Cmd) {
	m.prompt = kind
	m.input.Placeholder = placeholder
	m.input.SetValue(initial)
	m.input.CursorEnd()
	m.input.Focus()
	return *m, textinput.Blink
}

func (m *Model) currentCard() (models.Card, bool) {
	snap := m.sess.Snapshot()
	if snap.ActiveDeckID == "" || len(snap.Displayed) == 0 {
		return models.Card{}, false
	}
	return snap.Displayed[snap.CurrentIndex], true
}

func (m *Model) deleteCurrentCard() {
	deckID := m.sess.Snapshot().ActiveDeckID
	if err := m.decks.DeleteCard(deckID, m.pendingCard); err != nil {
		m.status = "Delete failed: " + err.Error()
		return
	}
	m.sess.RefreshDeck()
	m.status = "Card deleted"
}

// Run starts the program and blocks until the user quits.
func Run(decks *store.DeckStore, sess *session.Session, log *logger.Logger, debounceDelay time.Duration) error {
	program := tea.NewProgram(
		NewModel(decks, sess, log, debounceDelay),
		tea.WithAltScreen(),
	)
	_, err := program.Run()
	return err
}

func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max-1])) + "…"
}
