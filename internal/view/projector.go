// Package view turns session state into a renderable view-model. It is
// pure: any rendering backend (terminal, web, native) can consume the
// result without touching session internals.
package view

import (
	"fmt"
	"html"
	"regexp"

	"github.com/flashdeck/flashdeck/internal/session"
	"github.com/flashdeck/flashdeck/pkg/models"
)

// ViewModel describes everything the card pane needs to draw.
type ViewModel struct {
	CardVisible  bool
	EmptyVisible bool
	Label        string
	Text         string
	Counter      string
}

// DeckEntry is one row of the deck list pane.
type DeckEntry struct {
	ID        string
	Name      string
	CardCount int
	Active    bool
}

// Project maps a session snapshot to the card view-model. Exactly one
// of the three shapes comes out: no deck selected, an empty displayed
// sequence, or a visible card.
func Project(snap session.Snapshot) ViewModel {
	if snap.ActiveDeckID == "" {
		return ViewModel{
			Text:    "Select a deck to start studying",
			Counter: "0/0",
		}
	}

	if len(snap.Displayed) == 0 {
		return ViewModel{
			EmptyVisible: true,
			Counter:      "0/0",
		}
	}

	card := snap.Displayed[snap.CurrentIndex]
	label := "Question"
	text := card.Question
	if snap.Flipped {
		label = "Answer"
		text = card.Answer
	}

	return ViewModel{
		CardVisible: true,
		Label:       label,
		Text:        Highlight(text, snap.Query),
		Counter:     fmt.Sprintf("%d/%d", snap.CurrentIndex+1, len(snap.Displayed)),
	}
}

// ProjectDeckList maps the deck collection to list rows, marking the
// active deck.
func ProjectDeckList(decks []models.Deck, activeDeckID string) []DeckEntry {
	entries := make([]DeckEntry, len(decks))
	for i, d := range decks {
		entries[i] = DeckEntry{
			ID:        d.ID,
			Name:      d.Name,
			CardCount: len(d.Cards),
			Active:    d.ID == activeDeckID,
		}
	}
	return entries
}

// Highlight wraps every case-insensitive, non-overlapping occurrence
// of query in <mark> tags. The text is escaped for markup embedding
// first, and the query's regexp metacharacters are neutralized, so
// neither can inject markup of its own.
func Highlight(text, query string) string {
	if query == "" {
		return html.EscapeString(text)
	}

	pattern := regexp.MustCompile("(?i)" + regexp.QuoteMeta(html.EscapeString(query)))
	return pattern.ReplaceAllString(html.EscapeString(text), "<mark>$0</mark>")
}
