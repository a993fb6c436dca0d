package models

import (
	"time"
)

// Deck is a named, ordered collection of study cards.
type Deck struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Cards     []Card    `json:"cards"`
}

// Card is a question/answer pair. Card ids are unique within the
// owning deck only, assigned as max existing id + 1, starting at 1.
type Card struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// NextCardID returns the id the next card added to the deck should get.
func (d *Deck) NextCardID() int {
	max := 0
	for _, c := range d.Cards {
		if c.ID > max {
			max = c.ID
		}
	}
	return max + 1
}

// FindCard returns a pointer into the deck's card slice, or nil if no
// card has the given id.
func (d *Deck) FindCard(id int) *Card {
	for i := range d.Cards {
		if d.Cards[i].ID == id {
			return &d.Cards[i]
		}
	}
	return nil
}

// CloneCards returns a copy of the deck's card slice so callers can
// reorder it without touching the deck.
func (d *Deck) CloneCards() []Card {
	out := make([]Card, len(d.Cards))
	copy(out, d.Cards)
	return out
}

var defaultCreatedAt = time.UnixMilli(1707139200000) // 2024-02-06

// DefaultDecks returns a fresh copy of the built-in sample decks used
// when no persisted state exists yet.
func DefaultDecks() []Deck {
	return []Deck{
		{
			ID:        "deck-1",
			Name:      "Spanish Vocabulary",
			CreatedAt: defaultCreatedAt,
			Cards: []Card{
				{ID: 1, Question: "Hola", Answer: "Hello"},
				{ID: 2, Question: "Adiós", Answer: "Goodbye"},
				{ID: 3, Question: "Gracias", Answer: "Thank you"},
			},
		},
		{
			ID:        "deck-2",
			Name:      "Biology Basics",
			CreatedAt: defaultCreatedAt,
			Cards: []Card{
				{ID: 1, Question: "What is photosynthesis?", Answer: "Process by which plants convert sunlight into chemical energy"},
				{ID: 2, Question: "Define mitochondria", Answer: "The powerhouse of the cell, responsible for energy production"},
				{ID: 3, Question: "What is ATP?", Answer: "Adenosine triphosphate, the primary energy currency in cells"},
			},
		},
	}
}
