package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/flashdeck/flashdeck/internal/storage"
	"github.com/flashdeck/flashdeck/pkg/logger"
	"github.com/flashdeck/flashdeck/pkg/models"
)

var (
	// ErrNotFound is returned when a deck or card id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned when a question, answer, or deck name
	// is empty after trimming.
	ErrValidation = errors.New("validation failed")
)

// DeckStore owns the durable deck collection. All mutations go through
// it; every successful mutation is persisted immediately. Persistence
// failures are logged and swallowed: the in-memory collection stays
// authoritative for the rest of the session.
type DeckStore struct {
	storage storage.Store
	log     *logger.Logger
	decks   []models.Deck

	newDeckID func() (string, error)
	now       func() time.Time
}

type Option func(*DeckStore)

// WithIDGenerator overrides deck id generation, used by tests that need
// deterministic ids.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(s *DeckStore) {
		s.newDeckID = gen
	}
}

// WithClock overrides the creation timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *DeckStore) {
		s.now = now
	}
}

func New(st storage.Store, log *logger.Logger, options ...Option) *DeckStore {
	s := &DeckStore{
		storage:   st,
		log:       log,
		newDeckID: func() (string, error) { return gonanoid.New() },
		now:       time.Now,
	}

	for _, opt := range options {
		opt(s)
	}

	return s
}

// Load reads the persisted collection, falling back to the built-in
// sample decks when nothing is persisted yet or the read fails. Only
// the first-run case writes the defaults back.
func (s *DeckStore) Load() []models.Deck {
	data, ok, err := s.storage.Read()
	if err != nil {
		s.log.Warn("loading decks: %v; using defaults", err)
		s.decks = models.DefaultDecks()
		return s.decks
	}

	if !ok {
		s.decks = models.DefaultDecks()
		s.Save()
		return s.decks
	}

	var decks []models.Deck
	if err := json.Unmarshal(data, &decks); err != nil {
		s.log.Warn("decoding persisted decks: %v; using defaults", err)
		s.decks = models.DefaultDecks()
		return s.decks
	}

	s.decks = decks
	return s.decks
}

// Save persists the full collection. Failures degrade to in-memory
// operation and are only logged.
func (s *DeckStore) Save() {
	data, err := json.Marshal(s.decks)
	if err != nil {
		s.log.Warn("encoding decks: %v", err)
		return
	}
	if err := s.storage.Write(data); err != nil {
		s.log.Warn("saving decks: %v; changes kept in memory only", err)
	}
}

// Reset replaces the collection with a fresh copy of the sample decks
// and persists it. Callers are expected to have confirmed with the
// user first.
func (s *DeckStore) Reset() []models.Deck {
	s.decks = models.DefaultDecks()
	s.Save()
	return s.decks
}

// Decks returns the current collection in stable order.
func (s *DeckStore) Decks() []models.Deck {
	return s.decks
}

// Deck returns the deck with the given id.
func (s *DeckStore) Deck(id string) (*models.Deck, error) {
	for i := range s.decks {
		if s.decks[i].ID == id {
			return &s.decks[i], nil
		}
	}
	return nil, fmt.Errorf("deck %q: %w", id, ErrNotFound)
}

// CreateDeck appends a new empty deck and persists. The name must be
// non-blank after trimming.
func (s *DeckStore) CreateDeck(name string) (*models.Deck, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("deck name is empty: %w", ErrValidation)
	}

	id, err := s.newDeckID()
	if err != nil {
		return nil, fmt.Errorf("generating deck id: %w", err)
	}

	deck := models.Deck{
		ID:        "deck-" + id,
		Name:      name,
		CreatedAt: s.now(),
		Cards:     []models.Card{},
	}
	s.decks = append(s.decks, deck)
	s.Save()
	return &s.decks[len(s.decks)-1], nil
}

// AddCard appends a card to the deck, assigning the next per-deck id.
// Question and answer must both be non-blank after trimming.
func (s *DeckStore) AddCard(deckID, question, answer string) (*models.Card, error) {
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)
	if question == "" || answer == "" {
		return nil, fmt.Errorf("question and answer are required: %w", ErrValidation)
	}

	deck, err := s.Deck(deckID)
	if err != nil {
		return nil, err
	}

	deck.Cards = append(deck.Cards, models.Card{
		ID:       deck.NextCardID(),
		Question: question,
		Answer:   answer,
	})
	s.Save()
	return &deck.Cards[len(deck.Cards)-1], nil
}

// EditCard replaces the card's question and answer in place.
func (s *DeckStore) EditCard(deckID string, cardID int, question, answer string) error {
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)
	if question == "" || answer == "" {
		return fmt.Errorf("question and answer are required: %w", ErrValidation)
	}

	deck, err := s.Deck(deckID)
	if err != nil {
		return err
	}

	card := deck.FindCard(cardID)
	if card == nil {
		return fmt.Errorf("card %d in deck %q: %w", cardID, deckID, ErrNotFound)
	}

	card.Question = question
	card.Answer = answer
	s.Save()
	return nil
}

// DeleteCard removes the card with the given id. Removing an absent
// card is a no-op, not an error.
func (s *DeckStore) DeleteCard(deckID string, cardID int) error {
	deck, err := s.Deck(deckID)
	if err != nil {
		return err
	}

	kept := deck.Cards[:0]
	for _, c := range deck.Cards {
		if c.ID != cardID {
			kept = append(kept, c)
		}
	}
	deck.Cards = kept
	s.Save()
	return nil
}
