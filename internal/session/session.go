// Package session holds the ephemeral study-session state: which deck
// is active, which card and face is showing, and the derived
// filtered/ordered card sequence. All view state lives here; the store
// stays authoritative for the deck data itself.
package session

import (
	"math/rand"
	"sync"
	"time"

	"github.com/flashdeck/flashdeck/internal/store"
	"github.com/flashdeck/flashdeck/pkg/models"
)

// Session is the study-session state machine. It is safe for use by
// its own debounce timer alongside the UI goroutine, and multiple
// independent sessions can coexist (there are no globals).
type Session struct {
	mu    sync.Mutex
	decks *store.DeckStore
	rng   *rand.Rand

	activeDeckID string
	currentIndex int
	flipped      bool
	shuffled     bool
	query        string

	// deckCards is the session's own copy of the active deck's
	// cards, refreshed by SelectDeck and RefreshDeck on the UI
	// goroutine. The debounce timer recomputes from this copy and
	// never reads the store, so it cannot race store mutations.
	deckCards []models.Card

	originalOrder  []models.Card
	filteredCards  []models.Card
	displayedCards []models.Card

	debounce *Debouncer
	// generation invalidates debounced searches scheduled before a
	// deck switch or session clear, so a stale query never fires
	// against a different deck.
	generation uint64
}

// Snapshot is an immutable view of the session for projection.
type Snapshot struct {
	ActiveDeckID string
	CurrentIndex int
	Flipped      bool
	Shuffled     bool
	Query        string
	Displayed    []models.Card
}

type Option func(*Session)

// WithRand injects the shuffle randomness source; tests seed it.
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) {
		s.rng = rng
	}
}

// WithDebounceDelay sets the search debounce quiet period. Zero makes
// searches synchronous.
func WithDebounceDelay(delay time.Duration) Option {
	return func(s *Session) {
		s.debounce = NewDebouncer(delay)
	}
}

func New(decks *store.DeckStore, options ...Option) *Session {
	s := &Session{
		decks:    decks,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		debounce: NewDebouncer(300 * time.Millisecond),
	}

	for _, opt := range options {
		opt(s)
	}

	return s
}

// SelectDeck makes the deck active and resets every view control:
// index 0, question face, unshuffled, no query. Any pending debounced
// search is discarded.
func (s *Session) SelectDeck(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	deck, err := s.decks.Deck(id)
	if err != nil {
		return err
	}

	s.debounce.Cancel()
	s.generation++

	s.activeDeckID = id
	s.currentIndex = 0
	s.flipped = false
	s.shuffled = false
	s.query = ""

	s.deckCards = deck.CloneCards()
	s.originalOrder = append([]models.Card{}, s.deckCards...)
	s.filteredCards = append([]models.Card{}, s.deckCards...)
	s.displayedCards = append([]models.Card{}, s.deckCards...)
	return nil
}

// Clear deselects the active deck, returning to the initial state.
// Used after a store reset.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.debounce.Cancel()
	s.generation++

	s.activeDeckID = ""
	s.currentIndex = 0
	s.flipped = false
	s.shuffled = false
	s.query = ""
	s.deckCards = nil
	s.originalOrder = nil
	s.filteredCards = nil
	s.displayedCards = nil
}

// Flip toggles the visible face. No-op without an active deck or with
// nothing displayed.
func (s *Session) Flip() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeDeckID == "" || len(s.displayedCards) == 0 {
		return
	}
	s.flipped = !s.flipped
}

// Next advances to the next card, wrapping around, and shows the
// question face.
func (s *Session) Next() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.displayedCards) == 0 {
		return
	}
	s.currentIndex = (s.currentIndex + 1) % len(s.displayedCards)
	s.flipped = false
}

// Previous steps back to the previous card, wrapping around, and shows
// the question face.
func (s *Session) Previous() {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.displayedCards)
	if n == 0 {
		return
	}
	s.currentIndex = (s.currentIndex - 1 + n) % n
	s.flipped = false
}

// ToggleShuffle permutes the displayed cards, or restores the stored
// original-order baseline when turning shuffle off. Either way the
// position resets to the first card, question face.
func (s *Session) ToggleShuffle() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeDeckID == "" {
		return
	}

	s.shuffled = !s.shuffled
	if s.shuffled {
		s.displayedCards = Shuffle(s.displayedCards, s.rng)
	} else {
		// The baseline can disagree with the current filter (a
		// search while shuffled leaves it untouched), so restore
		// only the ids still in the filtered set.
		s.displayedCards = ReorderBy(s.filteredCards, s.originalOrder)
	}

	s.currentIndex = 0
	s.flipped = false
}

// SetSearchQuery normalizes and records the query, then applies it
// after the debounce quiet period. Only the last query typed within
// the period takes effect.
func (s *Session) SetSearchQuery(raw string) {
	s.mu.Lock()
	if s.activeDeckID == "" {
		s.mu.Unlock()
		return
	}
	s.query = Normalize(raw)
	gen := s.generation
	s.mu.Unlock()

	s.debounce.Trigger(func() {
		s.applySearch(gen)
	})
}

// Search applies a query immediately. Any debounced query still
// pending is discarded; the immediate result must not be overridden by
// a timer firing afterwards.
func (s *Session) Search(raw string) {
	s.mu.Lock()
	if s.activeDeckID == "" {
		s.mu.Unlock()
		return
	}
	s.query = Normalize(raw)
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	s.debounce.Cancel()
	s.applySearch(gen)
}

func (s *Session) applySearch(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation || s.activeDeckID == "" {
		return
	}

	s.filteredCards, s.displayedCards = Recompute(s.deckCards, s.query, s.shuffled, nil, s.rng)
	if !s.shuffled {
		s.originalOrder = append([]models.Card{}, s.filteredCards...)
	}

	s.currentIndex = 0
	s.flipped = false
}

// RefreshDeck re-derives the view after the active deck's cards
// mutated (add, edit, delete). Surviving cards keep their relative
// order; the position clamps into range instead of resetting. If the
// card that was showing disappeared, the face resets to the question.
func (s *Session) RefreshDeck() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.activeDeckID == "" {
		return
	}

	deck, err := s.decks.Deck(s.activeDeckID)
	if err != nil {
		// Active deck vanished from the store; drop to the
		// initial state.
		s.activeDeckID = ""
		s.deckCards = nil
		s.displayedCards = nil
		s.filteredCards = nil
		s.originalOrder = nil
		s.currentIndex = 0
		s.flipped = false
		return
	}

	var showing *models.Card
	if s.currentIndex < len(s.displayedCards) {
		showing = &s.displayedCards[s.currentIndex]
	}

	s.deckCards = deck.CloneCards()
	s.filteredCards, s.displayedCards = Recompute(s.deckCards, s.query, s.shuffled, s.displayedCards, s.rng)
	s.originalOrder = Filter(s.deckCards, s.query)

	if len(s.displayedCards) == 0 {
		s.currentIndex = 0
		s.flipped = false
		return
	}
	if s.currentIndex >= len(s.displayedCards) {
		s.currentIndex = len(s.displayedCards) - 1
	}
	if showing != nil && s.displayedCards[s.currentIndex].ID != showing.ID {
		s.flipped = false
	}
}

// Snapshot returns a copy of the observable state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		ActiveDeckID: s.activeDeckID,
		CurrentIndex: s.currentIndex,
		Flipped:      s.flipped,
		Shuffled:     s.shuffled,
		Query:        s.query,
		Displayed:    append([]models.Card{}, s.displayedCards...),
	}
}
