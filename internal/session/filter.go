package session

import (
	"math/rand"
	"strings"

	"github.com/flashdeck/flashdeck/pkg/models"
)

// Filter returns the cards whose question or answer contains the query
// as a case-insensitive substring, in their original order. An empty
// query matches every card. The query is expected to be already
// trimmed and lowercased (see Normalize).
func Filter(cards []models.Card, query string) []models.Card {
	if query == "" {
		return append([]models.Card{}, cards...)
	}

	matched := []models.Card{}
	for _, c := range cards {
		if strings.Contains(strings.ToLower(c.Question), query) ||
			strings.Contains(strings.ToLower(c.Answer), query) {
			matched = append(matched, c)
		}
	}
	return matched
}

// Normalize canonicalizes a raw search input: surrounding whitespace
// stripped, lowercased. An empty result means "no filter".
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Shuffle returns a uniformly random permutation of cards. The input
// is not modified. rand.Shuffle is Fisher-Yates underneath, so every
// ordering is equally likely.
func Shuffle(cards []models.Card, rng *rand.Rand) []models.Card {
	out := append([]models.Card{}, cards...)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// Recompute derives the filtered subset and the display order from the
// deck's current cards. previousDisplayed carries the order to keep
// stable when the membership changes underneath an unchanged view (a
// card was added, edited, or deleted): surviving cards keep their
// relative positions and new matches append at the end. Pass nil to
// discard the old order, in which case a shuffled view gets a fresh
// permutation.
func Recompute(cards []models.Card, query string, shuffled bool, previousDisplayed []models.Card, rng *rand.Rand) (filtered, displayed []models.Card) {
	filtered = Filter(cards, query)

	if !shuffled {
		displayed = append([]models.Card{}, filtered...)
		return filtered, displayed
	}

	if previousDisplayed == nil {
		return filtered, Shuffle(filtered, rng)
	}
	return filtered, ReorderBy(filtered, previousDisplayed)
}

// ReorderBy arranges cards to follow the order of the baseline where
// ids overlap; cards absent from the baseline keep their relative
// order and go last. Card content always comes from cards, not the
// baseline, so edits survive reordering.
func ReorderBy(cards []models.Card, baseline []models.Card) []models.Card {
	byID := make(map[int]models.Card, len(cards))
	for _, c := range cards {
		byID[c.ID] = c
	}

	out := make([]models.Card, 0, len(cards))
	seen := make(map[int]bool, len(cards))
	for _, b := range baseline {
		if c, ok := byID[b.ID]; ok {
			out = append(out, c)
			seen[c.ID] = true
		}
	}
	for _, c := range cards {
		if !seen[c.ID] {
			out = append(out, c)
		}
	}
	return out
}
