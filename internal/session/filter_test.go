package session_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/flashdeck/flashdeck/internal/session"
	"github.com/flashdeck/flashdeck/pkg/models"
)

func cardIDs(cards []models.Card) []int {
	ids := make([]int, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}

var _ = Describe("Filter", func() {
	cards := []models.Card{
		{ID: 1, Question: "Hola", Answer: "Hello"},
		{ID: 2, Question: "Adiós", Answer: "Goodbye"},
		{ID: 3, Question: "Gracias", Answer: "Thank you"},
	}

	It("should return all cards in order for an empty query", func() {
		Expect(session.Filter(cards, "")).To(Equal(cards))
	})

	It("should match the question case-insensitively", func() {
		matched := session.Filter(cards, "gracias")
		Expect(cardIDs(matched)).To(Equal([]int{3}))
	})

	It("should match the answer case-insensitively", func() {
		matched := session.Filter(cards, "goodbye")
		Expect(cardIDs(matched)).To(Equal([]int{2}))
	})

	It("should match substrings anywhere in the text", func() {
		matched := session.Filter(cards, "o")
		Expect(cardIDs(matched)).To(Equal([]int{1, 2, 3}))
	})

	It("should return an empty slice when nothing matches", func() {
		Expect(session.Filter(cards, "zzz")).To(BeEmpty())
	})

	It("should always return a subset of the input", func() {
		for _, q := range []string{"", "a", "th", "hola", "nope"} {
			matched := session.Filter(cards, q)
			for _, c := range matched {
				Expect(cards).To(ContainElement(c))
			}
		}
	})
})

var _ = Describe("Normalize", func() {
	It("should trim and lowercase", func() {
		Expect(session.Normalize("  GrAciAs \t")).To(Equal("gracias"))
	})

	It("should map whitespace-only input to the empty query", func() {
		Expect(session.Normalize("   ")).To(Equal(""))
	})
})

var _ = Describe("Shuffle", func() {
	cards := []models.Card{
		{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}, {ID: 6},
	}

	It("should be a permutation of the input", func() {
		rng := rand.New(rand.NewSource(1))
		shuffled := session.Shuffle(cards, rng)
		Expect(cardIDs(shuffled)).To(ConsistOf(cardIDs(cards)))
	})

	It("should not modify the input", func() {
		rng := rand.New(rand.NewSource(1))
		session.Shuffle(cards, rng)
		Expect(cardIDs(cards)).To(Equal([]int{1, 2, 3, 4, 5, 6}))
	})

	It("should be deterministic for a seeded source", func() {
		first := session.Shuffle(cards, rand.New(rand.NewSource(7)))
		second := session.Shuffle(cards, rand.New(rand.NewSource(7)))
		Expect(first).To(Equal(second))
	})

	It("should produce different orders across seeds eventually", func() {
		base := cardIDs(cards)
		changed := false
		for seed := int64(0); seed < 20; seed++ {
			shuffled := session.Shuffle(cards, rand.New(rand.NewSource(seed)))
			if !equalInts(cardIDs(shuffled), base) {
				changed = true
				break
			}
		}
		Expect(changed).To(BeTrue())
	})
})

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

var _ = Describe("Recompute", func() {
	cards := []models.Card{
		{ID: 1, Question: "Hola", Answer: "Hello"},
		{ID: 2, Question: "Adiós", Answer: "Goodbye"},
		{ID: 3, Question: "Gracias", Answer: "Thank you"},
	}
	rng := rand.New(rand.NewSource(3))

	It("should keep displayed equal to filtered when unshuffled", func() {
		filtered, displayed := session.Recompute(cards, "", false, nil, rng)
		Expect(displayed).To(Equal(filtered))
		Expect(displayed).To(Equal(cards))
	})

	It("should keep displayed a permutation of filtered when shuffled", func() {
		filtered, displayed := session.Recompute(cards, "o", true, nil, rng)
		Expect(cardIDs(displayed)).To(ConsistOf(cardIDs(filtered)))
	})

	It("should preserve a previous order across a membership change", func() {
		previous := []models.Card{cards[2], cards[0], cards[1]}
		grown := append(append([]models.Card{}, cards...), models.Card{ID: 4, Question: "Sí", Answer: "Yes"})

		_, displayed := session.Recompute(grown, "", true, previous, rng)
		Expect(cardIDs(displayed)).To(Equal([]int{3, 1, 2, 4}))
	})
})

var _ = Describe("ReorderBy", func() {
	It("should follow the baseline order for overlapping ids", func() {
		cards := []models.Card{{ID: 1}, {ID: 2}, {ID: 3}}
		baseline := []models.Card{{ID: 3}, {ID: 1}, {ID: 2}}
		Expect(cardIDs(session.ReorderBy(cards, baseline))).To(Equal([]int{3, 1, 2}))
	})

	It("should append cards missing from the baseline", func() {
		cards := []models.Card{{ID: 1}, {ID: 4}, {ID: 2}}
		baseline := []models.Card{{ID: 2}, {ID: 1}}
		Expect(cardIDs(session.ReorderBy(cards, baseline))).To(Equal([]int{2, 1, 4}))
	})

	It("should drop baseline ids no longer present", func() {
		cards := []models.Card{{ID: 2}}
		baseline := []models.Card{{ID: 1}, {ID: 2}, {ID: 3}}
		Expect(cardIDs(session.ReorderBy(cards, baseline))).To(Equal([]int{2}))
	})

	It("should take card content from the current cards, not the baseline", func() {
		cards := []models.Card{{ID: 1, Question: "edited"}}
		baseline := []models.Card{{ID: 1, Question: "stale"}}
		Expect(session.ReorderBy(cards, baseline)[0].Question).To(Equal("edited"))
	})
})
