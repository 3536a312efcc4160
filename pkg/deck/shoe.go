package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"fmt"

	"blackjack-server/internal/rng"
)

// Size is the number of cards in a shoe
const Size = 52

// Shoe is the round-scoped deck in play
// Cards are dealt sequentially from a cursor. When the cursor runs off the end the same 52 cards
// are reshuffled and dealing continues, so exhaustion is never an error.
type Shoe struct {
	cards [Size]Card
	next  int
	rng   rng.Generator
}

// NewShoe returns a shoe in canonical order (suit-major, ace through king) with the cursor at 0
// Important! this shoe is unshuffled. Shuffle() must be called before dealing a real round.
func NewShoe(gen rng.Generator) *Shoe {
	s := &Shoe{rng: gen}

	idx := 0
	for _, suit := range Suits {
		for rank := Ace; rank <= King; rank++ {
			s.cards[idx] = Card{Rank: rank, Suit: suit}
			idx++
		}
	}

	return s
}

// Shuffle performs a Fisher-Yates shuffle and resets the cursor
func (s *Shoe) Shuffle() {
	for i := Size - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	}

	s.next = 0
}

// Deal returns the next card
// If every card has been dealt, the shoe is reshuffled first.
func (s *Shoe) Deal() Card {
	if s.next >= Size {
		s.Shuffle()
	}

	card := s.cards[s.next]
	s.next++

	return card
}

// Cursor returns the index of the next card to be dealt
func (s *Shoe) Cursor() int {
	return s.next
}

// CardsLeft returns how many cards can be dealt before the next reshuffle
func (s *Shoe) CardsLeft() int {
	return Size - s.next
}

// Cards returns a copy of the shoe's current ordering
func (s *Shoe) Cards() []Card {
	cards := make([]Card, Size)
	copy(cards, s.cards[:])
	return cards
}

// Stack moves the given cards to the top of the shoe, in order, and resets the cursor.
// The remaining cards keep their relative order. Every card must be distinct.
// This should only be used by tests that need a known deal.
func (s *Shoe) Stack(top ...Card) error {
	seen := make(map[Card]bool, len(top))
	for _, card := range top {
		if seen[card] {
			return fmt.Errorf("duplicate card in stack: %s", card)
		}

		seen[card] = true
	}

	rest := make([]Card, 0, Size)
	for _, card := range s.cards {
		if !seen[card] {
			rest = append(rest, card)
		}
	}

	if len(rest)+len(top) != Size {
		return fmt.Errorf("stack contains cards outside the shoe")
	}

	copy(s.cards[:], top)
	copy(s.cards[len(top):], rest)
	s.next = 0

	return nil
}

// HashCode returns a SHA1 hash code of the shoe's ordering
func (s *Shoe) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range s.cards {
		_, _ = hash.Write([]byte(card.String()))
	}

	return hex.EncodeToString(hash.Sum(nil))
}
