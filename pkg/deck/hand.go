package deck

// MaxHandCards is how many cards a hand can hold
const MaxHandCards = 12

// Hand is an ordered, append-only collection of cards
type Hand []Card

// AddCard adds a card to the hand
// Cards beyond MaxHandCards are dropped. No legal blackjack hand reaches that size.
func (h *Hand) AddCard(card Card) {
	if len(*h) >= MaxHandCards {
		return
	}

	*h = append(*h, card)
}

// Reset empties the hand
// A new backing array is allocated so earlier snapshots of the hand are never overwritten.
func (h *Hand) Reset() {
	*h = make(Hand, 0, MaxHandCards)
}

// FirstCard returns the first card in the hand and false if the hand is empty
func (h Hand) FirstCard() (Card, bool) {
	if len(h) == 0 {
		return Card{}, false
	}

	return h[0], true
}

// LastCard returns the last card in the hand and false if the hand is empty
func (h Hand) LastCard() (Card, bool) {
	n := len(h)
	if n == 0 {
		return Card{}, false
	}

	return h[n-1], true
}

// String returns the space-separated wire tokens
func (h Hand) String() string {
	return CardsToString(h)
}

// Clone returns a clone of the hand
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}
