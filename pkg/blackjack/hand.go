// Package blackjack scores hands and settles them against the dealer.
// Everything here is a pure function of the cards; there is no hidden state.
package blackjack

import "blackjack-server/pkg/deck"

// Blackjack is the best possible hand value
const Blackjack = 21

// DealerStandsOn is the lowest value the dealer stands on, soft or hard
const DealerStandsOn = 17

// CardValue returns a card's value with an ace counted high
func CardValue(card deck.Card) int {
	switch {
	case card.Rank == deck.Ace:
		return 11
	case card.Rank >= deck.Jack:
		return 10
	}

	return card.Rank
}

// Value computes the blackjack score of a hand
// Aces start at 11 and are downgraded to 1, one at a time, only while the total exceeds 21.
// The result can be over 21, which is a bust.
func Value(hand deck.Hand) int {
	total := 0
	softAces := 0
	for _, card := range hand {
		if card.Rank == deck.Ace {
			softAces++
		}

		total += CardValue(card)
	}

	for total > Blackjack && softAces > 0 {
		total -= 10
		softAces--
	}

	return total
}

// IsBlackjack returns true for a two card 21
func IsBlackjack(hand deck.Hand) bool {
	return len(hand) == 2 && Value(hand) == Blackjack
}

// IsBust returns true if the hand is over 21
func IsBust(hand deck.Hand) bool {
	return Value(hand) > Blackjack
}

// DealerShouldHit returns true while the dealer must draw
func DealerShouldHit(hand deck.Hand) bool {
	return Value(hand) < DealerStandsOn
}
