package deck

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Suit represents a card suit
type Suit int

// suit constants
const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Suits lists every suit in canonical order
var Suits = []Suit{Clubs, Diamonds, Hearts, Spades}

// Letter returns the one-letter code used on the wire
func (s Suit) Letter() string {
	switch s {
	case Clubs:
		return "C"
	case Diamonds:
		return "D"
	case Hearts:
		return "H"
	case Spades:
		return "S"
	}

	return "?"
}

// face cards
const (
	Ace   = 1
	Jack  = 11
	Queen = 12
	King  = 13
)

// Card is an individual playing card
// Cards are values: they are copied from the shoe into a hand, never shared
type Card struct {
	Rank int  `json:"rank"`
	Suit Suit `json:"suit"`
}

// String returns the wire token, e.g. AS or 10H
func (c Card) String() string {
	var rank string
	switch c.Rank {
	case Ace:
		rank = "A"
	case Jack:
		rank = "J"
	case Queen:
		rank = "Q"
	case King:
		rank = "K"
	default:
		rank = strconv.Itoa(c.Rank)
	}

	return rank + c.Suit.Letter()
}

// MarshalText encodes the card as its wire token
func (c Card) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a wire token
func (c *Card) UnmarshalText(text []byte) error {
	card, err := ParseCard(string(text))
	if err != nil {
		return err
	}

	*c = card
	return nil
}

var cardRx = regexp.MustCompile(`(?i)^(A|J|Q|K|[2-9]|10)([CDHS])\z`)

// ParseCard parses a wire token such as AS or 10h
func ParseCard(s string) (Card, error) {
	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		return Card{}, fmt.Errorf("could not parse card: %q", s)
	}

	var rank int
	switch strings.ToUpper(match[1]) {
	case "A":
		rank = Ace
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	default:
		rank, _ = strconv.Atoi(match[1])
	}

	var suit Suit
	switch strings.ToUpper(match[2]) {
	case "C":
		suit = Clubs
	case "D":
		suit = Diamonds
	case "H":
		suit = Hearts
	case "S":
		suit = Spades
	}

	return Card{Rank: rank, Suit: suit}, nil
}

// CardFromString returns a Card from the string.
// It panics on a malformed token and is intended for tests and fixtures.
func CardFromString(s string) Card {
	card, err := ParseCard(s)
	if err != nil {
		panic(err)
	}

	return card
}

// CardsFromString parses space-separated tokens, e.g. "AS 10H"
func CardsFromString(s string) []Card {
	fields := strings.Fields(s)
	cards := make([]Card, len(fields))
	for i, field := range fields {
		cards[i] = CardFromString(field)
	}

	return cards
}

// CardsToString converts cards to space-separated wire tokens
func CardsToString(cards []Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = card.String()
	}

	return strings.Join(c, " ")
}
