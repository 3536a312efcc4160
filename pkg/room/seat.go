package room

import (
	"fmt"

	"blackjack-server/pkg/deck"
)

// Seat is one player's place at the table
type Seat struct {
	// Number is the 1-based seat number shown to players
	Number int
	// Hand is owned by the seat's turn during its turn and read-only otherwise
	Hand deck.Hand

	client *Client
	active bool
}

func newSeat(number int, client *Client) *Seat {
	return &Seat{
		Number: number,
		Hand:   make(deck.Hand, 0, deck.MaxHandCards),
		client: client,
		active: true,
	}
}

// Label returns the human-facing seat label
func (s *Seat) Label() string {
	return fmt.Sprintf("Player %d", s.Number)
}

// SessionID returns the id of the client bound to the seat
func (s *Seat) SessionID() uint64 {
	return s.client.ID
}

// Client returns the client bound to the seat
func (s *Seat) Client() *Client {
	return s.client
}

// IsActive returns true while the seat's client is connected
// NOTE: must only be called from the dealer's goroutine; other readers use PitBoss.Snapshot()
func (s *Seat) IsActive() bool {
	return s.active
}

func (s *Seat) String() string {
	return fmt.Sprintf("%s (%s)", s.Label(), s.client)
}
