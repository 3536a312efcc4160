// Package history keeps a record of completed rounds.
// Records are an audit trail only; nothing is read back to restore a table.
package history

import (
	"context"
	"time"

	"blackjack-server/pkg/blackjack"
	"blackjack-server/pkg/deck"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
)

// Round is the outcome of one completed round
type Round struct {
	UUID        string        `json:"uuid"`
	Started     time.Time     `json:"started"`
	Ended       time.Time     `json:"ended"`
	DealerHand  deck.Hand     `json:"dealerHand"`
	DealerValue int           `json:"dealerValue"`
	Seats       []*SeatResult `json:"seats"`
}

// SeatResult is a single seat's part in a round
type SeatResult struct {
	SessionID uint64           `json:"sessionId"`
	Seat      int              `json:"seat"`
	Hand      deck.Hand        `json:"hand"`
	Value     int              `json:"value"`
	Blackjack bool             `json:"blackjack"`
	Result    blackjack.Result `json:"result,omitempty"`
	// Abandoned is true if the seat disconnected before settlement
	Abandoned bool `json:"abandoned"`
}

// NewRound returns a new round record stamped with a fresh UUID
func NewRound(started time.Time) *Round {
	return &Round{
		UUID:    uuid.New().String(),
		Started: started,
		Seats:   make([]*SeatResult, 0),
	}
}

// Recorder stores completed rounds
type Recorder interface {
	Record(ctx context.Context, round *Round) error
}

// Multi fans a round out to several recorders
// Every recorder is called even if an earlier one fails.
type Multi []Recorder

// Record records the round with each recorder
func (m Multi) Record(ctx context.Context, round *Round) error {
	var result error
	for _, r := range m {
		if err := r.Record(ctx, round); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result
}
