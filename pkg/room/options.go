package room

import (
	"time"

	"blackjack-server/internal/rng"
)

// Options contains options for running the table
type Options struct {
	// TurnTimeout is how long a seat has to answer a prompt before standing automatically
	// Zero waits forever.
	TurnTimeout time.Duration

	// RNG shuffles every round's shoe
	RNG rng.Generator
}

// DefaultOptions returns the default set of options
func DefaultOptions() Options {
	return Options{
		TurnTimeout: 0,
		RNG:         rng.Process(),
	}
}
