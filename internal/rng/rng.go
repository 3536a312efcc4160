package rng

import (
	"math/rand"
	"os"
	"sync"
	"time"
)

// Generator provides a simple random number
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}

var (
	processOnce sync.Once
	process     *Locked
)

// Process returns the process-wide generator.
// It is seeded exactly once, from the wall clock mixed with the process id. Callers must never
// reseed it per shuffle.
func Process() Generator {
	processOnce.Do(func() {
		process = NewLocked(processSeed())
	})

	return process
}

func processSeed() int64 {
	return time.Now().UnixNano() ^ int64(os.Getpid())<<16
}

// Locked is a seeded math/rand generator that is safe for concurrent use
type Locked struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewLocked returns a generator seeded with seed
// Outside of Process(), this should only be used by tests that need a repeatable sequence
func NewLocked(seed int64) *Locked {
	return &Locked{
		r: rand.New(rand.NewSource(seed)), // nolint:gosec
	}
}

// Intn returns a random number from [0, n)
func (l *Locked) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.r.Intn(n)
}

// ByName returns the generator for a configured shuffler name
// "crypto" selects crypto/rand, anything else the seeded process generator
func ByName(name string) Generator {
	if name == "crypto" {
		return Crypto{}
	}

	return Process()
}
