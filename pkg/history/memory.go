package history

import (
	"context"
	"sync"
)

// DefaultMemoryLimit is how many rounds Memory keeps by default
const DefaultMemoryLimit = 25

// Memory keeps the most recent rounds in memory
type Memory struct {
	lock   sync.RWMutex
	limit  int
	rounds []*Round
	total  int64
}

// NewMemory returns a recorder that keeps up to limit rounds
func NewMemory(limit int) *Memory {
	if limit <= 0 {
		limit = DefaultMemoryLimit
	}

	return &Memory{
		limit:  limit,
		rounds: make([]*Round, 0, limit),
	}
}

// Record adds a round, dropping the oldest if over the limit
func (m *Memory) Record(_ context.Context, round *Round) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	rounds := append(m.rounds, round)
	if count := len(rounds); count > m.limit {
		rounds = rounds[count-m.limit:]
	}

	m.rounds = rounds
	m.total++
	return nil
}

// Recent returns up to rows rounds, newest first, skipping the first start rounds
func (m *Memory) Recent(start, rows int) []*Round {
	m.lock.RLock()
	defer m.lock.RUnlock()

	recent := make([]*Round, 0, rows)
	for i := len(m.rounds) - 1 - start; i >= 0 && len(recent) < rows; i-- {
		recent = append(recent, m.rounds[i])
	}

	return recent
}

// Total returns how many rounds have ever been recorded
func (m *Memory) Total() int64 {
	m.lock.RLock()
	defer m.lock.RUnlock()

	return m.total
}
