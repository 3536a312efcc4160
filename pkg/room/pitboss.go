package room

import (
	"context"
	"errors"
	"net"
	"sync"

	"blackjack-server/pkg/protocol"
	"github.com/sirupsen/logrus"
)

// DefaultCapacity is the default number of seats at the table
const DefaultCapacity = 5

// pendingLimit is how many connections may wait for the next sweep
const pendingLimit = 256

// PitBoss is responsible for seating players
// It owns the fixed-capacity seat array. Connections are queued by ClientConnected from any
// goroutine, but they are only admitted, and seats only vacated, from the dealer's goroutine, so
// a seat can never change hands in the middle of its turn.
type PitBoss struct {
	logger   logrus.FieldLogger
	capacity int

	lock    sync.RWMutex
	seats   []*Seat
	nextID  uint64
	pending chan protocol.Transport
}

// NewPitBoss returns a new registry with capacity seats
func NewPitBoss(logger logrus.FieldLogger, capacity int) *PitBoss {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &PitBoss{
		logger:   logger,
		capacity: capacity,
		seats:    make([]*Seat, capacity),
		pending:  make(chan protocol.Transport, pendingLimit),
	}
}

// Capacity returns the number of seats
func (p *PitBoss) Capacity() int {
	return p.capacity
}

// ClientConnected is called when a connection arrives
// It returns immediately; the connection is seated at the next sweep.
func (p *PitBoss) ClientConnected(t protocol.Transport) {
	select {
	case p.pending <- t:
	default:
		p.reject(protocol.NewCodec(t))
	}
}

// Serve accepts connections from ln until the context is cancelled or ln is closed
func (p *PitBoss) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}

			p.logger.WithError(err).Error("could not accept connection")
			continue
		}

		p.logger.WithField("remote", conn.RemoteAddr().String()).Debug("connection accepted")
		p.ClientConnected(conn)
	}
}

// WaitForPlayer blocks until at least one seat is active
func (p *PitBoss) WaitForPlayer(ctx context.Context) error {
	for p.ActiveCount() == 0 {
		p.logger.Info("waiting for players")

		select {
		case t := <-p.pending:
			p.admit(t)
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return nil
}

// Sweep admits every connection that is already waiting, without blocking
// Connections that arrive when every seat is taken are told so and closed.
func (p *PitBoss) Sweep() {
	for {
		select {
		case t := <-p.pending:
			p.admit(t)
		default:
			return
		}
	}
}

// admit seats the connection in the first free seat
// NOTE: must only be called from the dealer's goroutine
func (p *PitBoss) admit(t protocol.Transport) {
	codec := protocol.NewCodec(t)

	p.lock.Lock()
	index := -1
	for i, seat := range p.seats {
		if seat == nil {
			index = i
			break
		}
	}

	if index < 0 {
		p.lock.Unlock()
		p.reject(codec)
		return
	}

	p.nextID++
	client := NewClient(p.nextID, codec, p.logger)
	seat := newSeat(index+1, client)
	p.seats[index] = seat
	p.lock.Unlock()

	client.logger.WithField("seat", seat.Number).Info("player connected")
	if err := client.Send(protocol.Welcome, seat.Label()); err != nil {
		p.Deactivate(seat, err)
	}
}

func (p *PitBoss) reject(codec *protocol.Codec) {
	p.logger.WithField("remote", codec.RemoteAddr()).WithError(ErrTableFull).Warn("rejecting connection")
	_ = codec.Send(protocol.ServerFull)
	_ = codec.Close()
}

// Deactivate closes the seat's connection and frees the seat
// Anything the seat had in progress is abandoned. Calling it twice is harmless.
// NOTE: must only be called from the dealer's goroutine
func (p *PitBoss) Deactivate(seat *Seat, reason error) {
	p.lock.Lock()
	if !seat.active {
		p.lock.Unlock()
		return
	}

	seat.active = false
	if idx := seat.Number - 1; idx >= 0 && idx < len(p.seats) && p.seats[idx] == seat {
		p.seats[idx] = nil
	}
	p.lock.Unlock()

	_ = seat.client.Close()
	seat.client.logger.WithField("seat", seat.Number).WithError(reason).Info("player disconnected")
}

// Active returns the active seats in seat order
func (p *PitBoss) Active() []*Seat {
	p.lock.RLock()
	defer p.lock.RUnlock()

	seats := make([]*Seat, 0, len(p.seats))
	for _, seat := range p.seats {
		if seat != nil && seat.active {
			seats = append(seats, seat)
		}
	}

	return seats
}

// ActiveCount returns the number of active seats
func (p *PitBoss) ActiveCount() int {
	p.lock.RLock()
	defer p.lock.RUnlock()

	count := 0
	for _, seat := range p.seats {
		if seat != nil && seat.active {
			count++
		}
	}

	return count
}

// SeatState is a point-in-time view of a seat, safe to hand to other goroutines
type SeatState struct {
	Number    int    `json:"number"`
	Occupied  bool   `json:"occupied"`
	SessionID uint64 `json:"sessionId,omitempty"`
	Remote    string `json:"remote,omitempty"`
}

// Snapshot returns the state of every seat
// This may be called from any goroutine.
func (p *PitBoss) Snapshot() []SeatState {
	p.lock.RLock()
	defer p.lock.RUnlock()

	states := make([]SeatState, len(p.seats))
	for i, seat := range p.seats {
		states[i] = SeatState{Number: i + 1}
		if seat != nil && seat.active {
			states[i].Occupied = true
			states[i].SessionID = seat.client.ID
			states[i].Remote = seat.client.RemoteAddr()
		}
	}

	return states
}

// CloseAll closes every seated and pending connection
// It may be called from any goroutine; a dealer blocked on a read is woken with an error and
// vacates the seat itself.
func (p *PitBoss) CloseAll() {
	p.lock.RLock()
	for _, seat := range p.seats {
		if seat != nil {
			_ = seat.client.Close()
		}
	}
	p.lock.RUnlock()

	for {
		select {
		case t := <-p.pending:
			_ = t.Close()
		default:
			return
		}
	}
}
