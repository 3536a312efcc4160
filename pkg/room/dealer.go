package room

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"blackjack-server/pkg/blackjack"
	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/history"
	"blackjack-server/pkg/protocol"
	"github.com/sirupsen/logrus"
)

// recordTimeout bounds how long a round record may take, independent of shutdown
const recordTimeout = time.Second * 5

// Dealer runs the table's rounds
// All game state lives on the goroutine that calls Run (or PlayRound): the shoe, the dealer's
// hand and the seats' hands are never touched concurrently.
type Dealer struct {
	pitBoss  *PitBoss
	logger   logrus.FieldLogger
	options  Options
	recorder history.Recorder

	newShoe      func() *deck.Shoe
	roundsPlayed int64
}

// NewDealer creates a new dealer object
// recorder may be nil.
func NewDealer(logger logrus.FieldLogger, pitBoss *PitBoss, recorder history.Recorder, options Options) *Dealer {
	if options.RNG == nil {
		options.RNG = DefaultOptions().RNG
	}

	d := &Dealer{
		pitBoss:  pitBoss,
		logger:   logger,
		options:  options,
		recorder: recorder,
	}

	d.newShoe = func() *deck.Shoe {
		shoe := deck.NewShoe(d.options.RNG)
		shoe.Shuffle()
		return shoe
	}

	return d
}

// RoundsPlayed returns how many rounds have completed
// This may be called from any goroutine.
func (d *Dealer) RoundsPlayed() int64 {
	return atomic.LoadInt64(&d.roundsPlayed)
}

// Run plays rounds until the table empties or ctx is cancelled
// Before each round it waits for a first player if nobody is seated, then seats everyone who is
// already waiting. It returns nil when the last player leaves after a round.
func (d *Dealer) Run(ctx context.Context) error {
	for {
		if d.pitBoss.ActiveCount() == 0 {
			if err := d.pitBoss.WaitForPlayer(ctx); err != nil {
				return err
			}
		}

		d.pitBoss.Sweep()
		if d.pitBoss.ActiveCount() == 0 {
			// everyone left between admission and the deal
			continue
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := d.PlayRound(ctx); err != nil {
			return err
		}

		if d.pitBoss.ActiveCount() == 0 {
			d.logger.Info("all players left, closing the table")
			return nil
		}
	}
}

// PlayRound plays one full round with the currently active seats
func (d *Dealer) PlayRound(ctx context.Context) (*history.Round, error) {
	seats := d.pitBoss.Active()
	if len(seats) == 0 {
		return nil, ErrNoPlayers
	}

	round := history.NewRound(time.Now())
	log := d.logger.WithField("round", round.UUID)
	log.WithField("seats", len(seats)).Debug("starting round")

	// fresh shoe and dealer hand every round
	shoe := d.newShoe()
	dealerHand := make(deck.Hand, 0, deck.MaxHandCards)
	for _, seat := range seats {
		seat.Hand.Reset()
	}

	for pass := 0; pass < 2; pass++ {
		for _, seat := range seats {
			seat.Hand.AddCard(shoe.Deal())
		}

		dealerHand.AddCard(shoe.Deal())
	}

	d.reveal(seats, dealerHand)

	for _, seat := range seats {
		if ctx.Err() != nil {
			break
		}

		if !seat.IsActive() {
			continue
		}

		d.playTurn(log.WithField("seat", seat.Number), shoe, seat)
	}

	for blackjack.DealerShouldHit(dealerHand) {
		dealerHand.AddCard(shoe.Deal())
	}

	d.settle(round, seats, dealerHand)
	round.Ended = time.Now()
	atomic.AddInt64(&d.roundsPlayed, 1)

	log.WithFields(logrus.Fields{
		"dealerHand":  dealerHand.String(),
		"dealerValue": round.DealerValue,
	}).Info("round finished")

	d.record(log, round)
	return round, nil
}

// reveal shows every seat the dealer's up card and its own starting hand
func (d *Dealer) reveal(seats []*Seat, dealerHand deck.Hand) {
	up, _ := dealerHand.FirstCard()
	for _, seat := range seats {
		if d.send(seat, protocol.DealerUp, up.String()) {
			d.send(seat, protocol.YourHand, seat.Hand.String())
		}
	}
}

// settle reports the outcome to each seat that is still active
func (d *Dealer) settle(round *history.Round, seats []*Seat, dealerHand deck.Hand) {
	dealerValue := blackjack.Value(dealerHand)
	round.DealerHand = dealerHand.Clone()
	round.DealerValue = dealerValue

	for _, seat := range seats {
		playerValue := blackjack.Value(seat.Hand)
		result := &history.SeatResult{
			SessionID: seat.SessionID(),
			Seat:      seat.Number,
			Hand:      seat.Hand.Clone(),
			Value:     playerValue,
			Blackjack: blackjack.IsBlackjack(seat.Hand),
		}
		round.Seats = append(round.Seats, result)

		if !seat.IsActive() {
			result.Abandoned = true
			continue
		}

		result.Result = blackjack.Settle(playerValue, dealerValue)
		messages := []struct {
			cmd  protocol.Command
			args []string
		}{
			{protocol.DealerHand, []string{dealerHand.String()}},
			{protocol.DealerValue, []string{strconv.Itoa(dealerValue)}},
			{protocol.PlayerValue, []string{strconv.Itoa(playerValue)}},
			{protocol.Result, []string{string(result.Result)}},
			{protocol.RoundEnd, nil},
		}

		for _, msg := range messages {
			if !d.send(seat, msg.cmd, msg.args...) {
				result.Abandoned = true
				break
			}
		}
	}
}

func (d *Dealer) record(log logrus.FieldLogger, round *history.Round) {
	if d.recorder == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	if err := d.recorder.Record(ctx, round); err != nil {
		log.WithError(err).Error("could not record round")
	}
}

// send sends a line to the seat, vacating the seat if the write fails
// It returns false if the seat is (now) inactive.
func (d *Dealer) send(seat *Seat, cmd protocol.Command, args ...string) bool {
	if !seat.IsActive() {
		return false
	}

	if err := seat.client.Send(cmd, args...); err != nil {
		d.pitBoss.Deactivate(seat, err)
		return false
	}

	return true
}
