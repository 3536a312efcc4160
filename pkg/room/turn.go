package room

import (
	"strconv"

	"blackjack-server/pkg/blackjack"
	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/protocol"
	"github.com/sirupsen/logrus"
)

// playTurn runs one seat's hit/stand loop
// The turn ends on stand, bust, 21, a natural blackjack, or the seat disconnecting.
func (d *Dealer) playTurn(log logrus.FieldLogger, shoe *deck.Shoe, seat *Seat) {
	if blackjack.IsBlackjack(seat.Hand) {
		d.send(seat, protocol.Blackjack)
		return
	}

	for {
		if !d.send(seat, protocol.YourTurn) ||
			!d.send(seat, protocol.Hand, seat.Hand.String()) ||
			!d.send(seat, protocol.Prompt, protocol.PromptText) {
			return
		}

		line, err := seat.client.ReadLine(d.options.TurnTimeout)
		switch {
		case err == protocol.ErrLineTooLong:
			if !d.send(seat, protocol.UnknownCommand) {
				return
			}
			continue
		case protocol.IsTimeout(err):
			log.Info("turn timed out, standing")
			d.stand(seat)
			return
		case err != nil:
			d.pitBoss.Deactivate(seat, err)
			return
		}

		choice, ok := protocol.ParseChoice(line)
		if !ok {
			log.WithField("line", line).Debug("unknown command")
			if !d.send(seat, protocol.UnknownCommand) {
				return
			}
			continue
		}

		if choice == protocol.Stand {
			d.stand(seat)
			return
		}

		card := shoe.Deal()
		seat.Hand.AddCard(card)
		if !d.send(seat, protocol.Hit, card.String()) {
			return
		}

		value := blackjack.Value(seat.Hand)
		if value > blackjack.Blackjack {
			d.send(seat, protocol.Bust, strconv.Itoa(value))
			return
		}

		if value == blackjack.Blackjack {
			d.send(seat, protocol.Stand, strconv.Itoa(value))
			return
		}
	}
}

func (d *Dealer) stand(seat *Seat) {
	d.send(seat, protocol.Stand, strconv.Itoa(blackjack.Value(seat.Hand)))
}
