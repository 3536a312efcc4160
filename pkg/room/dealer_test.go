package room

import (
	"context"
	"testing"
	"time"

	"blackjack-server/pkg/blackjack"
	"blackjack-server/pkg/history"
	"blackjack-server/pkg/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDealer_PlayRound_blackjackAndBust(t *testing.T) {
	a := assert.New(t)
	p, d, memory := newTestTable(t, 5, DefaultOptions())

	// deal order: seat 1, seat 2, dealer, seat 1, seat 2, dealer, then draws
	stackShoe(t, d, "AS 9C 10D KH 9D 6H 5C 2C")

	seatA := newTestPlayer(p)
	seatB := newTestPlayer(p, "hit")
	p.Sweep()

	round, err := d.PlayRound(context.Background())
	require.NoError(t, err)
	p.CloseAll()

	snapshot.Validate(t, [][]string{seatA.transcript(), seatB.transcript()})

	a.Equal("10D 6H 2C", round.DealerHand.String())
	a.Equal(18, round.DealerValue)
	a.Equal(2, len(round.Seats))
	a.True(round.Seats[0].Blackjack)
	a.Equal(blackjack.Win, round.Seats[0].Result)
	a.Equal(23, round.Seats[1].Value)
	a.Equal(blackjack.Lose, round.Seats[1].Result)
	a.False(round.Ended.Before(round.Started))

	a.Equal(int64(1), d.RoundsPlayed())
	a.Equal([]*history.Round{round}, memory.Recent(0, 10))
}

func TestDealer_PlayRound_dealerBusts(t *testing.T) {
	a := assert.New(t)
	p, d, _ := newTestTable(t, 5, DefaultOptions())

	// player stands on 12, dealer 10+6 draws a king
	stackShoe(t, d, "7C 10D 5H 6H KS")
	player := newTestPlayer(p, "STAND")
	p.Sweep()

	round, err := d.PlayRound(context.Background())
	require.NoError(t, err)
	p.CloseAll()

	lines := player.transcript()
	a.Contains(lines, "STAND 12")
	a.Contains(lines, "DEALER_HAND 10D 6H KS")
	a.Contains(lines, "DEALER_VALUE 26")
	a.Contains(lines, "RESULT WIN")
	a.Equal(blackjack.Win, round.Seats[0].Result)
}

func TestDealer_PlayRound_push(t *testing.T) {
	a := assert.New(t)
	p, d, _ := newTestTable(t, 5, DefaultOptions())

	// both on 19, dealer stands
	stackShoe(t, d, "10C 10D 9H 9S")
	player := newTestPlayer(p, "stand")
	p.Sweep()

	_, err := d.PlayRound(context.Background())
	require.NoError(t, err)
	p.CloseAll()

	lines := player.transcript()
	a.Contains(lines, "DEALER_HAND 10D 9S")
	a.Contains(lines, "RESULT PUSH")
}

func TestDealer_PlayRound_hitToTwentyOne(t *testing.T) {
	a := assert.New(t)
	p, d, _ := newTestTable(t, 5, DefaultOptions())

	stackShoe(t, d, "5C 10D 6H 8S 10H")
	player := newTestPlayer(p, "hit")
	p.Sweep()

	_, err := d.PlayRound(context.Background())
	require.NoError(t, err)
	p.CloseAll()

	a.Equal([]string{
		"WELCOME Player 1",
		"DEALER_UP 10D",
		"YOUR_HAND 5C 6H",
		"YOUR_TURN",
		"HAND 5C 6H",
		"PROMPT HIT or STAND",
		"HIT 10H",
		"STAND 21",
		"DEALER_HAND 10D 8S",
		"DEALER_VALUE 18",
		"PLAYER_VALUE 21",
		"RESULT WIN",
		"ROUND_END",
	}, player.transcript())
}

func TestDealer_PlayRound_unknownCommand(t *testing.T) {
	a := assert.New(t)
	p, d, _ := newTestTable(t, 5, DefaultOptions())

	stackShoe(t, d, "5C 10D 6H 8S 2H")
	player := newTestPlayer(p, "BET 50", "Hit", "stand")
	p.Sweep()

	_, err := d.PlayRound(context.Background())
	require.NoError(t, err)
	p.CloseAll()

	a.Equal([]string{
		"WELCOME Player 1",
		"DEALER_UP 10D",
		"YOUR_HAND 5C 6H",
		"YOUR_TURN",
		"HAND 5C 6H",
		"PROMPT HIT or STAND",
		"UNKNOWN_COMMAND",
		"YOUR_TURN",
		"HAND 5C 6H",
		"PROMPT HIT or STAND",
		"HIT 2H",
		"YOUR_TURN",
		"HAND 5C 6H 2H",
		"PROMPT HIT or STAND",
		"STAND 13",
		"DEALER_HAND 10D 8S",
		"DEALER_VALUE 18",
		"PLAYER_VALUE 13",
		"RESULT LOSE",
		"ROUND_END",
	}, player.transcript())
}

func TestDealer_PlayRound_disconnectMidTurn(t *testing.T) {
	a := assert.New(t)
	p, d, _ := newTestTable(t, 5, DefaultOptions())

	stackShoe(t, d, "5C 9C 10D 6H 9D 8S")
	leaver := newTestPlayer(p, actionDisconnect)
	stayer := newTestPlayer(p, "stand")
	p.Sweep()

	round, err := d.PlayRound(context.Background())
	require.NoError(t, err)

	// the leaver gets nothing after the prompt it never answered
	a.Equal([]string{
		"WELCOME Player 1",
		"DEALER_UP 10D",
		"YOUR_HAND 5C 6H",
		"YOUR_TURN",
		"HAND 5C 6H",
		"PROMPT HIT or STAND",
	}, leaver.transcript())
	a.Equal(1, p.ActiveCount())

	p.CloseAll()
	lines := stayer.transcript()
	a.Contains(lines, "STAND 18")
	a.Contains(lines, "DEALER_VALUE 18")
	a.Contains(lines, "RESULT PUSH")
	a.Equal("ROUND_END", lines[len(lines)-1])

	a.True(round.Seats[0].Abandoned)
	a.Equal(blackjack.Result(""), round.Seats[0].Result)
	a.False(round.Seats[1].Abandoned)
	a.Equal(blackjack.Push, round.Seats[1].Result)
}

func TestDealer_PlayRound_turnTimeout(t *testing.T) {
	a := assert.New(t)
	options := DefaultOptions()
	options.TurnTimeout = 50 * time.Millisecond
	p, d, _ := newTestTable(t, 5, options)

	stackShoe(t, d, "10C 10D 7H 8S")
	player := newTestPlayer(p, actionWait)
	p.Sweep()

	round, err := d.PlayRound(context.Background())
	require.NoError(t, err)
	p.CloseAll()

	lines := player.transcript()
	a.Contains(lines, "STAND 17")
	a.Contains(lines, "RESULT LOSE")
	a.Equal(blackjack.Lose, round.Seats[0].Result)
}

func TestDealer_PlayRound_noPlayers(t *testing.T) {
	_, d, _ := newTestTable(t, 5, DefaultOptions())

	round, err := d.PlayRound(context.Background())
	assert.Nil(t, round)
	assert.Equal(t, ErrNoPlayers, err)
}

func TestDealer_PlayRound_dealerDrawsToSeventeen(t *testing.T) {
	a := assert.New(t)
	p, d, _ := newTestTable(t, 5, DefaultOptions())

	// dealer: 2 + 3, then 4, 5, 3 = 17 and stops before the queen
	stackShoe(t, d, "10C 2D 10H 3S 4C 5C 3H QD")
	newTestPlayer(p, "stand")
	p.Sweep()

	round, err := d.PlayRound(context.Background())
	require.NoError(t, err)
	p.CloseAll()

	a.Equal("2D 3S 4C 5C 3H", round.DealerHand.String())
	a.Equal(17, round.DealerValue)
	a.Equal(blackjack.Win, round.Seats[0].Result)
}

func TestDealer_PlayRound_handsResetEachRound(t *testing.T) {
	a := assert.New(t)
	p, d, _ := newTestTable(t, 5, DefaultOptions())

	newTestPlayer(p, "stand", "stand")
	p.Sweep()

	for i := 0; i < 2; i++ {
		round, err := d.PlayRound(context.Background())
		require.NoError(t, err)
		a.Equal(2, len(round.Seats[0].Hand))
		a.GreaterOrEqual(len(round.DealerHand), 2)
		a.Equal(2, len(p.Active()[0].Hand))
	}
}

func TestDealer_Run(t *testing.T) {
	a := assert.New(t)
	p, d, memory := newTestTable(t, 5, DefaultOptions())

	// stands in the first round, disconnects at the second prompt
	stackShoe(t, d, "5C 10D 6H 8S")
	player := newTestPlayer(p, "stand")

	done := make(chan error)
	go func() {
		done <- d.Run(context.Background())
	}()

	select {
	case err := <-done:
		a.NoError(err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after the table emptied")
	}

	a.Equal(int64(2), d.RoundsPlayed())
	a.Equal(int64(2), memory.Total())
	a.Equal(0, p.ActiveCount())

	lines := player.transcript()
	a.Equal("WELCOME Player 1", lines[0])
	a.Equal("PROMPT HIT or STAND", lines[len(lines)-1])
}

func TestDealer_Run_cancelled(t *testing.T) {
	_, d, _ := newTestTable(t, 5, DefaultOptions())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	assert.Equal(t, context.Canceled, d.Run(ctx))
}
