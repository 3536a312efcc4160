package room

import (
	"bufio"
	"io"
	"net"
	"strings"
	"testing"

	"blackjack-server/internal/rng"
	"blackjack-server/pkg/deck"
	"blackjack-server/pkg/history"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// actions a testPlayer understands besides protocol text
const (
	actionDisconnect = "<disconnect>"
	actionWait       = "<wait>"
)

// testPlayer is a scripted client on the far side of a net.Pipe
// It answers each PROMPT with the next action. Once out of actions it disconnects.
type testPlayer struct {
	conn     net.Conn
	received chan string
	actions  []string
}

func newTestPlayer(p *PitBoss, actions ...string) *testPlayer {
	server, client := net.Pipe()
	tp := &testPlayer{
		conn:     client,
		received: make(chan string, 1024),
		actions:  actions,
	}

	go tp.loop()
	p.ClientConnected(server)
	return tp
}

func (tp *testPlayer) loop() {
	defer close(tp.received)

	r := bufio.NewReader(tp.conn)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}

		line = strings.TrimRight(line, "\n")
		tp.received <- line

		if !strings.HasPrefix(line, "PROMPT") {
			continue
		}

		if len(tp.actions) == 0 {
			_ = tp.conn.Close()
			return
		}

		action := tp.actions[0]
		tp.actions = tp.actions[1:]
		switch action {
		case actionDisconnect:
			_ = tp.conn.Close()
			return
		case actionWait:
		default:
			if _, err := io.WriteString(tp.conn, action+"\r\n"); err != nil {
				return
			}
		}
	}
}

// transcript waits for the connection to end and returns every line received
func (tp *testPlayer) transcript() []string {
	lines := make([]string, 0)
	for line := range tp.received {
		lines = append(lines, line)
	}

	return lines
}

func newTestTable(t *testing.T, capacity int, options Options) (*PitBoss, *Dealer, *history.Memory) {
	t.Helper()

	logger := logrus.StandardLogger()
	p := NewPitBoss(logger, capacity)
	memory := history.NewMemory(10)
	if options.RNG == nil {
		options.RNG = rng.NewLocked(1)
	}

	d := NewDealer(logger, p, memory, options)
	t.Cleanup(p.CloseAll)

	return p, d, memory
}

// stackShoe makes every round deal the given cards first
func stackShoe(t *testing.T, d *Dealer, cards string) {
	t.Helper()

	top := deck.CardsFromString(cards)
	d.newShoe = func() *deck.Shoe {
		shoe := deck.NewShoe(rng.NewLocked(1))
		shoe.Shuffle()
		require.NoError(t, shoe.Stack(top...))
		return shoe
	}
}
