package mux

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wsClient reads whole lines off a websocket, whatever the framing
type wsClient struct {
	conn    *websocket.Conn
	pending []string
}

func dialWS(t *testing.T, ts *httptest.Server) *wsClient {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &wsClient{conn: conn}
}

func (c *wsClient) readLine(t *testing.T) string {
	t.Helper()

	for len(c.pending) == 0 {
		_ = c.conn.SetReadDeadline(time.Now().Add(time.Second * 5))
		_, data, err := c.conn.ReadMessage()
		require.NoError(t, err)

		for _, line := range strings.SplitAfter(string(data), "\n") {
			if line != "" {
				c.pending = append(c.pending, strings.TrimSuffix(line, "\n"))
			}
		}
	}

	line := c.pending[0]
	c.pending = c.pending[1:]
	return line
}

func TestMux_getWS(t *testing.T) {
	a := assert.New(t)

	table := newTestTable(t, 1)
	ts := httptest.NewServer(NewMux("", table))
	defer ts.Close()

	player := dialWS(t, ts)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	require.NoError(t, table.PitBoss.WaitForPlayer(ctx))
	a.Equal("WELCOME Player 1", player.readLine(t))

	var resp tableResponse
	assertGet(t, ts, "/table", &resp, 200)
	a.Equal(1, resp.Occupied)
	if a.Len(resp.Seats, 1) {
		a.True(resp.Seats[0].Occupied)
		a.Equal(uint64(1), resp.Seats[0].SessionID)
	}

	// a second connection is turned away at the next sweep
	rejected := dialWS(t, ts)
	time.Sleep(time.Millisecond * 100)
	table.PitBoss.Sweep()
	a.Equal("SERVER_FULL", rejected.readLine(t))

	done := make(chan error, 1)
	go func() {
		_, err := table.Dealer.PlayRound(ctx)
		done <- err
	}()

	for {
		line := player.readLine(t)
		if line == "PROMPT HIT or STAND" {
			// the command may be split across frames
			a.NoError(player.conn.WriteMessage(websocket.TextMessage, []byte("sta")))
			a.NoError(player.conn.WriteMessage(websocket.TextMessage, []byte("nd\r\n")))
		}

		if line == "ROUND_END" {
			break
		}
	}

	a.NoError(<-done)
	a.Equal(int64(1), table.Dealer.RoundsPlayed())
	a.Equal(int64(1), table.Rounds.Total())
}

func TestWSTransport_readDeadline(t *testing.T) {
	a := assert.New(t)

	table := newTestTable(t, 1)
	ts := httptest.NewServer(NewMux("", table))
	defer ts.Close()

	player := dialWS(t, ts)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	require.NoError(t, table.PitBoss.WaitForPlayer(ctx))
	a.Equal("WELCOME Player 1", player.readLine(t))

	seats := table.PitBoss.Active()
	require.Len(t, seats, 1)

	// an expired deadline must not break later reads
	client := seats[0].Client()
	_, err := client.ReadLine(time.Millisecond * 20)
	a.Error(err)

	a.NoError(player.conn.WriteMessage(websocket.TextMessage, []byte("hit\n")))
	line, err := client.ReadLine(time.Second * 5)
	a.NoError(err)
	a.Equal("hit", line)
}
