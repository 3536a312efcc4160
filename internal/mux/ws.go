package mux

import (
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const writeWait = time.Second * 10

// getWS seats a websocket connection exactly like a TCP connection
// The handler returns as soon as the connection is queued; the hijacked connection stays open.
func (m *Mux) getWS() http.HandlerFunc {
	upgrader := &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connection")
			return
		}

		logrus.WithField("remote", conn.RemoteAddr().String()).Debug("websocket connection accepted")
		m.table.PitBoss.ClientConnected(newWSTransport(conn))
	}
}

// wsTransport presents a websocket as a byte stream
// Inbound frames are concatenated; every Write is sent as one text frame. Reads are pumped by a
// goroutine so that a read deadline can expire without poisoning the websocket.
type wsTransport struct {
	conn     *websocket.Conn
	messages chan []byte
	closed   chan struct{}
	readErr  error
	buf      []byte

	lock      sync.Mutex
	deadline  time.Time
	closeOnce sync.Once
}

func newWSTransport(conn *websocket.Conn) *wsTransport {
	t := &wsTransport{
		conn:     conn,
		messages: make(chan []byte, 16),
		closed:   make(chan struct{}),
	}

	go t.pump()
	return t
}

func (t *wsTransport) pump() {
	defer close(t.messages)

	for {
		_, data, err := t.conn.ReadMessage()
		if err != nil {
			t.readErr = err
			return
		}

		select {
		case t.messages <- data:
		case <-t.closed:
			return
		}
	}
}

// Read reads inbound bytes, honouring the read deadline
func (t *wsTransport) Read(p []byte) (int, error) {
	for len(t.buf) == 0 {
		var timeout <-chan time.Time
		if deadline := t.getDeadline(); !deadline.IsZero() {
			timer := time.NewTimer(time.Until(deadline))
			defer timer.Stop()
			timeout = timer.C
		}

		select {
		case data, ok := <-t.messages:
			if !ok {
				return 0, t.readErr
			}

			t.buf = data
		case <-timeout:
			return 0, os.ErrDeadlineExceeded
		}
	}

	n := copy(p, t.buf)
	t.buf = t.buf[n:]
	return n, nil
}

// Write sends p as a single text frame
func (t *wsTransport) Write(p []byte) (int, error) {
	t.lock.Lock()
	defer t.lock.Unlock()

	_ = t.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := t.conn.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}

	return len(p), nil
}

// Close sends a close frame and closes the connection
func (t *wsTransport) Close() error {
	var err error
	t.closeOnce.Do(func() {
		close(t.closed)

		t.lock.Lock()
		_ = t.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
		t.lock.Unlock()

		err = t.conn.Close()
	})

	return err
}

func (t *wsTransport) SetReadDeadline(deadline time.Time) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.deadline = deadline
	return nil
}

func (t *wsTransport) getDeadline() time.Time {
	t.lock.Lock()
	defer t.lock.Unlock()

	return t.deadline
}

func (t *wsTransport) RemoteAddr() net.Addr {
	return t.conn.RemoteAddr()
}
