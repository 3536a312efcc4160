package room

import (
	"fmt"
	"time"

	"blackjack-server/pkg/protocol"
	"github.com/sirupsen/logrus"
)

// Client is one connected session
// A client is created when a connection is admitted and is never reused; a reconnect is a new
// client with a new ID.
type Client struct {
	// ID is a stable, process-unique session id
	ID uint64

	codec  *protocol.Codec
	logger logrus.FieldLogger
}

// NewClient returns a new client object
func NewClient(id uint64, codec *protocol.Codec, logger logrus.FieldLogger) *Client {
	return &Client{
		ID:    id,
		codec: codec,
		logger: logger.WithFields(logrus.Fields{
			"sessionID": id,
			"remote":    codec.RemoteAddr(),
		}),
	}
}

// Send sends a single protocol line to the client
func (c *Client) Send(cmd protocol.Command, args ...string) error {
	c.logger.WithField("command", cmd).WithField("args", args).Trace("sending message to client")
	return c.codec.Send(cmd, args...)
}

// ReadLine waits for the next line from the client
// A zero timeout waits forever.
func (c *Client) ReadLine(timeout time.Duration) (string, error) {
	line, err := c.codec.ReadLineTimeout(timeout)
	if err == nil {
		c.logger.WithField("line", line).Trace("received message from client")
	}

	return line, err
}

// RemoteAddr returns the client's address
func (c *Client) RemoteAddr() string {
	return c.codec.RemoteAddr()
}

// Close closes the underlying transport. It is safe to call more than once.
func (c *Client) Close() error {
	return c.codec.Close()
}

// String returns a traceable identifier for the session
func (c *Client) String() string {
	return fmt.Sprintf("session-%d:%s", c.ID, c.codec.RemoteAddr())
}
