package protocol

import (
	"bufio"
	"errors"
	"io"
	"net"
	"strings"
	"sync"
	"time"
)

// MaxLineLength is the longest inbound line accepted, terminator excluded
const MaxLineLength = 512

// ErrLineTooLong is returned when a peer sends more than MaxLineLength bytes without a newline
var ErrLineTooLong = errors.New("line too long")

// Transport is a reliable, ordered byte stream to one peer
// A net.Conn satisfies it.
type Transport interface {
	io.ReadWriteCloser
	SetReadDeadline(t time.Time) error
	RemoteAddr() net.Addr
}

// Codec reads and writes protocol lines over a Transport
// Reads and writes may happen on different goroutines, but each direction must only be used by
// one goroutine at a time.
type Codec struct {
	transport Transport
	reader    *bufio.Reader

	closeOnce sync.Once
	closeErr  error
}

// NewCodec returns a new codec
func NewCodec(t Transport) *Codec {
	return &Codec{
		transport: t,
		reader:    bufio.NewReaderSize(t, MaxLineLength+2),
	}
}

// Send writes a single line
func (c *Codec) Send(cmd Command, args ...string) error {
	_, err := io.WriteString(c.transport, Encode(cmd, args...))
	return err
}

// ReadLine returns the next line without its terminator
// A stream that ends without a trailing newline returns io.EOF, not a partial line.
func (c *Codec) ReadLine() (string, error) {
	line, err := c.reader.ReadSlice('\n')
	if err == bufio.ErrBufferFull {
		// drop the rest of the oversized line so the stream stays framed
		for err == bufio.ErrBufferFull {
			_, err = c.reader.ReadSlice('\n')
		}

		if err != nil {
			return "", err
		}

		return "", ErrLineTooLong
	}

	if err != nil {
		return "", err
	}

	return strings.TrimRight(string(line), "\r\n"), nil
}

// ReadLineTimeout is ReadLine bounded by a deadline
// A zero timeout waits forever.
func (c *Codec) ReadLineTimeout(timeout time.Duration) (string, error) {
	if timeout <= 0 {
		return c.ReadLine()
	}

	if err := c.transport.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return "", err
	}
	defer func() { _ = c.transport.SetReadDeadline(time.Time{}) }()

	return c.ReadLine()
}

// RemoteAddr returns the peer address
func (c *Codec) RemoteAddr() string {
	if addr := c.transport.RemoteAddr(); addr != nil {
		return addr.String()
	}

	return ""
}

// Close closes the transport. It is safe to call more than once.
func (c *Codec) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.transport.Close()
	})

	return c.closeErr
}

// IsTimeout returns true if err is a read deadline expiring
func IsTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
