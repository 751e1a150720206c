package engine

import (
	"bufio"
	"errors"
	"net"
	"strings"
	"time"

	"rats-server/models"
)

// Seat is one player's position at a table. It owns the connection for
// the lifetime of the game and wraps it in buffered line-oriented
// streams, the read side shared with the join handshake.
type Seat struct {
	Name string
	Hand models.Hand

	conn net.Conn
	r    *bufio.Reader
	w    *bufio.Writer
}

// NewSeat wraps an accepted connection. The reader is the one the join
// handshake was read from, so nothing buffered is lost.
func NewSeat(name string, conn net.Conn, r *bufio.Reader) *Seat {
	return &Seat{
		Name: name,
		conn: conn,
		r:    r,
		w:    bufio.NewWriter(conn),
	}
}

// SendLine writes one newline-terminated record and flushes
// immediately. Writes are fire-and-forget: a dead peer is discovered
// on the next read from it.
func (s *Seat) SendLine(line string) {
	s.w.WriteString(line)
	s.w.WriteByte('\n')
	s.w.Flush()
}

func (s *Seat) SendMessage(text string) {
	s.SendLine(models.FormatMessage(text))
}

// ReadLine blocks until a full line arrives or the peer disconnects.
func (s *Seat) ReadLine() (string, error) {
	line, err := s.r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Alive performs a non-blocking readiness probe: a zero-length poll of
// the socket that never consumes buffered data. Used by the pending
// sweep to detect peers that hung up before their table filled.
func (s *Seat) Alive() bool {
	if err := s.conn.SetReadDeadline(time.Now().Add(time.Millisecond)); err != nil {
		return false
	}
	defer s.conn.SetReadDeadline(time.Time{})

	_, err := s.r.Peek(1)
	if err == nil {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}

func (s *Seat) Close() {
	s.conn.Close()
}
