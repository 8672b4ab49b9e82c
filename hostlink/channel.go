// Package hostlink models the CDC-ACM serial byte stream between the
// PC host and the programmer endpoint: a plain timeout-bounded
// read/write channel, with a real implementation over a USB serial
// port and an in-memory fake for tests and the loopback harness.
package hostlink

import (
	"time"

	"github.com/pkg/term"

	"github.com/tinkerator/picflash/errno"
)

// Channel is the byte-stream abstraction the programmer's host-facing
// side reads frames from and writes frames to.
type Channel interface {
	// ReadTimeout reads up to len(buf) bytes, returning
	// errno.ETIMEDOUT if no data arrives before timeout elapses.
	ReadTimeout(buf []byte, timeout time.Duration) (int, error)
	// Write writes buf in full or returns an error.
	Write(buf []byte) (int, error)
	Close() error
}

// Serial is a Channel backed by a real USB-CDC serial port, opened in
// raw mode at a fixed baud rate, following the same term.Open pattern
// the teacher uses to talk to a programmer's bootloader. Since a raw
// term.Term blocks on Read until at least one byte arrives, ReadTimeout
// is implemented with a single background reader goroutine feeding a
// channel, so a stalled read can still be bounded by a timeout without
// ever issuing two concurrent reads against the same port.
type Serial struct {
	t       *term.Term
	reads   chan readResult
	pending []byte
}

type readResult struct {
	n   int
	buf []byte
	err error
}

// DefaultBaud is the rate the programmer's CDC-ACM endpoint presents
// at; USB CDC-ACM ignores the requested baud in practice, but term
// requires one be named.
const DefaultBaud = 115200

// Open opens tty as a raw-mode serial channel.
func Open(tty string) (*Serial, error) {
	t, err := term.Open(tty, term.Speed(DefaultBaud), term.RawMode)
	if err != nil {
		return nil, err
	}
	s := &Serial{t: t, reads: make(chan readResult, 1)}
	go s.readLoop()
	return s, nil
}

func (s *Serial) readLoop() {
	for {
		buf := make([]byte, 256)
		n, err := s.t.Read(buf)
		s.reads <- readResult{n: n, buf: buf[:n], err: err}
		if err != nil {
			return
		}
	}
}

func (s *Serial) Write(buf []byte) (int, error) {
	return s.t.Write(buf)
}

func (s *Serial) Close() error {
	return s.t.Close()
}

// ReadTimeout returns the next chunk read by the background reader
// goroutine, or errno.ETIMEDOUT if none arrives before timeout
// elapses. Bytes the background goroutine read but the caller's buf
// had no room for are held in pending for the next call, so a read
// request smaller than what the port delivered in one chunk never
// loses data.
func (s *Serial) ReadTimeout(buf []byte, timeout time.Duration) (int, error) {
	if len(s.pending) > 0 {
		n := copy(buf, s.pending)
		s.pending = s.pending[n:]
		return n, nil
	}
	select {
	case r := <-s.reads:
		if r.err != nil && r.n == 0 {
			return 0, r.err
		}
		n := copy(buf, r.buf)
		if n < len(r.buf) {
			s.pending = append([]byte(nil), r.buf[n:]...)
		}
		return n, nil
	case <-time.After(timeout):
		return 0, errno.ETIMEDOUT
	}
}
