package hostlink

import (
	"sync"
	"time"

	"github.com/tinkerator/picflash/errno"
)

// Pipe is the inbound half of Fake: an in-memory queue of byte chunks
// that Feed appends to and Fake.ReadTimeout drains in order, standing
// in for bytes arriving over a real serial transport.
type Pipe struct {
	mu    sync.Mutex
	inbox [][]byte
}

// NewPipe returns a fresh, empty Pipe.
func NewPipe() *Pipe {
	return &Pipe{}
}

// Feed makes buf available to the next ReadTimeout call(s), as if it
// had arrived over the wire.
func (p *Pipe) Feed(buf []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	cp := append([]byte(nil), buf...)
	p.inbox = append(p.inbox, cp)
}

// Written accumulates everything passed to Write, for test assertions.
type Written struct {
	mu   sync.Mutex
	data []byte
}

func (w *Written) Write(buf []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.data = append(w.data, buf...)
	return len(buf), nil
}

func (w *Written) Bytes() []byte {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]byte(nil), w.data...)
}

// Fake combines a Pipe (for reads) and a Written (for writes) behind a
// single Channel, the shape programmer and ramapp engine tests use to
// exercise one side of the link without the other.
type Fake struct {
	Pipe   *Pipe
	Out    *Written
	Closed bool
}

func NewFake() *Fake {
	return &Fake{Pipe: NewPipe(), Out: &Written{}}
}

func (f *Fake) Write(buf []byte) (int, error) {
	return f.Out.Write(buf)
}

func (f *Fake) Close() error {
	f.Closed = true
	return nil
}

// ReadTimeout returns queued data immediately, or errno.ETIMEDOUT if
// the inbox is empty. The timeout argument is accepted for interface
// compatibility but not awaited, since Feed is always called
// synchronously by the test before ReadTimeout in this fake.
func (f *Fake) ReadTimeout(buf []byte, timeout time.Duration) (int, error) {
	f.Pipe.mu.Lock()
	defer f.Pipe.mu.Unlock()
	if len(f.Pipe.inbox) == 0 {
		return 0, errno.ETIMEDOUT
	}
	next := f.Pipe.inbox[0]
	n := copy(buf, next)
	if n < len(next) {
		f.Pipe.inbox[0] = next[n:]
	} else {
		f.Pipe.inbox = f.Pipe.inbox[1:]
	}
	return n, nil
}
