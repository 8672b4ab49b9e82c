package hostlink

import (
	"errors"
	"testing"
	"time"

	"github.com/tinkerator/picflash/errno"
)

func TestFakeWriteAccumulates(t *testing.T) {
	f := NewFake()
	f.Write([]byte{1, 2})
	f.Write([]byte{3})
	if got := f.Out.Bytes(); string(got) != string([]byte{1, 2, 3}) {
		t.Fatalf("Out.Bytes() = % x", got)
	}
}

func TestFakeReadTimeoutFeedsQueue(t *testing.T) {
	f := NewFake()
	f.Pipe.Feed([]byte{0xAA, 0xBB})
	buf := make([]byte, 4)
	n, err := f.ReadTimeout(buf, time.Millisecond)
	if err != nil {
		t.Fatalf("ReadTimeout: %v", err)
	}
	if n != 2 || buf[0] != 0xAA || buf[1] != 0xBB {
		t.Fatalf("ReadTimeout returned n=%d buf=% x", n, buf[:n])
	}
}

func TestFakeReadTimeoutEmptyInbox(t *testing.T) {
	f := NewFake()
	buf := make([]byte, 4)
	_, err := f.ReadTimeout(buf, time.Millisecond)
	if !errors.Is(err, errno.ETIMEDOUT) {
		t.Fatalf("got %v, want ETIMEDOUT", err)
	}
}

func TestFakeClose(t *testing.T) {
	f := NewFake()
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !f.Closed {
		t.Fatalf("Closed flag not set")
	}
}
