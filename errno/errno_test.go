package errno

import (
	"errors"
	"testing"
)

func TestCodeRoundTrip(t *testing.T) {
	cases := []Errno{EFAILED, EINVAL, ERANGE, EPROTO, EISCONN, ENOTCONN,
		EMSGSIZE, ETIMEDOUT, EBADCRC, ENOCOMMAND, EFLASHWRITE,
		EENTERSERIALEXECUTIONMODE, ERAMAPPUPLOAD}

	for _, e := range cases {
		got := FromCode(e.Code())
		if got.Code() != e.Code() {
			t.Errorf("FromCode(%d).Code() = %d, want %d", e.Code(), got.Code(), e.Code())
		}
	}
}

func TestPinnedValues(t *testing.T) {
	if ENOTCONN.Code() != -107 {
		t.Errorf("ENOTCONN.Code() = %d, want -107", ENOTCONN.Code())
	}
	if EBADCRC.Code() != -1007 {
		t.Errorf("EBADCRC.Code() = %d, want -1007", EBADCRC.Code())
	}
	if EFAILED.Code() != -1 {
		t.Errorf("EFAILED.Code() = %d, want -1", EFAILED.Code())
	}
	if EENTERSERIALEXECUTIONMODE.Code() != -10000 {
		t.Errorf("EENTERSERIALEXECUTIONMODE.Code() = %d, want -10000", EENTERSERIALEXECUTIONMODE.Code())
	}
	if ERAMAPPUPLOAD.Code() != -10001 {
		t.Errorf("ERAMAPPUPLOAD.Code() = %d, want -10001", ERAMAPPUPLOAD.Code())
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("transport reset")
	wrapped := ETIMEDOUT.Wrap(cause)

	if !errors.Is(wrapped, cause) {
		t.Errorf("errors.Is(wrapped, cause) = false, want true")
	}
	if wrapped.Code() != ETIMEDOUT.Code() {
		t.Errorf("wrapping changed the wire code: got %d, want %d", wrapped.Code(), ETIMEDOUT.Code())
	}
}
