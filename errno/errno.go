// Package errno defines the negative-code error space carried in
// protocol failure frames by both the programmer and ramapp packet
// engines.
package errno

import "fmt"

// Errno is a fixed negative result code, optionally wrapping the
// lower-level cause that produced it.
type Errno struct {
	code int32
	msg  string
	err  error
}

// New returns an Errno with the given wire code and name, no wrapped
// cause.
func New(code int32, msg string) Errno {
	return Errno{code: code, msg: msg}
}

func (e Errno) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.msg, e.err.Error())
	}
	return e.msg
}

func (e Errno) Unwrap() error {
	return e.err
}

// Is reports whether target is an Errno with the same code, so
// errors.Is matches a sentinel even after Wrap has attached a cause.
func (e Errno) Is(target error) bool {
	t, ok := target.(Errno)
	return ok && t.code == e.code
}

// Code returns the negative wire value to place in a failure frame.
func (e Errno) Code() int32 {
	return -e.code
}

// Wrap returns a copy of e carrying err as its cause, for logging
// context. The wire Code() is unchanged.
func (e Errno) Wrap(err error) Errno {
	e.err = err
	return e
}

// Sentinel codes. Values are pinned by spec.md's literal byte
// scenarios (ENOTCONN=-107, EBADCRC=-1007) and, where a POSIX
// equivalent exists, match its standard numbering so the wire values
// are unsurprising to anyone who has read errno.h.
var (
	EFAILED  = New(1, "failed")
	EINVAL   = New(22, "invalid argument")
	ERANGE   = New(34, "result out of range")
	EPROTO   = New(71, "protocol error")
	EISCONN  = New(106, "already connected")
	ENOTCONN = New(107, "not connected")
	EMSGSIZE = New(90, "message too long")

	ETIMEDOUT = New(110, "timed out")

	// Custom range: no POSIX equivalent.
	EBADCRC     = New(1007, "bad crc")
	ENOCOMMAND  = New(1008, "no such command")
	EFLASHWRITE = New(1009, "flash write verification failed")

	EENTERSERIALEXECUTIONMODE = New(10000, "failed to enter serial execution mode")
	ERAMAPPUPLOAD             = New(10001, "failed to upload ramapp")
)

var byCode = map[int32]Errno{
	EFAILED.code:                   EFAILED,
	EINVAL.code:                    EINVAL,
	ERANGE.code:                    ERANGE,
	EPROTO.code:                    EPROTO,
	EISCONN.code:                   EISCONN,
	ENOTCONN.code:                  ENOTCONN,
	EMSGSIZE.code:                  EMSGSIZE,
	ETIMEDOUT.code:                 ETIMEDOUT,
	EBADCRC.code:                   EBADCRC,
	ENOCOMMAND.code:                ENOCOMMAND,
	EFLASHWRITE.code:               EFLASHWRITE,
	EENTERSERIALEXECUTIONMODE.code: EENTERSERIALEXECUTIONMODE,
	ERAMAPPUPLOAD.code:             ERAMAPPUPLOAD,
}

// FromCode maps a negative wire value (as found in a failure frame's
// payload) back to its Errno. Unknown codes produce an Errno that
// still carries the raw value, so round-tripping never loses
// information.
func FromCode(wire int32) Errno {
	if wire >= 0 {
		return Errno{code: -wire, msg: fmt.Sprintf("unexpected non-negative code %d", wire)}
	}
	code := -wire
	if e, ok := byCode[code]; ok {
		return e
	}
	return Errno{code: code, msg: fmt.Sprintf("error %d", code)}
}
