package programmer

import (
	"encoding/binary"

	"github.com/tinkerator/picflash/errno"
	"github.com/tinkerator/picflash/frame"
	"github.com/tinkerator/picflash/tap"
)

// fastDataWriteBytes packs buf into 32-bit big-endian words and clocks
// each one out through d's fast-data register, zero-padding the final
// partial word. It mirrors programmer.c's ramapp_write.
func fastDataWriteBytes(d tap.Driver, buf []byte) error {
	n := (len(buf) + 3) / 4
	for i := 0; i < n; i++ {
		var word uint32
		for b := 0; b < 4; b++ {
			idx := 4*i + b
			var v byte
			if idx < len(buf) {
				v = buf[idx]
			}
			word |= uint32(v) << uint(8*(3-b))
		}
		if err := d.FastDataWrite(word); err != nil {
			return err
		}
	}
	return nil
}

// fastDataReadBytes reads ceil(n/4) words from d's fast-data register
// and returns the first n bytes, big-endian unpacked. It mirrors
// programmer.c's ramapp_read word-unpacking loop.
func fastDataReadBytes(d tap.Driver, n int) ([]byte, error) {
	words := (n + 3) / 4
	out := make([]byte, 0, words*4)
	for i := 0; i < words; i++ {
		word, err := d.FastDataRead()
		if err != nil {
			return nil, err
		}
		out = append(out,
			byte(word>>24), byte(word>>16), byte(word>>8), byte(word))
	}
	return out[:n], nil
}

// fastDataReadFrame reads one complete framed reply from the ramapp
// over the fast-data register: the 4-byte header first, to learn the
// declared payload size, then the payload and trailing CRC. A declared
// size over frame.MaxPayload is reported as errno.EPROTO here, the code
// programmer.c's ramapp_read uses for a malformed ramapp reply — distinct
// from read_command_request's EMSGSIZE on the host-read side.
func fastDataReadFrame(d tap.Driver) ([]byte, error) {
	hdr, err := fastDataReadBytes(d, frame.HeaderSize)
	if err != nil {
		return nil, err
	}
	size := int(binary.BigEndian.Uint16(hdr[2:4]))
	if size > frame.MaxPayload {
		return nil, errno.EPROTO
	}
	rest, err := fastDataReadBytes(d, size+frame.CRCSize)
	if err != nil {
		return nil, err
	}
	return append(hdr, rest...), nil
}

// forwardRamappFrame sends req (a complete, already-framed request) to
// the ramapp verbatim and returns its complete framed reply.
func forwardRamappFrame(d tap.Driver, req []byte) ([]byte, error) {
	if err := fastDataWriteBytes(d, req); err != nil {
		return nil, err
	}
	return fastDataReadFrame(d)
}

// codeOf extracts the negative wire code to carry in a failure frame
// for any error value, falling back to EFAILED for causes that are not
// already an errno.Errno.
func codeOf(err error) int32 {
	if e, ok := err.(errno.Errno); ok {
		return e.Code()
	}
	return errno.EFAILED.Code()
}
