// Package frame implements the wire codec shared by the programmer
// and ramapp packet engines: a 2-byte big-endian command type, a
// 2-byte big-endian payload length, the payload itself, and a
// trailing 2-byte big-endian CRC-CCITT-FALSE over everything before
// it.
package frame

import (
	"encoding/binary"

	"github.com/tinkerator/picflash/crcccitt"
	"github.com/tinkerator/picflash/errno"
)

const (
	TypeSize   = 2
	SizeSize   = 2
	CRCSize    = 2
	HeaderSize = TypeSize + SizeSize
	MaxPayload = 1024
	MaxFrame   = HeaderSize + MaxPayload + CRCSize
)

// TypeFailed is the command type of a failure frame, -1 as an
// unsigned 16-bit wire value.
const TypeFailed uint16 = 0xFFFF

// Programmer command types (>= 100): forwarded to a local handler
// rather than the target.
const (
	TypePing          uint16 = 100
	TypeConnect       uint16 = 101
	TypeDisconnect    uint16 = 102
	TypeReset         uint16 = 103
	TypeDeviceStatus  uint16 = 104
	TypeChipErase     uint16 = 105
	TypeFastWrite     uint16 = 106
	TypeVersion       uint16 = 107
	ProgrammerCmdBase uint16 = 100
)

// Ramapp-local command types. Those below 100 are forwarded verbatim
// by the programmer's passthrough path; RamappFastWrite shares its
// value with TypeFastWrite and reaches the ramapp through the
// programmer's fast-write handler instead.
const (
	RamappPing      uint16 = 1
	RamappErase     uint16 = 2
	RamappRead      uint16 = 3
	RamappWrite     uint16 = 4
	RamappFastWrite uint16 = 106
)

// FastWriteRequestSize is the total on-wire size, header through CRC
// inclusive, of a fast-write control frame: 4-byte header, a 12-byte
// payload (address, total size, 16-bit CRC, 2 reserved bytes), and a
// 2-byte CRC. See SPEC_FULL.md §9(a) for why 18 (not the historical
// 16) was chosen.
const FastWriteRequestSize = HeaderSize + 12 + CRCSize

// FlashRowSize is the flash programming granularity used by the
// fast-write pipeline on both ends.
const FlashRowSize = 256

// Encode builds a complete success frame: header, payload, and CRC.
// len(payload) must not exceed MaxPayload.
func Encode(typ uint16, payload []byte) ([]byte, error) {
	if len(payload) > MaxPayload {
		return nil, errno.EMSGSIZE
	}
	buf := make([]byte, HeaderSize+len(payload)+CRCSize)
	binary.BigEndian.PutUint16(buf[0:2], typ)
	binary.BigEndian.PutUint16(buf[2:4], uint16(len(payload)))
	copy(buf[HeaderSize:], payload)
	crc := crcccitt.Checksum(buf[:HeaderSize+len(payload)])
	binary.BigEndian.PutUint16(buf[HeaderSize+len(payload):], crc)
	return buf, nil
}

// EncodeFailure builds a failure frame carrying the given wire error
// code (already negative, e.g. errno.Errno.Code()).
func EncodeFailure(code int32) []byte {
	payload := make([]byte, 4)
	binary.BigEndian.PutUint32(payload, uint32(code))
	buf, err := Encode(TypeFailed, payload)
	if err != nil {
		// payload is always exactly 4 bytes; Encode cannot fail here.
		panic(err)
	}
	return buf
}

// DecodeHeader parses the 4-byte header at the start of buf,
// returning the command type and declared payload length. It does
// not touch anything past buf[0:4].
func DecodeHeader(buf []byte) (typ uint16, size int, err error) {
	if len(buf) < HeaderSize {
		return 0, 0, errno.EPROTO
	}
	typ = binary.BigEndian.Uint16(buf[0:2])
	size = int(binary.BigEndian.Uint16(buf[2:4]))
	if size > MaxPayload {
		return 0, 0, errno.EMSGSIZE
	}
	return typ, size, nil
}

// VerifyCRC checks that the trailing two bytes of frame match the
// CRC-CCITT-FALSE of everything before them.
func VerifyCRC(f []byte) error {
	if len(f) < HeaderSize+CRCSize {
		return errno.EPROTO
	}
	body := f[:len(f)-CRCSize]
	want := binary.BigEndian.Uint16(f[len(f)-CRCSize:])
	got := crcccitt.Checksum(body)
	if got != want {
		return errno.EBADCRC
	}
	return nil
}

// Payload returns the payload slice of a decoded frame buf, given the
// payload length previously returned by DecodeHeader.
func Payload(buf []byte, size int) []byte {
	return buf[HeaderSize : HeaderSize+size]
}
