// Package ramapp implements the target-side packet engine: the code
// uploaded into target RAM that reads framed commands over the EJTAG
// fast-data register and dispatches them to the flash controller,
// including the double-buffered fast-write pipeline.
package ramapp

import (
	"encoding/binary"

	"github.com/tinkerator/picflash/errno"
	"github.com/tinkerator/picflash/fastdata"
	"github.com/tinkerator/picflash/flash"
	"github.com/tinkerator/picflash/frame"
)

// Engine is the ramapp packet engine, built on a flash.Driver and the
// fast-data register it shares with the programmer side.
type Engine struct {
	FastData fastdata.Register
	Flash    flash.Driver
}

func New(reg fastdata.Register, f flash.Driver) *Engine {
	return &Engine{FastData: reg, Flash: f}
}

// ProcessPacket reads one request from the fast-data register,
// dispatches it, writes the framed reply back to the fast-data
// register, and returns the same reply bytes for callers (such as the
// loopback harness) that want to inspect it directly.
func (e *Engine) ProcessPacket() []byte {
	hdr := fastDataReadBytes(e.FastData, frame.HeaderSize)
	typ := binary.BigEndian.Uint16(hdr[0:2])
	size := int(binary.BigEndian.Uint16(hdr[2:4]))

	if size > frame.MaxPayload {
		reply := frame.EncodeFailure(errno.EINVAL.Code())
		fastDataWriteBytes(e.FastData, reply)
		return reply
	}

	rest := fastDataReadBytes(e.FastData, size+frame.CRCSize)
	req := append(hdr, rest...)

	var reply []byte
	if err := frame.VerifyCRC(req); err != nil {
		reply = frame.EncodeFailure(codeOf(err))
	} else {
		payload := frame.Payload(req, size)
		respPayload, err := e.dispatch(typ, payload)
		if err != nil {
			reply = frame.EncodeFailure(codeOf(err))
		} else {
			reply, _ = frame.Encode(typ, respPayload)
		}
	}

	fastDataWriteBytes(e.FastData, reply)
	return reply
}

func (e *Engine) dispatch(typ uint16, payload []byte) ([]byte, error) {
	switch typ {
	case frame.RamappPing:
		return nil, nil
	case frame.RamappErase:
		return nil, e.handleErase(payload)
	case frame.RamappRead:
		return e.handleRead(payload)
	case frame.RamappWrite:
		return nil, e.handleWrite(payload)
	case frame.RamappFastWrite:
		return nil, e.handleFastWrite(payload)
	default:
		return nil, errno.ENOCOMMAND
	}
}

func codeOf(err error) int32 {
	if e, ok := err.(errno.Errno); ok {
		return e.Code()
	}
	return errno.EFAILED.Code()
}
