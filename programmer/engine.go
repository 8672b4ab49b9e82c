// Package programmer implements the host-facing packet engine: it
// reads framed commands off the CDC-ACM link, dispatches commands
// numbered 100 and above to local handlers that drive the ICSP/EJTAG
// target controller, and forwards everything below 100 verbatim to
// the uploaded ramapp over the EJTAG fast-data register.
package programmer

import (
	"encoding/binary"

	"github.com/tinkerator/picflash/errno"
	"github.com/tinkerator/picflash/frame"
	"github.com/tinkerator/picflash/hostlink"
	"github.com/tinkerator/picflash/tap"
	"github.com/tinkerator/picflash/target"
)

// Version is reported by the version command.
const Version = "picflash-programmer 1.0"

// Session holds the one piece of state the programmer engine tracks
// across packets: whether connect has succeeded since the last
// disconnect (or boot).
type Session struct {
	connected bool
}

// Connected reports whether a connect command has succeeded without a
// following disconnect.
func (s *Session) Connected() bool {
	return s.connected
}

// Engine is the programmer packet engine. RamappImage is the
// generated ramapp upload instruction sequence (produced by an
// external code generator, out of scope here) that Connect uploads to
// the target before arming fast-data passthrough.
type Engine struct {
	Host        hostlink.Channel
	TAP         tap.Driver
	Target      *target.Controller
	RamappImage []uint32

	session Session
}

// New constructs an Engine whose Target is target.New(d).
func New(host hostlink.Channel, d tap.Driver, ramappImage []uint32) *Engine {
	return &Engine{
		Host:        host,
		TAP:         d,
		Target:      target.New(d),
		RamappImage: ramappImage,
	}
}

// Session exposes the engine's connection state for inspection (by
// the loopback harness, for instance).
func (e *Engine) Session() *Session {
	return &e.session
}

// ProcessPacket reads one request frame from the host and writes its
// reply. It returns an error only when no complete request header
// could be read at all (a genuine read timeout) or when writing the
// reply fails — every other failure, including a malformed declared
// payload size, is reported to the host as a failure frame.
func (e *Engine) ProcessPacket() error {
	req, sizeErr, err := e.readCommandRequest()
	if err != nil {
		return err
	}
	var reply []byte
	if sizeErr != nil {
		reply = frame.EncodeFailure(codeOf(sizeErr))
	} else {
		reply = e.handleCommand(req)
	}
	_, err = e.Host.Write(reply)
	return err
}

// readCommandRequest reads one complete request frame. The third
// return value is non-nil only when the header itself could not be
// read (a genuine timeout) — the only condition allowed to short-
// circuit ProcessPacket without a reply. A header that reads fine but
// declares an oversize payload, or whose payload and CRC do not arrive
// in time, instead yields a nil req and a non-nil sizeErr, letting the
// caller still send a failure frame.
func (e *Engine) readCommandRequest() (req []byte, sizeErr, err error) {
	hdr := make([]byte, frame.HeaderSize)
	if n, err := readFullInto(e.Host, hdr, tap.DefaultTimeout); err != nil || n != len(hdr) {
		return nil, nil, errno.ETIMEDOUT
	}
	_, size, decErr := frame.DecodeHeader(hdr)
	if decErr != nil {
		return nil, decErr, nil
	}
	rest := make([]byte, size+frame.CRCSize)
	if n, err := readFullInto(e.Host, rest, tap.DefaultTimeout); err != nil || n != len(rest) {
		return nil, errno.ETIMEDOUT, nil
	}
	return append(hdr, rest...), nil, nil
}

func (e *Engine) handleCommand(req []byte) []byte {
	typ := binary.BigEndian.Uint16(req[0:2])
	if typ < frame.ProgrammerCmdBase {
		return e.handleRamappForward(req)
	}
	return e.handleProgrammerCommand(typ, req)
}

// handleRamappForward passes a sub-100 command straight through to
// the ramapp and returns its framed reply untouched; the ramapp has
// already CRC-checked and framed it, so there is nothing to re-encode.
func (e *Engine) handleRamappForward(req []byte) []byte {
	if !e.session.connected {
		return frame.EncodeFailure(errno.ENOTCONN.Code())
	}
	reply, err := forwardRamappFrame(e.TAP, req)
	if err != nil {
		return frame.EncodeFailure(codeOf(err))
	}
	return reply
}

func (e *Engine) handleProgrammerCommand(typ uint16, req []byte) []byte {
	if err := frame.VerifyCRC(req); err != nil {
		return frame.EncodeFailure(codeOf(err))
	}
	_, size, _ := frame.DecodeHeader(req)
	payload := frame.Payload(req, size)

	var (
		respPayload []byte
		rawReply    []byte
		err         error
	)

	switch typ {
	case frame.TypePing:
		// no-op; empty success reply.
	case frame.TypeConnect:
		err = e.handleConnect()
	case frame.TypeDisconnect:
		err = e.handleDisconnect()
	case frame.TypeReset:
		err = e.handleReset()
	case frame.TypeDeviceStatus:
		respPayload, err = e.handleDeviceStatus()
	case frame.TypeChipErase:
		err = e.handleChipErase()
	case frame.TypeFastWrite:
		rawReply, err = e.handleFastWrite(payload, req)
	case frame.TypeVersion:
		respPayload = []byte(Version)
	default:
		err = errno.EFAILED
	}

	if rawReply != nil {
		return rawReply
	}
	if err != nil {
		return frame.EncodeFailure(codeOf(err))
	}
	encoded, encErr := frame.Encode(typ, respPayload)
	if encErr != nil {
		return frame.EncodeFailure(codeOf(encErr))
	}
	return encoded
}
