package programmer

import (
	"encoding/binary"

	"github.com/tinkerator/picflash/errno"
	"github.com/tinkerator/picflash/frame"
	"github.com/tinkerator/picflash/tap"
)

// handleConnect drives the target into serial execution mode, uploads
// the ramapp, and arms fast-data passthrough. Failures in the two
// target.Controller calls are collapsed to the two dedicated
// connect-phase error codes, matching programmer.c's handle_connect;
// any ICSP transport error from SendCommand is returned as-is.
func (e *Engine) handleConnect() error {
	if e.session.connected {
		return errno.EISCONN
	}
	if err := e.TAP.Start(); err != nil {
		return err
	}
	if err := e.Target.EnterSerialExecutionMode(); err != nil {
		return errno.EENTERSERIALEXECUTIONMODE.Wrap(err)
	}
	if err := e.Target.UploadRamapp(e.RamappImage); err != nil {
		return errno.ERAMAPPUPLOAD.Wrap(err)
	}
	if err := e.TAP.SendCommand(tap.ETAPFastData); err != nil {
		return err
	}
	e.session.connected = true
	return nil
}

func (e *Engine) handleDisconnect() error {
	if !e.session.connected {
		return errno.ENOTCONN
	}
	if err := e.TAP.Stop(); err != nil {
		return err
	}
	e.session.connected = false
	return nil
}

// handleReset pulses the ICSP lines to reset the target while it is
// not under active control. The real MCLRn GPIO pulse sequence is
// driven by hardware outside the tap.Driver boundary; here Start/Stop
// stand in for bringing the lines up and releasing them.
func (e *Engine) handleReset() error {
	if e.session.connected {
		return errno.EISCONN
	}
	if err := e.TAP.Start(); err != nil {
		return err
	}
	return e.TAP.Stop()
}

func (e *Engine) handleDeviceStatus() ([]byte, error) {
	if e.session.connected {
		return nil, errno.EISCONN
	}
	if err := e.TAP.Start(); err != nil {
		return nil, err
	}
	defer e.TAP.Stop()
	status, err := e.Target.ReadDeviceStatus()
	if err != nil {
		return nil, err
	}
	return []byte{tap.Reverse8(status)}, nil
}

func (e *Engine) handleChipErase() error {
	if e.session.connected {
		return errno.EISCONN
	}
	if err := e.TAP.Start(); err != nil {
		return err
	}
	defer e.TAP.Stop()
	return e.Target.ChipErase()
}

// handleFastWrite runs the host side of the fast-write pipeline: it
// forwards the control record to the ramapp, then streams
// FlashRowSize-byte chunks read from the host, relaying each straight
// to the ramapp's fast-data register and ACKing the host after each
// chunk lands, finally returning the ramapp's own framed completion
// reply verbatim.
func (e *Engine) handleFastWrite(payload, req []byte) ([]byte, error) {
	if !e.session.connected {
		return nil, errno.ENOTCONN
	}
	if len(req) != frame.FastWriteRequestSize {
		return nil, errno.EMSGSIZE
	}

	total := binary.BigEndian.Uint32(payload[4:8])
	if total == 0 || total%frame.FlashRowSize != 0 {
		return nil, errno.EINVAL
	}

	if err := fastDataWriteBytes(e.TAP, req); err != nil {
		return nil, err
	}

	ack := []byte{0, 0}
	chunk := make([]byte, frame.FlashRowSize)
	for remaining := int(total); remaining > 0; remaining -= frame.FlashRowSize {
		if _, err := readFullInto(e.Host, chunk, tap.DefaultTimeout); err != nil {
			return nil, errno.ETIMEDOUT
		}
		if err := fastDataWriteBytes(e.TAP, chunk); err != nil {
			return nil, err
		}
		if _, err := e.Host.Write(ack); err != nil {
			return nil, err
		}
	}

	return fastDataReadFrame(e.TAP)
}
