// Package tap models the ICSP/EJTAG transport: five-pin TAP
// instructions, 32-bit EJTAG data transfers, and the memory-mapped
// fast-data register, as seen from the programmer side. The actual
// bit-banged GPIO transport is an external collaborator (out of scope
// per the spec) reached only through the Driver interface; this
// package ships a software Fake implementation for tests and the
// loopback harness.
package tap

import (
	"time"

	"github.com/tinkerator/picflash/errno"
)

// Driver is the capability set a concrete ICSP transport must expose.
// Named constants in this package (e.g. MTAPCommand, MCHPStatus) are
// written MSB-first; SendCommand/DataTransfer8/DataWrite8 reverse
// internally before shifting a byte out LSB-first on the wire, so
// callers always pass MSB-first values to those three. The byte
// DataTransfer8 returns is not reversed: it is the raw response as
// shifted back by the target.
// XferData32 is the exception: it performs only the network
// (byte-order) swap called for by the spec, and leaves any bit
// reversal to the caller — XferInstruction below shows the pattern.
type Driver interface {
	// Start begins driving the ICSP lines (PGEC/PGED/MCLR).
	Start() error
	// Stop releases the ICSP lines.
	Stop() error
	// SendCommand clocks out a 5-bit TAP instruction, reversing cmd
	// internally.
	SendCommand(cmd byte) error
	// DataTransfer8 performs a full-duplex 8-bit shift, reversing cmd
	// internally and returning whatever the target shifted back.
	DataTransfer8(cmd byte) (byte, error)
	// DataWrite8 performs an 8-bit shift whose response is discarded.
	DataWrite8(cmd byte) error
	// XferData32 performs a full-duplex, byte-swapped 32-bit transfer
	// through the EJTAG data register. It does not bit-reverse; the
	// caller is responsible for that (see XferInstruction).
	XferData32(request uint32) (uint32, error)
	// FastDataRead/FastDataWrite move one 32-bit word through the
	// EJTAG fast-data register, used to tunnel framed commands to an
	// uploaded ramapp.
	FastDataRead() (uint32, error)
	FastDataWrite(data uint32) error
}

// DefaultTimeout governs both PrAcc polling inside XferInstruction and
// (by the programmer package) host channel reads.
const DefaultTimeout = 500 * time.Millisecond

// XferInstruction runs the fixed EJTAG "deposit and execute one
// instruction" sequence: select ETAP_CONTROL and poll until PrAcc is
// set (bounded by timeout), select ETAP_DATA and deposit insn, then
// restart execution via ETAP_CONTROL.
func XferInstruction(d Driver, insn uint32, timeout time.Duration) error {
	if err := d.SendCommand(ETAPControl); err != nil {
		return err
	}

	deadline := time.Now().Add(timeout)
	for {
		response, err := d.XferData32(Reverse32(ControlPollValue))
		if err != nil {
			return err
		}
		if response&Reverse32(1<<ControlBitPrAcc) != 0 {
			break
		}
		if time.Now().After(deadline) {
			return errno.ETIMEDOUT
		}
	}

	if err := d.SendCommand(ETAPData); err != nil {
		return err
	}
	if _, err := d.XferData32(Reverse32(insn)); err != nil {
		return err
	}
	if err := d.SendCommand(ETAPControl); err != nil {
		return err
	}
	_, err := d.XferData32(Reverse32(ControlStartValue))
	return err
}
