package main

import "github.com/tinkerator/picflash/ramapp"

// fastDataBridge wires a programmer.Engine's tap.Driver fast-data
// calls to a ramapp.Engine running in the same process: words written
// by the programmer queue up for the ramapp to read, and the ramapp's
// reply queues up for the programmer to read back. It lets the
// loopback harness exercise the full protocol, connect through
// fast-write, without real ICSP hardware.
type fastDataBridge struct {
	toRamapp   []uint32
	fromRamapp []uint32
	ramapp     *ramapp.Engine
}

func newFastDataBridge(r *ramapp.Engine) *fastDataBridge {
	return &fastDataBridge{ramapp: r}
}

// Write is called by the programmer side (tap.Driver.FastDataWrite).
func (b *fastDataBridge) Write(word uint32) {
	b.toRamapp = append(b.toRamapp, word)
}

// Read is called by the programmer side (tap.Driver.FastDataRead). The
// first read after a batch of writes runs the ramapp's packet engine
// to completion, producing the words Read then drains.
func (b *fastDataBridge) Read() uint32 {
	if len(b.fromRamapp) == 0 {
		b.ramapp.ProcessPacket()
	}
	if len(b.fromRamapp) == 0 {
		return 0
	}
	v := b.fromRamapp[0]
	b.fromRamapp = b.fromRamapp[1:]
	return v
}

// register adapts the programmer-facing side of the bridge into the
// fastdata.Register the ramapp engine reads requests from and writes
// replies to.
type register struct {
	b *fastDataBridge
}

func (r register) Read() uint32 {
	if len(r.b.toRamapp) == 0 {
		return 0
	}
	v := r.b.toRamapp[0]
	r.b.toRamapp = r.b.toRamapp[1:]
	return v
}

func (r register) Write(word uint32) {
	r.b.fromRamapp = append(r.b.fromRamapp, word)
}
