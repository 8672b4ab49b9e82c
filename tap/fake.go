package tap

import "fmt"

// Fake is a software Driver used by tests and the loopback harness in
// place of real bit-banged ICSP hardware. It records every call it
// receives and serves canned responses queued by the test, matching
// the assert/queue shape of the harness mocks the original C test
// suite used (see original_source/ramapp/tst/main.c).
type Fake struct {
	Calls []string

	started bool

	data32Queue []uint32
	xfer8Queue  []byte

	fastDataOut []uint32 // words queued for the next FastDataRead calls
	fastDataIn  []uint32 // words captured by FastDataWrite calls
}

func (f *Fake) log(format string, args ...interface{}) {
	f.Calls = append(f.Calls, fmt.Sprintf(format, args...))
}

func (f *Fake) Start() error {
	f.started = true
	f.log("Start()")
	return nil
}

func (f *Fake) Stop() error {
	f.started = false
	f.log("Stop()")
	return nil
}

func (f *Fake) SendCommand(cmd byte) error {
	f.log("SendCommand(0x%02x)", cmd)
	return nil
}

// QueueData32 queues the next N responses XferData32 will return.
func (f *Fake) QueueData32(values ...uint32) {
	f.data32Queue = append(f.data32Queue, values...)
}

func (f *Fake) XferData32(request uint32) (uint32, error) {
	f.log("XferData32(0x%08x)", request)
	if len(f.data32Queue) == 0 {
		return 0, nil
	}
	v := f.data32Queue[0]
	f.data32Queue = f.data32Queue[1:]
	return v, nil
}

// QueueXfer8 queues the next N responses DataTransfer8 will return.
func (f *Fake) QueueXfer8(values ...byte) {
	f.xfer8Queue = append(f.xfer8Queue, values...)
}

func (f *Fake) DataTransfer8(cmd byte) (byte, error) {
	f.log("DataTransfer8(0x%02x)", cmd)
	if len(f.xfer8Queue) == 0 {
		return 0, nil
	}
	v := f.xfer8Queue[0]
	f.xfer8Queue = f.xfer8Queue[1:]
	return v, nil
}

func (f *Fake) DataWrite8(cmd byte) error {
	f.log("DataWrite8(0x%02x)", cmd)
	return nil
}

// QueueFastData arranges for the next calls to FastDataRead to return
// these words in order, simulating bytes written by a ramapp reply.
func (f *Fake) QueueFastData(words ...uint32) {
	f.fastDataOut = append(f.fastDataOut, words...)
}

func (f *Fake) FastDataRead() (uint32, error) {
	if len(f.fastDataOut) == 0 {
		return 0, fmt.Errorf("tap: fake fast-data underrun")
	}
	v := f.fastDataOut[0]
	f.fastDataOut = f.fastDataOut[1:]
	return v, nil
}

func (f *Fake) FastDataWrite(data uint32) error {
	f.fastDataIn = append(f.fastDataIn, data)
	return nil
}

// FastDataWritten returns and clears the words captured by
// FastDataWrite, for assertions.
func (f *Fake) FastDataWritten() []uint32 {
	out := f.fastDataIn
	f.fastDataIn = nil
	return out
}
