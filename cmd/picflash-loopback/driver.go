package main

import "github.com/tinkerator/picflash/tap"

// loopbackDriver is a tap.Driver whose TAP-level calls are served by
// tap.Fake (pre-queued per the in-process connect sequence this
// harness runs) but whose fast-data calls are routed through a
// fastDataBridge to a real ramapp.Engine instance.
type loopbackDriver struct {
	*tap.Fake
	bridge *fastDataBridge
}

func (d *loopbackDriver) FastDataRead() (uint32, error) {
	return d.bridge.Read(), nil
}

func (d *loopbackDriver) FastDataWrite(word uint32) error {
	d.bridge.Write(word)
	return nil
}
