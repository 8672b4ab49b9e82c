// Command picflash-loopback pairs a programmer.Engine and a
// ramapp.Engine over an in-process fast-data bridge, letting a
// developer exercise the framed protocol end-to-end without real
// ICSP hardware attached: connect, forward a ramapp ping, disconnect.
// Pass --tty to bridge the programmer's host side to a real CDC-ACM
// serial port instead of a scripted in-memory sequence, and drive it
// from an external client.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"zappem.net/pub/debug/xxd"

	"github.com/tinkerator/picflash/flash"
	"github.com/tinkerator/picflash/frame"
	"github.com/tinkerator/picflash/hostlink"
	"github.com/tinkerator/picflash/programmer"
	"github.com/tinkerator/picflash/ramapp"
	"github.com/tinkerator/picflash/ramappimage"
	"github.com/tinkerator/picflash/tap"
)

var (
	tty     = flag.String("tty", "", "tty to bridge the programmer's host side to, instead of a scripted sequence")
	debug   = flag.Bool("debug", false, "hex dump every request and reply frame")
	pings   = flag.Int("pings", 1, "number of ramapp ping round trips to forward after connecting")
	flashSz = flag.Int("flash-size", 256*1024, "size in bytes of the simulated target flash")
)

func main() {
	flag.Parse()

	f := flash.NewFake()
	if err := f.Erase(0, uint32(*flashSz)); err != nil {
		log.Fatalf("failed to prime simulated flash: %v", err)
	}

	bridge := newFastDataBridge(nil)
	rampEngine := ramapp.New(register{bridge}, f)
	bridge.ramapp = rampEngine

	d := &loopbackDriver{Fake: &tap.Fake{}, bridge: bridge}

	image := ramappimage.New(nil)
	if err := image.Validate(); err != nil {
		log.Fatalf("ramapp image failed CRC validation: %v", err)
	}

	var host hostlink.Channel
	var fake *hostlink.Fake
	if *tty != "" {
		s, err := hostlink.Open(*tty)
		if err != nil {
			log.Fatalf("failed to open %q: %v", *tty, err)
		}
		defer s.Close()
		host = s
	} else {
		fake = hostlink.NewFake()
		host = fake
	}

	progEngine := programmer.New(host, d, image.Instructions)

	if fake == nil {
		for {
			if err := progEngine.ProcessPacket(); err != nil {
				log.Fatalf("ProcessPacket: %v", err)
			}
		}
	}

	// Queue the TAP responses the connect sequence needs: a status
	// byte with CPS set, then one PrAcc-set poll for the (empty)
	// ramapp image's final start-the-application instruction.
	d.QueueXfer8(tap.Reverse8(1 << tap.StatusBitCPS))
	d.QueueData32(tap.Reverse32(1 << tap.ControlBitPrAcc))

	run(progEngine, fake, frame.TypeConnect, nil)
	for i := 0; i < *pings; i++ {
		run(progEngine, fake, frame.RamappPing, nil)
	}
	run(progEngine, fake, frame.TypeDisconnect, nil)
}

func run(p *programmer.Engine, fake *hostlink.Fake, typ uint16, payload []byte) {
	req, err := frame.Encode(typ, payload)
	if err != nil {
		log.Fatalf("Encode(%d): %v", typ, err)
	}
	fake.Pipe.Feed(req)
	fake.Out = &hostlink.Written{}
	if err := p.ProcessPacket(); err != nil {
		log.Fatalf("ProcessPacket(%d): %v", typ, err)
	}
	reply := fake.Out.Bytes()
	if *debug {
		fmt.Fprintf(os.Stderr, "command %d request:\n", typ)
		xxd.Print(0, req)
		fmt.Fprintf(os.Stderr, "command %d reply:\n", typ)
		xxd.Print(0, reply)
	}
}
