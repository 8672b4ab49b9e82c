package programmer

import (
	"time"

	"github.com/tinkerator/picflash/errno"
	"github.com/tinkerator/picflash/hostlink"
)

// readFullInto fills buf completely from ch, retrying ReadTimeout
// calls until either buf is full or the overall deadline (timeout from
// the first call) elapses.
func readFullInto(ch hostlink.Channel, buf []byte, timeout time.Duration) (int, error) {
	got := 0
	deadline := time.Now().Add(timeout)
	for got < len(buf) {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return got, errno.ETIMEDOUT
		}
		n, err := ch.ReadTimeout(buf[got:], remaining)
		if err != nil {
			return got, err
		}
		got += n
	}
	return got, nil
}
