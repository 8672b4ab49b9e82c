package crcccitt

import "testing"

func TestCheckVector(t *testing.T) {
	// The standard CRC-CCITT-FALSE check value for the ASCII string
	// "123456789".
	got := Checksum([]byte("123456789"))
	if want := uint16(0x29B1); got != want {
		t.Errorf("Checksum(%q) = 0x%04x, want 0x%04x", "123456789", got, want)
	}
}

func TestUpdateMatchesOneShot(t *testing.T) {
	data := []byte{0x00, 0x64, 0x00, 0x00}

	oneShot := Checksum(data)

	seeded := Update(Init, data[:2])
	seeded = Update(seeded, data[2:])

	if seeded != oneShot {
		t.Errorf("streamed update = 0x%04x, one-shot = 0x%04x", seeded, oneShot)
	}
}

func TestPingFrameCRC(t *testing.T) {
	// spec.md scenario 1: ping request header+payload "00 64 00 00"
	// carries CRC "C3 6B".
	got := Checksum([]byte{0x00, 0x64, 0x00, 0x00})
	if want := uint16(0xC36B); got != want {
		t.Errorf("Checksum(ping header) = 0x%04x, want 0x%04x", got, want)
	}
}
