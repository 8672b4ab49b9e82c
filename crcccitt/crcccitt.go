// Package crcccitt computes the CRC-CCITT-FALSE checksum (polynomial
// 0x1021, initial value 0xFFFF, no input/output reflection) used by
// every frame in the programmer/ramapp protocol.
package crcccitt

import "github.com/sigurn/crc16"

// Init is the seed used to start a fresh checksum.
const Init uint16 = 0xFFFF

var table = crc16.MakeTable(crc16.CCITT_FALSE)

// Update folds buf into a running checksum seeded by seed (pass Init
// to start a new checksum). The ramapp fast-write pipeline uses this
// to accumulate a CRC across rows that arrive over several calls.
func Update(seed uint16, buf []byte) uint16 {
	return crc16.Update(seed, buf, table)
}

// Checksum computes the CRC-CCITT-FALSE of buf as a single call.
func Checksum(buf []byte) uint16 {
	return Update(Init, buf)
}
