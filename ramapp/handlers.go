package ramapp

import (
	"bytes"
	"encoding/binary"

	"github.com/tinkerator/picflash/crcccitt"
	"github.com/tinkerator/picflash/errno"
	"github.com/tinkerator/picflash/frame"
)

func (e *Engine) handleErase(payload []byte) error {
	addr := binary.BigEndian.Uint32(payload[0:4])
	size := binary.BigEndian.Uint32(payload[4:8])
	return e.Flash.Erase(addr, size)
}

func (e *Engine) handleRead(payload []byte) ([]byte, error) {
	addr := binary.BigEndian.Uint32(payload[0:4])
	size := binary.BigEndian.Uint32(payload[4:8])
	return e.Flash.Read(addr, size)
}

// handleWrite performs a synchronous flash write followed by a
// read-back comparison, matching ramapp.c's handle_write.
func (e *Engine) handleWrite(payload []byte) error {
	addr := binary.BigEndian.Uint32(payload[0:4])
	size := binary.BigEndian.Uint32(payload[4:8])
	data := payload[8 : 8+size]

	n, err := e.Flash.Write(addr, data)
	if err != nil {
		return err
	}
	if n != int(size) {
		return errno.EFLASHWRITE
	}
	back, err := e.Flash.Read(addr, size)
	if err != nil {
		return err
	}
	if !bytes.Equal(back, data) {
		return errno.EFLASHWRITE
	}
	return nil
}

// handleFastWrite drives the double-buffered async row pipeline: row
// k+1 is shifted in over fast-data while row k's async write is in
// flight, then row k's read-back verification happens after the
// AsyncWait that completes its write and before the async write of
// row k+1 is issued. A running CRC-CCITT-FALSE accumulates across rows and is
// compared against the control record's expected value once the last
// row verifies clean.
func (e *Engine) handleFastWrite(payload []byte) error {
	addr := binary.BigEndian.Uint32(payload[0:4])
	size := binary.BigEndian.Uint32(payload[4:8])
	expectedCRC := binary.BigEndian.Uint16(payload[8:10])

	var buf [2][]byte
	buf[0] = fastDataReadBytes(e.FastData, frame.FlashRowSize)
	if err := e.Flash.AsyncWriteRow(addr, buf[0]); err != nil {
		return err
	}
	actualCRC := crcccitt.Checksum(buf[0])

	index := 0
	i := uint32(frame.FlashRowSize)
	for ; i < size; i += frame.FlashRowSize {
		index ^= 1
		buf[index] = fastDataReadBytes(e.FastData, frame.FlashRowSize)

		if err := e.Flash.AsyncWait(); err != nil {
			return err
		}
		prev, err := e.Flash.Read(addr+i-frame.FlashRowSize, frame.FlashRowSize)
		if err != nil {
			return err
		}
		if !bytes.Equal(prev, buf[index^1]) {
			return errno.EFLASHWRITE
		}

		if err := e.Flash.AsyncWriteRow(addr+i, buf[index]); err != nil {
			return err
		}
		actualCRC = crcccitt.Update(actualCRC, buf[index])
	}

	if err := e.Flash.AsyncWait(); err != nil {
		return err
	}
	last, err := e.Flash.Read(addr+i-frame.FlashRowSize, frame.FlashRowSize)
	if err != nil {
		return err
	}
	if !bytes.Equal(last, buf[index]) {
		return errno.EFLASHWRITE
	}

	if actualCRC != expectedCRC {
		return errno.EBADCRC
	}
	return nil
}
