// Package ramappimage gates the ramapp upload instruction blob with a
// CRC-32 integrity check before target.Controller.UploadRamapp plays
// it onto the wire, the same validate-before-write discipline the
// teacher tool applies to each flash section it writes.
package ramappimage

import (
	"encoding/binary"
	"fmt"

	"zappem.net/pub/debug/xcrc32"
)

// Image is a generated ramapp upload instruction sequence plus the
// CRC-32 of its big-endian byte encoding, computed by whatever
// external tool produced the instructions (out of scope here).
type Image struct {
	Instructions []uint32
	CRC          uint32
}

// bytes returns the big-endian byte encoding of img's instructions,
// the same serialization used to compute and check its CRC.
func (img Image) bytes() []byte {
	out := make([]byte, 4*len(img.Instructions))
	for i, insn := range img.Instructions {
		binary.BigEndian.PutUint32(out[4*i:], insn)
	}
	return out
}

// Validate recomputes the CRC-32 over img's instructions and compares
// it against img.CRC, refusing to let a corrupted or truncated upload
// blob reach the target.
func (img Image) Validate() error {
	_, crc := xcrc32.NewCRC32(img.bytes())
	if crc != img.CRC {
		return fmt.Errorf("ramappimage: crc mismatch: got=0x%08x want=0x%08x", crc, img.CRC)
	}
	return nil
}

// New computes CRC from instructions and returns the resulting Image.
func New(instructions []uint32) Image {
	img := Image{Instructions: instructions}
	_, crc := xcrc32.NewCRC32(img.bytes())
	img.CRC = crc
	return img
}
