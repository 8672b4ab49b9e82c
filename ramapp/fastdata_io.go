package ramapp

import "github.com/tinkerator/picflash/fastdata"

// fastDataReadBytes reads ceil(n/4) words from reg and returns the
// first n bytes, big-endian unpacked. Mirrors ramapp.c's
// fast_data_read.
func fastDataReadBytes(reg fastdata.Register, n int) []byte {
	words := (n + 3) / 4
	out := make([]byte, 0, words*4)
	for i := 0; i < words; i++ {
		word := reg.Read()
		out = append(out,
			byte(word>>24), byte(word>>16), byte(word>>8), byte(word))
	}
	return out[:n]
}

// fastDataWriteBytes packs buf into 32-bit big-endian words and writes
// each to reg, zero-padding the final partial word. Mirrors
// ramapp.c's fast_data_write.
func fastDataWriteBytes(reg fastdata.Register, buf []byte) {
	n := (len(buf) + 3) / 4
	for i := 0; i < n; i++ {
		var word uint32
		for b := 0; b < 4; b++ {
			idx := 4*i + b
			var v byte
			if idx < len(buf) {
				v = buf[idx]
			}
			word |= uint32(v) << uint(8*(3-b))
		}
		reg.Write(word)
	}
}
