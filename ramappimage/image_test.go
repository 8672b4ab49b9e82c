package ramappimage

import "testing"

func TestValidateAcceptsFreshImage(t *testing.T) {
	img := New([]uint32{0x10000000, 0x3C020000, 0x00000000})
	if err := img.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidateRejectsTamperedInstructions(t *testing.T) {
	img := New([]uint32{0x10000000, 0x3C020000})
	img.Instructions[0] = 0xDEADBEEF
	if err := img.Validate(); err == nil {
		t.Fatalf("expected a crc mismatch after tampering")
	}
}
