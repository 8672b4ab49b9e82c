package fastdata

import "testing"

func TestFakeReadWrite(t *testing.T) {
	var f Fake
	if f.Read() != 0 {
		t.Fatalf("zero value should read 0")
	}
	f.Write(0xDEADBEEF)
	if f.Read() != 0xDEADBEEF {
		t.Fatalf("Read() = 0x%x, want 0xDEADBEEF", f.Read())
	}
}
