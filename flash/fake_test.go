package flash

import "testing"

func TestEraseWriteRead(t *testing.T) {
	f := NewFake()
	if err := f.Erase(0x1000, 16); err != nil {
		t.Fatalf("Erase: %v", err)
	}
	data, err := f.Read(0x1000, 16)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	for _, b := range data {
		if b != 0xFF {
			t.Fatalf("erased flash not 0xFF: % x", data)
		}
	}

	payload := []byte{1, 2, 3, 4}
	n, err := f.Write(0x1000, payload)
	if err != nil || n != len(payload) {
		t.Fatalf("Write: n=%d err=%v", n, err)
	}
	back, _ := f.Read(0x1000, 4)
	for i, b := range back {
		if b != payload[i] {
			t.Fatalf("Read back = % x, want % x", back, payload)
		}
	}
}

func TestAsyncWriteRowThenWait(t *testing.T) {
	f := NewFake()
	row := make([]byte, 256)
	for i := range row {
		row[i] = byte(i)
	}
	if err := f.AsyncWriteRow(0x2000, row); err != nil {
		t.Fatalf("AsyncWriteRow: %v", err)
	}
	if err := f.AsyncWait(); err != nil {
		t.Fatalf("AsyncWait: %v", err)
	}
	back, _ := f.Read(0x2000, 256)
	for i, b := range back {
		if b != row[i] {
			t.Fatalf("row mismatch at %d: got %d want %d", i, b, row[i])
		}
	}
}

func TestAsyncWriteRowRejectsOverlap(t *testing.T) {
	f := NewFake()
	if err := f.AsyncWriteRow(0, make([]byte, 256)); err != nil {
		t.Fatalf("first AsyncWriteRow: %v", err)
	}
	if err := f.AsyncWriteRow(256, make([]byte, 256)); err == nil {
		t.Fatalf("expected error for overlapping async write")
	}
}

func TestCorruptNextWrite(t *testing.T) {
	f := NewFake()
	f.CorruptNextWrite = true
	row := make([]byte, 256)
	f.AsyncWriteRow(0, row)
	f.AsyncWait()
	back, _ := f.Read(0, 256)
	if back[0] == row[0] {
		t.Fatalf("expected corruption to flip the first byte")
	}
}
