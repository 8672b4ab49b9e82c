package frame

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"
)

func hexBytes(t *testing.T, s string) []byte {
	t.Helper()
	out, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		t.Fatalf("bad hex literal %q: %v", s, err)
	}
	return out
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for size := 0; size <= MaxPayload; size += 257 {
		payload := make([]byte, size)
		for i := range payload {
			payload[i] = byte(i)
		}
		buf, err := Encode(TypePing, payload)
		if err != nil {
			t.Fatalf("Encode: %v", err)
		}
		typ, n, err := DecodeHeader(buf)
		if err != nil {
			t.Fatalf("DecodeHeader: %v", err)
		}
		if typ != TypePing || n != size {
			t.Fatalf("got type=%d size=%d, want type=%d size=%d", typ, n, TypePing, size)
		}
		if err := VerifyCRC(buf); err != nil {
			t.Fatalf("VerifyCRC: %v", err)
		}
		if got := Payload(buf, n); !bytes.Equal(got, payload) {
			t.Fatalf("Payload mismatch")
		}
	}
}

func TestScenarioPing(t *testing.T) {
	req := hexBytes(t, "00 64 00 00 C3 6B")
	typ, n, err := DecodeHeader(req)
	if err != nil {
		t.Fatalf("DecodeHeader: %v", err)
	}
	if typ != TypePing || n != 0 {
		t.Fatalf("got type=%d size=%d, want ping/0", typ, n)
	}
	if err := VerifyCRC(req); err != nil {
		t.Fatalf("VerifyCRC: %v", err)
	}
	reply, err := Encode(TypePing, nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(reply, req) {
		t.Fatalf("reply = % x, want % x", reply, req)
	}
}

func TestScenarioDisconnectNotConnected(t *testing.T) {
	want := hexBytes(t, "FF FF 00 04 FF FF FF 95 DD 25")
	got := EncodeFailure(-107)
	if !bytes.Equal(got, want) {
		t.Fatalf("EncodeFailure(-107) = % x, want % x", got, want)
	}
}

func TestScenarioUnknownCommand(t *testing.T) {
	req := hexBytes(t, "99 99 00 00 57 80")
	if err := VerifyCRC(req); err != nil {
		t.Fatalf("VerifyCRC: %v", err)
	}
	want := hexBytes(t, "FF FF 00 04 FF FF FF FF 10 C9")
	got := EncodeFailure(-1)
	if !bytes.Equal(got, want) {
		t.Fatalf("EncodeFailure(-1) = % x, want % x", got, want)
	}
}

func TestScenarioBadCRC(t *testing.T) {
	req := hexBytes(t, "99 99 00 00 57 81")
	if err := VerifyCRC(req); err == nil {
		t.Fatalf("VerifyCRC: expected a CRC mismatch")
	}
	want := hexBytes(t, "FF FF 00 04 FF FF FC 11 59 7A")
	got := EncodeFailure(-1007)
	if !bytes.Equal(got, want) {
		t.Fatalf("EncodeFailure(-1007) = % x, want % x", got, want)
	}
}

func TestScenarioVersion(t *testing.T) {
	req := hexBytes(t, "00 6B 00 00 EF 5A")
	if err := VerifyCRC(req); err != nil {
		t.Fatalf("VerifyCRC: %v", err)
	}
	want := hexBytes(t, "00 6B 00 0A 30 2E 31 2E 32 2D 74 65 73 74 2A 75")
	got, err := Encode(TypeVersion, []byte("0.1.2-test"))
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("Encode(version) = % x, want % x", got, want)
	}
}

func TestScenarioRamappPingPassthrough(t *testing.T) {
	req := hexBytes(t, "00 01 00 00 B3 F0")
	typ, n, err := DecodeHeader(req)
	if err != nil {
		t.Fatalf("DecodeHeader: %v", err)
	}
	if typ != RamappPing || n != 0 {
		t.Fatalf("got type=%d size=%d, want ramapp ping/0", typ, n)
	}
	if err := VerifyCRC(req); err != nil {
		t.Fatalf("VerifyCRC: %v", err)
	}
}

func TestFastWriteRequestSize(t *testing.T) {
	if FastWriteRequestSize != 18 {
		t.Fatalf("FastWriteRequestSize = %d, want 18", FastWriteRequestSize)
	}
}

func TestDecodeHeaderOversize(t *testing.T) {
	buf := []byte{0x00, 0x64, 0x04, 0x01} // size = 0x0401 = 1025
	if _, _, err := DecodeHeader(buf); err == nil {
		t.Fatalf("expected EMSGSIZE for oversize payload length")
	}
}
