package artifact

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestDecodeBareBase64(t *testing.T) {
	raw := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
	got, err := Decode(base64.StdEncoding.EncodeToString(raw))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Fatalf("expected %v, got %v", raw, got)
	}
}

func TestDecodeDataURL(t *testing.T) {
	raw := []byte("scanned document bytes")
	input := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(raw)
	got, err := Decode(input)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(got, raw) {
		t.Fatalf("expected %q, got %q", raw, got)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "data:image/png;base64,", "not$$base64!!", "data:image/png;base64,@@@"} {
		if _, err := Decode(input); !errors.Is(err, ErrMalformed) {
			t.Fatalf("Decode(%q): expected ErrMalformed, got %v", input, err)
		}
	}
}

func TestEncodeIsFixedPNG(t *testing.T) {
	out := Encode([]byte("jpeg bytes actually"))
	if !strings.HasPrefix(out, "data:image/png;base64,") {
		t.Fatalf("expected fixed PNG data URL prefix, got %q", out)
	}
}

// Decode(Encode(Decode(x))) must equal Decode(x) for any valid input.
func TestRoundTripStability(t *testing.T) {
	raw := []byte{0x00, 0x01, 0xfe, 0xff, 'a', 'b'}
	first, err := Decode(base64.StdEncoding.EncodeToString(raw))
	if err != nil {
		t.Fatalf("first Decode failed: %v", err)
	}
	second, err := Decode(Encode(first))
	if err != nil {
		t.Fatalf("second Decode failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("round trip changed bytes: %v vs %v", first, second)
	}
}
