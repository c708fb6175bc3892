package common

import (
	"encoding/hex"
	"strings"
	"testing"
)

func TestMakeRandHexString_LengthAndHex(t *testing.T) {
	const n = 16
	s, err := MakeRandHexString(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != n*2 {
		t.Fatalf("expected hex length %d, got %d", n*2, len(s))
	}
	if _, err := hex.DecodeString(s); err != nil {
		t.Fatalf("string is not valid hex: %v", err)
	}
}

func TestMakeRandHexString_ZeroSize(t *testing.T) {
	s, err := MakeRandHexString(0)
	if err != nil {
		t.Fatalf("unexpected error for size=0: %v", err)
	}
	if s != "" {
		t.Fatalf("expected empty string for size=0, got %q", s)
	}
}

func TestGenerateRandByteArray_Size(t *testing.T) {
	b := GenerateRandByteArray(32)
	if len(b) != 32 {
		t.Fatalf("expected 32 bytes, got %d", len(b))
	}
}

func TestMakeMockCID_Shape(t *testing.T) {
	cid := MakeMockCID()
	if !strings.HasPrefix(cid, "Qm") {
		t.Fatalf("expected Qm prefix, got %q", cid)
	}
	if len(cid) != 26 {
		t.Fatalf("expected 26 characters, got %d (%q)", len(cid), cid)
	}
	for _, r := range cid[2:] {
		if !strings.ContainsRune(base36Alphabet, r) {
			t.Fatalf("unexpected character %q in %q", r, cid)
		}
	}
}

func TestMakeMockCID_EntropyHint(t *testing.T) {
	a := MakeMockCID()
	b := MakeMockCID()
	if a == b {
		t.Fatalf("two generated handles are identical: %q", a)
	}
}
