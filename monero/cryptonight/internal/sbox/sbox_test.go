package sbox

import "testing"

func TestS(t *testing.T) {
	// FIPS-197 Figure 7 spot checks
	for _, v := range []struct{ in, out byte }{
		{0x00, 0x63},
		{0x01, 0x7c},
		{0x53, 0xed},
		{0x9a, 0xb8},
		{0xff, 0x16},
	} {
		if S[v.in] != v.out {
			t.Errorf("S[%#02x] = %#02x, want %#02x", v.in, S[v.in], v.out)
		}
	}
}

func TestMul(t *testing.T) {
	// FIPS-197 4.2
	if r := Mul(0x57, 0x83); r != 0xc1 {
		t.Fatalf("Mul(0x57, 0x83) = %#x, want 0xc1", r)
	}
	if r := Mul(0x57, 0x13); r != 0xfe {
		t.Fatalf("Mul(0x57, 0x13) = %#x, want 0xfe", r)
	}
}
