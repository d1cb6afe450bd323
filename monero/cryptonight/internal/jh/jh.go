// Package jh implements the JH-256 hash over 4-bit elements, used as one of the CryptoNight final hashes.
package jh

// Size of a JH-256 digest in bytes
const Size = 32

// BlockSize of JH in bytes
const BlockSize = 64

const rounds = 42

var sboxes = [2][16]byte{
	{9, 0, 4, 11, 13, 12, 3, 15, 1, 10, 2, 6, 7, 5, 8, 14},
	{3, 12, 6, 13, 5, 7, 1, 9, 15, 2, 0, 4, 11, 10, 14, 8},
}

// roundConstantZero fractional part of √2, one nibble per element
var roundConstantZero = [64]byte{
	0x6, 0xa, 0x0, 0x9, 0xe, 0x6, 0x6, 0x7, 0xf, 0x3, 0xb, 0xc, 0xc, 0x9, 0x0, 0x8,
	0xb, 0x2, 0xf, 0xb, 0x1, 0x3, 0x6, 0x6, 0xe, 0xa, 0x9, 0x5, 0x7, 0xd, 0x3, 0xe,
	0x3, 0xa, 0xd, 0xe, 0xc, 0x1, 0x7, 0x5, 0x1, 0x2, 0x7, 0x7, 0x5, 0x0, 0x9, 0x9,
	0xd, 0xa, 0x2, 0xf, 0x5, 0x9, 0x0, 0xb, 0x0, 0x6, 0x6, 0x7, 0x3, 0x2, 0x2, 0xa,
}

type state struct {
	h             [128]byte
	a             [256]byte
	roundConstant [64]byte
}

// linear MDS transform over two 4-bit elements
func linear(a, b *byte) {
	*b ^= ((*a << 1) ^ (*a >> 3) ^ ((*a >> 2) & 2)) & 0xf
	*a ^= ((*b << 1) ^ (*b >> 3) ^ ((*b >> 2) & 2)) & 0xf
}

// permute applies L to pairs, swaps every second pair, then de-interleaves even and odd elements
func permute(tem, out []byte) {
	n := len(tem)
	for i := 0; i < n; i += 2 {
		linear(&tem[i], &tem[i+1])
	}
	for i := 0; i < n; i += 4 {
		tem[i+2], tem[i+3] = tem[i+3], tem[i+2]
	}
	half := n / 2
	for i := range half {
		out[i] = tem[i*2]
		out[i+half] = tem[i*2+1]
	}
	for i := half; i < n; i += 2 {
		out[i], out[i+1] = out[i+1], out[i]
	}
}

func (s *state) round() {
	var tem [256]byte
	for i := range tem {
		bit := (s.roundConstant[i>>2] >> (3 - (i & 3))) & 1
		tem[i] = sboxes[bit][s.a[i]]
	}
	permute(tem[:], s.a[:])
}

func (s *state) updateRoundConstant() {
	var tem [64]byte
	for i := range tem {
		tem[i] = sboxes[0][s.roundConstant[i]]
	}
	permute(tem[:], s.roundConstant[:])
}

func bit(b []byte, i int) byte {
	return (b[i>>3] >> (7 - (i & 7))) & 1
}

// group splits h into 256 4-bit elements, taking one bit from each quarter
func (s *state) group() {
	var tem [256]byte
	for i := range tem {
		tem[i] = bit(s.h[:], i)<<3 | bit(s.h[:], i+256)<<2 | bit(s.h[:], i+512)<<1 | bit(s.h[:], i+768)
	}
	for i := range 128 {
		s.a[i<<1] = tem[i]
		s.a[i<<1+1] = tem[i+128]
	}
}

func (s *state) degroup() {
	var tem [256]byte
	for i := range 128 {
		tem[i] = s.a[i<<1]
		tem[i+128] = s.a[i<<1+1]
	}
	s.h = [128]byte{}
	for i := range tem {
		shift := 7 - (i & 7)
		s.h[i>>3] |= ((tem[i] >> 3) & 1) << shift
		s.h[(i+256)>>3] |= ((tem[i] >> 2) & 1) << shift
		s.h[(i+512)>>3] |= ((tem[i] >> 1) & 1) << shift
		s.h[(i+768)>>3] |= (tem[i] & 1) << shift
	}
}

func (s *state) e8() {
	s.roundConstant = roundConstantZero
	s.group()
	for range rounds {
		s.round()
		s.updateRoundConstant()
	}
	s.degroup()
}

func (s *state) compress(block []byte) {
	for i := range BlockSize {
		s.h[i] ^= block[i]
	}
	s.e8()
	for i := range BlockSize {
		s.h[i+BlockSize] ^= block[i]
	}
}

// Sum256 returns the JH-256 digest of data
func Sum256(data []byte) (out [Size]byte) {
	var s state
	s.h[0] = byte((Size * 8) >> 8)
	s.h[1] = byte((Size * 8) & 0xff)
	var zero [BlockSize]byte
	s.compress(zero[:])

	bitLength := uint64(len(data)) * 8

	for len(data) >= BlockSize {
		s.compress(data[:BlockSize])
		data = data[BlockSize:]
	}

	var block [BlockSize]byte
	if len(data) > 0 {
		// a partial block is always padded on its own, the length goes in an extra block
		copy(block[:], data)
		block[len(data)] = 0x80
		s.compress(block[:])
		block = [BlockSize]byte{}
	} else {
		block[0] = 0x80
	}
	for i := range 8 {
		block[BlockSize-1-i] = byte(bitLength >> (8 * i))
	}
	s.compress(block[:])

	copy(out[:], s.h[len(s.h)-Size:])
	return out
}
