// Package groestl implements the Grøstl-256 hash, used as one of the CryptoNight final hashes.
package groestl

import (
	"encoding/binary"

	"git.gammaspectra.live/P2Pool/cnminer/monero/cryptonight/internal/sbox"
)

const (
	// Size of a Grøstl-256 digest in bytes
	Size = 32

	// BlockSize of Grøstl-256 in bytes
	BlockSize = 64

	rounds = 10
)

// state 8x8 byte matrix, indexed [row][column]. Input bytes fill it column by column.
type state [8][8]byte

func (s *state) load(b []byte) {
	for c := range 8 {
		for r := range 8 {
			s[r][c] = b[c*8+r]
		}
	}
}

func (s *state) xor(o *state) {
	for r := range 8 {
		for c := range 8 {
			s[r][c] ^= o[r][c]
		}
	}
}

// Sum256 returns the Grøstl-256 digest of data
func Sum256(data []byte) (out [Size]byte) {
	var h state
	// IV is the output size in bits as a big endian integer
	h[6][7] = Size * 8 >> 8
	h[7][7] = Size * 8 & 0xff

	var blocks uint64
	for len(data) >= BlockSize {
		h.compress(data[:BlockSize])
		data = data[BlockSize:]
		blocks++
	}

	// 0x80, zeros, then the total block count as 64-bit big endian
	var pad [BlockSize * 2]byte
	n := copy(pad[:], data)
	pad[n] = 0x80
	padLen := BlockSize
	if n > BlockSize-9 {
		padLen = BlockSize * 2
	}
	blocks += uint64(padLen / BlockSize)
	binary.BigEndian.PutUint64(pad[padLen-8:padLen], blocks)
	for off := 0; off < padLen; off += BlockSize {
		h.compress(pad[off : off+BlockSize])
	}

	// Ω(h) = trunc(P(h) ⊕ h)
	x := h
	x.permute(false)
	h.xor(&x)

	for c := 4; c < 8; c++ {
		for r := range 8 {
			out[(c-4)*8+r] = h[r][c]
		}
	}
	return out
}

// compress f(h, m) = P(h ⊕ m) ⊕ Q(m) ⊕ h
func (s *state) compress(block []byte) {
	var m, hm state
	m.load(block)
	hm = *s
	hm.xor(&m)

	hm.permute(false)
	m.permute(true)

	s.xor(&hm)
	s.xor(&m)
}

func (s *state) permute(q bool) {
	for r := range rounds {
		s.addRoundConstant(byte(r), q)
		s.subBytes()
		s.shiftBytes(q)
		s.mixBytes()
	}
}

func (s *state) addRoundConstant(r byte, q bool) {
	for c := range 8 {
		if q {
			for row := range 7 {
				s[row][c] ^= 0xff
			}
			s[7][c] ^= 0xff ^ byte(c<<4) ^ r
		} else {
			s[0][c] ^= byte(c<<4) ^ r
		}
	}
}

func (s *state) subBytes() {
	for r := range 8 {
		for c := range 8 {
			s[r][c] = sbox.S[s[r][c]]
		}
	}
}

var shiftP = [8]int{0, 1, 2, 3, 4, 5, 6, 7}
var shiftQ = [8]int{1, 3, 5, 7, 0, 2, 4, 6}

// shiftBytes Row r moves left by shift[r] columns
func (s *state) shiftBytes(q bool) {
	shift := &shiftP
	if q {
		shift = &shiftQ
	}
	for r := range 8 {
		row := s[r]
		for c := range 8 {
			s[r][c] = row[(c+shift[r])%8]
		}
	}
}

func mul2(b byte) byte { return (b << 1) ^ (0x1b * (b >> 7)) }
func mul3(b byte) byte { return mul2(b) ^ b }
func mul4(b byte) byte { return mul2(mul2(b)) }
func mul5(b byte) byte { return mul4(b) ^ b }
func mul7(b byte) byte { return mul4(b) ^ mul2(b) ^ b }

// mixBytes multiplies each column by circ(02, 02, 03, 04, 05, 03, 05, 07)
func (s *state) mixBytes() {
	var col [8]byte
	for c := range 8 {
		for r := range 8 {
			col[r] = s[r][c]
		}
		for r := range 8 {
			s[r][c] = mul2(col[r]) ^
				mul2(col[(r+1)%8]) ^
				mul3(col[(r+2)%8]) ^
				mul4(col[(r+3)%8]) ^
				mul5(col[(r+4)%8]) ^
				mul3(col[(r+5)%8]) ^
				mul5(col[(r+6)%8]) ^
				mul7(col[(r+7)%8])
		}
	}
}
