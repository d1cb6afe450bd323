package cryptonight

import (
	"math/bits"
	"unsafe"

	"git.gammaspectra.live/P2Pool/cnminer/monero/cryptonight/internal/sbox"
)

const aesRounds = 10

var te0, te1, te2, te3 = &sbox.EncLut[0], &sbox.EncLut[1], &sbox.EncLut[2], &sbox.EncLut[3]

// soft_aesenc One AESENC round (ShiftRows, SubBytes, MixColumns, AddRoundKey) on little endian words
//
//go:nosplit
func soft_aesenc(state *[4]uint32, key *[4]uint32) {
	s0 := state[0]
	s1 := state[1]
	s2 := state[2]
	s3 := state[3]

	state[0] = key[0] ^ te0[uint8(s0)] ^ te1[uint8(s1>>8)] ^ te2[uint8(s2>>16)] ^ te3[uint8(s3>>24)]
	state[1] = key[1] ^ te0[uint8(s1)] ^ te1[uint8(s2>>8)] ^ te2[uint8(s3>>16)] ^ te3[uint8(s0>>24)]
	state[2] = key[2] ^ te0[uint8(s2)] ^ te1[uint8(s3>>8)] ^ te2[uint8(s0>>16)] ^ te3[uint8(s1>>24)]
	state[3] = key[3] ^ te0[uint8(s3)] ^ te1[uint8(s0>>8)] ^ te2[uint8(s1>>16)] ^ te3[uint8(s2>>24)]
}

// Powers of x mod poly in GF(2).
var powx = [16]byte{
	0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80,
	0x1b, 0x36, 0x6c, 0xd8, 0xab, 0x4d, 0x9a, 0x2f,
}

// Apply the AES S-box to each byte in w.
func subw(w uint32) uint32 {
	return uint32(sbox.S[w>>24])<<24 |
		uint32(sbox.S[w>>16&0xff])<<16 |
		uint32(sbox.S[w>>8&0xff])<<8 |
		uint32(sbox.S[w&0xff])
}

func rotw(w uint32) uint32 { return w<<8 | w>>24 }

// aes_expand_key Expands a 256-bit key into the first 10 round keys of the AES-256 schedule.
// Output words are little endian, same layout the AESENC instruction reads from memory.
func aes_expand_key(key *[4]uint64, roundKeys *[aesRounds * 4]uint32) {
	for i := range 4 {
		roundKeys[2*i] = bits.ReverseBytes32(uint32(key[i]))
		roundKeys[2*i+1] = bits.ReverseBytes32(uint32(key[i] >> 32))
	}

	for i := 8; i < len(roundKeys); i++ {
		t := roundKeys[i-1]
		if i%8 == 0 {
			t = subw(rotw(t)) ^ (uint32(powx[i/8-1]) << 24)
		} else if i%8 == 4 {
			t = subw(t)
		}
		roundKeys[i] = roundKeys[i-8] ^ t
	}

	for i := range roundKeys {
		roundKeys[i] = bits.ReverseBytes32(roundKeys[i])
	}
}

// aes_rounds_generic Applies all round keys to each of the 8 blocks
func aes_rounds_generic(blocks *[16]uint64, roundKeys *[aesRounds * 4]uint32) {
	// #nosec G103 -- 8 blocks of 4 words
	state32 := (*[8][4]uint32)(unsafe.Pointer(blocks))
	// #nosec G103 -- 10 keys of 4 words
	rkey32 := (*[aesRounds][4]uint32)(unsafe.Pointer(roundKeys))

	for i := range state32 {
		for r := range aesRounds {
			soft_aesenc(&state32[i], &rkey32[r])
		}
	}
}

func aes_single_round_generic(dst, src *[2]uint64, roundKey *[2]uint64) {
	*dst = *src
	// #nosec G103
	soft_aesenc((*[4]uint32)(unsafe.Pointer(dst)), (*[4]uint32)(unsafe.Pointer(roundKey)))
}

type aesImpl struct {
	rounds      func(blocks *[16]uint64, roundKeys *[aesRounds * 4]uint32)
	singleRound func(dst, src *[2]uint64, roundKey *[2]uint64)
}

var aesSoftware = aesImpl{
	rounds:      aes_rounds_generic,
	singleRound: aes_single_round_generic,
}

// aesFor Picks the round implementation for the requested mode. Hardware falls back to software when unavailable.
func aesFor(soft bool) *aesImpl {
	if !soft && hasHardwareAES {
		return &aesHardware
	}
	return &aesSoftware
}

// HasHardwareAES reports whether kernels requesting hardware AES run on CPU instructions.
// When false they compute the same digests through the software tables.
func HasHardwareAES() bool {
	return hasHardwareAES
}
