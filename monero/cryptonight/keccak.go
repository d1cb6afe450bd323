package cryptonight

import (
	"encoding/binary"
	"math/bits"
)

// keccakRate Keccak-256 sponge rate, (1600 - 2*256) / 8
const keccakRate = 136

var keccakRoundConstants = [24]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808A, 0x8000000080008000,
	0x000000000000808B, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008A, 0x0000000000000088, 0x0000000080008009, 0x000000008000000A,
	0x000000008000808B, 0x800000000000008B, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800A, 0x800000008000000A,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

var keccakRotations = [24]int{1, 3, 6, 10, 15, 21, 28, 36, 45, 55, 2, 14, 27, 41, 56, 8, 25, 43, 62, 18, 39, 61, 20, 44}

var keccakPiLanes = [24]int{10, 7, 11, 17, 18, 3, 5, 16, 8, 21, 24, 4, 15, 23, 19, 13, 12, 2, 20, 14, 22, 9, 6, 1}

// keccakF1600 Keccak-f[1600] permutation, 24 rounds
func keccakF1600(a *[25]uint64) {
	var bc [5]uint64

	for round := range 24 {
		// theta
		for i := range 5 {
			bc[i] = a[i] ^ a[i+5] ^ a[i+10] ^ a[i+15] ^ a[i+20]
		}
		for i := range 5 {
			t := bc[(i+4)%5] ^ bits.RotateLeft64(bc[(i+1)%5], 1)
			for j := 0; j < 25; j += 5 {
				a[j+i] ^= t
			}
		}

		// rho, pi
		t := a[1]
		for i := range 24 {
			j := keccakPiLanes[i]
			bc[0] = a[j]
			a[j] = bits.RotateLeft64(t, keccakRotations[i])
			t = bc[0]
		}

		// chi
		for j := 0; j < 25; j += 5 {
			copy(bc[:], a[j:j+5])
			for i := range 5 {
				a[j+i] ^= (^bc[(i+1)%5]) & bc[(i+2)%5]
			}
		}

		// iota
		a[0] ^= keccakRoundConstants[round]
	}
}

// keccak1600 Absorbs data with Keccak-256 padding and leaves the whole 200 byte state in st
func keccak1600(data []byte, st *[25]uint64) {
	*st = [25]uint64{}

	for len(data) >= keccakRate {
		for i := range keccakRate / 8 {
			st[i] ^= binary.LittleEndian.Uint64(data[i*8:])
		}
		keccakF1600(st)
		data = data[keccakRate:]
	}

	var last [keccakRate]byte
	copy(last[:], data)
	last[len(data)] = 0x01
	last[keccakRate-1] |= 0x80

	for i := range keccakRate / 8 {
		st[i] ^= binary.LittleEndian.Uint64(last[i*8:])
	}
	keccakF1600(st)
}
