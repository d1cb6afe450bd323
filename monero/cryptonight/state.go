package cryptonight

import (
	"encoding/binary"
	"math/bits"
	"unsafe"

	"git.gammaspectra.live/P2Pool/cnminer/types"
)

// ScratchpadSize 2 MiB scratchpad for memhard loop, large enough for every family
const ScratchpadSize = 2 * 1024 * 1024

// stateAlign alignment of State, keeps the scratchpad on a cache line
const stateAlign = 64

// Variant CryptoNight sub-variant applied inside a kernel
type Variant uint8

const (
	V0 Variant = iota
	V1
)

func (v Variant) String() string {
	switch v {
	case V0:
		return "v0"
	case V1:
		return "v1"
	default:
		return "unknown"
	}
}

// State Cryptonight state, to reuse between hashes. Not thread-safe.
// Holds no pointers, so it can live in a manually aligned byte allocation.
type State struct {
	scratchpad  [ScratchpadSize / 8]uint64
	keccakState [25]uint64
	_           [8]byte // padded to keep 16-byte align (0x2000d0)

	blocks    [16]uint64            // temporary chunk of data
	roundKeys [aesRounds * 4]uint32 // 10 rounds, instead of 14 as in standard AES-256
}

// NewState allocates a State aligned to 64 bytes
func NewState() *State {
	buf := make([]byte, unsafe.Sizeof(State{})+stateAlign)
	// #nosec G103 -- address only used to compute the aligned offset
	offset := (stateAlign - uintptr(unsafe.Pointer(&buf[0]))%stateAlign) % stateAlign
	// #nosec G103 -- State contains no pointers and fits in buf past offset
	return (*State)(unsafe.Pointer(&buf[offset]))
}

// Aligned reports whether the scratchpad starts on a 16-byte boundary, as required by AES instructions
func (cn *State) Aligned() bool {
	// #nosec G103
	return uintptr(unsafe.Pointer(&cn.scratchpad))%16 == 0
}

// Reset clears the state
func (cn *State) Reset() {
	clear(cn.scratchpad[:])
	clear(cn.keccakState[:])
	clear(cn.blocks[:])
	clear(cn.roundKeys[:])
}

// Sum Computes the CryptoNight hash of data into out, using the family and AES mode of params.
// Keccak 1600 fills a 200 byte state from data, which seeds a scratchpad through 10 rounds of AES per entry.
// The memory-hard loop then mixes the scratchpad with single AES rounds and a 64 bit multiply, the scratchpad
// is folded back into the state, and one of BLAKE-256, Groestl-256, JH-256 or Skein-256 picked by the first
// state byte produces the output.
//
// V1 requires at least 43 bytes of data.
func (cn *State) Sum(data []byte, params Params, variant Variant, out *types.Hash) {
	if !params.Valid() {
		panic("cryptonight: invalid params")
	}

	aes := aesFor(params.SoftAES)

	var (
		// used in memory hard
		a, b, c, d [2]uint64

		addr uint32

		// for variant 1
		v1Tweak uint64
	)

	mask := uint64(params.Mask)
	words := int(params.Memory / 8)
	scratchpad := cn.scratchpad[:words]

	// CNS008 sec.3 Scratchpad Initialization
	keccak1600(data, &cn.keccakState)

	if variant == V1 {
		if len(data) < 43 {
			panic("cryptonight: variant 1 requires at least 43 bytes of input")
		}
		v1Tweak = cn.keccakState[24] ^ binary.LittleEndian.Uint64(data[35:43])
	}

	aes_expand_key((*[4]uint64)(cn.keccakState[:4]), &cn.roundKeys)
	copy(cn.blocks[:], cn.keccakState[8:24])
	for i := 0; i < words; i += 16 {
		aes.rounds(&cn.blocks, &cn.roundKeys)
		copy(scratchpad[i:i+16], cn.blocks[:])
	}

	// CNS008 sec.4 Memory-Hard Loop
	a[0] = cn.keccakState[0] ^ cn.keccakState[4]
	a[1] = cn.keccakState[1] ^ cn.keccakState[5]
	b[0] = cn.keccakState[2] ^ cn.keccakState[6]
	b[1] = cn.keccakState[3] ^ cn.keccakState[7]

	for range params.Iterations {
		addr = uint32((a[0] & mask) >> 3)
		aes.singleRound(&c, (*[2]uint64)(scratchpad[addr:addr+2]), &a)

		scratchpad[addr+0] = b[0] ^ c[0]
		scratchpad[addr+1] = b[1] ^ c[1]

		if variant == V1 {
			t := scratchpad[addr+1] >> 24
			t = ((^t)&1)<<4 | (((^t)&1)<<4&t)<<1 | (t&32)>>1
			scratchpad[addr+1] ^= t << 24
		}

		addr = uint32((c[0] & mask) >> 3)
		d[0] = scratchpad[addr]
		d[1] = scratchpad[addr+1]

		// byteMul
		hi, lo := bits.Mul64(c[0], d[0])

		// byteAdd
		a[0] += hi
		a[1] += lo

		scratchpad[addr+0] = a[0]
		scratchpad[addr+1] = a[1]

		if variant == V1 {
			scratchpad[addr+1] ^= v1Tweak
		}

		a[0] ^= d[0]
		a[1] ^= d[1]

		b = c
	}

	// CNS008 sec.5 Result Calculation
	aes_expand_key((*[4]uint64)(cn.keccakState[4:8]), &cn.roundKeys)
	copy(cn.blocks[:], cn.keccakState[8:24])
	for i := 0; i < words; i += 16 {
		for j := range cn.blocks {
			cn.blocks[j] ^= scratchpad[i+j]
		}
		aes.rounds(&cn.blocks, &cn.roundKeys)
	}

	copy(cn.keccakState[8:24], cn.blocks[:])
	keccakF1600(&cn.keccakState)

	// #nosec G103 -- checked exact len
	stateBuf := unsafe.Slice((*byte)(unsafe.Pointer(&cn.keccakState)), len(cn.keccakState)*8)
	finalHash(uint8(cn.keccakState[0]), stateBuf, out)
}
