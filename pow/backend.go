package pow

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"git.gammaspectra.live/P2Pool/cnminer/monero/cryptonight"
	"git.gammaspectra.live/P2Pool/cnminer/types"
	"git.gammaspectra.live/P2Pool/cnminer/utils"
)

// Job read-only view of mining work
type Job interface {
	// Blob hashing input, of at least Size bytes
	Blob() []byte
	Size() int
	Variant() cryptonight.Variant
	// Target a result is accepted when its trailing 64-bit word is strictly below it
	Target() uint64
}

// Backend handle to one table kernel. The zero value is absent.
type Backend struct {
	kernel  *Kernel
	index   int
	algo    Algorithm
	variant Variant
}

func (b Backend) Valid() bool {
	return b.kernel != nil
}

func (b Backend) Name() string {
	if b.kernel == nil {
		return "none"
	}
	return b.kernel.Name
}

func (b Backend) Index() int {
	return b.index
}

func (b Backend) Algorithm() Algorithm {
	return b.algo
}

func (b Backend) Variant() Variant {
	return b.variant
}

func (b Backend) Kernel() *Kernel {
	return b.kernel
}

// LowLevelHash runs the kernel on input without acceptance checks
func (b Backend) LowLevelHash(input []byte, output *types.Hash, ctx *Context, sub cryptonight.Variant) {
	if b.kernel == nil {
		panic(ErrNotInitialized)
	}
	b.kernel.sum(input, output, ctx, sub)
}

// Hash computes the job hash into result and reports whether it meets the job target
func (b Backend) Hash(job Job, result *types.Hash, ctx *Context) bool {
	b.LowLevelHash(job.Blob()[:job.Size()], result, ctx, job.Variant())
	return CheckTarget(result, job.Target())
}

// CheckTarget little endian uint64 of bytes 24..32 must be strictly below target
func CheckTarget(hash *types.Hash, target uint64) bool {
	return binary.LittleEndian.Uint64(hash[24:32]) < target
}

// SelfTest validates the kernel against the known answers of algo
func (b Backend) SelfTest(algo Algorithm) bool {
	return b.SelfTestWith(algo, DefaultAllocator) == nil
}

// SelfTestWith SelfTest with an explicit allocator, returning the failure reason
func (b Backend) SelfTestWith(algo Algorithm, allocator ContextAllocator) error {
	if int(algo) >= len(selfTestVectors) {
		return fmt.Errorf("%w: %d", ErrUnknownAlgorithm, algo)
	}
	return b.selfTest(allocator, &selfTestVectors[algo])
}

func (b Backend) selfTest(allocator ContextAllocator, vector *knownAnswer) error {
	if b.kernel == nil {
		return ErrNotInitialized
	}

	ctx := allocator.Acquire()
	defer allocator.Release(ctx)

	var output types.Hash
	for _, sub := range []cryptonight.Variant{cryptonight.V0, cryptonight.V1} {
		expected := vector.Expected(sub)
		b.kernel.sum(selfTestInput[:], &output, ctx, sub)
		if !bytes.Equal(output[:], expected[:]) {
			utils.Errorf("CryptoNight", "%s self-test %s mismatch: got %s, expected %s", b.kernel.Name, sub, output, expected)
			return fmt.Errorf("%w: %s %s", ErrSelfTestFailure, b.kernel.Name, sub)
		}
	}
	return nil
}
