package cryptonight

// Params Structural constants of one CryptoNight family, bound to a kernel at table build time.
type Params struct {
	// Iterations of the memory-hard loop
	Iterations uint32
	// Memory scratchpad size in bytes, at most ScratchpadSize
	Memory uint32
	// Mask applied to the 64-bit address word, keeps 16-byte aligned offsets within Memory
	Mask uint32
	// SoftAES forces table based AES rounds even when the CPU has AES instructions
	SoftAES bool
}

var (
	// ParamsFull CryptoNight as used by Monero (2 MiB, 2^19 iterations)
	ParamsFull = Params{
		Iterations: 0x80000,
		Memory:     2 * 1024 * 1024,
		Mask:       0x1FFFF0,
	}

	// ParamsLite CryptoNight-Lite as used by Aeon (1 MiB, 2^18 iterations)
	ParamsLite = Params{
		Iterations: 0x40000,
		Memory:     1024 * 1024,
		Mask:       0xFFFF0,
	}
)

// WithSoftAES returns a copy of p with the AES mode set
func (p Params) WithSoftAES(soft bool) Params {
	p.SoftAES = soft
	return p
}

// Valid reports whether p fits in State and addresses stay within the scratchpad
func (p Params) Valid() bool {
	return p.Iterations > 0 &&
		p.Memory > 0 && p.Memory <= ScratchpadSize && p.Memory%128 == 0 &&
		p.Mask&0xf == 0 && p.Mask < p.Memory
}
