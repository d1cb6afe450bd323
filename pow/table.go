package pow

import (
	"fmt"
	"iter"

	"git.gammaspectra.live/P2Pool/cnminer/monero/cryptonight"
	"git.gammaspectra.live/P2Pool/cnminer/types"
)

// KernelFunc hashes input into output using ctx as scratch, with the given sub-variant
type KernelFunc func(input []byte, output *types.Hash, ctx *Context, sub cryptonight.Variant)

// Kernel one hash implementation, specialized for a family and AES mode
type Kernel struct {
	Name   string
	Params cryptonight.Params

	sum KernelFunc
}

func newKernel(name string, params cryptonight.Params) *Kernel {
	return &Kernel{
		Name:   name,
		Params: params,
		sum: func(input []byte, output *types.Hash, ctx *Context, sub cryptonight.Variant) {
			switch sub {
			case cryptonight.V0:
				ctx.state.Sum(input, params, cryptonight.V0, output)
			case cryptonight.V1:
				ctx.state.Sum(input, params, cryptonight.V1, output)
			default:
				panic(fmt.Sprintf("pow: unknown sub-variant %d", sub))
			}
		},
	}
}

// Sum runs the kernel
func (k *Kernel) Sum(input []byte, output *types.Hash, ctx *Context, sub cryptonight.Variant) {
	k.sum(input, output, ctx, sub)
}

// Table positional kernel registry. Empty slots are reserved variants without an implementation.
//
//	0 cn/aesni       1 -  2 cn/softaes       3 -
//	4 cn-lite/aesni  5 -  6 cn-lite/softaes  7 -
type Table struct {
	slots []*Kernel
	lite  bool
}

// NewTable builds the 4 full family slots, plus 4 lite slots when lite is set
func NewTable(lite bool) *Table {
	t := &Table{lite: lite}
	t.slots = append(t.slots,
		newKernel("cn/aesni", cryptonight.ParamsFull),
		nil,
		newKernel("cn/softaes", cryptonight.ParamsFull.WithSoftAES(true)),
		nil,
	)
	if lite {
		t.slots = append(t.slots,
			newKernel("cn-lite/aesni", cryptonight.ParamsLite),
			nil,
			newKernel("cn-lite/softaes", cryptonight.ParamsLite.WithSoftAES(true)),
			nil,
		)
	}
	return t
}

// DefaultTable built once with the compiled in families
var DefaultTable = NewTable(LiteSupported)

func (t *Table) Len() int {
	return len(t.slots)
}

// Lite whether the table holds lite family kernels
func (t *Table) Lite() bool {
	return t.lite
}

// Slot kernel at index i, nil for reserved or out of range slots
func (t *Table) Slot(i int) *Kernel {
	if i < 0 || i >= len(t.slots) {
		return nil
	}
	return t.slots[i]
}

// Kernels iterates implemented slots in index order
func (t *Table) Kernels() iter.Seq2[int, *Kernel] {
	return func(yield func(int, *Kernel) bool) {
		for i, k := range t.slots {
			if k == nil {
				continue
			}
			if !yield(i, k) {
				return
			}
		}
	}
}

// SlotIndex table position of (algo, variant). Lite shifts by 4 slots only when lite kernels exist.
func SlotIndex(algo Algorithm, variant Variant, lite bool) int {
	if algo == Lite && lite {
		return int(variant) + 3
	}
	return int(variant) - 1
}

// Select resolves (algo, variant) to a backend without validating it.
// Lite on a table without lite kernels fails with ErrUnimplementedBackend instead of aliasing full kernels.
func (t *Table) Select(algo Algorithm, variant Variant) (Backend, error) {
	if variant < VariantSingle || variant > VariantDoubleSoft {
		return Backend{}, fmt.Errorf("%w: %d not in [1,4]", ErrInvalidVariant, variant)
	}

	switch algo {
	case Full:
	case Lite:
		if !t.lite {
			return Backend{}, fmt.Errorf("%w: %s not compiled in", ErrUnimplementedBackend, algo)
		}
	default:
		return Backend{}, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, algo)
	}

	index := SlotIndex(algo, variant, t.lite)
	if index < 0 || index >= len(t.slots) {
		return Backend{}, fmt.Errorf("%w: slot %d out of range", ErrUnimplementedBackend, index)
	}

	kernel := t.slots[index]
	if kernel == nil {
		return Backend{}, fmt.Errorf("%w: %s/%s", ErrUnimplementedBackend, algo, variant)
	}

	return Backend{
		kernel:  kernel,
		index:   index,
		algo:    algo,
		variant: variant,
	}, nil
}
