package pow

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"
	"testing"

	"git.gammaspectra.live/P2Pool/cnminer/monero/cryptonight"
	"git.gammaspectra.live/P2Pool/cnminer/types"
)

func assertEqual(t *testing.T, actual, expected any, msgAndArgs ...any) {
	t.Helper()
	if !reflect.DeepEqual(actual, expected) {
		message := ""
		if len(msgAndArgs) > 0 {
			message = fmt.Sprint(msgAndArgs...) + ": "
		}
		t.Errorf("%sactual: %v expected: %v", message, actual, expected)
	}
}

type testJob struct {
	blob    []byte
	variant cryptonight.Variant
	target  uint64
}

func (j testJob) Blob() []byte                 { return j.blob }
func (j testJob) Size() int                    { return len(j.blob) }
func (j testJob) Variant() cryptonight.Variant { return j.variant }
func (j testJob) Target() uint64               { return j.target }

// trackingAllocator counts outstanding contexts
type trackingAllocator struct {
	lock     sync.Mutex
	acquired int
	released int
}

func (a *trackingAllocator) Acquire() *Context {
	a.lock.Lock()
	defer a.lock.Unlock()
	a.acquired++
	return NewContext()
}

func (a *trackingAllocator) Release(ctx *Context) {
	a.lock.Lock()
	defer a.lock.Unlock()
	a.released++
}

// withAllocator swaps DefaultAllocator for the duration of the test
func withAllocator(t *testing.T, allocator ContextAllocator) {
	previous := DefaultAllocator
	DefaultAllocator = allocator
	t.Cleanup(func() {
		DefaultAllocator = previous
	})
}

// fakeKernel writes a digest whose trailing word is value, and records sub-variants it was called with
type fakeKernel struct {
	lock  sync.Mutex
	value uint64
	subs  []cryptonight.Variant
}

func (f *fakeKernel) Kernel(name string) *Kernel {
	return &Kernel{
		Name:   name,
		Params: cryptonight.ParamsLite,
		sum: func(input []byte, output *types.Hash, ctx *Context, sub cryptonight.Variant) {
			f.lock.Lock()
			defer f.lock.Unlock()
			f.subs = append(f.subs, sub)
			*output = types.Hash{}
			copy(output[:], input)
			binary.LittleEndian.PutUint64(output[24:], f.value)
		},
	}
}

func (f *fakeKernel) Calls() []cryptonight.Variant {
	f.lock.Lock()
	defer f.lock.Unlock()
	return append([]cryptonight.Variant(nil), f.subs...)
}

func fakeTable(k *Kernel) *Table {
	return &Table{slots: []*Kernel{k, nil, k, nil}}
}
