package pow

import (
	"sync"

	"git.gammaspectra.live/P2Pool/cnminer/monero/cryptonight"
)

// Context scratch space for one kernel invocation at a time. Owned by a single goroutine and reused across hashes.
type Context struct {
	state *cryptonight.State
}

// NewContext allocates an aligned context, panics when the allocation does not meet kernel alignment
func NewContext() *Context {
	state := cryptonight.NewState()
	if !state.Aligned() {
		panic("pow: misaligned context allocation")
	}
	return &Context{state: state}
}

// Reset clears all scratch memory
func (ctx *Context) Reset() {
	ctx.state.Reset()
}

// ContextAllocator hands out contexts for short lived use, like self-tests
type ContextAllocator interface {
	Acquire() *Context
	Release(ctx *Context)
}

type poolAllocator struct {
	pool sync.Pool
}

// NewPoolAllocator ContextAllocator backed by a sync.Pool
func NewPoolAllocator() ContextAllocator {
	return &poolAllocator{
		pool: sync.Pool{
			New: func() any {
				return NewContext()
			},
		},
	}
}

func (a *poolAllocator) Acquire() *Context {
	//nolint:forcetypeassert
	return a.pool.Get().(*Context)
}

func (a *poolAllocator) Release(ctx *Context) {
	a.pool.Put(ctx)
}

// DefaultAllocator used by self-tests run from Init and SelfTest
var DefaultAllocator = NewPoolAllocator()
