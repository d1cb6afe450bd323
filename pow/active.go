package pow

import (
	"sync"
	"sync/atomic"

	"git.gammaspectra.live/P2Pool/cnminer/monero/cryptonight"
	"git.gammaspectra.live/P2Pool/cnminer/types"
	"git.gammaspectra.live/P2Pool/cnminer/utils"
)

// BackendState lifecycle of the process-wide backend
type BackendState uint32

const (
	StateUninitialized BackendState = iota
	StateSelected
	StateValidated
	StateActive
)

func (s BackendState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateSelected:
		return "selected"
	case StateValidated:
		return "validated"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}

// Single writer (Init) under activeLock, many readers through the atomics.
var (
	activeLock    sync.Mutex
	activeState   atomic.Uint32
	activeBackend atomic.Pointer[Backend]
)

// Init selects and validates the DefaultTable kernel for (algo, variant) and makes it active.
// Must complete before workers call Hash.
func Init(algo Algorithm, variant Variant) bool {
	return InitTable(DefaultTable, algo, variant)
}

// InitTable Init with an explicit table. Any failure leaves no active backend.
func InitTable(table *Table, algo Algorithm, variant Variant) bool {
	activeLock.Lock()
	defer activeLock.Unlock()

	activeBackend.Store(nil)
	activeState.Store(uint32(StateUninitialized))

	backend, err := table.Select(algo, variant)
	if err != nil {
		utils.Errorf("CryptoNight", "could not select %s/%s: %s", algo, variant, err)
		return false
	}
	activeState.Store(uint32(StateSelected))
	utils.Debugf("CryptoNight", "selected %s at slot %d", backend.Name(), backend.Index())

	if !backend.kernel.Params.SoftAES && !cryptonight.HasHardwareAES() {
		utils.Noticef("CryptoNight", "%s requested without hardware AES support, using software rounds", backend.Name())
	}

	if err = backend.SelfTestWith(algo, DefaultAllocator); err != nil {
		activeState.Store(uint32(StateUninitialized))
		utils.Errorf("CryptoNight", "%s/%s: %s", algo, variant, err)
		return false
	}
	activeState.Store(uint32(StateValidated))

	activeBackend.Store(&backend)
	activeState.Store(uint32(StateActive))

	utils.Logf("CryptoNight", "using %s for %s", backend.Name(), algo)
	return true
}

// CurrentState of the process-wide backend
func CurrentState() BackendState {
	return BackendState(activeState.Load())
}

// Active returns the committed backend, for callers that thread it explicitly
func Active() (Backend, bool) {
	if b := activeBackend.Load(); b != nil {
		return *b, true
	}
	return Backend{}, false
}

// SelfTest re-validates the active backend against the known answers of algo
func SelfTest(algo Algorithm) bool {
	b, ok := Active()
	if !ok {
		return false
	}
	return b.SelfTest(algo)
}

// LowLevelHash Backend.LowLevelHash on the active backend. Panics with ErrNotInitialized before Init.
func LowLevelHash(input []byte, output *types.Hash, ctx *Context, sub cryptonight.Variant) {
	b := activeBackend.Load()
	if b == nil {
		panic(ErrNotInitialized)
	}
	b.LowLevelHash(input, output, ctx, sub)
}

// Hash Backend.Hash on the active backend. Panics with ErrNotInitialized before Init.
func Hash(job Job, result *types.Hash, ctx *Context) bool {
	b := activeBackend.Load()
	if b == nil {
		panic(ErrNotInitialized)
	}
	return b.Hash(job, result, ctx)
}
