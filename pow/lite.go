//go:build !nolite

package pow

// LiteSupported whether the cryptonight-lite kernels are compiled into DefaultTable
const LiteSupported = true
