//go:build amd64 && !purego

package cryptonight

import "golang.org/x/sys/cpu"

var hasHardwareAES = cpu.X86.HasAES

//go:noescape
func aes_rounds_internal(blocks *[16]uint64, roundKeys *[aesRounds * 4]uint32)

//go:noescape
func aes_single_round_internal(dst, src *[2]uint64, roundKey *[2]uint64)

var aesHardware = aesImpl{
	rounds:      aes_rounds_internal,
	singleRound: aes_single_round_internal,
}
