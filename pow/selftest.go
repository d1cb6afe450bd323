package pow

import (
	"git.gammaspectra.live/P2Pool/cnminer/monero/cryptonight"
	"git.gammaspectra.live/P2Pool/cnminer/types"
)

// selfTestInput 76 byte block hashing blob
var selfTestInput = [76]byte{
	0x03, 0x05, 0xA0, 0xDB, 0xD6, 0xBF, 0x05, 0xCF, 0x16, 0xE5, 0x03, 0xF3, 0xA6, 0x6F, 0x78, 0x00,
	0x7C, 0xBF, 0x34, 0x14, 0x43, 0x32, 0xEC, 0xBF, 0xC2, 0x2E, 0xD9, 0x5C, 0x87, 0x00, 0x38, 0x3B,
	0x30, 0x9A, 0xCE, 0x19, 0x23, 0xA0, 0x96, 0x4B, 0x00, 0x00, 0x00, 0x08, 0xBA, 0x93, 0x9A, 0x62,
	0x72, 0x4C, 0x0D, 0x75, 0x81, 0xFC, 0xE5, 0x76, 0x1E, 0x9D, 0x8A, 0x0E, 0x6A, 0x1C, 0x3F, 0x92,
	0x4F, 0xDD, 0x84, 0x93, 0xD1, 0x11, 0x56, 0x49, 0xC0, 0x5E, 0xB6, 0x01,
}

type knownAnswer struct {
	V0, V1 types.Hash
}

func (k *knownAnswer) Expected(sub cryptonight.Variant) types.Hash {
	if sub == cryptonight.V1 {
		return k.V1
	}
	return k.V0
}

// selfTestVectors indexed by Algorithm
var selfTestVectors = [...]knownAnswer{
	Full: {
		V0: types.MustHashFromString("1a3ffbee909b420d91f7be6e5fb56db71b3110d886011e877ee5786afd080100"),
		V1: types.MustHashFromString("f22d3d6203d2a08b41d9027278d8bcc983acada9b68e52e3c689692a50e921d9"),
	},
	Lite: {
		V0: types.MustHashFromString("3695b4b53bb00358b0ad38dc160feb9e004eece09b83a72ef6ba9864d3510c88"),
		V1: types.MustHashFromString("6d8cdc444e9bbbfd68fc43fcd4855b228c8a1bd91d9d00285bec02b7ca2d6741"),
	},
}
