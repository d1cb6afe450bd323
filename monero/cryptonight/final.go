package cryptonight

import (
	"git.gammaspectra.live/P2Pool/cnminer/monero/cryptonight/internal/groestl"
	"git.gammaspectra.live/P2Pool/cnminer/monero/cryptonight/internal/jh"
	"git.gammaspectra.live/P2Pool/cnminer/types"
	"github.com/aead/skein"
	"github.com/dchest/blake256"
)

// finalHash CNS008 sec.5.2, the low two bits of the first state byte pick the hash applied to the whole state
func finalHash(i uint8, data []byte, out *types.Hash) {
	switch i & 0x03 {
	case 0:
		h := blake256.New()
		_, _ = h.Write(data)
		h.Sum(out[:0])
	case 1:
		*out = groestl.Sum256(data)
	case 2:
		*out = jh.Sum256(data)
	case 3:
		skein.Sum256((*[32]byte)(out), data, nil)
	}
}
