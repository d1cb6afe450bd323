package types

import (
	"encoding/binary"
	"errors"
	"math"
	"strings"

	fasthex "github.com/tmthrgd/go-hex"
	"lukechampine.com/uint128"
)

const DifficultySize = 16

var ErrInvalidDifficulty = errors.New("invalid difficulty")

// Difficulty 128-bit work amount. A share meeting target t is worth 2^64-1 / t.
type Difficulty uint128.Uint128

var (
	ZeroDifficulty = Difficulty(uint128.Zero)
	MaxDifficulty  = Difficulty(uint128.Max)
)

func NewDifficulty(lo, hi uint64) Difficulty {
	return Difficulty{Lo: lo, Hi: hi}
}

func DifficultyFrom64(v uint64) Difficulty {
	return NewDifficulty(v, 0)
}

// DifficultyFromTarget difficulty of a 64-bit target. A zero target is unreachable and maps to MaxDifficulty.
func DifficultyFromTarget(target uint64) Difficulty {
	if target == 0 {
		return MaxDifficulty
	}
	return DifficultyFrom64(math.MaxUint64 / target)
}

// Target 64-bit target a hash must stay under to be worth at least d
func (d Difficulty) Target() uint64 {
	if d.Hi > 0 {
		return 0
	}
	if d.Lo <= 1 {
		return math.MaxUint64
	}
	return math.MaxUint64 / d.Lo
}

func (d Difficulty) IsZero() bool {
	return uint128.Uint128(d).IsZero()
}

func (d Difficulty) Equals(v Difficulty) bool {
	return uint128.Uint128(d).Equals(uint128.Uint128(v))
}

func (d Difficulty) Equals64(v uint64) bool {
	return uint128.Uint128(d).Equals64(v)
}

func (d Difficulty) Cmp(v Difficulty) int {
	return uint128.Uint128(d).Cmp(uint128.Uint128(v))
}

func (d Difficulty) Cmp64(v uint64) int {
	return uint128.Uint128(d).Cmp64(v)
}

func (d Difficulty) Add(v Difficulty) Difficulty {
	return Difficulty(uint128.Uint128(d).Add(uint128.Uint128(v)))
}

func (d Difficulty) Add64(v uint64) Difficulty {
	return Difficulty(uint128.Uint128(d).Add64(v))
}

func (d Difficulty) Mul64(v uint64) Difficulty {
	return Difficulty(uint128.Uint128(d).Mul64(v))
}

func (d Difficulty) Div(v Difficulty) Difficulty {
	return Difficulty(uint128.Uint128(d).Div(uint128.Uint128(v)))
}

func (d Difficulty) Div64(v uint64) Difficulty {
	return Difficulty(uint128.Uint128(d).Div64(v))
}

// Float64 approximation, for rates
func (d Difficulty) Float64() float64 {
	return float64(d.Lo) + float64(d.Hi)*math.Exp2(64)
}

// StringNumeric decimal representation
func (d Difficulty) StringNumeric() string {
	return uint128.Uint128(d).String()
}

// String big endian hex, zero padded to 32 characters
func (d Difficulty) String() string {
	var buf [DifficultySize]byte
	binary.BigEndian.PutUint64(buf[:8], d.Hi)
	binary.BigEndian.PutUint64(buf[8:], d.Lo)
	return fasthex.EncodeToString(buf[:])
}

func DifficultyFromString(s string) (Difficulty, error) {
	if strings.HasPrefix(s, "0x") {
		s = s[2:]
	}
	if len(s) == 0 || len(s) > DifficultySize*2 {
		return ZeroDifficulty, ErrInvalidDifficulty
	}
	if len(s) < DifficultySize*2 {
		s = strings.Repeat("0", DifficultySize*2-len(s)) + s
	}

	var buf [DifficultySize]byte
	if _, err := fasthex.Decode(buf[:], []byte(s)); err != nil {
		return ZeroDifficulty, err
	}
	return NewDifficulty(binary.BigEndian.Uint64(buf[8:]), binary.BigEndian.Uint64(buf[:8])), nil
}

// MarshalJSON plain number when it fits in 64 bits, hex string otherwise
func (d Difficulty) MarshalJSON() ([]byte, error) {
	if d.Hi == 0 {
		return []byte(d.StringNumeric()), nil
	}
	return []byte("\"0x" + d.String() + "\""), nil
}

func (d *Difficulty) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return ErrInvalidDifficulty
	}

	if b[0] == '"' {
		if len(b) < 2 || b[len(b)-1] != '"' {
			return ErrInvalidDifficulty
		}
		s := string(b[1 : len(b)-1])
		if strings.HasPrefix(s, "0x") {
			v, err := DifficultyFromString(s)
			if err != nil {
				return err
			}
			*d = v
			return nil
		}
		b = b[1 : len(b)-1]
	}

	v, err := uint128.FromString(string(b))
	if err != nil {
		return err
	}
	*d = Difficulty(v)
	return nil
}
