package pow

import (
	"fmt"
	"strconv"
	"strings"

	"git.gammaspectra.live/P2Pool/cnminer/monero/cryptonight"
	"github.com/dolthub/swiss"
)

// Algorithm CryptoNight family, selecting memory footprint and iteration count
type Algorithm uint8

const (
	Full Algorithm = iota
	Lite
)

func (a Algorithm) String() string {
	switch a {
	case Full:
		return "cryptonight"
	case Lite:
		return "cryptonight-lite"
	default:
		return "unknown(" + strconv.Itoa(int(a)) + ")"
	}
}

// Params structural constants of the family
func (a Algorithm) Params() (cryptonight.Params, error) {
	switch a {
	case Full:
		return cryptonight.ParamsFull, nil
	case Lite:
		return cryptonight.ParamsLite, nil
	default:
		return cryptonight.Params{}, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, a)
	}
}

var algorithmNames = func() *swiss.Map[string, Algorithm] {
	m := swiss.NewMap[string, Algorithm](8)
	m.Put("cryptonight", Full)
	m.Put("cn", Full)
	m.Put("cryptonight-lite", Lite)
	m.Put("cryptonight-light", Lite)
	m.Put("cryptonight_lite", Lite)
	m.Put("cn-lite", Lite)
	return m
}()

// ParseAlgorithm accepts the canonical names and their common aliases, case insensitive
func ParseAlgorithm(name string) (Algorithm, error) {
	if a, ok := algorithmNames.Get(strings.ToLower(strings.TrimSpace(name))); ok {
		return a, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Variant outer selector combining AES mode and hash multiplicity. Valid kernels use [1,4].
type Variant int

const (
	// VariantAuto resolved by ResolveVariant from CPU features, rejected by Select
	VariantAuto Variant = iota
	// VariantSingle single hash, hardware AES
	VariantSingle
	// VariantDouble double hash, hardware AES
	VariantDouble
	// VariantSingleSoft single hash, software AES
	VariantSingleSoft
	// VariantDoubleSoft double hash, software AES
	VariantDoubleSoft
)

func (v Variant) String() string {
	switch v {
	case VariantAuto:
		return "auto"
	case VariantSingle:
		return "aesni"
	case VariantDouble:
		return "aesni-double"
	case VariantSingleSoft:
		return "softaes"
	case VariantDoubleSoft:
		return "softaes-double"
	default:
		return strconv.Itoa(int(v))
	}
}

// ParseVariant accepts "auto" or a number. Range is checked by Select.
func ParseVariant(s string) (Variant, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "auto" || s == "" {
		return VariantAuto, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return VariantAuto, fmt.Errorf("%w: %q", ErrInvalidVariant, s)
	}
	return Variant(n), nil
}
