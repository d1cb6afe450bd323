package pow

import (
	"errors"
	"testing"

	"git.gammaspectra.live/P2Pool/cnminer/monero/cryptonight"
)

func TestParseAlgorithm(t *testing.T) {
	for _, v := range []struct {
		name     string
		expected Algorithm
	}{
		{"cryptonight", Full},
		{"cn", Full},
		{"CryptoNight", Full},
		{"cryptonight-lite", Lite},
		{"cryptonight-light", Lite},
		{"cn-lite", Lite},
		{" cn-lite ", Lite},
	} {
		a, err := ParseAlgorithm(v.name)
		if err != nil {
			t.Errorf("%q: unexpected err: %v", v.name, err)
			continue
		}
		assertEqual(t, a, v.expected, v.name)
	}

	if _, err := ParseAlgorithm("randomx"); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("expected ErrUnknownAlgorithm, got %v", err)
	}
}

func TestAlgorithmParams(t *testing.T) {
	p, err := Full.Params()
	if err != nil {
		t.Fatal(err)
	}
	assertEqual(t, p, cryptonight.ParamsFull)

	p, err = Lite.Params()
	if err != nil {
		t.Fatal(err)
	}
	assertEqual(t, p, cryptonight.ParamsLite)

	if _, err = Algorithm(3).Params(); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("expected ErrUnknownAlgorithm, got %v", err)
	}
}

func TestParseVariant(t *testing.T) {
	for _, v := range []struct {
		in       string
		expected Variant
	}{
		{"auto", VariantAuto},
		{"", VariantAuto},
		{"0", VariantAuto},
		{"1", VariantSingle},
		{"3", VariantSingleSoft},
		{"5", 5},
	} {
		variant, err := ParseVariant(v.in)
		if err != nil {
			t.Errorf("%q: unexpected err: %v", v.in, err)
			continue
		}
		assertEqual(t, variant, v.expected, v.in)
	}

	for _, in := range []string{"-1", "fast"} {
		if _, err := ParseVariant(in); !errors.Is(err, ErrInvalidVariant) {
			t.Errorf("%q: expected ErrInvalidVariant, got %v", in, err)
		}
	}
}

func TestResolveVariant(t *testing.T) {
	resolved := ResolveVariant(VariantAuto)
	if HasAES() {
		assertEqual(t, resolved, VariantSingle)
	} else {
		assertEqual(t, resolved, VariantSingleSoft)
	}

	for _, v := range []Variant{VariantSingle, VariantDouble, VariantSingleSoft, VariantDoubleSoft, 7} {
		assertEqual(t, ResolveVariant(v), v)
	}
}
