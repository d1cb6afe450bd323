package miner

import (
	"context"
	"errors"
	"math"
	"testing"

	"git.gammaspectra.live/P2Pool/cnminer/pow"
	"git.gammaspectra.live/P2Pool/cnminer/stratum"
	"git.gammaspectra.live/P2Pool/cnminer/types"
	"github.com/stretchr/testify/require"
	fasthex "github.com/tmthrgd/go-hex"
)

const testBlob = "0707f7a4f0d605b303260816ba3f10902e1a145ac5fad3aa3af6ea44c11869dc4f853f002b2eea0000000077b206a02ca5b1d4ce6bbfdf0acac38bded34d2dcdeef95cd20cefc12f61d56109"

func testBackend(t *testing.T) pow.Backend {
	algo := pow.Full
	if pow.LiteSupported {
		algo = pow.Lite
	}
	backend, err := pow.DefaultTable.Select(algo, pow.ResolveVariant(pow.VariantAuto))
	require.NoError(t, err)
	return backend
}

func TestBench(t *testing.T) {
	backend := testBackend(t)

	job, err := stratum.NewJob("bench", fasthex.MustDecodeString(testBlob), math.MaxUint64)
	require.NoError(t, err)

	result, err := Bench(context.Background(), backend, job, 6, 2)
	require.NoError(t, err)
	require.Equal(t, 2, result.Threads)
	require.Equal(t, uint64(6), result.Hashes)
	require.Len(t, result.Shares, 6)
	require.True(t, result.Difficulty.Equals64(6))
	require.Positive(t, result.Hashrate())

	// original job untouched
	require.Zero(t, job.Nonce())

	for i, share := range result.Shares {
		require.Equal(t, uint32(i), share.Nonce)
		require.Equal(t, "bench", share.JobId)
	}

	// shares match a direct hash of the same nonce
	local := *job
	local.SetNonce(3)
	var expected types.Hash
	backend.LowLevelHash(local.Blob(), &expected, pow.NewContext(), local.Variant())
	require.Equal(t, expected, result.Shares[3].Result)

	for _, share := range result.Shares {
		require.True(t, share.Difficulty().Cmp(result.Best) <= 0)
	}
}

func TestBenchNiceHash(t *testing.T) {
	blob := fasthex.MustDecodeString(testBlob)
	blob[stratum.NonceOffset+3] = 0xab
	job, err := stratum.NewJob("nicehash", blob, math.MaxUint64)
	require.NoError(t, err)
	require.True(t, job.NiceHash())

	result, err := Bench(context.Background(), testBackend(t), job, 2, 1)
	require.NoError(t, err)
	require.Len(t, result.Shares, 2)
	require.Equal(t, uint32(0xab000000), result.Shares[0].Nonce)
	require.Equal(t, uint32(0xab000001), result.Shares[1].Nonce)
}

func TestBenchInvalidBackend(t *testing.T) {
	job, err := stratum.NewJob("bench", fasthex.MustDecodeString(testBlob), 1)
	require.NoError(t, err)
	_, err = Bench(context.Background(), pow.Backend{}, job, 1, 1)
	require.ErrorIs(t, err, pow.ErrNotInitialized)
}

func TestBenchNonceSpace(t *testing.T) {
	job, err := stratum.NewJob("bench", fasthex.MustDecodeString(testBlob), 1)
	require.NoError(t, err)
	_, err = Bench(context.Background(), testBackend(t), job, 1<<32+1, 1)
	require.ErrorIs(t, err, ErrNonceSpace)

	blob := fasthex.MustDecodeString(testBlob)
	blob[stratum.NonceOffset+3] = 0xab
	niceHash, err := stratum.NewJob("nicehash", blob, 1)
	require.NoError(t, err)
	_, err = Bench(context.Background(), testBackend(t), niceHash, 1<<24+1, 1)
	require.ErrorIs(t, err, ErrNonceSpace)

	require.Equal(t, uint64(1<<32), nonceSpace(job))
	require.Equal(t, uint64(1<<24), nonceSpace(niceHash))
}

func TestBenchCancelled(t *testing.T) {
	job, err := stratum.NewJob("bench", fasthex.MustDecodeString(testBlob), 1)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Bench(ctx, testBackend(t), job, 1000, 2)
	require.True(t, errors.Is(err, context.Canceled))
}

func TestNonceFor(t *testing.T) {
	job, err := stratum.NewJob("bench", fasthex.MustDecodeString(testBlob), 1)
	require.NoError(t, err)
	require.Equal(t, uint32(0x01020304), nonceFor(job, 0x01020304))

	job.SetNonce(0x7f000000)
	niceHash, err := stratum.NewJob("bench", job.Blob(), 1)
	require.NoError(t, err)
	require.Equal(t, uint32(0x7f020304), nonceFor(niceHash, 0x01020304))
}
