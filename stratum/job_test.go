package stratum

import (
	"errors"
	"math"
	"strings"
	"testing"

	"git.gammaspectra.live/P2Pool/cnminer/monero/cryptonight"
	"git.gammaspectra.live/P2Pool/cnminer/pow"
	"git.gammaspectra.live/P2Pool/cnminer/utils"
	"github.com/stretchr/testify/require"
	fasthex "github.com/tmthrgd/go-hex"
)

const testBlob = "0707f7a4f0d605b303260816ba3f10902e1a145ac5fad3aa3af6ea44c11869dc4f853f002b2eea0000000077b206a02ca5b1d4ce6bbfdf0acac38bded34d2dcdeef95cd20cefc12f61d56109"

// compile time check
var _ pow.Job = (*Job)(nil)

func TestParseTarget(t *testing.T) {
	for _, v := range []struct {
		in       string
		expected uint64
	}{
		{"b88d0600", math.MaxUint64 / (math.MaxUint32 / 0x00068db8)},
		{"ffffffff", math.MaxUint64},
		{"e4a63d00", math.MaxUint64 / (math.MaxUint32 / 0x003da6e4)},
		{"0100000000000000", 1},
		{"f1ffffffffffff00", 0x00fffffffffffff1},
	} {
		target, err := ParseTarget(v.in)
		require.NoError(t, err, v.in)
		require.Equal(t, v.expected, target, v.in)
	}

	for _, in := range []string{"", "00000000", "0000000000000000", "b88d06", "b88d0600b8", "zzzzzzzz", "b88d0600b88d0600b8"} {
		_, err := ParseTarget(in)
		require.ErrorIs(t, err, ErrInvalidTarget, in)
	}
}

func TestTargetDifficulty(t *testing.T) {
	target, err := ParseTarget("b88d0600")
	require.NoError(t, err)

	job, err := NewJob("1", fasthex.MustDecodeString(testBlob), target)
	require.NoError(t, err)
	require.True(t, job.Difficulty().Equals64(10000))
}

func TestEncodeTarget(t *testing.T) {
	for _, target := range []uint64{1, 0x00fffffffffffff1, math.MaxUint64 / 10000} {
		parsed, err := ParseTarget(EncodeTarget(target))
		require.NoError(t, err)
		require.Equal(t, target, parsed)
	}
}

func TestNewJob(t *testing.T) {
	blob := fasthex.MustDecodeString(testBlob)

	t.Run("size bounds", func(t *testing.T) {
		for _, size := range []int{0, MinBlobSize - 1, MaxBlobSize, MaxBlobSize + 1} {
			_, err := NewJob("1", make([]byte, size), 1)
			require.ErrorIs(t, err, ErrInvalidBlob, "size %d", size)
		}
		for _, size := range []int{MinBlobSize, MaxBlobSize - 1} {
			job, err := NewJob("1", make([]byte, size), 1)
			require.NoError(t, err)
			require.Equal(t, size, job.Size())
			require.Len(t, job.Blob(), size)
		}
	})

	t.Run("zero target", func(t *testing.T) {
		_, err := NewJob("1", blob, 0)
		require.ErrorIs(t, err, ErrInvalidTarget)
	})

	t.Run("auto variant", func(t *testing.T) {
		job, err := NewJob("1", blob, 1)
		require.NoError(t, err)
		require.True(t, job.AutoVariant())
		require.Equal(t, cryptonight.V1, job.Variant())

		old := append([]byte(nil), blob...)
		old[0] = 6
		job, err = NewJob("1", old, 1)
		require.NoError(t, err)
		require.Equal(t, cryptonight.V0, job.Variant())
	})

	t.Run("explicit variant", func(t *testing.T) {
		job, err := NewJob("1", blob, 1)
		require.NoError(t, err)
		job.SetVariant(0)
		require.False(t, job.AutoVariant())
		require.Equal(t, cryptonight.V0, job.Variant())
		job.SetVariant(1)
		require.Equal(t, cryptonight.V1, job.Variant())
		job.SetVariant(-1)
		require.True(t, job.AutoVariant())
		require.Equal(t, cryptonight.V1, job.Variant())
	})

	t.Run("copies blob", func(t *testing.T) {
		buf := append([]byte(nil), blob...)
		job, err := NewJob("1", buf, 1)
		require.NoError(t, err)
		buf[0] = 0xff
		require.Equal(t, byte(0x07), job.Blob()[0])
	})
}

func TestNonce(t *testing.T) {
	job, err := NewJob("1", fasthex.MustDecodeString(testBlob), 1)
	require.NoError(t, err)
	require.False(t, job.NiceHash())
	require.Zero(t, job.Nonce())

	job.SetNonce(0xdeadbeef)
	require.Equal(t, uint32(0xdeadbeef), job.Nonce())
	require.Equal(t, []byte{0xef, 0xbe, 0xad, 0xde}, job.Blob()[NonceOffset:NonceOffset+NonceSize])
	// neighbors untouched
	require.Equal(t, byte(0xea), job.Blob()[NonceOffset-1])
	require.Equal(t, byte(0x77), job.Blob()[NonceOffset+NonceSize])

	// value copy owns its blob
	local := *job
	local.SetNonce(1)
	require.Equal(t, uint32(0xdeadbeef), job.Nonce())
	require.Equal(t, uint32(1), local.Nonce())

	niceHash, err := NewJob("2", job.Blob(), 1)
	require.NoError(t, err)
	require.True(t, niceHash.NiceHash())
}

func TestJobJSON(t *testing.T) {
	var job Job
	err := utils.UnmarshalJSON([]byte(`{"job_id":"abc","blob":"`+testBlob+`","target":"b88d0600"}`), &job)
	require.NoError(t, err)
	require.Equal(t, "abc", job.Id())
	require.Equal(t, testBlob, fasthex.EncodeToString(job.Blob()))
	require.True(t, job.AutoVariant())
	require.Equal(t, cryptonight.V1, job.Variant())
	require.True(t, job.Difficulty().Equals64(10000))

	err = utils.UnmarshalJSON([]byte(`{"job_id":"abc","blob":"`+testBlob+`","target":"b88d0600","variant":0}`), &job)
	require.NoError(t, err)
	require.False(t, job.AutoVariant())
	require.Equal(t, cryptonight.V0, job.Variant())

	buf, err := utils.MarshalJSON(&job)
	require.NoError(t, err)
	var decoded Job
	require.NoError(t, utils.UnmarshalJSON(buf, &decoded))
	require.Equal(t, job, decoded)

	for _, in := range []string{
		`{"job_id":"abc","blob":"0707","target":"b88d0600"}`,
		`{"job_id":"abc","blob":"` + testBlob + `","target":"00000000"}`,
		`{"job_id":"abc","blob":"` + testBlob + `"}`,
	} {
		err = utils.UnmarshalJSON([]byte(in), &job)
		require.Error(t, err, in)
		require.True(t, errors.Is(err, ErrInvalidBlob) || errors.Is(err, ErrInvalidTarget), in)
	}

	require.Error(t, utils.UnmarshalJSON([]byte(`{"blob":"`+strings.Repeat("z", 152)+`","target":"b88d0600"}`), &job))
}
