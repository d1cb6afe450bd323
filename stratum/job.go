// Package stratum holds the mining job and share types exchanged with a pool.
package stratum

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"git.gammaspectra.live/P2Pool/cnminer/monero/cryptonight"
	"git.gammaspectra.live/P2Pool/cnminer/types"
	"git.gammaspectra.live/P2Pool/cnminer/utils"
	fasthex "github.com/tmthrgd/go-hex"
)

const (
	MinBlobSize = 76
	// MaxBlobSize exclusive
	MaxBlobSize = 84

	// NonceOffset position of the 32-bit little endian nonce within the blob
	NonceOffset = 39
	NonceSize   = 4
)

var (
	ErrInvalidBlob   = errors.New("invalid blob")
	ErrInvalidTarget = errors.New("invalid target")
)

// Job block hashing blob with its acceptance target. Copying a Job copies the blob.
type Job struct {
	id      string
	blob    [MaxBlobSize]byte
	size    int
	target  uint64
	variant cryptonight.Variant

	autoVariant bool
	niceHash    bool
}

// NewJob copies blob into a job with automatic sub-variant selection
func NewJob(id string, blob []byte, target uint64) (*Job, error) {
	j := &Job{
		id:          id,
		target:      target,
		autoVariant: true,
	}
	if err := j.setBlob(blob); err != nil {
		return nil, err
	}
	if target == 0 {
		return nil, fmt.Errorf("%w: zero", ErrInvalidTarget)
	}
	return j, nil
}

func (j *Job) setBlob(blob []byte) error {
	if len(blob) < MinBlobSize || len(blob) >= MaxBlobSize {
		return fmt.Errorf("%w: size %d not in [%d, %d)", ErrInvalidBlob, len(blob), MinBlobSize, MaxBlobSize)
	}
	j.size = copy(j.blob[:], blob)

	// pools that pre-fill the nonce expect miners to keep its leading byte
	if j.Nonce() != 0 {
		j.niceHash = true
	}

	if j.autoVariant {
		j.variant = autoVariant(j.blob[0])
	}
	return nil
}

// autoVariant blocks with major version above 6 use the V1 tweak
func autoVariant(majorVersion byte) cryptonight.Variant {
	if majorVersion > 6 {
		return cryptonight.V1
	}
	return cryptonight.V0
}

// SetVariant 0 or 1 pins the sub-variant, anything else selects it from the blob
func (j *Job) SetVariant(v int) {
	switch v {
	case 0:
		j.autoVariant = false
		j.variant = cryptonight.V0
	case 1:
		j.autoVariant = false
		j.variant = cryptonight.V1
	default:
		j.autoVariant = true
		j.variant = autoVariant(j.blob[0])
	}
}

func (j *Job) Id() string {
	return j.id
}

func (j *Job) Blob() []byte {
	return j.blob[:j.size]
}

func (j *Job) Size() int {
	return j.size
}

func (j *Job) Variant() cryptonight.Variant {
	return j.variant
}

func (j *Job) AutoVariant() bool {
	return j.autoVariant
}

func (j *Job) Target() uint64 {
	return j.target
}

// NiceHash whether the pool handed out a blob with a nonzero nonce
func (j *Job) NiceHash() bool {
	return j.niceHash
}

func (j *Job) Difficulty() types.Difficulty {
	return types.DifficultyFromTarget(j.target)
}

func (j *Job) Nonce() uint32 {
	return binary.LittleEndian.Uint32(j.blob[NonceOffset:])
}

func (j *Job) SetNonce(nonce uint32) {
	binary.LittleEndian.PutUint32(j.blob[NonceOffset:], nonce)
}

type jobJSON struct {
	JobId   string      `json:"job_id"`
	Blob    types.Bytes `json:"blob"`
	Target  string      `json:"target"`
	Variant *int        `json:"variant,omitempty"`
}

func (j *Job) UnmarshalJSON(buf []byte) error {
	var aux jobJSON
	if err := utils.UnmarshalJSON(buf, &aux); err != nil {
		return err
	}

	target, err := ParseTarget(aux.Target)
	if err != nil {
		return err
	}

	*j = Job{
		id:          aux.JobId,
		target:      target,
		autoVariant: true,
	}
	if err = j.setBlob(aux.Blob); err != nil {
		return err
	}
	if aux.Variant != nil {
		j.SetVariant(*aux.Variant)
	}
	return nil
}

func (j *Job) MarshalJSON() ([]byte, error) {
	aux := jobJSON{
		JobId:  j.id,
		Blob:   j.Blob(),
		Target: EncodeTarget(j.target),
	}
	if !j.autoVariant {
		v := int(j.variant)
		aux.Variant = &v
	}
	return utils.MarshalJSON(aux)
}

// ParseTarget decodes a pool target. 8 hex characters are a 32-bit little endian compact target,
// expanded to 2^64-1 / (2^32-1 / t); 16 hex characters are the 64-bit little endian target itself.
func ParseTarget(s string) (uint64, error) {
	switch len(s) {
	case 8:
		var buf [4]byte
		if _, err := fasthex.Decode(buf[:], []byte(s)); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrInvalidTarget, err)
		}
		t := binary.LittleEndian.Uint32(buf[:])
		if t == 0 {
			return 0, fmt.Errorf("%w: zero", ErrInvalidTarget)
		}
		return math.MaxUint64 / (math.MaxUint32 / uint64(t)), nil
	case 16:
		var buf [8]byte
		if _, err := fasthex.Decode(buf[:], []byte(s)); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrInvalidTarget, err)
		}
		t := binary.LittleEndian.Uint64(buf[:])
		if t == 0 {
			return 0, fmt.Errorf("%w: zero", ErrInvalidTarget)
		}
		return t, nil
	default:
		return 0, fmt.Errorf("%w: length %d", ErrInvalidTarget, len(s))
	}
}

// EncodeTarget 16 hex character little endian form accepted by ParseTarget
func EncodeTarget(target uint64) string {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], target)
	return fasthex.EncodeToString(buf[:])
}
