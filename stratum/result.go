package stratum

import (
	"encoding/binary"

	"git.gammaspectra.live/P2Pool/cnminer/types"
	"git.gammaspectra.live/P2Pool/cnminer/utils"
)

// JobResult share found for a job. Result is the output buffer written by the hash backend.
type JobResult struct {
	JobId  string
	Nonce  uint32
	Result types.Hash
}

// NewJobResult result for the current nonce of job, with an empty hash
func NewJobResult(job *Job) JobResult {
	return JobResult{
		JobId: job.Id(),
		Nonce: job.Nonce(),
	}
}

// Difficulty actual difficulty reached by Result
func (r JobResult) Difficulty() types.Difficulty {
	return r.Result.Difficulty()
}

type jobResultJSON struct {
	JobId  string      `json:"job_id"`
	Nonce  types.Bytes `json:"nonce"`
	Result types.Hash  `json:"result"`
}

// MarshalJSON submission parameters, nonce as the 4 blob bytes in hex
func (r JobResult) MarshalJSON() ([]byte, error) {
	var nonce [NonceSize]byte
	binary.LittleEndian.PutUint32(nonce[:], r.Nonce)
	return utils.MarshalJSON(jobResultJSON{
		JobId:  r.JobId,
		Nonce:  nonce[:],
		Result: r.Result,
	})
}

func (r *JobResult) UnmarshalJSON(buf []byte) error {
	var aux jobResultJSON
	if err := utils.UnmarshalJSON(buf, &aux); err != nil {
		return err
	}
	if len(aux.Nonce) != NonceSize {
		return types.ErrWrongSize
	}
	r.JobId = aux.JobId
	r.Nonce = binary.LittleEndian.Uint32(aux.Nonce)
	r.Result = aux.Result
	return nil
}
