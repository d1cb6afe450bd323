// Package miner runs a validated hash backend over a job on several workers.
package miner

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"git.gammaspectra.live/P2Pool/cnminer/pow"
	"git.gammaspectra.live/P2Pool/cnminer/stratum"
	"git.gammaspectra.live/P2Pool/cnminer/types"
	"git.gammaspectra.live/P2Pool/cnminer/utils"
	"golang.org/x/sys/cpu"
)

// BenchResult totals of one Bench run
type BenchResult struct {
	Threads  int
	Hashes   uint64
	Duration time.Duration

	// Shares results that met the job target, ordered by nonce
	Shares []stratum.JobResult
	// Difficulty sum of job difficulty over accepted shares
	Difficulty types.Difficulty
	// Best highest difficulty reached by any hash
	Best types.Difficulty
}

// Hashrate hashes per second
func (r BenchResult) Hashrate() float64 {
	if r.Duration <= 0 {
		return 0
	}
	return float64(r.Hashes) / r.Duration.Seconds()
}

var ErrNonceSpace = errors.New("hashes exceed the job nonce space")

type worker struct {
	ctx    *pow.Context
	job    stratum.Job
	result types.Hash

	hashes uint64
	shares []stratum.JobResult
	best   types.Difficulty

	_ cpu.CacheLinePad
}

// nonceSpace number of distinct nonces a job leaves to the miner
func nonceSpace(job *stratum.Job) uint64 {
	if job.NiceHash() {
		return 1 << 24
	}
	return 1 << 32
}

// nonceFor keeps the pool reserved top byte of NiceHash jobs
func nonceFor(job *stratum.Job, workIndex uint64) uint32 {
	if job.NiceHash() {
		return (job.Nonce() & 0xff000000) | (uint32(workIndex) & 0x00ffffff)
	}
	return uint32(workIndex)
}

// Bench hashes job with nonces 0..hashes-1 on threads workers, each with its own context and blob copy.
// threads <= 0 uses pow.RecommendedThreads. hashes may not exceed the nonce space of the job.
func Bench(ctx context.Context, backend pow.Backend, job *stratum.Job, hashes uint64, threads int) (BenchResult, error) {
	if !backend.Valid() {
		return BenchResult{}, pow.ErrNotInitialized
	}
	if space := nonceSpace(job); hashes > space {
		return BenchResult{}, fmt.Errorf("%w: %d > %d", ErrNonceSpace, hashes, space)
	}
	if threads <= 0 {
		threads = pow.RecommendedThreads(backend.Algorithm(), 100)
	}

	var workers []*worker

	start := time.Now()
	err := utils.SplitWork(ctx, threads, hashes, func(workIndex uint64, routineIndex int) error {
		w := workers[routineIndex]
		w.job.SetNonce(nonceFor(job, workIndex))
		w.hashes++
		if backend.Hash(&w.job, &w.result, w.ctx) {
			share := stratum.NewJobResult(&w.job)
			share.Result = w.result
			w.shares = append(w.shares, share)
		}
		if d := w.result.Difficulty(); d.Cmp(w.best) > 0 {
			w.best = d
		}
		return nil
	}, func(routines, routineIndex int) error {
		if workers == nil {
			workers = make([]*worker, routines)
		}
		workers[routineIndex] = &worker{
			ctx: pow.NewContext(),
			job: *job,
		}
		return nil
	})
	if err != nil {
		return BenchResult{}, fmt.Errorf("bench: %w", err)
	}

	result := BenchResult{
		Threads:  len(workers),
		Duration: time.Since(start),
		Best:     types.ZeroDifficulty,
	}
	for _, w := range workers {
		result.Hashes += w.hashes
		result.Shares = append(result.Shares, w.shares...)
		if w.best.Cmp(result.Best) > 0 {
			result.Best = w.best
		}
	}
	slices.SortFunc(result.Shares, func(a, b stratum.JobResult) int {
		return cmp.Compare(a.Nonce, b.Nonce)
	})
	result.Difficulty = job.Difficulty().Mul64(uint64(len(result.Shares)))

	utils.Debugf("Bench", "%d hashes on %d threads in %s, %d shares", result.Hashes, result.Threads, result.Duration, len(result.Shares))

	return result, nil
}
