package utils

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// SplitWork Runs do over work indices [0, workSize) on routines goroutines, each pulling the next index.
// init runs sequentially for every routine before any work starts. A non-positive routines uses
// runtime.NumCPU() minus its magnitude, at least 1.
// The first error stops every routine at its next index and is returned, as is ctx cancellation.
func SplitWork(ctx context.Context, routines int, workSize uint64, do func(workIndex uint64, routineIndex int) error, init func(routines, routineIndex int) error) error {
	if routines <= 0 {
		routines = max(runtime.NumCPU()+routines, 1)
	}

	if workSize < uint64(routines) {
		routines = int(workSize)
	}

	for routineIndex := range routines {
		if init == nil {
			break
		}
		if err := init(routines, routineIndex); err != nil {
			return err
		}
	}

	var counter atomic.Uint64

	eg, ctx := errgroup.WithContext(ctx)

	for routineIndex := range routines {
		eg.Go(func() error {
			for {
				if err := ctx.Err(); err != nil {
					return err
				}

				workIndex := counter.Add(1)
				if workIndex > workSize {
					return nil
				}

				if err := do(workIndex-1, routineIndex); err != nil {
					return err
				}
			}
		})
	}
	return eg.Wait()
}
