package sim

import (
	"context"
	"sync"
)

// Ensemble runs N independent simulations concurrently, one goroutine per
// body. The build function is called once per run and must return a
// Simulator owning a fresh system/integrator pair; nothing is shared
// between runs.
type Ensemble struct {
	numRuns int
	build   func(run int) *Simulator
}

func NewEnsemble(numRuns int, build func(run int) *Simulator) *Ensemble {
	return &Ensemble{numRuns: numRuns, build: build}
}

func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = e.build(idx).Run(ctx, cfg)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
