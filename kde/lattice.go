// SPDX-License-Identifier: MIT

// The CKNS lattice is a 3-dimensional grid of hashUnit cells indexed by
// (log_nmu iteration, trial, shell). Construction is embarrassingly
// parallel: every cell is an independent Bernoulli sample of the same point
// set, so a worker pool fills the lattice with each worker owning disjoint
// cells and writing directly into a preallocated slice - no per-cell mutex
// is needed on this path. A secondary, literal mutex-guarded-append builder
// (buildLatticeSerial) is kept for traceability against the construction as
// originally described; nothing in the package calls it.
package kde

import (
	"context"
	"runtime"
	"sync"
)

// lattice holds every hashUnit for one CKNSGaussianKDE instance.
type lattice struct {
	n       int
	numIter int // number of log_nmu values
	k1      int
	units   [][][]*hashUnit // [i][trial][j-1], innermost length shellCount(n, 2*i)
}

// latticeCellCoord addresses one (log_nmu iteration, trial, shell) cell.
// idx is this cell's position in the deterministic, worker-independent
// enumeration order used to derive its RNG stream.
type latticeCellCoord struct {
	i, trial, j int
	idx         uint64
}

// buildLattice constructs the full lattice using a fixed-size worker pool,
// grounded on the job-channel/WaitGroup pattern used for parallel restarts
// elsewhere in this corpus. Each worker computes buildHashUnit for its
// assigned coordinate and writes it to its own (i, trial, j-1) slot; no two
// workers ever touch the same slot, so no synchronization guards the writes
// themselves.
func buildLattice(ctx context.Context, points [][]float64, a float64, eps float64, cfg config) (*lattice, error) {
	n := len(points)
	numIter := numLogMuIterations(n)
	k1 := k1Trials(n, eps)

	lt := &lattice{n: n, numIter: numIter, k1: k1}
	lt.units = make([][][]*hashUnit, numIter)

	var coords []latticeCellCoord
	for i := 0; i < numIter; i++ {
		logNmu := 2 * i
		jMax := shellCount(n, logNmu)
		lt.units[i] = make([][]*hashUnit, k1)
		for trial := 0; trial < k1; trial++ {
			lt.units[i][trial] = make([]*hashUnit, jMax)
			for j := 1; j <= jMax; j++ {
				coords = append(coords, latticeCellCoord{i: i, trial: trial, j: j, idx: uint64(len(coords))})
			}
		}
	}

	workers := cfg.workers
	if workers > len(coords) {
		workers = len(coords)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan latticeCellCoord, len(coords))
	for _, c := range coords {
		jobs <- c
	}
	close(jobs)

	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				logNmu := 2 * c.i
				jMax := shellCount(n, logNmu)
				// Each cell derives its own RNG stream from (base seed,
				// cell index) alone, so results are reproducible regardless
				// of which worker happens to draw which job: c.idx is fixed
				// at coordinate-enumeration time, never from a worker id.
				rng := deriveRNG(cfg.seed, c.idx)
				lt.units[c.i][c.trial][c.j-1] = buildHashUnit(points, logNmu, c.j, jMax, a, n, rng)
			}
		}()
	}

	wg.Wait()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	return lt, nil
}

// buildLatticeSerial is the literal construction model: a single shared
// results slice appended to under a mutex as each cell finishes, rather
// than written into disjoint preallocated slots. Same lattice shape as
// buildLattice, but it draws one RNG stream per (i, trial) row rather than
// one per cell, so its samples differ from buildLattice's for the same
// seed. Retained for traceability; not used by NewCKNSGaussianKDE.
func buildLatticeSerial(points [][]float64, a float64, eps float64, cfg config) *lattice {
	n := len(points)
	numIter := numLogMuIterations(n)
	k1 := k1Trials(n, eps)

	lt := &lattice{n: n, numIter: numIter, k1: k1}
	lt.units = make([][][]*hashUnit, numIter)
	for i := range lt.units {
		lt.units[i] = make([][]*hashUnit, k1)
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, runtime.NumCPU())

	for i := 0; i < numIter; i++ {
		logNmu := 2 * i
		jMax := shellCount(n, logNmu)
		for trial := 0; trial < k1; trial++ {
			wg.Add(1)
			sem <- struct{}{}
			go func(i, trial, logNmu, jMax int) {
				defer wg.Done()
				defer func() { <-sem }()
				row := make([]*hashUnit, jMax)
				rng := rngFromSeed(deriveSeed(cfg.seed, uint64(i*k1+trial)))
				for j := 1; j <= jMax; j++ {
					row[j-1] = buildHashUnit(points, logNmu, j, jMax, a, n, rng)
				}
				mu.Lock()
				lt.units[i][trial] = row
				mu.Unlock()
			}(i, trial, logNmu, jMax)
		}
	}

	wg.Wait()
	return lt
}
