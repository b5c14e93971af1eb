// SPDX-License-Identifier: MIT

// HashUnit is one (log_nmu, j) cell of the CKNS lattice: an independent
// Bernoulli sample of the data set at rate p(j, log_nmu), queried either by
// brute-force scan (small samples) or through an E2LSH table family tuned to
// shell j's radius (large samples).
package kde

import (
	"math"
	"math/rand"
)

// hashUnit answers "which sampled points fall near q" for one lattice cell.
type hashUnit struct {
	logNmu int
	j      int
	jMax   int
	p      float64 // samplingProbability(j, logNmu)

	points [][]float64 // sampled points

	lsh *e2lshIndex // non-nil iff len(points) > hashUnitCutoff
}

// buildHashUnit samples the data set at rate p(j, logNmu) using rng, and
// indexes the result either directly or through an E2LSH family tuned for
// shell j's outer radius, depending on the sample's size.
func buildHashUnit(allPoints [][]float64, logNmu, j, jMax int, a float64, n int, rng *rand.Rand) *hashUnit {
	p := samplingProbability(j, logNmu)

	var pts [][]float64
	for _, pt := range allPoints {
		if rng.Float64() < p {
			pts = append(pts, pt)
		}
	}

	hu := &hashUnit{
		logNmu: logNmu, j: j, jMax: jMax, p: p,
		points: pts,
	}

	if len(pts) > hashUnitCutoff {
		rJ := math.Sqrt(shellRadiusSquared(j, a)) // shell j's true (linear) outer radius
		w := rJ
		if w <= 0 {
			w = 1
		}
		pj := collisionProbability(w, w) // p(r) at r == w by construction
		k, l := lshParams(n, j, jMax, pj)
		hu.lsh = buildE2LSH(pts, k, l, w, rng)
	}

	return hu
}

// candidatePoints returns the points this unit should evaluate the kernel
// against for query q: the full sample for a brute-force unit, or the
// deduplicated LSH bucket union for an indexed unit.
func (hu *hashUnit) candidatePoints(q []float64) [][]float64 {
	if hu.lsh == nil {
		return hu.points
	}
	idxs := hu.lsh.candidates(q)
	out := make([][]float64, len(idxs))
	for i, pi := range idxs {
		out[i] = hu.points[pi]
	}
	return out
}
