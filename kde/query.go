// SPDX-License-Identifier: MIT

// Query answers a single point's Gaussian kernel density sum by scanning
// the lattice from the coarsest log_nmu value downward: each log_nmu
// supplies k1 independent estimates (one per trial), combined by median,
// and the first log_nmu whose median estimate is consistent with that
// scale is accepted. If no scale accepts, the result floors at 1/n.
package kde

import (
	"math"
	"sort"
)

// acceptanceTest reports whether estimate (a mean density, i.e. a sum
// divided by n) is at least 2^logNmu / n, the magnitude scale the sampling
// schedule at this level was tuned for: the
// scheme under-samples by design at coarse log_nmu, so a true density sum
// below that scale would be swamped by sampling noise rather than measured
// precisely - descend to a finer level instead.
func acceptanceTest(estimate float64, n, logNmu int) bool {
	return estimate*float64(n) >= math.Exp2(float64(logNmu))
}

func median(xs []float64) float64 {
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	m := len(sorted)
	if m == 0 {
		return 0
	}
	if m%2 == 1 {
		return sorted[m/2]
	}
	return (sorted[m/2-1] + sorted[m/2]) / 2
}

func squaredDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// queryAt computes the single estimate contributed by lattice row
// units[i][trial] against point q.
func (lt *lattice) queryAt(i, trial int, q []float64, a float64, n int) float64 {
	row := lt.units[i][trial]
	jMax := len(row)
	var sum float64
	for j := 1; j <= jMax; j++ {
		hu := row[j-1]
		rPrevSq := 0.0
		if j > 1 {
			rPrevSq = shellRadiusSquared(j-1, a)
		}
		rSq := shellRadiusSquared(j, a)

		for _, p := range hu.candidatePoints(q) {
			d2 := squaredDistance(q, p)
			if d2 <= rPrevSq || d2 > rSq {
				continue
			}
			sum += math.Exp(-a*d2) / hu.p
		}
	}
	return sum / float64(n)
}

// query runs the full descending log_nmu scan for one point, returning the
// accepted estimate of the mean density (kernel sum divided by n).
func (lt *lattice) query(q []float64, a float64) float64 {
	n := lt.n
	for i := lt.numIter - 1; i >= 0; i-- {
		logNmu := 2 * i
		estimates := make([]float64, lt.k1)
		for trial := 0; trial < lt.k1; trial++ {
			estimates[trial] = lt.queryAt(i, trial, q, a, n)
		}
		m := median(estimates)
		if acceptanceTest(m, n, logNmu) {
			return m
		}
	}
	return 1 / float64(n)
}
