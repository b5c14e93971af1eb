// SPDX-License-Identifier: MIT
package kde

import "math"

// Tuning constants for the CKNS parameter schedule (SPEC_FULL.md §4.C.1).
const (
	c1 = 0.2
	c2 = 1.0

	// hashUnitCutoff is the sampled-subset size at or below which a HashUnit
	// stores its points directly (brute-force scan) rather than paying for
	// an E2LSH index that would not pay for itself at this size.
	hashUnitCutoff = 1000
)

// logNmuMax returns ceil(log2(n)), the exclusive upper bound on the log_nmu
// values the outer schedule iterates over (log_nmu = 2*i always stays below it).
func logNmuMax(n int) int {
	if n < 1 {
		return 0
	}
	return int(math.Ceil(math.Log2(float64(n))))
}

// numLogMuIterations returns the number of log_nmu values the construction
// loop iterates over: ceil(logNmuMax(n) / 2), since log_nmu steps by 2.
func numLogMuIterations(n int) int {
	return int(math.Ceil(float64(logNmuMax(n)) / 2))
}

// shellCount returns J, the number of concentric annulus shells built for a
// given log_nmu value.
func shellCount(n, logNmu int) int {
	j := logNmuMax(n) - logNmu
	if j < 1 {
		return 1
	}
	return j
}

// k1Trials returns k1, the number of independent repetitions combined by
// median at query time to drive the per-query failure
// probability down, ceil(c1 * ln(n) / eps^2).
func k1Trials(n int, eps float64) int {
	k := math.Ceil(c1 * math.Log(float64(n)) / (eps * eps))
	if k < 1 {
		k = 1
	}
	return int(k)
}

// samplingProbability returns p(j, log_nmu) = 2^-j * 2^-log_nmu, the
// probability with which a given data point is retained in shell j of the
// log_nmu-indexed HashUnit family.
func samplingProbability(j, logNmu int) float64 {
	return math.Exp2(-float64(j)) * math.Exp2(-float64(logNmu))
}

// shellRadiusSquared returns r_j^2 = j * ln(2) / a, the squared outer radius
// of annulus shell j under kernel scale a.
func shellRadiusSquared(j int, a float64) float64 {
	return float64(j) * math.Ln2 / a
}

// lshParams returns the (K, L) Euclidean-LSH family parameters for shell j
// of J under collision probability pj at radius r_j, following the standard
// Indyk-Motwani amplification: K controls per-table selectivity, L controls
// the number of tables needed to recall a collision with high probability.
func lshParams(n, j, jMax int, pj float64) (k, l int) {
	phi := math.Ceil(float64(j) / float64(jMax) * float64(jMax-j+1))
	if phi < 1 {
		phi = 1
	}
	logPj := math.Log2(pj)
	if logPj == 0 {
		logPj = -1e-9
	}
	k = int(math.Max(1, math.Floor(-phi/logPj)))
	l = int(math.Ceil(c2 * math.Log2(float64(n)) * math.Exp2(phi)))
	if l < 1 {
		l = 1
	}
	return k, l
}
