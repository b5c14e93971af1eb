// SPDX-License-Identifier: MIT

// Euclidean (p-stable) LSH family: K x L hash tables built from Gaussian
// random projections, following Datar-Indyk-Immorlica-Mirrokni. Projection
// dot products run through gonum's blas64, the same boundary used for dense
// vector arithmetic elsewhere in this toolkit.
package kde

import (
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
	"gonum.org/v1/gonum/blas/blas64"
)

// e2lshIndex is one K x L Euclidean-LSH table family over a fixed point
// subset, built at a target radius (the quantization width w).
type e2lshIndex struct {
	k, l int
	d    int
	w    float64

	// a[table][row] is a length-d Gaussian projection vector; b[table][row]
	// is its matching uniform offset in [0, w).
	a [][]blas64.Vector
	b [][]float64

	points [][]float64
	tables []map[string][]int
}

// buildE2LSH constructs a K x L table family over points at quantization
// width w, using rng for every random draw (never the package global RNG).
func buildE2LSH(points [][]float64, k, l int, w float64, rng *rand.Rand) *e2lshIndex {
	d := 0
	if len(points) > 0 {
		d = len(points[0])
	}

	idx := &e2lshIndex{
		k: k, l: l, d: d, w: w,
		a:      make([][]blas64.Vector, l),
		b:      make([][]float64, l),
		points: points,
		tables: make([]map[string][]int, l),
	}

	for t := 0; t < l; t++ {
		idx.a[t] = make([]blas64.Vector, k)
		idx.b[t] = make([]float64, k)
		for r := 0; r < k; r++ {
			data := make([]float64, d)
			for i := range data {
				data[i] = rng.NormFloat64()
			}
			idx.a[t][r] = blas64.Vector{N: d, Data: data, Inc: 1}
			idx.b[t][r] = rng.Float64() * w
		}
		idx.tables[t] = make(map[string][]int)
	}

	for pi, p := range points {
		vec := blas64.Vector{N: d, Data: p, Inc: 1}
		for t := 0; t < l; t++ {
			key := idx.signature(vec, t)
			idx.tables[t][key] = append(idx.tables[t][key], pi)
		}
	}

	return idx
}

// signature computes the K-dimensional hash signature of vec under table t,
// encoded as a delimited string key.
func (idx *e2lshIndex) signature(vec blas64.Vector, t int) string {
	var sb strings.Builder
	for r := 0; r < idx.k; r++ {
		dot := blas64.Dot(vec, idx.a[t][r])
		bucket := int64(math.Floor((dot + idx.b[t][r]) / idx.w))
		if r > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(strconv.FormatInt(bucket, 10))
	}
	return sb.String()
}

// candidates unions the L bucket hits for q, deduplicating point indices with
// a bitmap rather than a map: each table can rehit the same point under a
// different bucket key, and a bitmap's Contains/Add pair is cheaper than a
// Go map at the index cardinalities the lattice's cutoff admits.
func (idx *e2lshIndex) candidates(q []float64) []int {
	vec := blas64.Vector{N: idx.d, Data: q, Inc: 1}
	seen := roaring.New()
	out := make([]int, 0)
	for t := 0; t < idx.l; t++ {
		key := idx.signature(vec, t)
		for _, pi := range idx.tables[t][key] {
			u := uint32(pi)
			if !seen.Contains(u) {
				seen.Add(u)
				out = append(out, pi)
			}
		}
	}
	return out
}

// collisionProbability returns p(r), the probability that two points at
// Euclidean distance r collide under a single (K=1) hash function of this
// family's width w, per the standard p-stable (Gaussian) LSH formula.
func collisionProbability(r, w float64) float64 {
	if r == 0 {
		return 1
	}
	c := w / r
	return 1 - 2*stdNormalCDF(-c) - (2/(math.Sqrt(2*math.Pi)*c))*(1-math.Exp(-(c*c)/2))
}

// stdNormalCDF evaluates the standard normal CDF via the error function.
func stdNormalCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}
