// SPDX-License-Identifier: MIT

// LocalGraph is the polymorphic local-graph-access capability shared by
// *Graph and *localgraph.AdjacencyListLocalGraph, so algorithms that only
// need local neighborhood queries (conductance, local clustering) can
// consume either backing store uniformly, per the Design Notes.
package spectral

// LocalGraph exposes local neighborhood queries independent of the backing
// storage (in-memory sparse adjacency, or a file-backed adjacency list).
type LocalGraph interface {
	// Degree returns the weighted degree of vertex v.
	Degree(v int) (float64, error)
	// DegreeUnweighted returns the unweighted degree of vertex v.
	DegreeUnweighted(v int) (int, error)
	// Neighbors returns the weighted edges incident to v, excluding any
	// self-loop entry.
	Neighbors(v int) ([]WeightedEdge, error)
	// NeighborsUnweighted returns the neighbor vertex indices of v.
	NeighborsUnweighted(v int) ([]int, error)
	// VertexExists reports whether v is a valid vertex index.
	VertexExists(v int) bool
	// DegreesBatch returns Degree(v) for every v in vs, in order.
	DegreesBatch(vs []int) ([]float64, error)
}
