// SPDX-License-Identifier: MIT

// Package localgraph implements a file-backed local-graph reader over a
// sorted adjacency-list file ("vertex_id: neighbor1[weight],neighbor2[weight],
// ..." lines, one per vertex, ascending by vertex_id). It answers local
// neighborhood queries (degree, neighbors) via binary search by byte offset
// rather than loading the whole file, and implements spectral.LocalGraph so
// local algorithms can run against either an in-memory spectral.Graph or a
// graph too large to hold in memory.
//
// This re-expresses the original C++ AdjacencyListLocalGraph's search and
// caching strategy idiomatically: io.SectionReader + bufio in place of
// ifstream/seekg/tellg, and plain maps guarded by a mutex in place of the
// original's member caches.
package localgraph

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/arnav-sen/stagraph/spectral"
)

// AdjacencyListLocalGraph answers local neighborhood queries against a
// sorted adjacency-list file without reading it into memory.
type AdjacencyListLocalGraph struct {
	file *os.File
	size int64

	mu            sync.Mutex
	offsetCache   map[int64]offsetHit // search offset -> (vertex id, line start) observed there
	neighborCache map[int][]spectral.WeightedEdge
}

type offsetHit struct {
	id        int
	lineStart int64
	eof       bool
}

// Open opens the adjacency-list file at path for local graph access.
func Open(path string) (*AdjacencyListLocalGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ErrFileUnreadable
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ErrFileUnreadable
	}
	return &AdjacencyListLocalGraph{
		file:          f,
		size:          info.Size(),
		offsetCache:   make(map[int64]offsetHit),
		neighborCache: make(map[int][]spectral.WeightedEdge),
	}, nil
}

// Close releases the underlying file handle.
func (g *AdjacencyListLocalGraph) Close() error {
	return g.file.Close()
}

// lookupAt finds the next well-formed content line starting at or after
// offset, discarding a partial line at offset first (mirroring the
// original's goto_next_content_line), and caches the result.
func (g *AdjacencyListLocalGraph) lookupAt(offset int64) (offsetHit, error) {
	if hit, ok := g.offsetCache[offset]; ok {
		return hit, nil
	}

	r := bufio.NewReader(io.NewSectionReader(g.file, offset, g.size-offset))
	pos := offset

	if offset != 0 {
		discarded, _ := r.ReadString('\n')
		pos += int64(len(discarded))
	}

	for {
		if pos >= g.size {
			hit := offsetHit{eof: true}
			g.offsetCache[offset] = hit
			return hit, nil
		}
		lineStart := pos
		line, _ := r.ReadString('\n')
		pos += int64(len(line))
		trimmed := strings.TrimRight(line, "\r\n")
		if trimmed == "" {
			continue
		}
		colon := strings.IndexByte(trimmed, ':')
		if colon < 0 {
			continue
		}
		id, err := strconv.Atoi(strings.TrimSpace(trimmed[:colon]))
		if err != nil {
			return offsetHit{}, ErrMalformedLine
		}
		hit := offsetHit{id: id, lineStart: lineStart}
		g.offsetCache[offset] = hit
		return hit, nil
	}
}

// findVertex binary-searches the file for vertex v's content line, returning
// its starting byte offset.
func (g *AdjacencyListLocalGraph) findVertex(v int) (int64, error) {
	lo, hi := int64(0), g.size
	for lo <= hi {
		mid := (lo + hi) / 2
		hit, err := g.lookupAt(mid)
		if err != nil {
			return 0, err
		}
		switch {
		case hit.eof || hit.id > v:
			hi = mid - 1
		case hit.id == v:
			return hit.lineStart, nil
		default:
			lo = mid + 1
		}
	}
	return 0, ErrVertexNotFound
}

// readFullLine reads the complete line starting at byte offset start.
func (g *AdjacencyListLocalGraph) readFullLine(start int64) (string, error) {
	r := bufio.NewReader(io.NewSectionReader(g.file, start, g.size-start))
	line, err := r.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", ErrFileUnreadable
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// parseContentLine parses "vertex_id: n1[w1],n2[w2],..." into edges from
// the line's source vertex. A neighbor with no bracketed weight defaults to
// weight 1.
func parseContentLine(line string) ([]spectral.WeightedEdge, error) {
	colon := strings.IndexByte(line, ':')
	if colon < 0 {
		return nil, ErrMalformedLine
	}
	rest := strings.TrimSpace(line[colon+1:])
	if rest == "" {
		return nil, nil
	}

	tokens := strings.Split(rest, ",")
	edges := make([]spectral.WeightedEdge, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		weight := 1.0
		idPart := tok
		if lb := strings.IndexByte(tok, '['); lb >= 0 {
			if !strings.HasSuffix(tok, "]") {
				return nil, ErrMalformedLine
			}
			idPart = tok[:lb]
			w, err := strconv.ParseFloat(tok[lb+1:len(tok)-1], 64)
			if err != nil {
				return nil, ErrMalformedLine
			}
			weight = w
		}
		to, err := strconv.Atoi(idPart)
		if err != nil {
			return nil, ErrMalformedLine
		}
		edges = append(edges, spectral.WeightedEdge{To: to, Weight: weight})
	}
	return edges, nil
}

// Neighbors returns the weighted edges incident to v, reading and caching
// the result on first access.
func (g *AdjacencyListLocalGraph) Neighbors(v int) ([]spectral.WeightedEdge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if cached, ok := g.neighborCache[v]; ok {
		return cached, nil
	}

	lineStart, err := g.findVertex(v)
	if err != nil {
		return nil, err
	}
	line, err := g.readFullLine(lineStart)
	if err != nil {
		return nil, err
	}
	edges, err := parseContentLine(line)
	if err != nil {
		return nil, err
	}
	g.neighborCache[v] = edges
	return edges, nil
}

// NeighborsUnweighted returns v's neighbor vertex indices.
func (g *AdjacencyListLocalGraph) NeighborsUnweighted(v int) ([]int, error) {
	edges, err := g.Neighbors(v)
	if err != nil {
		return nil, err
	}
	out := make([]int, len(edges))
	for i, e := range edges {
		out[i] = e.To
	}
	return out, nil
}

// Degree returns the weighted degree of vertex v.
func (g *AdjacencyListLocalGraph) Degree(v int) (float64, error) {
	edges, err := g.Neighbors(v)
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, e := range edges {
		sum += e.Weight
	}
	return sum, nil
}

// DegreeUnweighted returns the unweighted degree of vertex v.
func (g *AdjacencyListLocalGraph) DegreeUnweighted(v int) (int, error) {
	edges, err := g.Neighbors(v)
	if err != nil {
		return 0, err
	}
	return len(edges), nil
}

// VertexExists reports whether v has a content line in the file.
func (g *AdjacencyListLocalGraph) VertexExists(v int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, err := g.findVertex(v)
	return err == nil
}

// DegreesBatch returns Degree(v) for every v in vs, in order.
func (g *AdjacencyListLocalGraph) DegreesBatch(vs []int) ([]float64, error) {
	out := make([]float64, len(vs))
	for i, v := range vs {
		d, err := g.Degree(v)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

var _ spectral.LocalGraph = (*AdjacencyListLocalGraph)(nil)
