// SPDX-License-Identifier: MIT
package localgraph

import "errors"

var (
	// ErrFileUnreadable indicates the backing adjacency-list file could not
	// be opened or seeked.
	ErrFileUnreadable = errors.New("localgraph: file unreadable")

	// ErrMalformedLine indicates a content line did not match
	// "vertex_id: neighbor1[weight],neighbor2[weight],...".
	ErrMalformedLine = errors.New("localgraph: malformed adjacency-list line")

	// ErrVertexNotFound indicates the binary search over the file
	// exhausted its range without locating the requested vertex.
	ErrVertexNotFound = errors.New("localgraph: vertex not found")
)
