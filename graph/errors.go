package graph

import "errors"

var (
	// ErrDuplicateVertex is returned when a vertex id is inserted twice.
	ErrDuplicateVertex = errors.New("duplicate vertex id")

	// ErrDanglingArc is returned when an arc references a missing vertex.
	ErrDanglingArc = errors.New("arc endpoint not in graph")
)
