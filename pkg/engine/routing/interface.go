package routing

import (
	"errors"
)

var (
	// ErrNoPathFound means source and target are not connected. An expected
	// outcome, not a fault.
	ErrNoPathFound = errors.New("no path found between source and target")

	// ErrInvalidVertex means a request referenced a vertex id outside the
	// graph snapshot. A programming or snapping error, fatal to the request.
	ErrInvalidVertex = errors.New("vertex id outside of graph snapshot")
)

// ShortestPathRequest is an ordered (source, target) vertex pair. Source may
// equal target; that yields a zero-weight single-vertex path.
type ShortestPathRequest struct {
	Source int32
	Target int32
}

func NewShortestPathRequest(source, target int32) ShortestPathRequest {
	return ShortestPathRequest{Source: source, Target: target}
}

// Path is a walk from the request source to its target over vertices of the
// original graph. Edges holds the original edge ids between consecutive
// vertices: len(Edges) == len(Vertices)-1. Weight is the minimal total edge
// weight, Dist the geometric length in meters.
type Path struct {
	Vertices []int32
	Edges    []int32
	Weight   float64
	Dist     float64
}

func singleVertexPath(v int32) Path {
	return Path{
		Vertices: []int32{v},
		Edges:    []int32{},
		Weight:   0,
		Dist:     0,
	}
}

// PathFinder answers shortest-path queries against a fixed, read-only graph
// snapshot. Implementations must be safe for concurrent use; per-query state
// lives on the stack of ShortestPath.
type PathFinder interface {
	ShortestPath(req ShortestPathRequest) (Path, error)
}
