package routing

import (
	"fmt"
	"math"

	"github.com/lintang-b-s/routeserve/pkg/datastructure"
)

const validationEps = 1e-6

// PathValidator independently recomputes a returned path against the
// original graph. A failure here means a backend or expansion bug, not a bad
// request: callers must report it as a server fault.
type PathValidator struct {
	graph *datastructure.Graph
}

func NewPathValidator(graph *datastructure.Graph) *PathValidator {
	return &PathValidator{graph: graph}
}

func (pv *PathValidator) Validate(req ShortestPathRequest, path Path) error {
	if len(path.Vertices) == 0 {
		return fmt.Errorf("path is empty")
	}
	if path.Vertices[0] != req.Source {
		return fmt.Errorf("path starts at %d, request source is %d", path.Vertices[0], req.Source)
	}
	if last := path.Vertices[len(path.Vertices)-1]; last != req.Target {
		return fmt.Errorf("path ends at %d, request target is %d", last, req.Target)
	}
	if len(path.Edges) != len(path.Vertices)-1 {
		return fmt.Errorf("path has %d vertices but %d edges", len(path.Vertices), len(path.Edges))
	}

	recomputed := 0.0
	for i := 0; i+1 < len(path.Vertices); i++ {
		u, v := path.Vertices[i], path.Vertices[i+1]

		edge, ok := pv.graph.EdgeBetween(u, v)
		if !ok {
			return fmt.Errorf("consecutive vertices (%d, %d) are not connected in the original graph", u, v)
		}

		// the backend may name any parallel edge; its weight still has to
		// match an existing edge between the pair
		edgeID := path.Edges[i]
		if edgeID >= 0 && edgeID < pv.graph.NumberOfEdges() {
			named := pv.graph.GetOutEdge(edgeID)
			if named.From == u && named.To == v {
				edge = named
			}
		}

		recomputed += edge.Weight
	}

	if math.Abs(recomputed-path.Weight) > validationEps {
		return fmt.Errorf("reported weight %f does not match recomputed weight %f",
			path.Weight, recomputed)
	}
	return nil
}
