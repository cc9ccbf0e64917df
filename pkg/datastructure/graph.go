package datastructure

import (
	"fmt"
)

// Edge is a directed edge of the original (non-contracted) road graph.
// Weight is the routing cost, Dist the geometric length in meters.
type Edge struct {
	EdgeID int32
	From   int32
	To     int32
	Weight float64
	Dist   float64
}

func NewEdge(edgeID, from, to int32, weight, dist float64) Edge {
	return Edge{
		EdgeID: edgeID,
		From:   from,
		To:     to,
		Weight: weight,
		Dist:   dist,
	}
}

// Graph is the immutable original road-network snapshot. It is built once at
// startup and shared read-only by every request handler, so none of its
// methods mutate state.
type Graph struct {
	numVertices int32
	outEdges    []Edge
	firstOut    [][]int32
}

// NewGraph builds the adjacency structure from an edge list. An edge endpoint
// outside [0, numVertices) means the artifact is inconsistent and the graph
// must not be served.
func NewGraph(numVertices int32, edges []Edge) (*Graph, error) {
	g := &Graph{
		numVertices: numVertices,
		outEdges:    make([]Edge, 0, len(edges)),
		firstOut:    make([][]int32, numVertices),
	}

	for _, edge := range edges {
		if edge.From < 0 || edge.From >= numVertices || edge.To < 0 || edge.To >= numVertices {
			return nil, fmt.Errorf("edge %d references vertex outside of [0, %d): (%d -> %d)",
				edge.EdgeID, numVertices, edge.From, edge.To)
		}
		if edge.Weight < 0 {
			return nil, fmt.Errorf("edge %d has negative weight %f", edge.EdgeID, edge.Weight)
		}

		edgeID := int32(len(g.outEdges))
		edge.EdgeID = edgeID
		g.outEdges = append(g.outEdges, edge)
		g.firstOut[edge.From] = append(g.firstOut[edge.From], edgeID)
	}

	return g, nil
}

func (g *Graph) NumberOfVertices() int32 {
	return g.numVertices
}

func (g *Graph) NumberOfEdges() int32 {
	return int32(len(g.outEdges))
}

func (g *Graph) GetOutEdge(edgeID int32) Edge {
	return g.outEdges[edgeID]
}

func (g *Graph) GetNodeFirstOutEdges(nodeID int32) []int32 {
	return g.firstOut[nodeID]
}

// EdgeBetween returns the cheapest direct edge from u to v, if any. Parallel
// edges may exist in the source data; the minimum-weight one is the only one
// a shortest path can use.
func (g *Graph) EdgeBetween(u, v int32) (Edge, bool) {
	if u < 0 || u >= g.numVertices {
		return Edge{}, false
	}

	var (
		best  Edge
		found bool
	)
	for _, edgeID := range g.firstOut[u] {
		edge := g.outEdges[edgeID]
		if edge.To != v {
			continue
		}
		if !found || edge.Weight < best.Weight {
			best = edge
			found = true
		}
	}
	return best, found
}

func (g *Graph) IsValidVertex(v int32) bool {
	return v >= 0 && v < g.numVertices
}
