package routing

import (
	"testing"

	"github.com/lintang-b-s/routeserve/pkg/contractor"
	"github.com/lintang-b-s/routeserve/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

/*
from https://jlazarsfeld.github.io/ch.150.project/sections/8-contraction/
p=0, v=1, q=2, w=3, r=4, f=5

	 p
	  \
	   \
	    10
	     \
		  v -----3----- r
		 /            /
		6            5
	   /    		/
	  q ---5----- w ----15---- f

every edge bidirectional
*/
func buildTestGraph(t *testing.T) *datastructure.Graph {
	t.Helper()

	pairs := []struct {
		u, v   int32
		weight float64
	}{
		{0, 1, 10},
		{1, 4, 3},
		{1, 2, 6},
		{2, 3, 5},
		{3, 4, 5},
		{3, 5, 15},
	}

	edges := make([]datastructure.Edge, 0, 2*len(pairs))
	for _, p := range pairs {
		edges = append(edges, datastructure.NewEdge(int32(len(edges)), p.u, p.v, p.weight, p.weight))
		edges = append(edges, datastructure.NewEdge(int32(len(edges)), p.v, p.u, p.weight, p.weight))
	}

	g, err := datastructure.NewGraph(6, edges)
	assert.NoError(t, err)
	return g
}

func testGraphCoordinates() ([]float64, []float64) {
	lat := []float64{47.58677, 47.5788, 47.64029, 47.62734, 47.60350, 47.57074}
	lon := []float64{-122.18003, -122.2332, -122.17226, -122.14634, -122.18170, -122.16883}
	return lat, lon
}

func buildContractedTestGraph(t *testing.T) *datastructure.ContractedGraph {
	t.Helper()

	g := buildTestGraph(t)
	lat, lon := testGraphCoordinates()

	nodes := make([]datastructure.CHNode, 0, g.NumberOfVertices())
	for v := int32(0); v < g.NumberOfVertices(); v++ {
		nodes = append(nodes, datastructure.NewCHNode(v, lat[v], lon[v], 0))
	}

	ch, err := datastructure.NewContractedGraph(nodes, g)
	assert.NoError(t, err)
	assert.NoError(t, contractor.NewContractor(ch, zap.NewNop()).Contraction())
	return ch
}

// two components: {0, 1} and {2, 3}
func buildDisconnectedGraph(t *testing.T) *datastructure.Graph {
	t.Helper()

	g, err := datastructure.NewGraph(4, []datastructure.Edge{
		datastructure.NewEdge(0, 0, 1, 2, 2),
		datastructure.NewEdge(1, 1, 0, 2, 2),
		datastructure.NewEdge(2, 2, 3, 7, 7),
		datastructure.NewEdge(3, 3, 2, 7, 7),
	})
	assert.NoError(t, err)
	return g
}

func contractDisconnectedGraph(t *testing.T, g *datastructure.Graph) *datastructure.ContractedGraph {
	t.Helper()

	nodes := make([]datastructure.CHNode, 0, g.NumberOfVertices())
	for v := int32(0); v < g.NumberOfVertices(); v++ {
		nodes = append(nodes, datastructure.NewCHNode(v, float64(v)*0.01, float64(v)*0.01, 0))
	}

	ch, err := datastructure.NewContractedGraph(nodes, g)
	assert.NoError(t, err)
	assert.NoError(t, contractor.NewContractor(ch, zap.NewNop()).Contraction())
	return ch
}
