package contractor

import (
	"testing"

	"github.com/lintang-b-s/routeserve/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func buildContractedGrid(t *testing.T) *datastructure.ContractedGraph {
	t.Helper()

	// 0 - 1 - 2
	// |       |
	// 3 ----- 4
	pairs := []struct {
		u, v   int32
		weight float64
	}{
		{0, 1, 1},
		{1, 2, 1},
		{0, 3, 2},
		{3, 4, 2},
		{2, 4, 1},
	}
	edges := make([]datastructure.Edge, 0, 2*len(pairs))
	for _, p := range pairs {
		edges = append(edges, datastructure.NewEdge(int32(len(edges)), p.u, p.v, p.weight, p.weight))
		edges = append(edges, datastructure.NewEdge(int32(len(edges)), p.v, p.u, p.weight, p.weight))
	}
	g, err := datastructure.NewGraph(5, edges)
	assert.NoError(t, err)

	nodes := make([]datastructure.CHNode, 0, 5)
	for v := int32(0); v < 5; v++ {
		nodes = append(nodes, datastructure.NewCHNode(v, float64(v)*0.01, float64(v)*0.01, 0))
	}
	ch, err := datastructure.NewContractedGraph(nodes, g)
	assert.NoError(t, err)

	assert.NoError(t, NewContractor(ch, zap.NewNop()).Contraction())
	return ch
}

func TestContractionAssignsUniqueOrderPositions(t *testing.T) {
	ch := buildContractedGrid(t)

	seen := make(map[int32]bool)
	for v := int32(0); v < ch.NumberOfNodes(); v++ {
		pos := ch.GetNode(v).OrderPos
		assert.True(t, pos >= 0 && pos < ch.NumberOfNodes())
		assert.False(t, seen[pos], "order position %d assigned twice", pos)
		seen[pos] = true
	}
}

func TestShortcutsChainThroughTheirViaNode(t *testing.T) {
	ch := buildContractedGrid(t)

	for edgeID := int32(0); edgeID < ch.NumberOfOutEdges(); edgeID++ {
		edge := ch.GetOutEdge(edgeID)
		if !edge.IsShortcut {
			continue
		}
		one := ch.GetOutEdge(edge.RemovedEdgeOne)
		two := ch.GetOutEdge(edge.RemovedEdgeTwo)

		assert.Equal(t, edge.From, one.From)
		assert.Equal(t, edge.ViaNode, one.To)
		assert.Equal(t, edge.ViaNode, two.From)
		assert.Equal(t, edge.To, two.To)
		assert.InDelta(t, edge.Weight, one.Weight+two.Weight, 1e-9)
	}
}

func TestShortcutViaNodeContractedBeforeEndpoints(t *testing.T) {
	ch := buildContractedGrid(t)

	for edgeID := int32(0); edgeID < ch.NumberOfOutEdges(); edgeID++ {
		edge := ch.GetOutEdge(edgeID)
		if !edge.IsShortcut {
			continue
		}
		viaOrder := ch.GetNode(edge.ViaNode).OrderPos
		assert.Less(t, viaOrder, ch.GetNode(edge.From).OrderPos)
		assert.Less(t, viaOrder, ch.GetNode(edge.To).OrderPos)
	}
}

func TestHubLabelsCoverEveryVertex(t *testing.T) {
	ch := buildContractedGrid(t)

	labels, err := NewHubLabeler(ch, zap.NewNop()).BuildLabels()
	assert.NoError(t, err)
	assert.Equal(t, ch.NumberOfNodes(), labels.NumberOfVertices())

	for v := int32(0); v < ch.NumberOfNodes(); v++ {
		forward := labels.ForwardLabel(v)
		backward := labels.BackwardLabel(v)

		// every vertex is its own hub at distance zero
		selfForward, ok := datastructure.FindLabelEntry(forward, v)
		assert.True(t, ok)
		assert.Equal(t, 0.0, selfForward.Weight)
		assert.Equal(t, int32(-1), selfForward.Parent)

		selfBackward, ok := datastructure.FindLabelEntry(backward, v)
		assert.True(t, ok)
		assert.Equal(t, 0.0, selfBackward.Weight)
	}
}

func TestHubLabelEntriesNameRealEdges(t *testing.T) {
	ch := buildContractedGrid(t)

	labels, err := NewHubLabeler(ch, zap.NewNop()).BuildLabels()
	assert.NoError(t, err)

	for v := int32(0); v < ch.NumberOfNodes(); v++ {
		for _, entry := range labels.ForwardLabel(v) {
			if entry.Parent == -1 {
				continue
			}
			edge := ch.GetOutEdge(entry.EdgeID)
			assert.Equal(t, entry.Parent, edge.From)
			assert.Equal(t, entry.Hub, edge.To)
		}
		for _, entry := range labels.BackwardLabel(v) {
			if entry.Parent == -1 {
				continue
			}
			edge := ch.GetOutEdge(entry.EdgeID)
			assert.Equal(t, entry.Hub, edge.From)
			assert.Equal(t, entry.Parent, edge.To)
		}
	}
}
