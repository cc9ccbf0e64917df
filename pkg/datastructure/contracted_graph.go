package datastructure

import (
	"fmt"
)

// CHNode is a vertex of the contracted graph. Vertex ids are shared with the
// original graph; contraction never introduces new vertices, only shortcut
// edges. OrderPos is the contraction order assigned during preprocessing.
type CHNode struct {
	ID       int32
	Lat      float64
	Lon      float64
	OrderPos int32
}

func NewCHNode(id int32, lat, lon float64, orderPos int32) CHNode {
	return CHNode{
		ID:       id,
		Lat:      lat,
		Lon:      lon,
		OrderPos: orderPos,
	}
}

// CHEdge is an edge of the contracted graph. A shortcut edge stands for the
// two constituent out-edges RemovedEdgeOne (From -> ViaNode) and
// RemovedEdgeTwo (ViaNode -> To), each of which may itself be a shortcut.
// Original edges keep the id they had in the non-contracted graph in
// OrigEdgeID. In-edges store the reversed direction for the backward search;
// MirrorID links each in-edge to its out-edge twin and vice versa.
type CHEdge struct {
	EdgeID         int32
	Weight         float64
	Dist           float64
	From           int32
	To             int32
	IsShortcut     bool
	ViaNode        int32
	RemovedEdgeOne int32
	RemovedEdgeTwo int32
	OrigEdgeID     int32
	MirrorID       int32
}

// ContractedGraph is mutated only by the contractor during preprocessing.
// Once contraction finished (or the graph was deserialized from an
// artifact), it is shared read-only by all request handlers.
type ContractedGraph struct {
	nodes         []CHNode
	outEdges      []CHEdge
	inEdges       []CHEdge
	firstOut      [][]int32
	firstIn       [][]int32
	shortcutCount int64
}

// NewContractedGraph initializes the contracted graph with the original
// edge set; no shortcuts yet. Node count must match the graph vertex count.
func NewContractedGraph(nodes []CHNode, g *Graph) (*ContractedGraph, error) {
	if int32(len(nodes)) != g.NumberOfVertices() {
		return nil, fmt.Errorf("node count %d does not match graph vertex count %d",
			len(nodes), g.NumberOfVertices())
	}

	ch := &ContractedGraph{
		nodes:    nodes,
		outEdges: make([]CHEdge, 0, g.NumberOfEdges()),
		inEdges:  make([]CHEdge, 0, g.NumberOfEdges()),
		firstOut: make([][]int32, len(nodes)),
		firstIn:  make([][]int32, len(nodes)),
	}

	for edgeID := int32(0); edgeID < g.NumberOfEdges(); edgeID++ {
		edge := g.GetOutEdge(edgeID)
		ch.addEdgePair(edge.From, edge.To, edge.Weight, edge.Dist, false, -1, -1, -1, edge.EdgeID)
	}

	return ch, nil
}

func (ch *ContractedGraph) addEdgePair(from, to int32, weight, dist float64, shortcut bool,
	via, removedOne, removedTwo, origEdgeID int32) (int32, int32) {

	outID := int32(len(ch.outEdges))
	inID := int32(len(ch.inEdges))

	ch.outEdges = append(ch.outEdges, CHEdge{
		EdgeID:         outID,
		Weight:         weight,
		Dist:           dist,
		From:           from,
		To:             to,
		IsShortcut:     shortcut,
		ViaNode:        via,
		RemovedEdgeOne: removedOne,
		RemovedEdgeTwo: removedTwo,
		OrigEdgeID:     origEdgeID,
		MirrorID:       inID,
	})
	ch.firstOut[from] = append(ch.firstOut[from], outID)

	// in-edge twin, traversal direction reversed for the backward search
	ch.inEdges = append(ch.inEdges, CHEdge{
		EdgeID:         inID,
		Weight:         weight,
		Dist:           dist,
		From:           to,
		To:             from,
		IsShortcut:     shortcut,
		ViaNode:        via,
		RemovedEdgeOne: removedOne,
		RemovedEdgeTwo: removedTwo,
		OrigEdgeID:     origEdgeID,
		MirrorID:       outID,
	})
	ch.firstIn[to] = append(ch.firstIn[to], inID)

	return outID, inID
}

// AddShortcut inserts the shortcut (from -> to) bypassing via, or lowers the
// weight of an existing shortcut between the same endpoints. removedOne and
// removedTwo are out-edge ids of the replaced sub-path.
func (ch *ContractedGraph) AddShortcut(from, to int32, weight, dist float64,
	via, removedOne, removedTwo int32) {

	for _, outID := range ch.firstOut[from] {
		edge := ch.outEdges[outID]
		if edge.To != to || !edge.IsShortcut {
			continue
		}
		if weight < edge.Weight {
			ch.outEdges[outID].Weight = weight
			ch.outEdges[outID].Dist = dist
			ch.outEdges[outID].ViaNode = via
			ch.outEdges[outID].RemovedEdgeOne = removedOne
			ch.outEdges[outID].RemovedEdgeTwo = removedTwo

			inID := edge.MirrorID
			ch.inEdges[inID].Weight = weight
			ch.inEdges[inID].Dist = dist
			ch.inEdges[inID].ViaNode = via
			ch.inEdges[inID].RemovedEdgeOne = removedOne
			ch.inEdges[inID].RemovedEdgeTwo = removedTwo
		}
		return
	}

	ch.addEdgePair(from, to, weight, dist, true, via, removedOne, removedTwo, -1)
	ch.shortcutCount++
}

func (ch *ContractedGraph) SetOrderPos(nodeID, orderPos int32) {
	ch.nodes[nodeID].OrderPos = orderPos
}

func (ch *ContractedGraph) NumberOfNodes() int32 {
	return int32(len(ch.nodes))
}

func (ch *ContractedGraph) NumberOfOutEdges() int32 {
	return int32(len(ch.outEdges))
}

func (ch *ContractedGraph) ShortcutCount() int64 {
	return ch.shortcutCount
}

func (ch *ContractedGraph) GetNode(nodeID int32) CHNode {
	return ch.nodes[nodeID]
}

func (ch *ContractedGraph) GetOutEdge(edgeID int32) CHEdge {
	return ch.outEdges[edgeID]
}

func (ch *ContractedGraph) GetInEdge(edgeID int32) CHEdge {
	return ch.inEdges[edgeID]
}

func (ch *ContractedGraph) GetNodeFirstOutEdges(nodeID int32) []int32 {
	return ch.firstOut[nodeID]
}

func (ch *ContractedGraph) GetNodeFirstInEdges(nodeID int32) []int32 {
	return ch.firstIn[nodeID]
}

func (ch *ContractedGraph) IsShortcut(outEdgeID int32) bool {
	return ch.outEdges[outEdgeID].IsShortcut
}

func (ch *ContractedGraph) IsValidVertex(v int32) bool {
	return v >= 0 && v < int32(len(ch.nodes))
}

func (ch *ContractedGraph) IsValidOutEdge(edgeID int32) bool {
	return edgeID >= 0 && edgeID < int32(len(ch.outEdges))
}
