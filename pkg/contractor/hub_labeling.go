package contractor

import (
	"runtime"
	"time"

	"github.com/lintang-b-s/routeserve/pkg/concurrent"
	"github.com/lintang-b-s/routeserve/pkg/datastructure"
	"go.uber.org/zap"
)

// HubLabeler computes per-vertex hub labels on top of a finished contraction
// hierarchy. The forward label of v holds every node its upward search
// settles over out-edges, the backward label every node the upward search
// over in-edges settles. Each entry keeps its parent hub and connecting
// contracted edge so queries can rebuild the edge chain, not just the
// weight.
type HubLabeler struct {
	ch  *datastructure.ContractedGraph
	log *zap.Logger
}

func NewHubLabeler(ch *datastructure.ContractedGraph, log *zap.Logger) *HubLabeler {
	return &HubLabeler{ch: ch, log: log}
}

type vertexLabels struct {
	vertex   int32
	forward  []datastructure.LabelEntry
	backward []datastructure.LabelEntry
}

// BuildLabels runs the label searches for every vertex, fanned out over one
// worker per core.
func (hl *HubLabeler) BuildLabels() (*datastructure.HubLabels, error) {
	start := time.Now()
	n := hl.ch.NumberOfNodes()

	hl.log.Info("building hub labels...", zap.Int32("nodes", n))

	wp := concurrent.NewWorkerPool[int32, vertexLabels](runtime.NumCPU(), int(n))
	wp.Start(func(v int32) vertexLabels {
		return vertexLabels{
			vertex:   v,
			forward:  hl.upwardSearch(v, false),
			backward: hl.upwardSearch(v, true),
		}
	})
	for v := int32(0); v < n; v++ {
		wp.AddJob(v)
	}
	wp.Close()
	wp.Wait()

	forward := make([][]datastructure.LabelEntry, n)
	backward := make([][]datastructure.LabelEntry, n)
	for labels := range wp.CollectResults() {
		forward[labels.vertex] = labels.forward
		backward[labels.vertex] = labels.backward
	}

	labels, err := datastructure.NewHubLabels(forward, backward)
	if err != nil {
		return nil, err
	}

	hl.log.Info("hub labels built", zap.Duration("took", time.Since(start)))
	return labels, nil
}

type labelSearchEntry struct {
	parent int32
	edgeID int32
}

// upwardSearch is a dijkstra from v that only climbs the hierarchy: every
// relaxed edge leads to a node contracted later than the current one. With
// backward set it walks in-edges instead of out-edges, and records the
// road-direction twin of each in-edge so both label directions name
// contracted out-edges.
func (hl *HubLabeler) upwardSearch(v int32, backward bool) []datastructure.LabelEntry {
	dist := make(map[int32]float64)
	cameFrom := make(map[int32]labelSearchEntry)
	settled := make(map[int32]struct{})
	heapNodes := make(map[int32]*datastructure.PriorityQueueNode[int32])

	pq := datastructure.NewBinaryHeap[int32]()
	vNode := datastructure.NewPriorityQueueNode(0, v)
	heapNodes[v] = vNode
	pq.Insert(vNode)
	dist[v] = 0
	cameFrom[v] = labelSearchEntry{parent: -1, edgeID: -1}

	label := make([]datastructure.LabelEntry, 0)
	for !pq.IsEmpty() {
		curr, _ := pq.ExtractMin()
		currID := curr.GetItem()
		if _, ok := settled[currID]; ok {
			continue
		}
		settled[currID] = struct{}{}

		label = append(label, datastructure.LabelEntry{
			Hub:    currID,
			Weight: dist[currID],
			Parent: cameFrom[currID].parent,
			EdgeID: cameFrom[currID].edgeID,
		})

		currOrder := hl.ch.GetNode(currID).OrderPos

		edgeIDs := hl.ch.GetNodeFirstOutEdges(currID)
		if backward {
			edgeIDs = hl.ch.GetNodeFirstInEdges(currID)
		}
		for _, edgeID := range edgeIDs {
			var edge datastructure.CHEdge
			if backward {
				edge = hl.ch.GetInEdge(edgeID)
			} else {
				edge = hl.ch.GetOutEdge(edgeID)
			}
			if hl.ch.GetNode(edge.To).OrderPos < currOrder {
				continue
			}
			if _, ok := settled[edge.To]; ok {
				continue
			}

			// labels name contracted out-edges in road direction, so the
			// backward walk records the in-edge's twin
			chainEdgeID := edgeID
			if backward {
				chainEdgeID = edge.MirrorID
			}

			newDist := dist[currID] + edge.Weight
			oldDist, ok := dist[edge.To]
			if !ok {
				dist[edge.To] = newDist
				cameFrom[edge.To] = labelSearchEntry{parent: currID, edgeID: chainEdgeID}
				node := datastructure.NewPriorityQueueNode(newDist, edge.To)
				heapNodes[edge.To] = node
				pq.Insert(node)
			} else if newDist < oldDist {
				dist[edge.To] = newDist
				cameFrom[edge.To] = labelSearchEntry{parent: currID, edgeID: chainEdgeID}
				pq.DecreaseKey(heapNodes[edge.To], newDist)
			}
		}
	}

	return label
}
