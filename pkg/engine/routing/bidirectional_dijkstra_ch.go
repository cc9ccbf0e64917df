package routing

import (
	"math"

	"github.com/lintang-b-s/routeserve/pkg/datastructure"
	"github.com/lintang-b-s/routeserve/pkg/util"
)

// CHRouter answers queries with bidirectional dijkstra over the contracted
// graph: the forward search climbs out-edges towards higher contraction
// order, the backward search climbs in-edges, and the best meeting vertex
// closes the path. Shortcut edges on the found path are expanded before the
// path is returned, so callers only ever see vertices of the original graph.
type CHRouter struct {
	ch       *datastructure.ContractedGraph
	expander ShortcutExpander
}

func NewCHRouter(ch *datastructure.ContractedGraph, expander ShortcutExpander) *CHRouter {
	return &CHRouter{ch: ch, expander: expander}
}

type chCameFrom struct {
	edgeID int32 // out-edge id forward, in-edge id backward
	parent int32
}

type chSearchState struct {
	dist      map[int32]float64
	cameFrom  map[int32]chCameFrom
	settled   map[int32]struct{}
	heapNodes map[int32]*datastructure.PriorityQueueNode[int32]
	pq        *datastructure.MinHeap[int32]
}

func newCHSearchState(start int32) *chSearchState {
	st := &chSearchState{
		dist:      make(map[int32]float64),
		cameFrom:  make(map[int32]chCameFrom),
		settled:   make(map[int32]struct{}),
		heapNodes: make(map[int32]*datastructure.PriorityQueueNode[int32]),
		pq:        datastructure.NewFourAryHeap[int32](),
	}
	st.dist[start] = 0
	st.cameFrom[start] = chCameFrom{edgeID: -1, parent: -1}
	startNode := datastructure.NewPriorityQueueNode(0, start)
	st.heapNodes[start] = startNode
	st.pq.Insert(startNode)
	return st
}

func (rt *CHRouter) ShortestPath(req ShortestPathRequest) (Path, error) {
	if !rt.ch.IsValidVertex(req.Source) || !rt.ch.IsValidVertex(req.Target) {
		return Path{}, ErrInvalidVertex
	}
	if req.Source == req.Target {
		return singleVertexPath(req.Source), nil
	}

	forward := newCHSearchState(req.Source)
	backward := newCHSearchState(req.Target)

	estimate := math.MaxFloat64
	meetVertex := int32(-1)

	frontier, otherFrontier := forward, backward
	turnF := true
	frontFinished, backFinished := false, false

	for !frontFinished || !backFinished {
		if frontier.pq.IsEmpty() {
			if turnF {
				frontFinished = true
			} else {
				backFinished = true
			}
		} else {
			smallest, _ := frontier.pq.GetMin()
			if smallest.GetRank() >= estimate {
				// the best candidate path cannot improve on this side anymore
				if turnF {
					frontFinished = true
				} else {
					backFinished = true
				}
			} else {
				node, _ := frontier.pq.ExtractMin()
				u := node.GetItem()
				if _, ok := frontier.settled[u]; !ok {
					frontier.settled[u] = struct{}{}
					if turnF {
						rt.relaxUpward(frontier, otherFrontier, u, &estimate, &meetVertex, true)
					} else {
						rt.relaxUpward(frontier, otherFrontier, u, &estimate, &meetVertex, false)
					}
				}
			}
		}

		otherFinished := (turnF && backFinished) || (!turnF && frontFinished)
		if !otherFinished {
			frontier, otherFrontier = otherFrontier, frontier
			turnF = !turnF
		}
	}

	if meetVertex == -1 || estimate == math.MaxFloat64 {
		return Path{}, ErrNoPathFound
	}

	return rt.assemblePath(req, estimate, meetVertex, forward, backward)
}

// relaxUpward relaxes the upward edges of u: out-edges for the forward
// search, in-edges for the backward one. Only edges climbing towards higher
// contraction order are taken; the meeting vertex candidates come from
// vertices labelled by both searches.
func (rt *CHRouter) relaxUpward(frontier, otherFrontier *chSearchState, u int32,
	estimate *float64, meetVertex *int32, isForward bool) {

	var edgeIDs []int32
	if isForward {
		edgeIDs = rt.ch.GetNodeFirstOutEdges(u)
	} else {
		edgeIDs = rt.ch.GetNodeFirstInEdges(u)
	}

	uOrder := rt.ch.GetNode(u).OrderPos

	for _, edgeID := range edgeIDs {
		var edge datastructure.CHEdge
		if isForward {
			edge = rt.ch.GetOutEdge(edgeID)
		} else {
			edge = rt.ch.GetInEdge(edgeID)
		}

		v := edge.To
		if rt.ch.GetNode(v).OrderPos < uOrder {
			continue
		}
		if _, ok := frontier.settled[v]; ok {
			continue
		}

		newDist := frontier.dist[u] + edge.Weight
		oldDist, labelled := frontier.dist[v]

		if !labelled {
			frontier.dist[v] = newDist
			frontier.cameFrom[v] = chCameFrom{edgeID: edgeID, parent: u}
			vNode := datastructure.NewPriorityQueueNode(newDist, v)
			frontier.heapNodes[v] = vNode
			frontier.pq.Insert(vNode)
		} else if newDist < oldDist {
			frontier.dist[v] = newDist
			frontier.cameFrom[v] = chCameFrom{edgeID: edgeID, parent: u}
			frontier.pq.DecreaseKey(frontier.heapNodes[v], newDist)
		}

		if otherDist, ok := otherFrontier.dist[v]; ok {
			if candidate := frontier.dist[v] + otherDist; candidate < *estimate {
				*estimate = candidate
				*meetVertex = v
			}
		}
	}
}

// assemblePath turns the two search trees into a single contracted edge
// chain, expands every shortcut on it, and maps the result back onto the
// original graph.
func (rt *CHRouter) assemblePath(req ShortestPathRequest, weight float64, meetVertex int32,
	forward, backward *chSearchState) (Path, error) {

	// source -> meet, collected backwards then reversed
	forwardChain := make([]int32, 0)
	v := meetVertex
	for v != -1 {
		prev := forward.cameFrom[v]
		if prev.edgeID != -1 {
			forwardChain = append(forwardChain, prev.edgeID)
		}
		v = prev.parent
	}
	forwardChain = util.ReverseG(forwardChain)

	// meet -> target; in-edges are mapped onto their out-edge twins so the
	// whole chain shares one representation
	backwardChain := make([]int32, 0)
	v = meetVertex
	for v != -1 {
		prev := backward.cameFrom[v]
		if prev.edgeID != -1 {
			backwardChain = append(backwardChain, rt.ch.GetInEdge(prev.edgeID).MirrorID)
		}
		v = prev.parent
	}

	chain := append(forwardChain, backwardChain...)
	return expandChain(rt.ch, rt.expander, req, weight, chain)
}

// expandChain expands every contracted edge of the chain and rebuilds the
// vertex walk and original edge ids from the expansion.
func expandChain(ch *datastructure.ContractedGraph, expander ShortcutExpander,
	req ShortestPathRequest, weight float64, chain []int32) (Path, error) {

	vertices := []int32{req.Source}
	edges := make([]int32, 0, len(chain))
	totalDist := 0.0

	for _, edgeID := range chain {
		expanded, err := expander.Expand(edgeID)
		if err != nil {
			return Path{}, util.WrapErrorf(err, util.ErrInternalServerError, "shortcut expansion failed")
		}
		for _, origID := range expanded {
			edge := ch.GetOutEdge(origID)
			vertices = append(vertices, edge.To)
			edges = append(edges, edge.OrigEdgeID)
			totalDist += edge.Dist
		}
	}

	return Path{
		Vertices: vertices,
		Edges:    edges,
		Weight:   weight,
		Dist:     totalDist,
	}, nil
}
