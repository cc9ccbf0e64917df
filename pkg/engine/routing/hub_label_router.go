package routing

import (
	"math"

	"github.com/lintang-b-s/routeserve/pkg/datastructure"
	"github.com/lintang-b-s/routeserve/pkg/util"
)

// HubLabelRouter answers queries from precomputed per-vertex label sets: the
// forward label of the source and the backward label of the target are
// merge-joined on their hubs and the hub minimizing the combined weight
// closes the path. The labels were computed over the contracted graph, so
// the reconstructed edge chain goes through the same shortcut expansion as
// the CH backend.
type HubLabelRouter struct {
	ch       *datastructure.ContractedGraph
	labels   *datastructure.HubLabels
	expander ShortcutExpander
}

func NewHubLabelRouter(ch *datastructure.ContractedGraph, labels *datastructure.HubLabels,
	expander ShortcutExpander) *HubLabelRouter {
	return &HubLabelRouter{ch: ch, labels: labels, expander: expander}
}

func (rt *HubLabelRouter) ShortestPath(req ShortestPathRequest) (Path, error) {
	if !rt.ch.IsValidVertex(req.Source) || !rt.ch.IsValidVertex(req.Target) ||
		req.Source >= rt.labels.NumberOfVertices() || req.Target >= rt.labels.NumberOfVertices() {
		return Path{}, ErrInvalidVertex
	}
	if req.Source == req.Target {
		return singleVertexPath(req.Source), nil
	}

	forward := rt.labels.ForwardLabel(req.Source)
	backward := rt.labels.BackwardLabel(req.Target)

	bestWeight := math.MaxFloat64
	bestHub := int32(-1)

	// both labels are sorted by hub id
	i, j := 0, 0
	for i < len(forward) && j < len(backward) {
		if forward[i].Hub < backward[j].Hub {
			i++
			continue
		}
		if forward[i].Hub > backward[j].Hub {
			j++
			continue
		}
		if w := forward[i].Weight + backward[j].Weight; w < bestWeight {
			bestWeight = w
			bestHub = forward[i].Hub
		}
		i++
		j++
	}

	if bestHub == -1 {
		return Path{}, ErrNoPathFound
	}

	chain, err := rt.edgeChain(forward, backward, bestHub)
	if err != nil {
		return Path{}, err
	}

	return expandChain(rt.ch, rt.expander, req, bestWeight, chain)
}

// edgeChain rebuilds the contracted edge chain source -> hub -> target by
// following the parent pointers stored in the two labels.
func (rt *HubLabelRouter) edgeChain(forward, backward []datastructure.LabelEntry,
	hub int32) ([]int32, error) {

	// source -> hub: forward entries store the edge parent -> hub, so the
	// walk towards the owner collects the chain in reverse
	upChain := make([]int32, 0)
	cur := hub
	for {
		entry, ok := datastructure.FindLabelEntry(forward, cur)
		if !ok {
			return nil, util.WrapErrorf(ErrNoPathFound, util.ErrInternalServerError,
				"forward label chain broken at hub %d", cur)
		}
		if entry.Parent == -1 {
			break
		}
		upChain = append(upChain, entry.EdgeID)
		cur = entry.Parent
	}
	upChain = util.ReverseG(upChain)

	// hub -> target: backward entries store the edge hub -> parent, already
	// in walk order
	downChain := make([]int32, 0)
	cur = hub
	for {
		entry, ok := datastructure.FindLabelEntry(backward, cur)
		if !ok {
			return nil, util.WrapErrorf(ErrNoPathFound, util.ErrInternalServerError,
				"backward label chain broken at hub %d", cur)
		}
		if entry.Parent == -1 {
			break
		}
		downChain = append(downChain, entry.EdgeID)
		cur = entry.Parent
	}

	return append(upChain, downChain...), nil
}
