package routing

import (
	"fmt"
	"math"

	"github.com/lintang-b-s/routeserve/pkg/datastructure"
)

const expansionEps = 1e-6

// ShortcutExpander turns a contracted out-edge into the ordered sequence of
// original (non-shortcut) out-edge ids it stands for. A non-shortcut edge
// expands to itself. Both strategies must produce identical sequences; they
// only trade preprocessing memory against expansion speed.
type ShortcutExpander interface {
	Expand(outEdgeID int32) ([]int32, error)
}

// verifyShortcuts checks every shortcut of the contracted graph against the
// structural invariants expansion relies on. Run at backend construction: an
// inconsistent artifact must abort startup, never surface per request.
func verifyShortcuts(ch *datastructure.ContractedGraph) error {
	for edgeID := int32(0); edgeID < ch.NumberOfOutEdges(); edgeID++ {
		edge := ch.GetOutEdge(edgeID)
		if !edge.IsShortcut {
			continue
		}
		if !ch.IsValidOutEdge(edge.RemovedEdgeOne) || !ch.IsValidOutEdge(edge.RemovedEdgeTwo) {
			return fmt.Errorf("shortcut %d: constituent edge not found in graph snapshot (%d, %d)",
				edgeID, edge.RemovedEdgeOne, edge.RemovedEdgeTwo)
		}

		one := ch.GetOutEdge(edge.RemovedEdgeOne)
		two := ch.GetOutEdge(edge.RemovedEdgeTwo)
		if one.From != edge.From || one.To != edge.ViaNode ||
			two.From != edge.ViaNode || two.To != edge.To {
			return fmt.Errorf("shortcut %d (%d -> %d via %d): constituents (%d -> %d), (%d -> %d) do not chain",
				edgeID, edge.From, edge.To, edge.ViaNode, one.From, one.To, two.From, two.To)
		}
		if math.Abs(one.Weight+two.Weight-edge.Weight) > expansionEps {
			return fmt.Errorf("shortcut %d: stored weight %f does not equal constituent sum %f",
				edgeID, edge.Weight, one.Weight+two.Weight)
		}
	}
	return nil
}

// expandWithStack walks the shortcut tree with an explicit worklist so the
// expansion depth is bounded regardless of how deep shortcuts nest.
func expandWithStack(ch *datastructure.ContractedGraph, outEdgeID int32) ([]int32, error) {
	if !ch.IsValidOutEdge(outEdgeID) {
		return nil, fmt.Errorf("out-edge %d not found in graph snapshot", outEdgeID)
	}

	expanded := make([]int32, 0, 2)
	stack := []int32{outEdgeID}

	for len(stack) > 0 {
		edgeID := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		edge := ch.GetOutEdge(edgeID)
		if !edge.IsShortcut {
			expanded = append(expanded, edgeID)
			continue
		}

		// second constituent below the first so the first pops next
		stack = append(stack, edge.RemovedEdgeTwo, edge.RemovedEdgeOne)
	}

	return expanded, nil
}

// RecursiveExpander resolves constituent edges on every call. Cheap to
// build, no extra memory.
type RecursiveExpander struct {
	ch *datastructure.ContractedGraph
}

func NewRecursiveExpander(ch *datastructure.ContractedGraph) (*RecursiveExpander, error) {
	if err := verifyShortcuts(ch); err != nil {
		return nil, err
	}
	return &RecursiveExpander{ch: ch}, nil
}

func (e *RecursiveExpander) Expand(outEdgeID int32) ([]int32, error) {
	return expandWithStack(e.ch, outEdgeID)
}

// TableExpander precomputes the full expansion of every shortcut at
// construction. Faster per query, higher memory.
type TableExpander struct {
	ch    *datastructure.ContractedGraph
	table map[int32][]int32
}

func NewTableExpander(ch *datastructure.ContractedGraph) (*TableExpander, error) {
	if err := verifyShortcuts(ch); err != nil {
		return nil, err
	}

	table := make(map[int32][]int32)
	for edgeID := int32(0); edgeID < ch.NumberOfOutEdges(); edgeID++ {
		if !ch.IsShortcut(edgeID) {
			continue
		}
		expanded, err := expandWithStack(ch, edgeID)
		if err != nil {
			return nil, err
		}
		table[edgeID] = expanded
	}

	return &TableExpander{ch: ch, table: table}, nil
}

func (e *TableExpander) Expand(outEdgeID int32) ([]int32, error) {
	if !e.ch.IsValidOutEdge(outEdgeID) {
		return nil, fmt.Errorf("out-edge %d not found in graph snapshot", outEdgeID)
	}
	if expanded, ok := e.table[outEdgeID]; ok {
		return expanded, nil
	}
	return []int32{outEdgeID}, nil
}
