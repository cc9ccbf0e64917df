package contractor

import (
	"math"

	"github.com/lintang-b-s/routeserve/pkg/datastructure"
)

// dijkstraWitnessSearch runs a bounded dijkstra from u towards w while
// ignoring the node being contracted. It may stop as soon as it can prove
// either outcome: a path to w with weight <= acceptedWeight exists (no
// shortcut needed) or the bounded search space is exhausted.
func (c *Contractor) dijkstraWitnessSearch(u, w, ignore int32,
	acceptedWeight float64, maxSettledNodes int, pMax float64) float64 {

	visited := make(map[int32]struct{})
	cost := make(map[int32]float64)
	heapNodes := make(map[int32]*datastructure.PriorityQueueNode[int32])

	pq := datastructure.NewBinaryHeap[int32]()
	uNode := datastructure.NewPriorityQueueNode(0, u)
	heapNodes[u] = uNode
	pq.Insert(uNode)
	cost[u] = 0

	settledNodes := 0
	for settledNodes < maxSettledNodes {
		if pq.IsEmpty() {
			break
		}
		smallest, _ := pq.GetMin()
		if smallest.GetRank() > acceptedWeight {
			break
		}

		if targetCost, ok := cost[w]; ok && targetCost <= acceptedWeight {
			// a witness not above the accepted weight is enough, it does
			// not have to be the shortest
			return targetCost
		}

		curr, _ := pq.ExtractMin()
		currID := curr.GetItem()
		if c.contracted[currID] {
			continue
		}
		if currID == w {
			return cost[currID]
		}
		if curr.GetRank() > pMax {
			break
		}

		visited[currID] = struct{}{}
		for _, outID := range c.ch.GetNodeFirstOutEdges(currID) {
			neighbor := c.ch.GetOutEdge(outID)
			if neighbor.To == ignore || c.contracted[neighbor.To] {
				continue
			}
			if _, ok := visited[neighbor.To]; ok {
				continue
			}

			newCost := cost[currID] + neighbor.Weight
			oldCost, ok := cost[neighbor.To]
			if !ok {
				cost[neighbor.To] = newCost
				node := datastructure.NewPriorityQueueNode(newCost, neighbor.To)
				heapNodes[neighbor.To] = node
				pq.Insert(node)
			} else if newCost < oldCost {
				cost[neighbor.To] = newCost
				pq.DecreaseKey(heapNodes[neighbor.To], newCost)
			}
		}

		settledNodes++
	}

	if targetCost, ok := cost[w]; ok {
		return targetCost
	}
	return math.MaxFloat64
}
