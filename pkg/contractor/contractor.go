package contractor

import (
	"time"

	"github.com/lintang-b-s/routeserve/pkg/datastructure"
	"go.uber.org/zap"
)

var (
	maxPollFactorHeuristic   = 5.0
	maxPollFactorContraction = 200.0
)

// Contractor builds the contraction hierarchy: nodes are contracted in
// edge-difference order (with lazy priority updates) and every contraction
// that would lose a shortest path gets a shortcut edge, unless a witness
// path of no greater weight survives the removal.
type Contractor struct {
	ch  *datastructure.ContractedGraph
	log *zap.Logger

	meanDegree float64
	degrees    []int
	contracted []bool
}

func NewContractor(ch *datastructure.ContractedGraph, log *zap.Logger) *Contractor {
	n := ch.NumberOfNodes()
	degrees := make([]int, n)
	for v := int32(0); v < n; v++ {
		degrees[v] = len(ch.GetNodeFirstOutEdges(v))
	}

	return &Contractor{
		ch:         ch,
		log:        log,
		meanDegree: float64(ch.NumberOfOutEdges()) / float64(n),
		degrees:    degrees,
		contracted: make([]bool, n),
	}
}

// Contraction runs the full node-ordering loop. After it returns the
// contracted graph is frozen and ready to be written as an artifact.
func (c *Contractor) Contraction() error {
	start := time.Now()

	nq := datastructure.NewBinaryHeap[int32]()
	for v := int32(0); v < c.ch.NumberOfNodes(); v++ {
		priority := c.calculatePriority(v)
		nq.Insert(datastructure.NewPriorityQueueNode(priority, v))
	}

	c.log.Info("contracting nodes...",
		zap.Int32("nodes", c.ch.NumberOfNodes()),
		zap.Int32("edges", c.ch.NumberOfOutEdges()))

	orderPos := int32(0)
	for nq.Size() != 0 {
		polled, err := nq.ExtractMin()
		if err != nil {
			return err
		}
		v := polled.GetItem()

		// lazy update: contracting earlier nodes may have changed v's
		// priority, re-queue when it no longer belongs at the front
		if nq.Size() > 0 {
			priority := c.calculatePriority(v)
			smallest, err := nq.GetMin()
			if err != nil {
				return err
			}
			if priority > smallest.GetRank() {
				nq.Insert(datastructure.NewPriorityQueueNode(priority, v))
				continue
			}
		}

		c.ch.SetOrderPos(v, orderPos)
		c.contractNode(v)
		c.contracted[v] = true
		orderPos++

		if orderPos%10000 == 0 {
			c.log.Info("contracting nodes...", zap.Int32("contracted", orderPos))
		}
	}

	c.log.Info("contraction hierarchy built",
		zap.Int64("shortcuts", c.ch.ShortcutCount()),
		zap.Duration("took", time.Since(start)))
	return nil
}

func (c *Contractor) contractNode(v int32) {
	degree := c.findAndHandleShortcuts(v, c.addShortcut,
		int(c.meanDegree*maxPollFactorContraction))
	c.meanDegree = (c.meanDegree*2 + float64(degree)) / 3
}

type shortcutHandler func(from, to, via int32, weight, dist float64,
	removedOne, removedTwo int32)

// findAndHandleShortcuts looks at every (u -> v -> w) pair around the node v
// being contracted and calls the handler for pairs whose shortest connection
// would be lost: a witness search from u that reaches w with weight not
// above c(u,v)+c(v,w) while ignoring v proves no shortcut is needed.
func (c *Contractor) findAndHandleShortcuts(v int32, handler shortcutHandler,
	maxSettledNodes int) int {

	degree := 0

	pMax := 0.0
	pInMax, pOutMax := 0.0, 0.0
	for _, inID := range c.ch.GetNodeFirstInEdges(v) {
		inEdge := c.ch.GetInEdge(inID)
		if c.contracted[inEdge.To] {
			continue
		}
		if inEdge.Weight > pInMax {
			pInMax = inEdge.Weight
		}
	}
	for _, outID := range c.ch.GetNodeFirstOutEdges(v) {
		outEdge := c.ch.GetOutEdge(outID)
		if c.contracted[outEdge.To] {
			continue
		}
		if outEdge.Weight > pOutMax {
			pOutMax = outEdge.Weight
		}
	}
	pMax = pInMax + pOutMax

	for _, inID := range c.ch.GetNodeFirstInEdges(v) {
		inEdge := c.ch.GetInEdge(inID)
		u := inEdge.To
		if u == v || c.contracted[u] {
			continue
		}
		degree++

		for _, outID := range c.ch.GetNodeFirstOutEdges(v) {
			outEdge := c.ch.GetOutEdge(outID)
			w := outEdge.To
			if w == u || c.contracted[w] {
				continue
			}

			directWeight := inEdge.Weight + outEdge.Weight

			witnessWeight := c.dijkstraWitnessSearch(u, w, v, directWeight,
				maxSettledNodes, pMax)
			if witnessWeight <= directWeight {
				continue
			}

			handler(u, w, v, directWeight, inEdge.Dist+outEdge.Dist,
				inEdge.MirrorID, outID)
		}
	}

	return degree
}

func (c *Contractor) addShortcut(from, to, via int32, weight, dist float64,
	removedOne, removedTwo int32) {
	c.ch.AddShortcut(from, to, weight, dist, via, removedOne, removedTwo)
	c.degrees[from]++
	c.degrees[to]++
}

// calculatePriority is the edge-difference heuristic: contracting cheap,
// low-impact nodes first keeps the hierarchy flat.
func (c *Contractor) calculatePriority(v int32) float64 {
	shortcutCount := 0
	c.findAndHandleShortcuts(v, func(from, to, via int32, weight, dist float64,
		removedOne, removedTwo int32) {
		shortcutCount++
	}, int(c.meanDegree*maxPollFactorHeuristic))

	edgeDifference := shortcutCount - c.degrees[v]
	return float64(10 * edgeDifference)
}
