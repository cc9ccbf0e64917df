package routing

import (
	"math"

	"github.com/lintang-b-s/routeserve/pkg/datastructure"
	"github.com/lintang-b-s/routeserve/pkg/util"
)

// Dijkstra is the reference backend: plain single-pair dijkstra over the
// original graph. No preprocessing dependency; the correctness baseline the
// other backends are validated against.
type Dijkstra struct {
	graph *datastructure.Graph
}

func NewDijkstra(graph *datastructure.Graph) *Dijkstra {
	return &Dijkstra{graph: graph}
}

type dijkstraCameFrom struct {
	vertex int32
	edgeID int32
}

func (d *Dijkstra) ShortestPath(req ShortestPathRequest) (Path, error) {
	if !d.graph.IsValidVertex(req.Source) || !d.graph.IsValidVertex(req.Target) {
		return Path{}, ErrInvalidVertex
	}
	if req.Source == req.Target {
		return singleVertexPath(req.Source), nil
	}

	dist := make(map[int32]float64)
	cameFrom := make(map[int32]dijkstraCameFrom)
	settled := make(map[int32]struct{})
	heapNodes := make(map[int32]*datastructure.PriorityQueueNode[int32])

	pq := datastructure.NewFourAryHeap[int32]()

	dist[req.Source] = 0
	cameFrom[req.Source] = dijkstraCameFrom{vertex: -1, edgeID: -1}
	sourceNode := datastructure.NewPriorityQueueNode(0, req.Source)
	heapNodes[req.Source] = sourceNode
	pq.Insert(sourceNode)

	for !pq.IsEmpty() {
		node, err := pq.ExtractMin()
		if err != nil {
			return Path{}, util.WrapErrorf(err, util.ErrInternalServerError, "dijkstra priority queue")
		}
		u := node.GetItem()
		if _, ok := settled[u]; ok {
			continue
		}
		settled[u] = struct{}{}

		if u == req.Target {
			break
		}

		for _, edgeID := range d.graph.GetNodeFirstOutEdges(u) {
			edge := d.graph.GetOutEdge(edgeID)
			v := edge.To
			if _, ok := settled[v]; ok {
				continue
			}

			newDist := dist[u] + edge.Weight
			oldDist, labelled := dist[v]

			if !labelled {
				dist[v] = newDist
				cameFrom[v] = dijkstraCameFrom{vertex: u, edgeID: edgeID}
				vNode := datastructure.NewPriorityQueueNode(newDist, v)
				heapNodes[v] = vNode
				pq.Insert(vNode)
			} else if newDist < oldDist {
				dist[v] = newDist
				cameFrom[v] = dijkstraCameFrom{vertex: u, edgeID: edgeID}
				pq.DecreaseKey(heapNodes[v], newDist)
			}
		}
	}

	if _, ok := settled[req.Target]; !ok {
		return Path{}, ErrNoPathFound
	}

	return d.buildPath(req, dist[req.Target], cameFrom), nil
}

func (d *Dijkstra) buildPath(req ShortestPathRequest, weight float64,
	cameFrom map[int32]dijkstraCameFrom) Path {

	vertices := make([]int32, 0)
	edges := make([]int32, 0)
	totalDist := 0.0

	v := req.Target
	for v != -1 {
		vertices = append(vertices, v)
		prev := cameFrom[v]
		if prev.edgeID != -1 {
			edges = append(edges, prev.edgeID)
			totalDist += d.graph.GetOutEdge(prev.edgeID).Dist
		}
		v = prev.vertex
	}

	vertices = util.ReverseG(vertices)
	edges = util.ReverseG(edges)
	if math.IsInf(weight, 0) {
		weight = 0
	}

	return Path{
		Vertices: vertices,
		Edges:    edges,
		Weight:   weight,
		Dist:     totalDist,
	}
}
