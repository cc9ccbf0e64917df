package main

import (
	"flag"

	"github.com/lintang-b-s/routeserve/pkg/contractor"
	"github.com/lintang-b-s/routeserve/pkg/datastructure"
	"github.com/lintang-b-s/routeserve/pkg/logger"
)

var (
	graphPath  = flag.String("graph_path", "./data/graph.gr", "path of the edge list artifact")
	coordsPath = flag.String("coords_path", "./data/graph.co", "path of the vertex coordinates artifact")
	chPath     = flag.String("ch_path", "./data/graph.ch", "output path of the contraction hierarchy artifact")
	hlPath     = flag.String("hl_path", "./data/graph.hl", "output path of the hub label artifact")
	buildHL    = flag.Bool("hub_labels", true, "also build the hub label artifact")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	graph, err := datastructure.ReadGraph(*graphPath)
	if err != nil {
		panic(err)
	}
	coords, err := datastructure.ReadVertexCoordinates(*coordsPath)
	if err != nil {
		panic(err)
	}
	if coords.Len() != graph.NumberOfVertices() {
		logger.Sugar().Panicf("coordinate artifact has %d vertices, graph has %d",
			coords.Len(), graph.NumberOfVertices())
	}

	nodes := make([]datastructure.CHNode, 0, graph.NumberOfVertices())
	for v := int32(0); v < graph.NumberOfVertices(); v++ {
		lat, lon := coords.GetVertexCoordinates(v)
		nodes = append(nodes, datastructure.NewCHNode(v, lat, lon, 0))
	}

	ch, err := datastructure.NewContractedGraph(nodes, graph)
	if err != nil {
		panic(err)
	}

	if err := contractor.NewContractor(ch, logger).Contraction(); err != nil {
		panic(err)
	}
	if err := ch.WriteToFile(*chPath); err != nil {
		panic(err)
	}

	if *buildHL {
		labels, err := contractor.NewHubLabeler(ch, logger).BuildLabels()
		if err != nil {
			panic(err)
		}
		if err := labels.WriteToFile(*hlPath); err != nil {
			panic(err)
		}
	}

	logger.Sugar().Infof("preprocessing completed successfully.")
}
