package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/lintang-b-s/routeserve/pkg/datastructure"
	"github.com/lintang-b-s/routeserve/pkg/engine/routing"
	"github.com/lintang-b-s/routeserve/pkg/http"
	"github.com/lintang-b-s/routeserve/pkg/http/usecases"
	"github.com/lintang-b-s/routeserve/pkg/logger"
	"github.com/lintang-b-s/routeserve/pkg/spatialindex"
	"github.com/lintang-b-s/routeserve/pkg/util"
	"go.uber.org/zap"
)

var (
	graphPath    = flag.String("graph_path", "./data/graph.gr", "path of the edge list artifact")
	coordsPath   = flag.String("coords_path", "./data/graph.co", "path of the vertex coordinates artifact")
	chPath       = flag.String("ch_path", "./data/graph.ch", "path of the contraction hierarchy artifact")
	hlPath       = flag.String("hl_path", "./data/graph.hl", "path of the hub label artifact")
	backend      = flag.String("backend", "ch", "path finding backend: dijkstra, ch or hub_label")
	expanderKind = flag.String("expander", "recursive", "shortcut expansion strategy: recursive or table")
	useRateLimit = flag.Bool("rate_limit", false, "rate limit incoming requests")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	if err := util.ReadConfig(); err != nil {
		logger.Warn("no config file found, using defaults", zap.Error(err))
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
		panic(fmt.Sprintf("coordinate artifact has %d vertices, graph has %d",
			coords.Len(), graph.NumberOfVertices()))
	}

	engine, err := buildBackend(graph, logger)
	if err != nil {
		panic(err)
	}

	index, err := spatialindex.NewVertexIndex(coords, logger)
	if err != nil {
		panic(err)
	}
	validator := routing.NewPathValidator(graph)

	api := http.NewServer(logger)

	routingService := usecases.NewRoutingService(logger, engine, index, validator, coords)
	ctx, cancel := context.WithCancel(context.Background())

	if _, err := api.Use(ctx, logger, *useRateLimit, routingService); err != nil {
		panic(err)
	}

	if err := api.GracefulShutdown(cancel); err != nil && err != context.Canceled {
		logger.Error("server stopped with error", zap.Error(err))
	}
	logger.Info("routing engine server stopped")
}

func buildBackend(graph *datastructure.Graph, log *zap.Logger) (routing.PathFinder, error) {
	switch *backend {
	case "dijkstra":
		return routing.NewDijkstra(graph), nil

	case "ch":
		ch, err := datastructure.ReadContractedGraph(*chPath)
		if err != nil {
			return nil, err
		}
		if ch.NumberOfNodes() != graph.NumberOfVertices() {
			return nil, fmt.Errorf("contracted graph has %d nodes, graph has %d vertices",
				ch.NumberOfNodes(), graph.NumberOfVertices())
		}
		expander, err := buildExpander(ch)
		if err != nil {
			return nil, err
		}
		return routing.NewCHRouter(ch, expander), nil

	case "hub_label":
		ch, err := datastructure.ReadContractedGraph(*chPath)
		if err != nil {
			return nil, err
		}
		if ch.NumberOfNodes() != graph.NumberOfVertices() {
			return nil, fmt.Errorf("contracted graph has %d nodes, graph has %d vertices",
				ch.NumberOfNodes(), graph.NumberOfVertices())
		}
		labels, err := datastructure.ReadHubLabels(*hlPath)
		if err != nil {
			return nil, err
		}
		if labels.NumberOfVertices() != graph.NumberOfVertices() {
			return nil, fmt.Errorf("hub label artifact has %d vertices, graph has %d",
				labels.NumberOfVertices(), graph.NumberOfVertices())
		}
		expander, err := buildExpander(ch)
		if err != nil {
			return nil, err
		}
		return routing.NewHubLabelRouter(ch, labels, expander), nil

	default:
		return nil, fmt.Errorf("unknown backend %q, want dijkstra, ch or hub_label", *backend)
	}
}

func buildExpander(ch *datastructure.ContractedGraph) (routing.ShortcutExpander, error) {
	switch *expanderKind {
	case "recursive":
		return routing.NewRecursiveExpander(ch)
	case "table":
		return routing.NewTableExpander(ch)
	default:
		return nil, fmt.Errorf("unknown expander %q, want recursive or table", *expanderKind)
	}
}
