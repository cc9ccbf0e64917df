package usecases

import (
	"errors"
	"time"

	"github.com/lintang-b-s/routeserve/pkg/datastructure"
	"github.com/lintang-b-s/routeserve/pkg/engine/routing"
	"github.com/lintang-b-s/routeserve/pkg/geo"
	"github.com/lintang-b-s/routeserve/pkg/util"
	"go.uber.org/zap"
)

// RouteResult is what a successful route query hands back to the transport
// layer: the path cost, its geometric length in meters, and the geometry
// both as an encoded polyline and as GeoJSON.
type RouteResult struct {
	Weight   float64
	Dist     float64
	Polyline string
	GeoJSON  geo.FeatureCollection
	SourceID int32
	TargetID int32
}

// RoutingService orchestrates one route query: snap both endpoints to their
// nearest graph vertices, run the configured path-finding backend, validate
// the returned path against the original graph and encode its geometry.
type RoutingService struct {
	log       *zap.Logger
	engine    PathFinder
	index     SpatialIndex
	validator PathValidator
	coords    *datastructure.VertexCoordinates
}

func NewRoutingService(log *zap.Logger, engine PathFinder, index SpatialIndex,
	validator PathValidator, coords *datastructure.VertexCoordinates) *RoutingService {
	return &RoutingService{
		log:       log,
		engine:    engine,
		index:     index,
		validator: validator,
		coords:    coords,
	}
}

func (rs *RoutingService) ShortestPath(origLat, origLon, dstLat, dstLon float64) (RouteResult, error) {
	start := time.Now()

	source, sourceSnapDist := rs.index.NearestVertex(origLat, origLon)
	target, targetSnapDist := rs.index.NearestVertex(dstLat, dstLon)

	req := routing.NewShortestPathRequest(source, target)

	path, err := rs.engine.ShortestPath(req)
	if err != nil {
		if errors.Is(err, routing.ErrNoPathFound) {
			return RouteResult{}, util.WrapErrorf(err, util.ErrNotFound,
				"no path found from %f,%f to %f,%f", origLat, origLon, dstLat, dstLon)
		}
		return RouteResult{}, util.WrapErrorf(err, util.ErrInternalServerError,
			"shortest path query failed")
	}

	if err := rs.validator.Validate(req, path); err != nil {
		rs.log.Error("path failed validation against the original graph",
			zap.Int32("source", source), zap.Int32("target", target), zap.Error(err))
		return RouteResult{}, util.WrapErrorf(err, util.ErrInternalServerError,
			"computed path failed validation")
	}

	pathCoords := rs.coords.PathCoordinates(path.Vertices)

	rs.log.Info("route computed",
		zap.Int32("source", source),
		zap.Int32("target", target),
		zap.Float64("source_snap_km", sourceSnapDist),
		zap.Float64("target_snap_km", targetSnapDist),
		zap.Float64("weight", path.Weight),
		zap.Duration("took", time.Since(start)))

	return RouteResult{
		Weight:   path.Weight,
		Dist:     path.Dist,
		Polyline: geo.PolylineFromCoords(pathCoords),
		GeoJSON: geo.NewPathFeatureCollection(pathCoords, map[string]interface{}{
			"weight":   path.Weight,
			"distance": path.Dist,
		}),
		SourceID: source,
		TargetID: target,
	}, nil
}
