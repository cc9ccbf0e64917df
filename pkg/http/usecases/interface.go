package usecases

import (
	"github.com/lintang-b-s/routeserve/pkg/engine/routing"
)

type PathFinder interface {
	ShortestPath(req routing.ShortestPathRequest) (routing.Path, error)
}

type SpatialIndex interface {
	NearestVertex(lat, lon float64) (int32, float64)
}

type PathValidator interface {
	Validate(req routing.ShortestPathRequest, path routing.Path) error
}
