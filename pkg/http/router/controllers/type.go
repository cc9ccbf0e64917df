package controllers

import (
	"github.com/lintang-b-s/routeserve/pkg/http/usecases"
)

type RoutingService interface {
	ShortestPath(origLat, origLon, dstLat, dstLon float64) (usecases.RouteResult, error)
}
