package controllers

import (
	"github.com/lintang-b-s/routeserve/pkg/geo"
	"github.com/lintang-b-s/routeserve/pkg/http/usecases"
)

// routeRequest is the POST /route body. From and To are [lon, lat] pairs.
type routeRequest struct {
	From []float64 `json:"from" validate:"required,len=2"`
	To   []float64 `json:"to" validate:"required,len=2"`
}

type routeResponse struct {
	Weight   float64               `json:"weight"`
	Dist     float64               `json:"distance"`
	Polyline string                `json:"polyline"`
	GeoJSON  geo.FeatureCollection `json:"geojson"`
}

func NewRouteResponse(result usecases.RouteResult) routeResponse {
	return routeResponse{
		Weight:   result.Weight,
		Dist:     result.Dist,
		Polyline: result.Polyline,
		GeoJSON:  result.GeoJSON,
	}
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
