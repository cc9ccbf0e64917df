package datastructure

import (
	"fmt"

	"github.com/lintang-b-s/routeserve/pkg/geo"
)

// VertexCoordinates maps every vertex id of the loaded graph to its
// geographic location. Built once from the coordinate artifact, read-only
// afterwards.
type VertexCoordinates struct {
	lat []float64
	lon []float64
}

func NewVertexCoordinates(lat, lon []float64) (*VertexCoordinates, error) {
	if len(lat) != len(lon) {
		return nil, fmt.Errorf("latitude/longitude column length mismatch: %d vs %d", len(lat), len(lon))
	}
	return &VertexCoordinates{lat: lat, lon: lon}, nil
}

func (vc *VertexCoordinates) Len() int32 {
	return int32(len(vc.lat))
}

func (vc *VertexCoordinates) GetVertexCoordinates(v int32) (float64, float64) {
	return vc.lat[v], vc.lon[v]
}

// PathCoordinates converts a vertex id walk into its geographic linestring.
func (vc *VertexCoordinates) PathCoordinates(vertices []int32) []geo.Coordinate {
	coords := make([]geo.Coordinate, 0, len(vertices))
	for _, v := range vertices {
		coords = append(coords, geo.NewCoordinate(vc.lat[v], vc.lon[v]))
	}
	return coords
}
