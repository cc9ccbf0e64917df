package geo

import (
	"github.com/twpayne/go-polyline"
)

// PolylineFromCoords encodes path coordinates as a google encoded polyline.
func PolylineFromCoords(coords []Coordinate) string {
	latLngs := make([][]float64, 0, len(coords))
	for _, c := range coords {
		latLngs = append(latLngs, []float64{c.Lat, c.Lon})
	}
	return string(polyline.EncodeCoords(latLngs))
}
