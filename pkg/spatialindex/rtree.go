package spatialindex

import (
	"fmt"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/lintang-b-s/routeserve/pkg/datastructure"
	"github.com/lintang-b-s/routeserve/pkg/geo"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

const (
	initialSearchRadiusKm = 1.0
	// covers any point on the planet, the expanding search never needs more
	maxSearchRadiusKm = 25000.0
)

// VertexIndex answers nearest-vertex queries over the graph's vertex
// coordinates. Built once at startup and read-only afterwards.
type VertexIndex struct {
	tr     *rtree.RTreeG[int32]
	coords *datastructure.VertexCoordinates
}

func NewVertexIndex(coords *datastructure.VertexCoordinates, log *zap.Logger) (*VertexIndex, error) {
	if coords.Len() == 0 {
		return nil, fmt.Errorf("cannot build a vertex index over zero vertices")
	}

	log.Info("building r-tree vertex index...",
		zap.Int32("vertices", coords.Len()))

	var tr rtree.RTreeG[int32]
	for v := int32(0); v < coords.Len(); v++ {
		lat, lon := coords.GetVertexCoordinates(v)
		point := [2]float64{lon, lat}
		tr.Insert(point, point, v)
	}

	log.Info("r-tree vertex index built.")
	return &VertexIndex{tr: &tr, coords: coords}, nil
}

// NearestVertex returns the vertex closest to (qLat, qLon) and its distance
// in km. The search widens its bounding box until it finds candidates, then
// widens once more so a nearer vertex just outside the hit box cannot be
// missed. Among candidates at equal distance the smallest vertex id wins, so
// repeated queries for the same point always snap to the same vertex.
func (vi *VertexIndex) NearestVertex(qLat, qLon float64) (int32, float64) {
	query := s2.PointFromLatLng(s2.LatLngFromDegrees(qLat, qLon))

	best := int32(-1)
	bestAngle := s1.InfChordAngle()

	scan := func(radius float64) {
		lowerLat, lowerLon := geo.GetDestinationPoint(qLat, qLon, 225, radius)
		upperLat, upperLon := geo.GetDestinationPoint(qLat, qLon, 45, radius)

		vi.tr.Search([2]float64{lowerLon, lowerLat}, [2]float64{upperLon, upperLat},
			func(min, max [2]float64, v int32) bool {
				lat, lon := vi.coords.GetVertexCoordinates(v)
				angle := s2.ChordAngleBetweenPoints(query, s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lon)))
				if angle < bestAngle || (angle == bestAngle && v < best) {
					best = v
					bestAngle = angle
				}
				return true
			})
	}

	radius := initialSearchRadiusKm
	scan(radius)
	for best == -1 && radius < maxSearchRadiusKm {
		radius *= 2
		scan(radius)
	}

	if best == -1 {
		// bounding boxes straddling the antimeridian can miss candidates,
		// fall back to a full scan
		for v := int32(0); v < vi.coords.Len(); v++ {
			lat, lon := vi.coords.GetVertexCoordinates(v)
			angle := s2.ChordAngleBetweenPoints(query, s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lon)))
			if angle < bestAngle || (angle == bestAngle && v < best) {
				best = v
				bestAngle = angle
			}
		}
	} else {
		bestLat, bestLon := vi.coords.GetVertexCoordinates(best)
		confirm := 2 * geo.CalculateHaversineDistance(qLat, qLon, bestLat, bestLon)
		if confirm > radius {
			scan(confirm)
		}
	}

	bestLat, bestLon := vi.coords.GetVertexCoordinates(best)
	return best, geo.CalculateHaversineDistance(qLat, qLon, bestLat, bestLon)
}
