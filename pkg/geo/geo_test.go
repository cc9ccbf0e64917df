package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twpayne/go-polyline"
)

func TestHaversineDistance(t *testing.T) {
	// jakarta to yogyakarta, roughly 430 km
	dist := CalculateHaversineDistance(-6.2088, 106.8456, -7.7956, 110.3695)
	assert.InDelta(t, 430, dist, 10)

	assert.Equal(t, 0.0, CalculateHaversineDistance(-6.2, 106.8, -6.2, 106.8))
}

func TestGetDestinationPointRoundTrip(t *testing.T) {
	lat, lon := GetDestinationPoint(-6.2, 106.8, 45, 10)
	back := CalculateHaversineDistance(-6.2, 106.8, lat, lon)
	assert.InDelta(t, 10, back, 1e-6)
}

func TestPolylineFromCoordsDecodesBack(t *testing.T) {
	coords := []Coordinate{
		NewCoordinate(-6.20, 106.80),
		NewCoordinate(-6.21, 106.81),
		NewCoordinate(-6.22, 106.82),
	}

	encoded := PolylineFromCoords(coords)
	decoded, _, err := polyline.DecodeCoords([]byte(encoded))
	assert.NoError(t, err)

	assert.Len(t, decoded, len(coords))
	for i, c := range coords {
		assert.InDelta(t, c.Lat, decoded[i][0], 1e-5)
		assert.InDelta(t, c.Lon, decoded[i][1], 1e-5)
	}
}

func TestPathFeatureCollectionLineString(t *testing.T) {
	fc := NewPathFeatureCollection([]Coordinate{
		NewCoordinate(-6.20, 106.80),
		NewCoordinate(-6.21, 106.81),
	}, map[string]interface{}{"weight": 5.0})

	assert.Equal(t, "FeatureCollection", fc.Type)
	assert.Len(t, fc.Features, 1)
	assert.Equal(t, "LineString", fc.Features[0].Geometry.Type)

	// geojson wants [lon, lat] ordering
	lonLats := fc.Features[0].Geometry.Coordinates.([][]float64)
	assert.Equal(t, []float64{106.80, -6.20}, lonLats[0])
}

func TestPathFeatureCollectionDegeneratesToPoint(t *testing.T) {
	fc := NewPathFeatureCollection([]Coordinate{
		NewCoordinate(-6.20, 106.80),
	}, nil)

	assert.Equal(t, "Point", fc.Features[0].Geometry.Type)
	assert.Equal(t, []float64{106.80, -6.20}, fc.Features[0].Geometry.Coordinates.([]float64))
}
