package geo

// GeoJSON geometry/feature types for the route response. Coordinates are
// [lon, lat] pairs per RFC 7946.

type Geometry struct {
	Type        string      `json:"type"`
	Coordinates interface{} `json:"coordinates"`
}

type Feature struct {
	Type       string                 `json:"type"`
	Geometry   Geometry               `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// NewPathFeatureCollection builds a FeatureCollection holding the route
// geometry. A path with a single vertex degenerates to a Point geometry,
// everything else is a LineString from source to target.
func NewPathFeatureCollection(coords []Coordinate, properties map[string]interface{}) FeatureCollection {
	var geom Geometry
	if len(coords) == 1 {
		geom = Geometry{
			Type:        "Point",
			Coordinates: []float64{coords[0].Lon, coords[0].Lat},
		}
	} else {
		lonLats := make([][]float64, 0, len(coords))
		for _, c := range coords {
			lonLats = append(lonLats, []float64{c.Lon, c.Lat})
		}
		geom = Geometry{
			Type:        "LineString",
			Coordinates: lonLats,
		}
	}

	return FeatureCollection{
		Type: "FeatureCollection",
		Features: []Feature{
			{
				Type:       "Feature",
				Geometry:   geom,
				Properties: properties,
			},
		},
	}
}
