package datastructure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGraphFileRoundTrip(t *testing.T) {
	g, err := NewGraph(3, []Edge{
		NewEdge(0, 0, 1, 1.5, 120),
		NewEdge(1, 1, 2, 2.25, 340),
		NewEdge(2, 2, 0, 0.75, 60),
	})
	assert.NoError(t, err)

	grPath := filepath.Join(t.TempDir(), "tiny.gr")
	assert.NoError(t, WriteGraph(g, grPath))

	got, err := ReadGraph(grPath)
	assert.NoError(t, err)

	assert.Equal(t, g.NumberOfVertices(), got.NumberOfVertices())
	assert.Equal(t, g.NumberOfEdges(), got.NumberOfEdges())
	for edgeID := int32(0); edgeID < g.NumberOfEdges(); edgeID++ {
		assert.Equal(t, g.GetOutEdge(edgeID), got.GetOutEdge(edgeID))
	}
}

func TestReadGraphSkipsComments(t *testing.T) {
	grPath := filepath.Join(t.TempDir(), "commented.gr")
	content := "# generated by hand\n2 1\n# the only edge\n0 1 2.5 100\n"
	assert.NoError(t, os.WriteFile(grPath, []byte(content), 0644))

	g, err := ReadGraph(grPath)
	assert.NoError(t, err)
	assert.Equal(t, int32(2), g.NumberOfVertices())
	assert.Equal(t, int32(1), g.NumberOfEdges())
	assert.Equal(t, 2.5, g.GetOutEdge(0).Weight)
	assert.Equal(t, 100.0, g.GetOutEdge(0).Dist)
}

func TestReadGraphDistDefaultsToWeight(t *testing.T) {
	grPath := filepath.Join(t.TempDir(), "threecol.gr")
	content := "2 1\n0 1 2.5\n"
	assert.NoError(t, os.WriteFile(grPath, []byte(content), 0644))

	g, err := ReadGraph(grPath)
	assert.NoError(t, err)
	assert.Equal(t, 2.5, g.GetOutEdge(0).Dist)
}

func TestReadGraphRejectsTruncatedFile(t *testing.T) {
	grPath := filepath.Join(t.TempDir(), "truncated.gr")
	content := "3 2\n0 1 1.0 1.0\n"
	assert.NoError(t, os.WriteFile(grPath, []byte(content), 0644))

	_, err := ReadGraph(grPath)
	assert.Error(t, err)
}

func TestReadGraphRejectsOutOfRangeEndpoint(t *testing.T) {
	grPath := filepath.Join(t.TempDir(), "badvertex.gr")
	content := "2 1\n0 5 1.0 1.0\n"
	assert.NoError(t, os.WriteFile(grPath, []byte(content), 0644))

	_, err := ReadGraph(grPath)
	assert.Error(t, err)
}

func TestVertexCoordinatesFileRoundTrip(t *testing.T) {
	vc, err := NewVertexCoordinates(
		[]float64{47.58677, 47.5788, 47.64029},
		[]float64{-122.18003, -122.2332, -122.17226})
	assert.NoError(t, err)

	coPath := filepath.Join(t.TempDir(), "tiny.co")
	assert.NoError(t, WriteVertexCoordinates(vc, coPath))

	got, err := ReadVertexCoordinates(coPath)
	assert.NoError(t, err)
	assert.Equal(t, vc.Len(), got.Len())
	for v := int32(0); v < vc.Len(); v++ {
		wantLat, wantLon := vc.GetVertexCoordinates(v)
		gotLat, gotLon := got.GetVertexCoordinates(v)
		assert.Equal(t, wantLat, gotLat)
		assert.Equal(t, wantLon, gotLon)
	}
}

func TestReadVertexCoordinatesHandlesUnorderedIDs(t *testing.T) {
	coPath := filepath.Join(t.TempDir(), "unordered.co")
	content := "2\n1 -6.2 106.8\n0 -7.8 110.4\n"
	assert.NoError(t, os.WriteFile(coPath, []byte(content), 0644))

	vc, err := ReadVertexCoordinates(coPath)
	assert.NoError(t, err)
	lat, lon := vc.GetVertexCoordinates(0)
	assert.Equal(t, -7.8, lat)
	assert.Equal(t, 110.4, lon)
}

func TestReadVertexCoordinatesRejectsDuplicateID(t *testing.T) {
	coPath := filepath.Join(t.TempDir(), "dup.co")
	content := "2\n0 -6.2 106.8\n0 -7.8 110.4\n"
	assert.NoError(t, os.WriteFile(coPath, []byte(content), 0644))

	_, err := ReadVertexCoordinates(coPath)
	assert.Error(t, err)
}
