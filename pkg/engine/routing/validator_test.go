package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatorAcceptsDijkstraPath(t *testing.T) {
	g := buildTestGraph(t)
	d := NewDijkstra(g)
	validator := NewPathValidator(g)

	req := NewShortestPathRequest(0, 5)
	path, err := d.ShortestPath(req)
	assert.NoError(t, err)
	assert.NoError(t, validator.Validate(req, path))
}

func TestValidatorAcceptsDegeneratePath(t *testing.T) {
	g := buildTestGraph(t)
	validator := NewPathValidator(g)

	req := NewShortestPathRequest(4, 4)
	assert.NoError(t, validator.Validate(req, singleVertexPath(4)))
}

func TestValidatorRejectsEmptyPath(t *testing.T) {
	g := buildTestGraph(t)
	validator := NewPathValidator(g)

	assert.Error(t, validator.Validate(NewShortestPathRequest(0, 5), Path{}))
}

func TestValidatorRejectsWrongEndpoints(t *testing.T) {
	g := buildTestGraph(t)
	d := NewDijkstra(g)
	validator := NewPathValidator(g)

	path, err := d.ShortestPath(NewShortestPathRequest(0, 5))
	assert.NoError(t, err)

	assert.Error(t, validator.Validate(NewShortestPathRequest(1, 5), path))
	assert.Error(t, validator.Validate(NewShortestPathRequest(0, 4), path))
}

func TestValidatorRejectsTamperedWeight(t *testing.T) {
	g := buildTestGraph(t)
	d := NewDijkstra(g)
	validator := NewPathValidator(g)

	req := NewShortestPathRequest(0, 5)
	path, err := d.ShortestPath(req)
	assert.NoError(t, err)

	path.Weight += 0.5
	assert.Error(t, validator.Validate(req, path))
}

func TestValidatorRejectsBrokenContinuity(t *testing.T) {
	g := buildTestGraph(t)
	validator := NewPathValidator(g)

	// p and w are not adjacent
	req := NewShortestPathRequest(0, 3)
	path := Path{
		Vertices: []int32{0, 3},
		Edges:    []int32{0},
		Weight:   10,
		Dist:     10,
	}
	assert.Error(t, validator.Validate(req, path))
}

func TestValidatorRejectsEdgeCountMismatch(t *testing.T) {
	g := buildTestGraph(t)
	validator := NewPathValidator(g)

	req := NewShortestPathRequest(0, 1)
	path := Path{
		Vertices: []int32{0, 1},
		Edges:    []int32{},
		Weight:   10,
		Dist:     10,
	}
	assert.Error(t, validator.Validate(req, path))
}
