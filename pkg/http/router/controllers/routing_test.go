package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/lintang-b-s/routeserve/pkg/engine/routing"
	"github.com/lintang-b-s/routeserve/pkg/geo"
	helper "github.com/lintang-b-s/routeserve/pkg/http/router/routerhelper"
	"github.com/lintang-b-s/routeserve/pkg/http/usecases"
	"github.com/lintang-b-s/routeserve/pkg/util"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubRoutingService struct {
	result usecases.RouteResult
	err    error
}

func (s stubRoutingService) ShortestPath(origLat, origLon, dstLat, dstLon float64) (usecases.RouteResult, error) {
	return s.result, s.err
}

func newTestRouter(svc RoutingService) http.Handler {
	router := httprouter.New()
	api := New(svc, zap.NewNop())
	api.Routes(helper.NewRouteGroup(router, ""))
	return router
}

func postRoute(t *testing.T, handler http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/route", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRouteEndpointOK(t *testing.T) {
	coords := []geo.Coordinate{
		geo.NewCoordinate(-6.20, 106.80),
		geo.NewCoordinate(-6.21, 106.81),
	}
	svc := stubRoutingService{
		result: usecases.RouteResult{
			Weight:   5,
			Dist:     500,
			Polyline: geo.PolylineFromCoords(coords),
			GeoJSON:  geo.NewPathFeatureCollection(coords, nil),
		},
	}
	handler := newTestRouter(svc)

	rec := postRoute(t, handler, `{"from":[106.80,-6.20],"to":[106.81,-6.21]}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Data struct {
			Weight   float64               `json:"weight"`
			Dist     float64               `json:"distance"`
			Polyline string                `json:"polyline"`
			GeoJSON  geo.FeatureCollection `json:"geojson"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 5.0, body.Data.Weight)
	assert.Equal(t, 500.0, body.Data.Dist)
	assert.NotEmpty(t, body.Data.Polyline)
	assert.Equal(t, "FeatureCollection", body.Data.GeoJSON.Type)
	assert.Equal(t, "LineString", body.Data.GeoJSON.Features[0].Geometry.Type)
}

func TestRouteEndpointMalformedBody(t *testing.T) {
	handler := newTestRouter(stubRoutingService{})

	rec := postRoute(t, handler, `{"from":[106.80,-6.20],`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouteEndpointMissingField(t *testing.T) {
	handler := newTestRouter(stubRoutingService{})

	rec := postRoute(t, handler, `{"from":[106.80,-6.20]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouteEndpointWrongArity(t *testing.T) {
	handler := newTestRouter(stubRoutingService{})

	rec := postRoute(t, handler, `{"from":[106.80,-6.20,3.0],"to":[106.81,-6.21]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouteEndpointCoordinateOutOfRange(t *testing.T) {
	handler := newTestRouter(stubRoutingService{})

	rec := postRoute(t, handler, `{"from":[106.80,-95.0],"to":[106.81,-6.21]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postRoute(t, handler, `{"from":[106.80,-6.20],"to":[190.0,-6.21]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouteEndpointNoPath(t *testing.T) {
	svc := stubRoutingService{
		err: util.WrapErrorf(routing.ErrNoPathFound, util.ErrNotFound,
			"no path found from 0.0,0.0 to 1.0,1.0"),
	}
	handler := newTestRouter(svc)

	rec := postRoute(t, handler, `{"from":[106.80,-6.20],"to":[106.81,-6.21]}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.NotEqual(t, http.StatusOK, rec.Code)
}

func TestRouteEndpointValidationFailure(t *testing.T) {
	svc := stubRoutingService{
		err: util.WrapErrorf(routing.ErrNoPathFound, util.ErrInternalServerError,
			"computed path failed validation"),
	}
	handler := newTestRouter(svc)

	rec := postRoute(t, handler, `{"from":[106.80,-6.20],"to":[106.81,-6.21]}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	// internal detail stays out of the response body
	assert.NotContains(t, rec.Body.String(), "validation")
}
