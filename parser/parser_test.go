package parser

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DDugDDag/find-route/geo"
	. "github.com/DDugDDag/find-route/util"
)

func serve_json(payload string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
}

func TestClientNestedEnvelope(t *testing.T) {
	server := serve_json(`{"response":{"body":{"items":{"item":[
		{"COURS_NM":"갑천 자전거길","START_LATITUDE":"36.35","START_LONGITUDE":"127.38","END_LATITUDE":36.36,"END_LONGITUDE":127.39,"TOTAL_LENGTH":"1500"}
	]}}}}`)
	defer server.Close()

	client := NewAPIClient(server.URL+"/", "test-key")
	routes, err := client.GetBikeRoutes(context.Background(), 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, 1, routes.Length())
	assert.Equal(t, "갑천 자전거길", routes[0].RouteName)
	assert.Equal(t, 36.35, routes[0].StartLoc().Lat())
	assert.Equal(t, 127.39, routes[0].EndLoc().Lon())
	assert.Equal(t, 1.5, routes[0].LengthKm())
}

func TestClientFlatEnvelopeAndSingleItem(t *testing.T) {
	// body at the top level and a single item object instead of an array
	server := serve_json(`{"body":{"items":{"item":
		{"storage_name":"대전역 보관소","latitude":"36.3504","longitude":"127.3845"}
	}}}`)
	defer server.Close()

	client := NewAPIClient(server.URL+"/", "test-key")
	storages, err := client.GetBikeStorages(context.Background(), 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, 1, storages.Length())
	assert.Equal(t, "대전역 보관소", storages[0].Name)
	assert.Equal(t, 36.3504, storages[0].Loc().Lat())
}

func TestClientEmptyAndErrorResponses(t *testing.T) {
	server := serve_json(`{"response":{"body":{"items":null}}}`)
	defer server.Close()

	client := NewAPIClient(server.URL+"/", "test-key")
	routes, err := client.GetBikeRoutes(context.Background(), 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, 0, routes.Length())

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()

	client = NewAPIClient(failing.URL+"/", "test-key")
	_, err = client.GetBikeRoutes(context.Background(), 1, 10)
	assert.Error(t, err)
}

func TestBuildBikeGraphDedupesEndpoints(t *testing.T) {
	routes := List[BikeRouteRecord]{
		{StartLatitude: 36.35, StartLongitude: 127.38, EndLatitude: 36.36, EndLongitude: 127.39, TotalLength: 1500},
		// shares the first segment's end point
		{StartLatitude: 36.36, StartLongitude: 127.39, EndLatitude: 36.37, EndLongitude: 127.40, TotalLength: 2000},
		// zero coordinates get dropped
		{StartLatitude: 0, StartLongitude: 0, EndLatitude: 36.38, EndLongitude: 127.41, TotalLength: 500},
	}

	g, err := BuildBikeGraph(routes, nil)
	assert.NoError(t, err)
	assert.Equal(t, 3, g.VertexCount())
	assert.Equal(t, 4, g.ArcCount())

	arc, ok := g.GetArc(0, 1)
	assert.True(t, ok)
	assert.Equal(t, 1.5, arc.Cost)
	_, ok = g.GetArc(1, 0)
	assert.True(t, ok)
}

func TestBuildBikeGraphLinksStorages(t *testing.T) {
	routes := List[BikeRouteRecord]{
		{StartLatitude: 36.35, StartLongitude: 127.38, EndLatitude: 36.36, EndLongitude: 127.39, TotalLength: 1500},
	}
	storages := List[BikeStorageRecord]{
		{Name: "근처 보관소", Latitude: 36.351, Longitude: 127.381},
		// far out of town, links to nothing
		{Name: "외곽 보관소", Latitude: 37.5, Longitude: 127.0},
	}

	g, err := BuildBikeGraph(routes, storages)
	assert.NoError(t, err)
	assert.Equal(t, 4, g.VertexCount())

	near_arc, ok := g.GetArc(2, 0)
	assert.True(t, ok)
	assert.InDelta(t, geo.Haversine(geo.NewCoord(127.381, 36.351), geo.NewCoord(127.38, 36.35)), near_arc.Cost, 1e-9)
	assert.Equal(t, 0, g.GetDegree(3, true))
}

func TestFallbackGraph(t *testing.T) {
	g := FallbackGraph()
	assert.Equal(t, 5, g.VertexCount())
	// complete: every ordered pair has an arc
	assert.Equal(t, 20, g.ArcCount())

	arc, ok := g.GetArc(0, 1)
	assert.True(t, ok)
	expected := geo.Haversine(geo.NewCoord(127.3845, 36.3504), geo.NewCoord(127.3896, 36.3726))
	assert.InDelta(t, expected, arc.Cost, 1e-9)
}

func TestCyclingDecoder(t *testing.T) {
	decoder := &CyclingDecoder{}

	assert.True(t, decoder.IsValidHighway(Dict[string, string]{"highway": "cycleway"}))
	assert.True(t, decoder.IsValidHighway(Dict[string, string]{"highway": "residential"}))
	assert.False(t, decoder.IsValidHighway(Dict[string, string]{"highway": "motorway"}))
	assert.False(t, decoder.IsValidHighway(Dict[string, string]{"highway": "cycleway", "bicycle": "no"}))
	assert.False(t, decoder.IsValidHighway(Dict[string, string]{"building": "yes"}))

	assert.True(t, decoder.IsOneway(Dict[string, string]{"oneway": "yes"}))
	assert.False(t, decoder.IsOneway(Dict[string, string]{"oneway": "yes", "oneway:bicycle": "no"}))
	assert.False(t, decoder.IsOneway(Dict[string, string]{}))
}
