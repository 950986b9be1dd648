package routing

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DDugDDag/find-route/comps"
	"github.com/DDugDDag/find-route/geo"
	"github.com/DDugDDag/find-route/graph"
	"github.com/DDugDDag/find-route/preproc"
	"github.com/DDugDDag/find-route/structs"
	. "github.com/DDugDDag/find-route/util"
)

var daejeon_landmarks = []struct {
	id  int32
	loc geo.Coord
}{
	{1, geo.NewCoord(127.3845, 36.3504)}, // station
	{2, geo.NewCoord(127.3896, 36.3726)}, // expo park
	{3, geo.NewCoord(127.3604, 36.3621)}, // city hall
	{4, geo.NewCoord(127.3353, 36.3731)}, // yuseong spa
	{5, geo.NewCoord(127.3170, 36.3398)}, // kaist
}

// complete graph over the five landmarks, arcs cost their haversine
// distance
func build_landmark_graph(t *testing.T) *graph.Graph {
	g := graph.NewGraph()
	for _, landmark := range daejeon_landmarks {
		assert.NoError(t, g.AddVertex(structs.NewVertex(landmark.id, landmark.loc)))
	}
	for _, a := range daejeon_landmarks {
		for _, b := range daejeon_landmarks {
			if a.id == b.id {
				continue
			}
			cost := geo.Haversine(a.loc, b.loc)
			assert.NoError(t, g.AddArc(structs.Arc{Source: a.id, Target: b.id, Cost: cost}))
		}
	}
	return g
}

func build_hierarchy(t *testing.T, g *graph.Graph) *comps.CCHData {
	order := preproc.CalcDegreeOrdering(g)
	assert.NoError(t, preproc.AssignRanks(g, order))
	data, err := preproc.MetricIndependentPreprocessing(g)
	assert.NoError(t, err)
	preproc.Customize(data, comps.BuildDefaultWeighting(g))
	return data
}

func assert_connected_path(t *testing.T, path []structs.Arc, start, end int32) {
	assert.NotEmpty(t, path)
	assert.Equal(t, start, path[0].Source)
	assert.Equal(t, end, path[len(path)-1].Target)
	for i := 1; i < len(path); i++ {
		assert.Equal(t, path[i-1].Target, path[i].Source)
	}
}

func TestHierarchyQueryLandmarks(t *testing.T) {
	g := build_landmark_graph(t)
	data := build_hierarchy(t, g)
	query := NewCCHQuery(data)

	// the graph is complete, so the direct arc is always shortest
	path := query.FindPath(1, 2)
	assert_connected_path(t, path, 1, 2)
	direct := geo.Haversine(daejeon_landmarks[0].loc, daejeon_landmarks[1].loc)
	assert.InDelta(t, direct, PathCost(path), 1e-6)
}

func TestHierarchyQueryEdgeCases(t *testing.T) {
	g := build_landmark_graph(t)
	data := build_hierarchy(t, g)
	query := NewCCHQuery(data)

	assert.Empty(t, query.FindPath(1, 1))
	assert.Empty(t, query.FindPath(1, 99))
	assert.Empty(t, query.FindPath(99, 1))
}

func TestHierarchyQueryUncustomized(t *testing.T) {
	g := build_landmark_graph(t)
	order := preproc.CalcDegreeOrdering(g)
	assert.NoError(t, preproc.AssignRanks(g, order))
	data, err := preproc.MetricIndependentPreprocessing(g)
	assert.NoError(t, err)

	query := NewCCHQuery(data)
	assert.Empty(t, query.FindPath(1, 2))
}

// two triangles with no arcs between them; queries within a triangle
// succeed, queries across come back empty
func build_two_triangles(t *testing.T) *graph.Graph {
	g := graph.NewGraph()
	locs := []geo.Coord{
		geo.NewCoord(127.38, 36.35), geo.NewCoord(127.39, 36.35), geo.NewCoord(127.385, 36.36),
		geo.NewCoord(127.50, 36.50), geo.NewCoord(127.51, 36.50), geo.NewCoord(127.505, 36.51),
	}
	for i, loc := range locs {
		assert.NoError(t, g.AddVertex(structs.NewVertex(int32(i+1), loc)))
	}
	for _, tri := range [][3]int32{{1, 2, 3}, {4, 5, 6}} {
		for i := 0; i < 3; i++ {
			a, b := tri[i], tri[(i+1)%3]
			va, _ := g.GetVertex(a)
			vb, _ := g.GetVertex(b)
			cost := geo.Haversine(va.Loc, vb.Loc)
			assert.NoError(t, g.AddArc(structs.Arc{Source: a, Target: b, Cost: cost}))
			assert.NoError(t, g.AddArc(structs.Arc{Source: b, Target: a, Cost: cost}))
		}
	}
	return g
}

func TestDisconnectedQueries(t *testing.T) {
	g := build_two_triangles(t)
	data := build_hierarchy(t, g)
	query := NewCCHQuery(data)
	dijkstra := NewDijkstra(g)

	assert.Empty(t, query.FindPath(1, 4))
	assert.Empty(t, dijkstra.FindPath(1, 4))

	assert_connected_path(t, query.FindPath(1, 3), 1, 3)
	assert_connected_path(t, dijkstra.FindPath(4, 6), 4, 6)
}

func TestHierarchyMatchesDijkstra(t *testing.T) {
	g := build_landmark_graph(t)
	data := build_hierarchy(t, g)
	query := NewCCHQuery(data)
	dijkstra := NewDijkstra(g)

	for _, a := range daejeon_landmarks {
		for _, b := range daejeon_landmarks {
			if a.id == b.id {
				continue
			}
			cch_path := query.FindPath(a.id, b.id)
			ref_path := dijkstra.FindPath(a.id, b.id)
			assert.NotEmpty(t, cch_path)
			assert.InDelta(t, PathCost(ref_path), PathCost(cch_path), 1e-9)
			assert_connected_path(t, cch_path, a.id, b.id)
		}
	}
}

func TestHierarchyMatchesDijkstraOnSparseGraph(t *testing.T) {
	// ring with chords, forces multi-arc shortest paths and shortcuts
	g := graph.NewGraph()
	count := int32(12)
	for i := int32(0); i < count; i++ {
		loc := geo.NewCoord(127.35+0.01*float64(i%4), 36.33+0.01*float64(i/4))
		assert.NoError(t, g.AddVertex(structs.NewVertex(i, loc)))
	}
	add := func(a, b int32, cost float64) {
		assert.NoError(t, g.AddArc(structs.Arc{Source: a, Target: b, Cost: cost}))
		assert.NoError(t, g.AddArc(structs.Arc{Source: b, Target: a, Cost: cost}))
	}
	for i := int32(0); i < count; i++ {
		add(i, (i+1)%count, 1.0)
	}
	add(0, 6, 2.5)
	add(3, 9, 4.0)
	add(2, 7, 1.5)

	data := build_hierarchy(t, g)
	query := NewCCHQuery(data)
	dijkstra := NewDijkstra(g)

	for a := int32(0); a < count; a++ {
		for b := int32(0); b < count; b++ {
			if a == b {
				continue
			}
			cch_path := query.FindPath(a, b)
			ref_path := dijkstra.FindPath(a, b)
			assert.NotEmpty(t, cch_path)
			assert.InDelta(t, PathCost(ref_path), PathCost(cch_path), 1e-9)
			assert_connected_path(t, cch_path, a, b)
		}
	}
}

func TestRecustomizationChangesQueries(t *testing.T) {
	g := build_landmark_graph(t)
	data := build_hierarchy(t, g)
	query := NewCCHQuery(data)

	before := PathCost(query.FindPath(1, 2))

	// make the direct arc between station and expo park expensive
	weight := comps.BuildDefaultWeighting(g)
	g.ForOutgoingArcs(1, func(arc structs.Arc, arc_id int32) {
		if arc.Target == 2 {
			weight.SetArcCost(arc_id, 100.0)
		}
	})
	preproc.Customize(data, weight)

	after := PathCost(query.FindPath(1, 2))
	assert.Greater(t, after, before)
	// the detour over another landmark now wins
	assert.Less(t, after, 100.0)
}

func TestDijkstraEdgeCases(t *testing.T) {
	g := build_landmark_graph(t)
	dijkstra := NewDijkstra(g)

	assert.Empty(t, dijkstra.FindPath(3, 3))
	assert.Empty(t, dijkstra.FindPath(3, 42))
	assert.Empty(t, dijkstra.FindPath(42, 3))
}

func TestScenicSearchFindsPath(t *testing.T) {
	g := build_landmark_graph(t)
	points := NewList[ScenicPoint](2)
	points.Add(ScenicPoint{
		Name:     "엑스포 과학공원",
		Loc:      geo.NewCoord(127.3896, 36.3726),
		Category: "공원",
		Score:    CategoryScore("공원"),
	})
	points.Add(ScenicPoint{
		Name:     "갑천",
		Loc:      geo.NewCoord(127.3700, 36.3650),
		Category: "강변",
		Score:    CategoryScore("강변"),
	})

	search := NewScenicSearch(BuildScenicIndex(g, points), DefaultRoutePreference())
	path := search.FindPath(1, 4)
	assert_connected_path(t, path, 1, 4)

	assert.Empty(t, search.FindPath(1, 1))
	assert.Empty(t, search.FindPath(1, 77))
}

// three legs of roughly 1km each around two corners, straight line
// roughly 1km, so the full route is a threefold detour
func build_dogleg_graph(t *testing.T) *graph.Graph {
	g := graph.NewGraph()
	corners := []struct {
		id  int32
		loc geo.Coord
	}{
		{1, geo.NewCoord(127.3800, 36.3500)},
		{2, geo.NewCoord(127.3800, 36.3590)},
		{3, geo.NewCoord(127.3912, 36.3590)},
		{4, geo.NewCoord(127.3912, 36.3500)},
	}
	for _, corner := range corners {
		assert.NoError(t, g.AddVertex(structs.NewVertex(corner.id, corner.loc)))
	}
	for i := 1; i < len(corners); i++ {
		a, b := corners[i-1], corners[i]
		cost := geo.Haversine(a.loc, b.loc)
		assert.NoError(t, g.AddArc(structs.Arc{Source: a.id, Target: b.id, Cost: cost}))
		assert.NoError(t, g.AddArc(structs.Arc{Source: b.id, Target: a.id, Cost: cost}))
	}
	return g
}

func TestScenicSearchDetourCap(t *testing.T) {
	g := build_dogleg_graph(t)
	index := BuildScenicIndex(g, nil)

	// the only route is three times the straight line, the default cap
	// of 1.5 cuts the search off
	tight := NewScenicSearch(index, DefaultRoutePreference())
	assert.Empty(t, tight.FindPath(1, 4))

	relaxed_pref := DefaultRoutePreference()
	relaxed_pref.MaxDetourRatio = 3.5
	relaxed := NewScenicSearch(index, relaxed_pref)
	path := relaxed.FindPath(1, 4)
	assert_connected_path(t, path, 1, 4)
	assert.Len(t, path, 3)
}

func TestPathFinderBehaveAlike(t *testing.T) {
	g := build_landmark_graph(t)
	data := build_hierarchy(t, g)

	finders := []IPathFinder{
		NewCCHQuery(data),
		NewDijkstra(g),
		NewScenicSearch(BuildScenicIndex(g, nil), DefaultRoutePreference()),
	}
	for _, finder := range finders {
		path := finder.FindPath(2, 5)
		assert_connected_path(t, path, 2, 5)
		assert.Empty(t, finder.FindPath(2, 2))
		assert.Empty(t, finder.FindPath(2, 404))
	}
}

// the hierarchy data is read-only after customization, so queries that
// each own their search state can run in parallel on it
func TestParallelHierarchyQueries(t *testing.T) {
	g := build_landmark_graph(t)
	data := build_hierarchy(t, g)
	expected := geo.Haversine(daejeon_landmarks[0].loc, daejeon_landmarks[1].loc)

	costs := make(chan float64, 16)
	wg := sync.WaitGroup{}
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			query := NewCCHQuery(data)
			costs <- PathCost(query.FindPath(1, 2))
		}()
	}
	wg.Wait()
	close(costs)

	for cost := range costs {
		assert.InDelta(t, expected, cost, 1e-9)
	}
}

func TestScenicScores(t *testing.T) {
	g := build_landmark_graph(t)
	points := NewList[ScenicPoint](1)
	// directly at expo park
	points.Add(ScenicPoint{Name: "한빛탑", Loc: geo.NewCoord(127.3896, 36.3726), Category: "관광명소", Score: 9.5})

	index := BuildScenicIndex(g, points)
	// vertex 2 sits on the point, every other landmark is over 1km away
	assert.Greater(t, index.VertexScore(2), 0.0)
	assert.Equal(t, 0.0, index.VertexScore(1))

	assert.Equal(t, 5.0, CategoryScore("골목길"))
	assert.Equal(t, 9.0, CategoryScore("호수"))
}
