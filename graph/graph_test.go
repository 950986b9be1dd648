package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DDugDDag/find-route/geo"
	"github.com/DDugDDag/find-route/structs"
)

func build_test_graph(t *testing.T, ids []int32, arcs []structs.Arc) *Graph {
	g := NewGraph()
	for _, id := range ids {
		err := g.AddVertex(structs.NewVertex(id, geo.NewCoord(float64(id)*0.01, 36.35)))
		assert.NoError(t, err)
	}
	for _, arc := range arcs {
		err := g.AddArc(arc)
		assert.NoError(t, err)
	}
	return g
}

func TestAddVertexDuplicate(t *testing.T) {
	g := NewGraph()
	err := g.AddVertex(structs.NewVertex(1, geo.NewCoord(127.38, 36.35)))
	assert.NoError(t, err)
	err = g.AddVertex(structs.NewVertex(1, geo.NewCoord(127.39, 36.36)))
	assert.ErrorIs(t, err, ErrDuplicateVertex)
	assert.Equal(t, 1, g.VertexCount())
}

func TestAddArcDangling(t *testing.T) {
	g := build_test_graph(t, []int32{1, 2}, nil)
	err := g.AddArc(structs.Arc{Source: 1, Target: 5, Cost: 1.0})
	assert.ErrorIs(t, err, ErrDanglingArc)
	err = g.AddArc(structs.Arc{Source: 5, Target: 1, Cost: 1.0})
	assert.ErrorIs(t, err, ErrDanglingArc)
	assert.Equal(t, 0, g.ArcCount())
}

func TestAddArcOverwrite(t *testing.T) {
	g := build_test_graph(t, []int32{1, 2}, nil)
	assert.NoError(t, g.AddArc(structs.Arc{Source: 1, Target: 2, Cost: 3.0}))
	assert.NoError(t, g.AddArc(structs.Arc{Source: 1, Target: 2, Cost: 1.5}))

	assert.Equal(t, 1, g.ArcCount())
	arc, ok := g.GetArc(1, 2)
	assert.True(t, ok)
	assert.Equal(t, 1.5, arc.Cost)
	assert.Equal(t, 1, g.GetDegree(1, true))
	assert.Equal(t, 1, g.GetDegree(2, false))
}

func TestArcDirections(t *testing.T) {
	g := build_test_graph(t, []int32{1, 2}, []structs.Arc{
		{Source: 1, Target: 2, Cost: 2.0},
		{Source: 2, Target: 1, Cost: 4.0},
	})

	assert.Equal(t, 2, g.ArcCount())
	fwd, ok := g.GetArc(1, 2)
	assert.True(t, ok)
	assert.Equal(t, 2.0, fwd.Cost)
	bwd, ok := g.GetArc(2, 1)
	assert.True(t, ok)
	assert.Equal(t, 4.0, bwd.Cost)
}

func TestAdjacencyIteration(t *testing.T) {
	g := build_test_graph(t, []int32{1, 2, 3}, []structs.Arc{
		{Source: 1, Target: 2, Cost: 1.0},
		{Source: 1, Target: 3, Cost: 2.0},
		{Source: 3, Target: 1, Cost: 2.0},
	})

	targets := make([]int32, 0)
	g.ForOutgoingArcs(1, func(arc structs.Arc, _ int32) {
		targets = append(targets, arc.Target)
	})
	assert.Equal(t, []int32{2, 3}, targets)

	sources := make([]int32, 0)
	g.ForIncomingArcs(1, func(arc structs.Arc, _ int32) {
		sources = append(sources, arc.Source)
	})
	assert.Equal(t, []int32{3}, sources)
}

func TestConnectedComponents(t *testing.T) {
	// two triangles with no arcs between them
	g := build_test_graph(t, []int32{1, 2, 3, 10, 11, 12}, []structs.Arc{
		{Source: 1, Target: 2, Cost: 1}, {Source: 2, Target: 1, Cost: 1},
		{Source: 2, Target: 3, Cost: 1}, {Source: 3, Target: 2, Cost: 1},
		{Source: 3, Target: 1, Cost: 1}, {Source: 1, Target: 3, Cost: 1},
		{Source: 10, Target: 11, Cost: 1}, {Source: 11, Target: 10, Cost: 1},
		{Source: 11, Target: 12, Cost: 1}, {Source: 12, Target: 11, Cost: 1},
	})

	components := ConnectedComponents(g)
	assert.Len(t, components, 2)
	assert.ElementsMatch(t, []int32{1, 2, 3}, components[0])
	assert.ElementsMatch(t, []int32{10, 11, 12}, components[1])
}

func TestEnhanceConnectivityNearVertices(t *testing.T) {
	g := NewGraph()
	// ~55m apart, below the 100m threshold
	assert.NoError(t, g.AddVertex(structs.NewVertex(1, geo.NewCoord(127.3845, 36.3504))))
	assert.NoError(t, g.AddVertex(structs.NewVertex(2, geo.NewCoord(127.3845, 36.3509))))

	added, err := EnhanceConnectivity(g, DefaultRepairOptions())
	assert.NoError(t, err)
	assert.Equal(t, 2, added)
	_, ok := g.GetArc(1, 2)
	assert.True(t, ok)
	_, ok = g.GetArc(2, 1)
	assert.True(t, ok)
}

func TestEnhanceConnectivityBridgesComponents(t *testing.T) {
	g := build_test_graph(t, nil, nil)
	// two islands roughly 1.1km apart, members of each island adjacent
	assert.NoError(t, g.AddVertex(structs.NewVertex(1, geo.NewCoord(127.3800, 36.3500))))
	assert.NoError(t, g.AddVertex(structs.NewVertex(2, geo.NewCoord(127.3805, 36.3500))))
	assert.NoError(t, g.AddVertex(structs.NewVertex(3, geo.NewCoord(127.3920, 36.3500))))
	assert.NoError(t, g.AddVertex(structs.NewVertex(4, geo.NewCoord(127.3925, 36.3500))))
	assert.NoError(t, g.AddArc(structs.Arc{Source: 1, Target: 2, Cost: 0.05}))
	assert.NoError(t, g.AddArc(structs.Arc{Source: 2, Target: 1, Cost: 0.05}))
	assert.NoError(t, g.AddArc(structs.Arc{Source: 3, Target: 4, Cost: 0.05}))
	assert.NoError(t, g.AddArc(structs.Arc{Source: 4, Target: 3, Cost: 0.05}))

	_, err := EnhanceConnectivity(g, DefaultRepairOptions())
	assert.NoError(t, err)
	components := ConnectedComponents(g)
	assert.Len(t, components, 1)
}

func TestEnhanceConnectivityRespectsCap(t *testing.T) {
	g := NewGraph()
	// ~55km apart, beyond the component cap
	assert.NoError(t, g.AddVertex(structs.NewVertex(1, geo.NewCoord(127.38, 36.35))))
	assert.NoError(t, g.AddVertex(structs.NewVertex(2, geo.NewCoord(127.38, 36.85))))

	added, err := EnhanceConnectivity(g, DefaultRepairOptions())
	assert.NoError(t, err)
	assert.Equal(t, 0, added)
	assert.Len(t, ConnectedComponents(g), 2)
}
