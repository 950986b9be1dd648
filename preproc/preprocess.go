package preproc

import (
	"errors"

	"github.com/DDugDDag/find-route/comps"
	"github.com/DDugDDag/find-route/graph"
	"github.com/DDugDDag/find-route/structs"
)

var (
	// ErrInsufficientGraph is returned when the graph is too small to
	// build a hierarchy over.
	ErrInsufficientGraph = errors.New("graph has fewer than two vertices")

	// ErrInvalidOrdering is returned when the vertex ranks do not form a
	// bijection onto [0, n).
	ErrInvalidOrdering = errors.New("vertex ranks are not a valid ordering")
)

//*******************************************
// metric-independent preprocessing
//*******************************************

// MetricIndependentPreprocessing contracts the ranked graph bottom-up
// and inserts the shortcut topology. No arc costs are looked at; the
// returned hierarchy has to be customized before it can answer queries.
//
// Contraction visits vertices by ascending rank. For every lower
// triangle (u, v, w) through the current vertex v a shortcut u -> w is
// inserted unless an arc between the endpoints already exists, so the
// resulting topology only depends on the graph and the ordering.
func MetricIndependentPreprocessing(g *graph.Graph) (*comps.CCHData, error) {
	if g.VertexCount() < 2 {
		return nil, ErrInsufficientGraph
	}
	if err := check_ranks(g); err != nil {
		return nil, err
	}

	data := comps.NewCCHData(g)
	count := int32(data.VertexCount())
	for rank := int32(0); rank < count; rank++ {
		v := data.GetOrderedVertex(rank)
		data.ForUpArcs(v, false, func(_ int32, in_arc comps.UpArc) {
			data.ForUpArcs(v, true, func(_ int32, out_arc comps.UpArc) {
				u := in_arc.From
				w := out_arc.To
				if u == w {
					return
				}
				if data.HasArcBetween(u, w) {
					return
				}
				data.AddShortcut(u, w, v)
			})
		})
	}
	return data, nil
}

func check_ranks(g *graph.Graph) error {
	count := g.VertexCount()
	seen := make([]bool, count)
	valid := true
	g.ForVertices(func(vertex structs.Vertex) {
		rank := vertex.Rank
		if rank < 0 || rank >= int32(count) || seen[rank] {
			valid = false
			return
		}
		seen[rank] = true
	})
	if !valid {
		return ErrInvalidOrdering
	}
	return nil
}
