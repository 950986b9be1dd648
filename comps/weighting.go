package comps

import (
	"github.com/DDugDDag/find-route/graph"
	"github.com/DDugDDag/find-route/structs"
)

//*******************************************
// weighting interface
//*******************************************

type IWeighting interface {
	GetArcCost(arc int32) float64
}

//*******************************************
// default weighting
//*******************************************

// DefaultWeighting maps every arc id of a graph to a cost. Costs can be
// overwritten between customization runs without touching the graph.
type DefaultWeighting struct {
	arc_costs []float64
}

func NewDefaultWeighting(arc_count int) *DefaultWeighting {
	return &DefaultWeighting{
		arc_costs: make([]float64, arc_count),
	}
}

// BuildDefaultWeighting copies the current arc costs of the graph.
func BuildDefaultWeighting(g *graph.Graph) *DefaultWeighting {
	weight := NewDefaultWeighting(g.ArcCount())
	g.ForVertices(func(vertex structs.Vertex) {
		g.ForOutgoingArcs(vertex.ID, func(arc structs.Arc, arc_id int32) {
			weight.arc_costs[arc_id] = arc.Cost
		})
	})
	return weight
}

func (self *DefaultWeighting) GetArcCost(arc int32) float64 {
	return self.arc_costs[arc]
}
func (self *DefaultWeighting) SetArcCost(arc int32, cost float64) {
	self.arc_costs[arc] = cost
}
