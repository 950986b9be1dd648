package preproc

import (
	"github.com/DDugDDag/find-route/comps"
)

//*******************************************
// customization
//*******************************************

// Customize loads the arc costs of the weighting into the hierarchy and
// relaxes every lower triangle bottom-up, so that afterwards every
// augmented arc carries the exact cost of its best witness path. Running
// it again with the same weighting yields the same metric state.
func Customize(data *comps.CCHData, weight comps.IWeighting) {
	data.ResetMetric(weight)

	count := int32(data.VertexCount())
	for rank := int32(0); rank < count; rank++ {
		v := data.GetOrderedVertex(rank)
		data.ForUpArcs(v, false, func(in_id int32, in_arc comps.UpArc) {
			data.ForUpArcs(v, true, func(out_id int32, out_arc comps.UpArc) {
				u := in_arc.From
				w := out_arc.To
				if u == w {
					return
				}
				arc_id, ok := data.GetArcBetween(u, w)
				if !ok {
					return
				}
				cost := data.GetArcCost(in_id) + data.GetArcCost(out_id)
				if cost < data.GetArcCost(arc_id) {
					data.UpdateArcMetric(arc_id, cost, v)
				}
			})
		})
	}
	data.SetCustomized()
}
