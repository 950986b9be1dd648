package attr

import (
	"github.com/tidwall/rtree"

	"github.com/DDugDDag/find-route/geo"
	"github.com/DDugDDag/find-route/graph"
	"github.com/DDugDDag/find-route/structs"
)

//*******************************************
// vertex index
//*******************************************

// VertexIndex answers nearest-vertex lookups over the graph with an
// r-tree on the vertex positions.
type VertexIndex struct {
	tree rtree.RTreeG[int32]
}

func BuildVertexIndex(g *graph.Graph) *VertexIndex {
	index := &VertexIndex{}
	g.ForVertices(func(vertex structs.Vertex) {
		point := [2]float64{vertex.Loc.Lon(), vertex.Loc.Lat()}
		index.tree.Insert(point, point, vertex.ID)
	})
	return index
}

// GetClosestVertex returns the id of the vertex closest to the location,
// or false when the index is empty.
func (self *VertexIndex) GetClosestVertex(loc geo.Coord) (int32, bool) {
	point := [2]float64{loc.Lon(), loc.Lat()}
	found := false
	closest := int32(0)
	self.tree.Nearby(
		rtree.BoxDist[float64, int32](point, point, nil),
		func(min, max [2]float64, id int32, dist float64) bool {
			closest = id
			found = true
			return false
		},
	)
	return closest, found
}

// Len returns the number of indexed vertices.
func (self *VertexIndex) Len() int {
	return self.tree.Len()
}
