package preproc

import (
	"sort"

	"github.com/DDugDDag/find-route/graph"
	"github.com/DDugDDag/find-route/structs"
	. "github.com/DDugDDag/find-route/util"
)

//*******************************************
// contraction ordering
//*******************************************

// CalcDegreeOrdering computes a contraction order over the vertices of
// the graph: vertices with higher total degree get higher ranks, ties
// break on the smaller vertex id. The result maps rank to vertex id.
//
// More connected vertices end up near the top of the hierarchy, which
// keeps the number of shortcuts created during contraction small on
// hub-and-spoke road networks.
func CalcDegreeOrdering(g *graph.Graph) Array[int32] {
	type vertex_degree struct {
		id     int32
		degree int
	}
	entries := NewList[vertex_degree](g.VertexCount())
	g.ForVertices(func(vertex structs.Vertex) {
		degree := g.GetDegree(vertex.ID, true) + g.GetDegree(vertex.ID, false)
		entries.Add(vertex_degree{id: vertex.ID, degree: degree})
	})
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].degree != entries[j].degree {
			return entries[i].degree > entries[j].degree
		}
		return entries[i].id < entries[j].id
	})

	count := entries.Length()
	order := NewArray[int32](count)
	for position, entry := range entries {
		// most connected vertex takes the highest rank
		order[count-1-position] = entry.id
	}
	return order
}

// AssignRanks writes the ranks of the given order onto the graph
// vertices. The order maps rank to vertex id and has to cover every
// vertex exactly once.
func AssignRanks(g *graph.Graph, order Array[int32]) error {
	if order.Length() != g.VertexCount() {
		return ErrInvalidOrdering
	}
	seen := NewDict[int32, bool](order.Length())
	for _, id := range order {
		if !g.HasVertex(id) {
			return ErrInvalidOrdering
		}
		if seen.ContainsKey(id) {
			return ErrInvalidOrdering
		}
		seen[id] = true
	}
	for rank, id := range order {
		g.SetRank(id, int32(rank))
	}
	return nil
}
