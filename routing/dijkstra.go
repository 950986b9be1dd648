package routing

import (
	"math"

	"github.com/DDugDDag/find-route/graph"
	"github.com/DDugDDag/find-route/structs"
	. "github.com/DDugDDag/find-route/util"
)

type dist_flag struct {
	dist     float64
	prev_arc int32
	visited  bool
}

//*******************************************
// dijkstra
//*******************************************

// Dijkstra runs plain one-to-one searches on the base graph. It needs no
// preprocessing, so it doubles as the reference oracle for the hierarchy
// and as the fallback when no hierarchy is available. A search owns its
// heap and labels and serves one FindPath at a time.
type Dijkstra struct {
	g     *graph.Graph
	heap  PriorityQueue[int32, float64]
	flags Flags[dist_flag]
}

func NewDijkstra(g *graph.Graph) *Dijkstra {
	return &Dijkstra{
		g:     g,
		heap:  NewPriorityQueue[int32, float64](100),
		flags: NewFlags(int32(g.VertexCount()), dist_flag{dist: math.Inf(1), prev_arc: -1}),
	}
}

func (self *Dijkstra) FindPath(start_id, end_id int32) []structs.Arc {
	start, ok := self.g.Slot(start_id)
	if !ok {
		return []structs.Arc{}
	}
	end, ok := self.g.Slot(end_id)
	if !ok {
		return []structs.Arc{}
	}
	if start == end {
		return []structs.Arc{}
	}

	self.flags.Reset()
	self.heap.Clear()
	self.flags.Get(start).dist = 0
	self.heap.Enqueue(start, 0)

	for {
		curr, ok := self.heap.Dequeue()
		if !ok {
			return []structs.Arc{}
		}
		curr_flag := self.flags.Get(curr)
		if curr_flag.visited {
			continue
		}
		curr_flag.visited = true
		if curr == end {
			break
		}
		curr_id := self.g.VertexAt(curr).ID
		self.g.ForOutgoingArcs(curr_id, func(arc structs.Arc, arc_id int32) {
			other, _ := self.g.Slot(arc.Target)
			other_flag := self.flags.Get(other)
			if other_flag.visited {
				return
			}
			new_dist := curr_flag.dist + arc.Cost
			if new_dist < other_flag.dist {
				other_flag.dist = new_dist
				other_flag.prev_arc = arc_id
				self.heap.Enqueue(other, new_dist)
			}
		})
	}

	return self.build_path(start, end)
}

func (self *Dijkstra) build_path(start, end int32) []structs.Arc {
	arcs := NewList[structs.Arc](10)
	for vertex := end; vertex != start; {
		arc_id := self.flags.Get(vertex).prev_arc
		arc := self.g.GetArcByID(arc_id)
		arcs.Add(arc)
		vertex, _ = self.g.Slot(arc.Source)
	}
	// collected back-to-front
	path := NewList[structs.Arc](arcs.Length())
	for i := arcs.Length() - 1; i >= 0; i-- {
		path.Add(arcs[i])
	}
	return path
}
