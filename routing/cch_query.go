package routing

import (
	"math"

	"github.com/DDugDDag/find-route/comps"
	"github.com/DDugDDag/find-route/structs"
	. "github.com/DDugDDag/find-route/util"
)

type cch_flag struct {
	dist     float64
	prev_arc int32
}

//*******************************************
// hierarchy query
//*******************************************

// CCHQuery answers shortest-path queries on a customized hierarchy with
// two upward searches, one from each endpoint. The searches meet at some
// highest vertex of the shortest path; the up-arcs on both branches are
// then unpacked recursively into base graph arcs.
//
// A query owns its heaps and labels and serves one FindPath at a time;
// concurrent callers each build their own on the shared hierarchy.
type CCHQuery struct {
	data      *comps.CCHData
	fwd_heap  PriorityQueue[int32, float64]
	bwd_heap  PriorityQueue[int32, float64]
	fwd_flags Flags[cch_flag]
	bwd_flags Flags[cch_flag]
}

func NewCCHQuery(data *comps.CCHData) *CCHQuery {
	count := int32(data.VertexCount())
	return &CCHQuery{
		data:      data,
		fwd_heap:  NewPriorityQueue[int32, float64](100),
		bwd_heap:  NewPriorityQueue[int32, float64](100),
		fwd_flags: NewFlags(count, cch_flag{dist: math.Inf(1), prev_arc: -1}),
		bwd_flags: NewFlags(count, cch_flag{dist: math.Inf(1), prev_arc: -1}),
	}
}

func (self *CCHQuery) FindPath(start_id, end_id int32) []structs.Arc {
	if !self.data.IsCustomized() {
		return []structs.Arc{}
	}
	g := self.data.GetGraph()
	start, ok := g.Slot(start_id)
	if !ok {
		return []structs.Arc{}
	}
	end, ok := g.Slot(end_id)
	if !ok {
		return []structs.Arc{}
	}
	if start == end {
		return []structs.Arc{}
	}

	self.fwd_flags.Reset()
	self.bwd_flags.Reset()
	self.fwd_heap.Clear()
	self.bwd_heap.Clear()

	self.fwd_flags.Get(start).dist = 0
	self.bwd_flags.Get(end).dist = 0
	self.fwd_heap.Enqueue(start, 0)
	self.bwd_heap.Enqueue(end, 0)

	best_dist := math.Inf(1)
	best_meet := int32(-1)

	for {
		fwd_prio, fwd_ok := self.fwd_heap.PeekPrio()
		bwd_prio, bwd_ok := self.bwd_heap.PeekPrio()
		if !fwd_ok && !bwd_ok {
			break
		}
		min_prio := fwd_prio
		if !fwd_ok || (bwd_ok && bwd_prio < fwd_prio) {
			min_prio = bwd_prio
		}
		// neither frontier can improve the best meeting anymore
		if min_prio >= best_dist {
			break
		}
		forward := fwd_ok && (!bwd_ok || fwd_prio <= bwd_prio)
		var settled int32
		if forward {
			settled, _ = self.fwd_heap.Dequeue()
		} else {
			settled, _ = self.bwd_heap.Dequeue()
		}
		self.settle(settled, forward)

		fwd_dist := self.fwd_flags.Get(settled).dist
		bwd_dist := self.bwd_flags.Get(settled).dist
		if total := fwd_dist + bwd_dist; total < best_dist {
			best_dist = total
			best_meet = settled
		}
	}

	if best_meet < 0 {
		return []structs.Arc{}
	}
	return self.build_path(start, end, best_meet)
}

// settle relaxes the up-arcs of one vertex in the given direction.
func (self *CCHQuery) settle(vertex int32, forward bool) {
	var flags *Flags[cch_flag]
	var heap *PriorityQueue[int32, float64]
	if forward {
		flags = &self.fwd_flags
		heap = &self.fwd_heap
	} else {
		flags = &self.bwd_flags
		heap = &self.bwd_heap
	}
	curr_dist := flags.Get(vertex).dist
	self.data.ForUpArcs(vertex, forward, func(arc_id int32, arc comps.UpArc) {
		cost := self.data.GetArcCost(arc_id)
		if math.IsInf(cost, 1) {
			return
		}
		other := arc.To
		if !forward {
			other = arc.From
		}
		other_flag := flags.Get(other)
		new_dist := curr_dist + cost
		if new_dist < other_flag.dist {
			other_flag.dist = new_dist
			other_flag.prev_arc = arc_id
			heap.Enqueue(other, new_dist)
		}
	})
}

func (self *CCHQuery) build_path(start, end, meet int32) []structs.Arc {
	path := NewList[structs.Arc](10)

	// walk the forward branch back to the start, collecting arc ids
	fwd_arcs := NewList[int32](10)
	for vertex := meet; vertex != start; {
		arc_id := self.fwd_flags.Get(vertex).prev_arc
		fwd_arcs.Add(arc_id)
		vertex = self.data.GetUpArc(arc_id).From
	}
	for i := fwd_arcs.Length() - 1; i >= 0; i-- {
		self.unpack(fwd_arcs[i], &path)
	}

	// the backward branch already runs from the meeting vertex down
	for vertex := meet; vertex != end; {
		arc_id := self.bwd_flags.Get(vertex).prev_arc
		self.unpack(arc_id, &path)
		vertex = self.data.GetUpArc(arc_id).To
	}

	return path
}

// unpack resolves an augmented arc into base graph arcs by recursing on
// the recorded middle vertex. Arcs whose best cost is their own base arc
// have no middle and terminate the recursion.
func (self *CCHQuery) unpack(arc_id int32, path *List[structs.Arc]) {
	middle := self.data.GetMiddle(arc_id)
	arc := self.data.GetUpArc(arc_id)
	if middle < 0 {
		*path = append(*path, self.data.GetGraph().GetArcByID(arc.Base))
		return
	}
	first, _ := self.data.GetArcBetween(arc.From, middle)
	second, _ := self.data.GetArcBetween(middle, arc.To)
	self.unpack(first, path)
	self.unpack(second, path)
}
