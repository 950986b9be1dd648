package comps

import (
	"math"

	"github.com/DDugDDag/find-route/graph"
	"github.com/DDugDDag/find-route/structs"
	. "github.com/DDugDDag/find-route/util"
)

//*******************************************
// cch-data
//*******************************************

// UpArc is one arc of the augmented hierarchy. Base arcs carry the id of
// the underlying graph arc and Via -1; shortcuts carry Base -1 and the
// contracted vertex they bypass.
type UpArc struct {
	From int32
	To   int32
	Base int32
	Via  int32
}

func (self UpArc) IsShortcut() bool {
	return self.Base < 0
}

// CCHData holds the metric-independent augmented topology plus the
// metric state (arc costs and unpacking middles) written by
// customization. Topology is fixed after preprocessing; customization
// only rewrites the metric arrays, so it can run any number of times.
//
// All vertices are addressed by their arena slot, not their public id.
type CCHData struct {
	g *graph.Graph

	arcs      List[UpArc]
	arc_index Dict[Tuple[int32, int32], int32]

	// up-arcs by lower-ranked endpoint, fwd for arcs leaving it,
	// bwd for arcs entering it
	fwd_up Array[List[int32]]
	bwd_up Array[List[int32]]

	// rank -> slot
	order Array[int32]
	// slot -> rank
	ranks Array[int32]

	shortcut_count int

	costs      Array[float64]
	middles    Array[int32]
	customized bool
}

// NewCCHData ingests the base arcs of a ranked graph. Every base arc is
// filed under its lower-ranked endpoint; shortcuts are added on top by
// the contraction pass.
func NewCCHData(g *graph.Graph) *CCHData {
	count := g.VertexCount()
	data := &CCHData{
		g:         g,
		arcs:      NewList[UpArc](g.ArcCount()),
		arc_index: NewDict[Tuple[int32, int32], int32](g.ArcCount()),
		fwd_up:    NewArray[List[int32]](count),
		bwd_up:    NewArray[List[int32]](count),
		order:     NewArray[int32](count),
		ranks:     NewArray[int32](count),
	}
	for slot := 0; slot < count; slot++ {
		rank := g.VertexAt(int32(slot)).Rank
		data.ranks[slot] = rank
		data.order[rank] = int32(slot)
	}
	g.ForVertices(func(vertex structs.Vertex) {
		g.ForOutgoingArcs(vertex.ID, func(arc structs.Arc, arc_id int32) {
			src, _ := g.Slot(arc.Source)
			trg, _ := g.Slot(arc.Target)
			data.add_arc(UpArc{From: src, To: trg, Base: arc_id, Via: -1})
		})
	})
	return data
}

func (self *CCHData) add_arc(arc UpArc) int32 {
	id := int32(self.arcs.Length())
	self.arcs.Add(arc)
	self.arc_index[MakeTuple(arc.From, arc.To)] = id
	if self.ranks[arc.From] < self.ranks[arc.To] {
		self.fwd_up[arc.From].Add(id)
	} else {
		self.bwd_up[arc.To].Add(id)
	}
	return id
}

// AddShortcut inserts a shortcut arc bypassing via. The caller has to
// make sure no arc between the endpoints exists yet.
func (self *CCHData) AddShortcut(from, to, via int32) int32 {
	self.shortcut_count += 1
	return self.add_arc(UpArc{From: from, To: to, Base: -1, Via: via})
}

func (self *CCHData) HasArcBetween(from, to int32) bool {
	return self.arc_index.ContainsKey(MakeTuple(from, to))
}

func (self *CCHData) GetArcBetween(from, to int32) (int32, bool) {
	id, ok := self.arc_index[MakeTuple(from, to)]
	return id, ok
}

func (self *CCHData) GetUpArc(arc_id int32) UpArc {
	return self.arcs[arc_id]
}

func (self *CCHData) ArcCount() int {
	return self.arcs.Length()
}

func (self *CCHData) ShortcutCount() int {
	return self.shortcut_count
}

func (self *CCHData) VertexCount() int {
	return self.order.Length()
}

func (self *CCHData) GetRank(slot int32) int32 {
	return self.ranks[slot]
}

// GetOrderedVertex returns the slot holding the given rank.
func (self *CCHData) GetOrderedVertex(rank int32) int32 {
	return self.order[rank]
}

// ForUpArcs iterates the up-arcs filed under the given slot, fwd for
// arcs leaving it towards higher ranks, bwd for arcs entering it from
// higher ranks. Iteration follows insertion order.
func (self *CCHData) ForUpArcs(slot int32, forward bool, callback func(arc_id int32, arc UpArc)) {
	var ids List[int32]
	if forward {
		ids = self.fwd_up[slot]
	} else {
		ids = self.bwd_up[slot]
	}
	for _, id := range ids {
		callback(id, self.arcs[id])
	}
}

//*******************************************
// metric state
//*******************************************

// ResetMetric loads base arc costs from the weighting and clears every
// shortcut back to unreachable. Called at the start of customization.
func (self *CCHData) ResetMetric(weight IWeighting) {
	count := self.arcs.Length()
	self.costs = NewArray[float64](count)
	self.middles = NewArray[int32](count)
	for id := 0; id < count; id++ {
		arc := self.arcs[id]
		if arc.IsShortcut() {
			self.costs[id] = math.Inf(1)
			self.middles[id] = arc.Via
		} else {
			self.costs[id] = weight.GetArcCost(arc.Base)
			self.middles[id] = -1
		}
	}
	self.customized = false
}

func (self *CCHData) GetArcCost(arc_id int32) float64 {
	return self.costs[arc_id]
}

func (self *CCHData) GetMiddle(arc_id int32) int32 {
	return self.middles[arc_id]
}

// UpdateArcMetric lowers the cost of an arc and records the vertex the
// new cost routes through.
func (self *CCHData) UpdateArcMetric(arc_id int32, cost float64, middle int32) {
	self.costs[arc_id] = cost
	self.middles[arc_id] = middle
}

func (self *CCHData) SetCustomized() {
	self.customized = true
}

// IsCustomized reports whether the metric arrays hold a finished
// customization run.
func (self *CCHData) IsCustomized() bool {
	return self.customized
}

// GetGraph returns the base graph the hierarchy was built over.
func (self *CCHData) GetGraph() *graph.Graph {
	return self.g
}
