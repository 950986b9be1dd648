package graph

import (
	"fmt"

	"github.com/DDugDDag/find-route/structs"
	. "github.com/DDugDDag/find-route/util"
)

//*******************************************
// graph
//*******************************************

// Graph owns a dense arena of vertices and an arc store keyed by
// (source-id, target-id). Adjacency is kept as an index over arc slots for
// the repeated neighbour scans during preprocessing.
//
// The graph is logically immutable once handed to the engine; nothing in
// the engine mutates it, only arc costs may be overwritten between
// customization runs.
type Graph struct {
	vertices List[structs.Vertex]
	id_index Dict[int32, int32]

	arcs      List[structs.Arc]
	arc_index Dict[Tuple[int32, int32], int32]

	topology structs.AdjacencyList
}

func NewGraph() *Graph {
	return &Graph{
		vertices:  NewList[structs.Vertex](10),
		id_index:  NewDict[int32, int32](10),
		arcs:      NewList[structs.Arc](10),
		arc_index: NewDict[Tuple[int32, int32], int32](10),
		topology:  structs.NewAdjacencyList(0),
	}
}

// AddVertex inserts a vertex into the arena. Inserting an id twice fails
// with ErrDuplicateVertex.
func (self *Graph) AddVertex(vertex structs.Vertex) error {
	if self.id_index.ContainsKey(vertex.ID) {
		return fmt.Errorf("vertex %d: %w", vertex.ID, ErrDuplicateVertex)
	}
	slot := int32(self.vertices.Length())
	self.vertices.Add(vertex)
	self.id_index[vertex.ID] = slot
	self.topology.AddNode()
	return nil
}

// AddArc inserts or overwrites the arc keyed by (source, target); a second
// insert for the same key replaces the previous cost (last write wins).
// Both endpoints must already be present, otherwise ErrDanglingArc is
// returned and the graph is left untouched.
func (self *Graph) AddArc(arc structs.Arc) error {
	src_slot, ok := self.id_index[arc.Source]
	if !ok {
		return fmt.Errorf("arc (%d,%d): source: %w", arc.Source, arc.Target, ErrDanglingArc)
	}
	trg_slot, ok := self.id_index[arc.Target]
	if !ok {
		return fmt.Errorf("arc (%d,%d): target: %w", arc.Source, arc.Target, ErrDanglingArc)
	}
	key := MakeTuple(arc.Source, arc.Target)
	if arc_id, ok := self.arc_index[key]; ok {
		self.arcs[arc_id] = arc
		return nil
	}
	arc_id := int32(self.arcs.Length())
	self.arcs.Add(arc)
	self.arc_index[key] = arc_id
	self.topology.AddArcEntries(src_slot, trg_slot, arc_id)
	return nil
}

func (self *Graph) VertexCount() int {
	return self.vertices.Length()
}

func (self *Graph) ArcCount() int {
	return self.arcs.Length()
}

func (self *Graph) HasVertex(id int32) bool {
	return self.id_index.ContainsKey(id)
}

func (self *Graph) GetVertex(id int32) (structs.Vertex, bool) {
	slot, ok := self.id_index[id]
	if !ok {
		return structs.Vertex{}, false
	}
	return self.vertices[slot], true
}

func (self *Graph) GetArc(source, target int32) (structs.Arc, bool) {
	arc_id, ok := self.arc_index[MakeTuple(source, target)]
	if !ok {
		return structs.Arc{}, false
	}
	return self.arcs[arc_id], true
}

// GetArcByID returns the arc stored at the given arc slot.
func (self *Graph) GetArcByID(arc_id int32) structs.Arc {
	return self.arcs[arc_id]
}

// Slot maps a vertex id to its dense arena index.
func (self *Graph) Slot(id int32) (int32, bool) {
	slot, ok := self.id_index[id]
	return slot, ok
}

// VertexAt returns the vertex stored at the given arena index.
func (self *Graph) VertexAt(slot int32) structs.Vertex {
	return self.vertices[slot]
}

// SetRank overwrites the contraction rank of a vertex.
func (self *Graph) SetRank(id int32, rank int32) {
	slot := self.id_index[id]
	self.vertices[slot].Rank = rank
}

// GetDegree counts the incident arcs of a vertex in one direction.
func (self *Graph) GetDegree(id int32, forward bool) int {
	slot, ok := self.id_index[id]
	if !ok {
		return 0
	}
	return self.topology.GetDegree(slot, forward)
}

// ForVertices calls the callback for every vertex in arena order.
func (self *Graph) ForVertices(callback func(structs.Vertex)) {
	for _, vertex := range self.vertices {
		callback(vertex)
	}
}

// ForOutgoingArcs iterates the outgoing arcs of a vertex in insertion
// order; the callback receives the arc and its arc slot.
func (self *Graph) ForOutgoingArcs(id int32, callback func(structs.Arc, int32)) {
	slot, ok := self.id_index[id]
	if !ok {
		return
	}
	accessor := self.topology.GetAccessor()
	accessor.SetBaseNode(slot, true)
	for accessor.Next() {
		arc_id := accessor.GetArcID()
		callback(self.arcs[arc_id], arc_id)
	}
}

// ForIncomingArcs iterates the incoming arcs of a vertex in insertion
// order.
func (self *Graph) ForIncomingArcs(id int32, callback func(structs.Arc, int32)) {
	slot, ok := self.id_index[id]
	if !ok {
		return
	}
	accessor := self.topology.GetAccessor()
	accessor.SetBaseNode(slot, false)
	for accessor.Next() {
		arc_id := accessor.GetArcID()
		callback(self.arcs[arc_id], arc_id)
	}
}

// GetAccessor exposes slot-level adjacency iteration for the engine.
func (self *Graph) GetAccessor() structs.AdjacencyAccessor {
	return self.topology.GetAccessor()
}
