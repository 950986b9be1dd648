package structs

import (
	. "github.com/DDugDDag/find-route/util"
)

//*******************************************
// adjacency list
//*******************************************

type adj_entry struct {
	ArcID   int32
	OtherID int32
}

// AdjacencyList stores forward and backward arc references per node.
// Entries keep insertion order, which keeps every traversal over them
// deterministic.
type AdjacencyList struct {
	fwd_entries Array[List[adj_entry]]
	bwd_entries Array[List[adj_entry]]
}

func NewAdjacencyList(node_count int) AdjacencyList {
	return AdjacencyList{
		fwd_entries: NewArray[List[adj_entry]](node_count),
		bwd_entries: NewArray[List[adj_entry]](node_count),
	}
}

// AddNode appends an empty entry pair for one more node.
func (self *AdjacencyList) AddNode() {
	self.fwd_entries = append(self.fwd_entries, nil)
	self.bwd_entries = append(self.bwd_entries, nil)
}

// AddArcEntries registers the arc in the forward list of node_a and the
// backward list of node_b.
func (self *AdjacencyList) AddArcEntries(node_a, node_b, arc_id int32) {
	self.fwd_entries[node_a].Add(adj_entry{ArcID: arc_id, OtherID: node_b})
	self.bwd_entries[node_b].Add(adj_entry{ArcID: arc_id, OtherID: node_a})
}

func (self *AdjacencyList) GetDegree(node int32, forward bool) int {
	if forward {
		return self.fwd_entries[node].Length()
	}
	return self.bwd_entries[node].Length()
}

func (self *AdjacencyList) NodeCount() int {
	return self.fwd_entries.Length()
}

func (self *AdjacencyList) GetAccessor() AdjacencyAccessor {
	return AdjacencyAccessor{
		adjacency: self,
	}
}

//*******************************************
// adjacency accessor
//*******************************************

// AdjacencyAccessor iterates the arc entries of one node at a time.
type AdjacencyAccessor struct {
	adjacency *AdjacencyList
	entries   List[adj_entry]
	position  int
	current   adj_entry
}

func (self *AdjacencyAccessor) SetBaseNode(node int32, forward bool) {
	if forward {
		self.entries = self.adjacency.fwd_entries[node]
	} else {
		self.entries = self.adjacency.bwd_entries[node]
	}
	self.position = 0
}

func (self *AdjacencyAccessor) Next() bool {
	if self.position >= self.entries.Length() {
		return false
	}
	self.current = self.entries[self.position]
	self.position += 1
	return true
}

func (self *AdjacencyAccessor) GetArcID() int32 {
	return self.current.ArcID
}

func (self *AdjacencyAccessor) GetOtherID() int32 {
	return self.current.OtherID
}
