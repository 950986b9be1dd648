package structs

import (
	"github.com/DDugDDag/find-route/geo"
)

//*******************************************
// graph structs
//*******************************************

// Vertex is a graph node with a dense integer identity and a geographic
// position. Rank is the contraction priority assigned once per
// preprocessing run; -1 means no rank has been assigned yet.
type Vertex struct {
	ID   int32
	Loc  geo.Coord
	Rank int32
}

func NewVertex(id int32, loc geo.Coord) Vertex {
	return Vertex{
		ID:   id,
		Loc:  loc,
		Rank: -1,
	}
}

// Arc is a directed edge between two vertices with a non-negative cost in
// kilometers. An undirected road segment is stored as two arcs.
type Arc struct {
	Source int32
	Target int32
	Cost   float64
}
