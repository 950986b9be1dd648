package routing

import (
	"github.com/DDugDDag/find-route/structs"
)

//*******************************************
// path-finder interface
//*******************************************

// IPathFinder is implemented by every query algorithm. FindPath returns
// the shortest path as a sequence of base graph arcs from start to end;
// an empty slice means no path exists, the endpoints are equal or an
// endpoint is unknown.
type IPathFinder interface {
	FindPath(start_id, end_id int32) []structs.Arc
}

// PathCost sums the arc costs of a path.
func PathCost(path []structs.Arc) float64 {
	cost := 0.0
	for _, arc := range path {
		cost += arc.Cost
	}
	return cost
}
