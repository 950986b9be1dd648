package parser

import (
	"golang.org/x/exp/slog"

	"github.com/DDugDDag/find-route/geo"
	"github.com/DDugDDag/find-route/graph"
	"github.com/DDugDDag/find-route/structs"
	. "github.com/DDugDDag/find-route/util"
)

// storages further apart than this stay unconnected
const storage_link_radius_km = 5.0

//*******************************************
// graph building
//*******************************************

// BuildBikeGraph turns open-api records into a routable graph. Every
// distinct segment endpoint becomes a vertex, every segment a pair of
// arcs. Storages become vertices linked to every vertex within riding
// distance.
func BuildBikeGraph(routes List[BikeRouteRecord], storages List[BikeStorageRecord]) (*graph.Graph, error) {
	g := graph.NewGraph()
	coord_to_id := NewDict[geo.Coord, int32](routes.Length() * 2)
	next_id := int32(0)

	add_or_get := func(loc geo.Coord) (int32, error) {
		if id, ok := coord_to_id[loc]; ok {
			return id, nil
		}
		id := next_id
		next_id += 1
		if err := g.AddVertex(structs.NewVertex(id, loc)); err != nil {
			return -1, err
		}
		coord_to_id[loc] = id
		return id, nil
	}

	for _, route := range routes {
		start := route.StartLoc()
		end := route.EndLoc()
		if start.Lat() == 0 || start.Lon() == 0 || end.Lat() == 0 || end.Lon() == 0 {
			continue
		}
		cost := route.LengthKm()
		if cost <= 0 {
			cost = geo.Haversine(start, end)
		}
		source, err := add_or_get(start)
		if err != nil {
			return nil, err
		}
		target, err := add_or_get(end)
		if err != nil {
			return nil, err
		}
		if source == target {
			continue
		}
		if err := g.AddArc(structs.Arc{Source: source, Target: target, Cost: cost}); err != nil {
			return nil, err
		}
		if err := g.AddArc(structs.Arc{Source: target, Target: source, Cost: cost}); err != nil {
			return nil, err
		}
	}

	for _, storage := range storages {
		loc := storage.Loc()
		if loc.Lat() == 0 || loc.Lon() == 0 {
			continue
		}
		if _, ok := coord_to_id[loc]; ok {
			continue
		}
		storage_id := next_id
		next_id += 1
		if err := g.AddVertex(structs.NewVertex(storage_id, loc)); err != nil {
			return nil, err
		}
		coord_to_id[loc] = storage_id

		for slot := int32(0); slot < int32(g.VertexCount())-1; slot++ {
			other := g.VertexAt(slot)
			dist := geo.Haversine(loc, other.Loc)
			if dist > storage_link_radius_km {
				continue
			}
			if err := g.AddArc(structs.Arc{Source: storage_id, Target: other.ID, Cost: dist}); err != nil {
				return nil, err
			}
			if err := g.AddArc(structs.Arc{Source: other.ID, Target: storage_id, Cost: dist}); err != nil {
				return nil, err
			}
		}
	}

	slog.Info("built bike graph", "vertices", g.VertexCount(), "arcs", g.ArcCount())
	return g, nil
}

//*******************************************
// fallback graph
//*******************************************

var fallback_points = []struct {
	name string
	loc  geo.Coord
}{
	{"대전역", geo.NewCoord(127.3845, 36.3504)},
	{"엑스포공원", geo.NewCoord(127.3896, 36.3726)},
	{"유성온천", geo.NewCoord(127.4086, 36.3219)},
	{"대전시청", geo.NewCoord(127.3940, 36.3398)},
	{"서대전역", geo.NewCoord(127.3448, 36.3665)},
}

// FallbackGraph connects the major points of the city into a complete
// graph. Used when the open-api services return nothing usable.
func FallbackGraph() *graph.Graph {
	g := graph.NewGraph()
	// ids and arcs come from the fixed table above, the adds cannot fail
	for i, point := range fallback_points {
		_ = g.AddVertex(structs.NewVertex(int32(i), point.loc))
	}
	for i := range fallback_points {
		for j := i + 1; j < len(fallback_points); j++ {
			dist := geo.Haversine(fallback_points[i].loc, fallback_points[j].loc)
			_ = g.AddArc(structs.Arc{Source: int32(i), Target: int32(j), Cost: dist})
			_ = g.AddArc(structs.Arc{Source: int32(j), Target: int32(i), Cost: dist})
		}
	}
	slog.Info("using fallback graph", "vertices", g.VertexCount())
	return g
}
