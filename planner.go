package main

import (
	"golang.org/x/exp/slog"

	"github.com/DDugDDag/find-route/geo"
	"github.com/DDugDDag/find-route/routing"
	"github.com/DDugDDag/find-route/structs"
	. "github.com/DDugDDag/find-route/util"
)

//**********************************************************
// smart route planner
//**********************************************************

const (
	ALG_CCH      = "CCH"
	ALG_DIJKSTRA = "DIJKSTRA"
	ALG_SCENIC   = "SCENIC"
	ALG_HYBRID   = "HYBRID"
)

// PlannedRoute is the outcome of one planning run.
type PlannedRoute struct {
	Path        []structs.Arc
	Algorithm   string
	ScenicScore float64
}

// SmartRoutePlanner picks a query algorithm per request: hierarchy
// queries by default, the scenic search when the rider cares more about
// scenery than distance, and a hybrid mode that only accepts the scenic
// route when it does not stray too far from the shortest one.
//
// Search state lives for one request: every PlanRoute builds its own
// query objects, so concurrent requests never share heaps or labels.
// Only the scenic index is shared, it is immutable after construction.
type SmartRoutePlanner struct {
	manager      *RouteManager
	options      PlannerOptions
	scenic_index *routing.ScenicIndex
}

func NewSmartRoutePlanner(manager *RouteManager, points List[routing.ScenicPoint], options PlannerOptions) *SmartRoutePlanner {
	return &SmartRoutePlanner{
		manager:      manager,
		options:      options,
		scenic_index: routing.BuildScenicIndex(manager.GetGraph(), points),
	}
}

// SelectAlgorithm applies the request overrides and the configured
// thresholds.
func (self *SmartRoutePlanner) SelectAlgorithm(request RouteRequest) string {
	switch request.Algorithm {
	case ALG_CCH, ALG_DIJKSTRA, ALG_SCENIC, ALG_HYBRID:
		return request.Algorithm
	}

	start := geo.NewCoord(request.Start[0], request.Start[1])
	end := geo.NewCoord(request.End[0], request.End[1])
	distance := geo.Haversine(start, end)

	scenic_weight := self.options.ScenicWeight
	if request.ScenicWeight > 0 {
		scenic_weight = request.ScenicWeight
	}

	if distance > self.options.LongDistanceKm {
		return ALG_CCH
	}
	if scenic_weight > self.options.ScenicThreshold {
		return ALG_SCENIC
	}
	if request.RealTimeTraffic {
		return ALG_HYBRID
	}
	return ALG_CCH
}

// preference resolves the effective route preference of one request.
func (self *SmartRoutePlanner) preference(request RouteRequest) routing.RoutePreference {
	pref := self.options.ToPreference()
	if request.ScenicWeight > 0 {
		pref.ScenicWeight = request.ScenicWeight
	}
	if request.MaxDetourRatio > 0 {
		pref.MaxDetourRatio = request.MaxDetourRatio
	}
	return pref
}

// PlanRoute snaps the endpoints onto the graph and runs the selected
// algorithm. Hierarchy misses fall back to the plain search before
// giving up. The manager read lock is held for the whole run so a
// concurrent re-customization cannot rewrite the metric mid-query.
func (self *SmartRoutePlanner) PlanRoute(request RouteRequest) (PlannedRoute, bool) {
	start_vertex, ok := self.manager.GetClosestVertex(geo.NewCoord(request.Start[0], request.Start[1]))
	if !ok {
		return PlannedRoute{}, false
	}
	end_vertex, ok := self.manager.GetClosestVertex(geo.NewCoord(request.End[0], request.End[1]))
	if !ok {
		return PlannedRoute{}, false
	}

	algorithm := self.SelectAlgorithm(request)
	slog.Info("planning route", "start", start_vertex, "end", end_vertex, "algorithm", algorithm)

	self.manager.mu.RLock()
	defer self.manager.mu.RUnlock()

	switch algorithm {
	case ALG_SCENIC:
		scenic := routing.NewScenicSearch(self.scenic_index, self.preference(request))
		path := scenic.FindPath(start_vertex, end_vertex)
		if len(path) == 0 {
			return PlannedRoute{}, false
		}
		return PlannedRoute{Path: path, Algorithm: ALG_SCENIC, ScenicScore: self.scenic_index.PathScenicScore(path)}, true
	case ALG_HYBRID:
		return self.plan_hybrid(request, start_vertex, end_vertex)
	case ALG_DIJKSTRA:
		dijkstra := routing.NewDijkstra(self.manager.GetGraph())
		path := dijkstra.FindPath(start_vertex, end_vertex)
		if len(path) == 0 {
			return PlannedRoute{}, false
		}
		return PlannedRoute{Path: path, Algorithm: ALG_DIJKSTRA}, true
	default:
		path := self.find_shortest(start_vertex, end_vertex)
		if len(path) == 0 {
			return PlannedRoute{}, false
		}
		return PlannedRoute{Path: path, Algorithm: ALG_CCH}, true
	}
}

// plan_hybrid keeps the scenic route as long as it is not much longer
// than the shortest one.
func (self *SmartRoutePlanner) plan_hybrid(request RouteRequest, start_vertex, end_vertex int32) (PlannedRoute, bool) {
	scenic := routing.NewScenicSearch(self.scenic_index, self.preference(request))
	shortest := self.find_shortest(start_vertex, end_vertex)
	scenic_path := scenic.FindPath(start_vertex, end_vertex)

	if len(shortest) > 0 && len(scenic_path) > 0 {
		ratio := routing.PathCost(scenic_path) / routing.PathCost(shortest)
		if ratio <= self.options.HybridMaxRatio {
			return PlannedRoute{Path: scenic_path, Algorithm: ALG_HYBRID, ScenicScore: self.scenic_index.PathScenicScore(scenic_path)}, true
		}
		return PlannedRoute{Path: shortest, Algorithm: ALG_HYBRID}, true
	}
	if len(scenic_path) > 0 {
		return PlannedRoute{Path: scenic_path, Algorithm: ALG_HYBRID, ScenicScore: self.scenic_index.PathScenicScore(scenic_path)}, true
	}
	if len(shortest) > 0 {
		return PlannedRoute{Path: shortest, Algorithm: ALG_HYBRID}, true
	}
	return PlannedRoute{}, false
}

// find_shortest prefers the hierarchy and falls back to the plain
// search.
func (self *SmartRoutePlanner) find_shortest(start_vertex, end_vertex int32) []structs.Arc {
	query := routing.NewCCHQuery(self.manager.GetData())
	path := query.FindPath(start_vertex, end_vertex)
	if len(path) > 0 {
		return path
	}
	dijkstra := routing.NewDijkstra(self.manager.GetGraph())
	return dijkstra.FindPath(start_vertex, end_vertex)
}
