package main

import (
	"context"
	"sync"

	"golang.org/x/exp/slog"

	"github.com/DDugDDag/find-route/attr"
	"github.com/DDugDDag/find-route/comps"
	"github.com/DDugDDag/find-route/geo"
	"github.com/DDugDDag/find-route/graph"
	"github.com/DDugDDag/find-route/parser"
	"github.com/DDugDDag/find-route/preproc"
	"github.com/DDugDDag/find-route/structs"
	. "github.com/DDugDDag/find-route/util"
)

//**********************************************************
// route manager
//**********************************************************

// RouteManager owns the graph and everything derived from it: the
// hierarchy, the current weighting and the vertex index. Re-customization
// rewrites the metric arrays in place, so arc cost updates take the write
// lock and queries hold the read lock for their whole run.
type RouteManager struct {
	config Config

	mu     sync.RWMutex
	g      *graph.Graph
	data   *comps.CCHData
	weight *comps.DefaultWeighting
	index  *attr.VertexIndex
}

func NewRouteManager(config Config) (*RouteManager, error) {
	return build_route_manager(load_graph(config.Source), config)
}

func build_route_manager(g *graph.Graph, config Config) (*RouteManager, error) {
	manager := &RouteManager{config: config}

	if config.Repair.Enabled {
		added, err := graph.EnhanceConnectivity(g, config.Repair.ToGraphOptions())
		if err != nil {
			return nil, err
		}
		slog.Info("repaired graph connectivity", "arcs_added", added)
	}

	order := preproc.CalcDegreeOrdering(g)
	if err := preproc.AssignRanks(g, order); err != nil {
		return nil, err
	}
	data, err := preproc.MetricIndependentPreprocessing(g)
	if err != nil {
		return nil, err
	}
	slog.Info("preprocessed hierarchy", "vertices", g.VertexCount(), "shortcuts", data.ShortcutCount())

	weight := comps.BuildDefaultWeighting(g)
	preproc.Customize(data, weight)

	manager.g = g
	manager.data = data
	manager.weight = weight
	manager.index = attr.BuildVertexIndex(g)
	return manager, nil
}

// load_graph prefers an osm extract, falls back to the open-api data and
// finally to the built-in landmark graph.
func load_graph(source SourceOptions) *graph.Graph {
	if source.OSM != "" {
		g, err := parser.ParseOSMGraph(source.OSM, &parser.CyclingDecoder{})
		if err == nil && g.VertexCount() > 0 {
			return g
		}
		slog.Error("failed to parse osm extract, trying open-api data", "error", err)
	}
	if source.ServiceKey != "" {
		client := parser.NewAPIClient(source.APIBaseURL, source.ServiceKey)
		routes := NewList[parser.BikeRouteRecord](100)
		for page := 1; page <= source.RoutePages; page++ {
			page_items, err := client.GetBikeRoutes(context.Background(), page, source.RouteRows)
			if err != nil {
				slog.Error("failed to fetch bike routes", "page", page, "error", err)
				break
			}
			routes = append(routes, page_items...)
		}
		storages := NewList[parser.BikeStorageRecord](50)
		for page := 1; page <= source.StoragePages; page++ {
			page_items, err := client.GetBikeStorages(context.Background(), page, source.StorageRows)
			if err != nil {
				slog.Error("failed to fetch bike storages", "page", page, "error", err)
				break
			}
			storages = append(storages, page_items...)
		}
		if routes.Length() > 0 || storages.Length() > 0 {
			g, err := parser.BuildBikeGraph(routes, storages)
			if err != nil {
				slog.Error("failed to build graph from open-api data", "error", err)
			} else if g.VertexCount() > 0 {
				return g
			}
		}
	}
	return parser.FallbackGraph()
}

func (self *RouteManager) GetGraph() *graph.Graph {
	return self.g
}

func (self *RouteManager) GetData() *comps.CCHData {
	return self.data
}

// GetClosestVertex snaps a location onto the graph.
func (self *RouteManager) GetClosestVertex(loc geo.Coord) (int32, bool) {
	return self.index.GetClosestVertex(loc)
}

// UpdateArcCost overwrites the cost of one arc and re-customizes the
// hierarchy. The topology is untouched, so this is much cheaper than a
// rebuild.
func (self *RouteManager) UpdateArcCost(source, target int32, cost float64) error {
	self.mu.Lock()
	defer self.mu.Unlock()

	if _, ok := self.g.GetArc(source, target); !ok {
		return graph.ErrDanglingArc
	}
	if err := self.g.AddArc(structs.Arc{Source: source, Target: target, Cost: cost}); err != nil {
		return err
	}
	self.weight = comps.BuildDefaultWeighting(self.g)
	preproc.Customize(self.data, self.weight)
	slog.Info("re-customized hierarchy", "source", source, "target", target, "cost", cost)
	return nil
}
