package parser

import (
	"context"
	"os"
	"runtime"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"golang.org/x/exp/slog"

	"github.com/DDugDDag/find-route/geo"
	"github.com/DDugDDag/find-route/graph"
	"github.com/DDugDDag/find-route/structs"
	. "github.com/DDugDDag/find-route/util"
)

//*******************************************
// osm decoder
//*******************************************

type IOSMDecoder interface {
	IsValidHighway(tags Dict[string, string]) bool
	IsOneway(tags Dict[string, string]) bool
}

// CyclingDecoder accepts the highway classes a bike is allowed on.
type CyclingDecoder struct{}

var cycling_types = Dict[string, bool]{"cycleway": true, "path": true, "track": true, "footway": true,
	"residential": true, "living_street": true, "service": true, "tertiary": true, "tertiary_link": true,
	"secondary": true, "secondary_link": true, "unclassified": true, "road": true}

func (self *CyclingDecoder) IsValidHighway(tags Dict[string, string]) bool {
	if !tags.ContainsKey("highway") {
		return false
	}
	if !cycling_types.ContainsKey(tags.Get("highway")) {
		return false
	}
	if tags.Get("bicycle") == "no" {
		return false
	}
	return true
}

func (self *CyclingDecoder) IsOneway(tags Dict[string, string]) bool {
	if tags.Get("oneway:bicycle") == "no" {
		return false
	}
	return tags.Get("oneway") == "yes"
}

//*******************************************
// osm parser
//*******************************************

// ParseOSMGraph reads a .osm.pbf extract and builds the bike graph from
// it. Ways are split at junction nodes, arc costs are the geometric
// length of the way segment.
func ParseOSMGraph(pbf_file string, decoder IOSMDecoder) (*graph.Graph, error) {
	osm_nodes := NewDict[int64, temp_node](10000)
	nodes := NewList[osm_node](10000)
	edges := NewList[osm_edge](10000)
	index_mapping := NewDict[int64, int32](10000)

	file, err := os.Open(pbf_file)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := osmpbf.New(context.Background(), file, runtime.GOMAXPROCS(-1))
	init_way_handler(scanner, decoder, osm_nodes)
	scanner.Close()
	file.Seek(0, 0)
	scanner = osmpbf.New(context.Background(), file, runtime.GOMAXPROCS(-1))
	node_handler(scanner, osm_nodes, &nodes, index_mapping)
	scanner.Close()
	file.Seek(0, 0)
	scanner = osmpbf.New(context.Background(), file, runtime.GOMAXPROCS(-1))
	way_handler(scanner, decoder, &edges, osm_nodes, index_mapping)
	scanner.Close()

	slog.Info("parsed osm extract", "nodes", nodes.Length(), "edges", edges.Length())
	return build_osm_graph(nodes, edges)
}

// first scan: count how often each node is referenced by a valid way;
// nodes referenced more than once are junctions and become graph vertices
func init_way_handler(scanner *osmpbf.Scanner, decoder IOSMDecoder, osm_nodes Dict[int64, temp_node]) {
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		tags := Dict[string, string](way.TagMap())
		if !decoder.IsValidHighway(tags) {
			continue
		}
		refs := way.Nodes.NodeIDs()
		for _, ref := range refs {
			ndref := ref.FeatureID().Ref()
			node := osm_nodes[ndref]
			node.Count += 1
			osm_nodes[ndref] = node
		}
		// way endpoints always split
		for _, index := range []int{0, len(refs) - 1} {
			ndref := refs[index].FeatureID().Ref()
			node := osm_nodes[ndref]
			node.Count += 1
			osm_nodes[ndref] = node
		}
	}
}

// second scan: store the coordinates of referenced nodes and allocate
// vertex slots for junctions
func node_handler(scanner *osmpbf.Scanner, osm_nodes Dict[int64, temp_node], nodes *List[osm_node], index_mapping Dict[int64, int32]) {
	scanner.SkipWays = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		object, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		ndref := object.FeatureID().Ref()
		temp, ok := osm_nodes[ndref]
		if !ok {
			continue
		}
		temp.Point = geo.NewCoord(object.Lon, object.Lat)
		osm_nodes[ndref] = temp
		if temp.Count > 1 {
			index_mapping[ndref] = int32(nodes.Length())
			nodes.Add(osm_node{Point: temp.Point})
		}
	}
}

// third scan: walk every valid way and emit one edge per stretch between
// junctions, accumulating the length along the geometry
func way_handler(scanner *osmpbf.Scanner, decoder IOSMDecoder, edges *List[osm_edge], osm_nodes Dict[int64, temp_node], index_mapping Dict[int64, int32]) {
	scanner.SkipNodes = true
	scanner.SkipRelations = true
	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		tags := Dict[string, string](way.TagMap())
		if !decoder.IsValidHighway(tags) {
			continue
		}
		oneway := decoder.IsOneway(tags)
		refs := way.Nodes.NodeIDs()
		start := int32(-1)
		length := 0.0
		var prev geo.Coord
		for i, ref := range refs {
			ndref := ref.FeatureID().Ref()
			temp := osm_nodes[ndref]
			if i > 0 {
				length += geo.Haversine(prev, temp.Point)
			}
			prev = temp.Point
			node_id, is_junction := index_mapping[ndref]
			if !is_junction {
				continue
			}
			if start >= 0 && node_id != start {
				edges.Add(osm_edge{NodeA: start, NodeB: node_id, Oneway: oneway, Length: length})
			}
			start = node_id
			length = 0.0
		}
	}
}

func build_osm_graph(nodes List[osm_node], edges List[osm_edge]) (*graph.Graph, error) {
	g := graph.NewGraph()
	for i, node := range nodes {
		if err := g.AddVertex(structs.NewVertex(int32(i), node.Point)); err != nil {
			return nil, err
		}
	}
	for _, edge := range edges {
		if err := g.AddArc(structs.Arc{Source: edge.NodeA, Target: edge.NodeB, Cost: edge.Length}); err != nil {
			return nil, err
		}
		if !edge.Oneway {
			if err := g.AddArc(structs.Arc{Source: edge.NodeB, Target: edge.NodeA, Cost: edge.Length}); err != nil {
				return nil, err
			}
		}
	}
	return g, nil
}
