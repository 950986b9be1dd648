package routing

import (
	"math"

	"github.com/DDugDDag/find-route/geo"
	"github.com/DDugDDag/find-route/graph"
	"github.com/DDugDDag/find-route/structs"
	. "github.com/DDugDDag/find-route/util"
)

//*******************************************
// scenic search
//*******************************************

// ScenicPoint is a place worth riding past, scored 0 to 10.
type ScenicPoint struct {
	Name     string
	Loc      geo.Coord
	Category string
	Score    float64
}

// RoutePreference steers the scenic search. Weights do not have to sum
// to one; MaxDetourRatio caps the accepted length against the straight
// line between the endpoints.
type RoutePreference struct {
	ScenicWeight   float64
	DistanceWeight float64
	MaxDetourRatio float64
}

func DefaultRoutePreference() RoutePreference {
	return RoutePreference{
		ScenicWeight:   0.6,
		DistanceWeight: 0.3,
		MaxDetourRatio: 1.5,
	}
}

// CategoryScore maps a place category to its base scenic score.
func CategoryScore(category string) float64 {
	scores := map[string]float64{
		"공원":    8.0,
		"강변":    9.0,
		"산책로":   7.5,
		"문화재":   8.5,
		"관광명소":  9.5,
		"자전거도로": 7.0,
		"호수":    9.0,
		"카페":    6.5,
		"맛집":    6.0,
		"박물관":   8.0,
		"전시관":   7.5,
	}
	if score, ok := scores[category]; ok {
		return score
	}
	return 5.0
}

type scenic_flag struct {
	dist     float64
	prev_arc int32
	visited  bool
}

// ScenicIndex holds the precomputed scenic score of every vertex. It is
// immutable after construction and can be shared between searches.
type ScenicIndex struct {
	g      *graph.Graph
	points List[ScenicPoint]
	// slot -> precomputed scenic score
	scores Array[float64]
}

func BuildScenicIndex(g *graph.Graph, points List[ScenicPoint]) *ScenicIndex {
	index := &ScenicIndex{
		g:      g,
		points: points,
		scores: NewArray[float64](g.VertexCount()),
	}
	for slot := 0; slot < g.VertexCount(); slot++ {
		index.scores[slot] = index.score_location(g.VertexAt(int32(slot)).Loc)
	}
	return index
}

// score_location averages the scores of all scenic points within one
// kilometre, weighted down with distance.
func (self *ScenicIndex) score_location(loc geo.Coord) float64 {
	total := 0.0
	weight_sum := 0.0
	for _, point := range self.points {
		dist := geo.Haversine(loc, point.Loc)
		if dist > 1.0 {
			continue
		}
		weight := 1.0 / (1.0 + dist)
		total += point.Score * weight
		weight_sum += weight
	}
	return total / math.Max(weight_sum, 1.0)
}

// VertexScore exposes the precomputed scenic score of a vertex.
func (self *ScenicIndex) VertexScore(id int32) float64 {
	slot, ok := self.g.Slot(id)
	if !ok {
		return 0
	}
	return self.scores[slot]
}

// PathScenicScore averages the scenic scores along the vertices of a
// path.
func (self *ScenicIndex) PathScenicScore(path []structs.Arc) float64 {
	if len(path) == 0 {
		return 0
	}
	total := self.VertexScore(path[0].Source)
	for _, arc := range path {
		total += self.VertexScore(arc.Target)
	}
	return total / float64(len(path)+1)
}

// ScenicSearch finds routes past scenic places. It runs a best-first
// search whose heuristic trades remaining distance against the scenic
// score around a vertex, and drops branches once they exceed the
// accepted detour. Paths are not guaranteed to be shortest.
//
// A search owns its heap and labels and serves one FindPath at a time;
// concurrent callers each build their own on the shared index.
type ScenicSearch struct {
	g     *graph.Graph
	index *ScenicIndex
	pref  RoutePreference
	heap  PriorityQueue[int32, float64]
	flags Flags[scenic_flag]
}

func NewScenicSearch(index *ScenicIndex, pref RoutePreference) *ScenicSearch {
	g := index.g
	return &ScenicSearch{
		g:     g,
		index: index,
		pref:  pref,
		heap:  NewPriorityQueue[int32, float64](100),
		flags: NewFlags(int32(g.VertexCount()), scenic_flag{dist: math.Inf(1), prev_arc: -1}),
	}
}

func (self *ScenicSearch) heuristic(slot int32, end geo.Coord) float64 {
	vertex := self.g.VertexAt(slot)
	dist_cost := geo.Haversine(vertex.Loc, end) * self.pref.DistanceWeight
	scenic_cost := (10.0 - self.index.scores[slot]) * self.pref.ScenicWeight
	return dist_cost + scenic_cost
}

func (self *ScenicSearch) FindPath(start_id, end_id int32) []structs.Arc {
	start, ok := self.g.Slot(start_id)
	if !ok {
		return []structs.Arc{}
	}
	end, ok := self.g.Slot(end_id)
	if !ok {
		return []structs.Arc{}
	}
	if start == end {
		return []structs.Arc{}
	}
	start_loc := self.g.VertexAt(start).Loc
	end_loc := self.g.VertexAt(end).Loc
	max_dist := geo.Haversine(start_loc, end_loc) * self.pref.MaxDetourRatio

	self.flags.Reset()
	self.heap.Clear()
	self.flags.Get(start).dist = 0
	self.heap.Enqueue(start, self.heuristic(start, end_loc))

	for {
		curr, ok := self.heap.Dequeue()
		if !ok {
			return []structs.Arc{}
		}
		curr_flag := self.flags.Get(curr)
		if curr_flag.visited {
			continue
		}
		curr_flag.visited = true
		if curr == end {
			break
		}
		if curr_flag.dist > max_dist {
			continue
		}
		curr_id := self.g.VertexAt(curr).ID
		self.g.ForOutgoingArcs(curr_id, func(arc structs.Arc, arc_id int32) {
			other, _ := self.g.Slot(arc.Target)
			other_flag := self.flags.Get(other)
			if other_flag.visited {
				return
			}
			new_dist := curr_flag.dist + arc.Cost
			if new_dist >= other_flag.dist {
				return
			}
			other_flag.dist = new_dist
			other_flag.prev_arc = arc_id
			self.heap.Enqueue(other, new_dist+self.heuristic(other, end_loc))
		})
	}

	return self.build_path(start, end)
}

func (self *ScenicSearch) build_path(start, end int32) []structs.Arc {
	arcs := NewList[structs.Arc](10)
	for vertex := end; vertex != start; {
		arc_id := self.flags.Get(vertex).prev_arc
		arc := self.g.GetArcByID(arc_id)
		arcs.Add(arc)
		vertex, _ = self.g.Slot(arc.Source)
	}
	path := NewList[structs.Arc](arcs.Length())
	for i := arcs.Length() - 1; i >= 0; i-- {
		path.Add(arcs[i])
	}
	return path
}
