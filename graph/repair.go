package graph

import (
	"github.com/DDugDDag/find-route/geo"
	"github.com/DDugDDag/find-route/structs"
)

//*******************************************
// connectivity repair
//*******************************************

type RepairOptions struct {
	// vertices closer than this are linked directly
	NearThresholdKm float64
	// component representatives further apart than this stay unlinked
	ComponentCapKm float64
}

func DefaultRepairOptions() RepairOptions {
	return RepairOptions{
		NearThresholdKm: 0.1,
		ComponentCapKm:  10.0,
	}
}

// EnhanceConnectivity adds bidirectional arcs between vertices that lie
// within the near threshold of each other but are not yet adjacent, then
// bridges the remaining components by linking their closest representative
// pairs. Returns the number of arcs added.
//
// Sparse source data (stations and rental spots scraped independently)
// tends to fall apart into islands; without this step most queries across
// town come back empty.
func EnhanceConnectivity(g *Graph, opts RepairOptions) (int, error) {
	added := 0
	count := g.VertexCount()

	for i := 0; i < count; i++ {
		a := g.VertexAt(int32(i))
		for j := i + 1; j < count; j++ {
			b := g.VertexAt(int32(j))
			if _, ok := g.GetArc(a.ID, b.ID); ok {
				continue
			}
			dist := geo.Haversine(a.Loc, b.Loc)
			if dist >= opts.NearThresholdKm {
				continue
			}
			if err := g.AddArc(structs.Arc{Source: a.ID, Target: b.ID, Cost: dist}); err != nil {
				return added, err
			}
			if err := g.AddArc(structs.Arc{Source: b.ID, Target: a.ID, Cost: dist}); err != nil {
				return added, err
			}
			added += 2
		}
	}

	components := ConnectedComponents(g)
	for components != nil && len(components) > 1 {
		linked, err := bridge_closest(g, components, opts.ComponentCapKm)
		if err != nil {
			return added, err
		}
		if linked == 0 {
			break
		}
		added += linked
		components = ConnectedComponents(g)
	}
	return added, nil
}

// bridge_closest links the closest vertex pair between the first component
// and any other, as long as the pair is within the cap.
func bridge_closest(g *Graph, components [][]int32, cap_km float64) (int, error) {
	base := components[0]
	best_dist := cap_km
	best_a, best_b := int32(-1), int32(-1)
	for _, other := range components[1:] {
		for _, id_a := range base {
			vertex_a, _ := g.GetVertex(id_a)
			for _, id_b := range other {
				vertex_b, _ := g.GetVertex(id_b)
				dist := geo.Haversine(vertex_a.Loc, vertex_b.Loc)
				if dist < best_dist {
					best_dist = dist
					best_a = id_a
					best_b = id_b
				}
			}
		}
	}
	if best_a < 0 {
		return 0, nil
	}
	if err := g.AddArc(structs.Arc{Source: best_a, Target: best_b, Cost: best_dist}); err != nil {
		return 0, err
	}
	if err := g.AddArc(structs.Arc{Source: best_b, Target: best_a, Cost: best_dist}); err != nil {
		return 0, err
	}
	return 2, nil
}
