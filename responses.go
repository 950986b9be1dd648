package main

import (
	"github.com/DDugDDag/find-route/geo"
	"github.com/DDugDDag/find-route/graph"
	"github.com/DDugDDag/find-route/routing"
	"github.com/DDugDDag/find-route/structs"
)

type ErrorResponse struct {
	Request string `json:"request"`
	Error   any    `json:"error"`
}

func NewErrorResponse(request string, error any) ErrorResponse {
	return ErrorResponse{
		Request: request,
		Error:   error,
	}
}

//*******************************************
// route response
//*******************************************

// riding pace used for the time estimate, 15 km/h
const minutes_per_km = 4.0

type RouteResponse struct {
	Type     string        `json:"type"`
	Geometry RouteGeometry `json:"geometry"`
	// km
	Distance float64 `json:"distance"`
	// minutes at riding pace
	EstimatedTime float64 `json:"estimated_time"`
	Algorithm     string  `json:"algorithm"`
	ScenicScore   float64 `json:"scenic_score,omitempty"`
}

type RouteGeometry struct {
	Type        string         `json:"type"`
	Coordinates geo.CoordArray `json:"coordinates"`
}

func NewRouteResponse(g *graph.Graph, path []structs.Arc, algorithm string, scenic_score float64) RouteResponse {
	coords := make(geo.CoordArray, 0, len(path)+1)
	if len(path) > 0 {
		if vertex, ok := g.GetVertex(path[0].Source); ok {
			coords = append(coords, vertex.Loc)
		}
		for _, arc := range path {
			if vertex, ok := g.GetVertex(arc.Target); ok {
				coords = append(coords, vertex.Loc)
			}
		}
	}
	distance := routing.PathCost(path)
	return RouteResponse{
		Type: "Feature",
		Geometry: RouteGeometry{
			Type:        "LineString",
			Coordinates: coords,
		},
		Distance:      distance,
		EstimatedTime: distance * minutes_per_km,
		Algorithm:     algorithm,
		ScenicScore:   scenic_score,
	}
}

//*******************************************
// status response
//*******************************************

type StatusResponse struct {
	Status    string `json:"status"`
	Vertices  int    `json:"vertices"`
	Arcs      int    `json:"arcs"`
	Shortcuts int    `json:"shortcuts"`
}
