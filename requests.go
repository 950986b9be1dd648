package main

//*******************************************
// request params
//*******************************************

type RouteRequest struct {
	// [lon, lat]
	Start [2]float64 `json:"start"`
	End   [2]float64 `json:"end"`

	// overrides the configured preference when set
	ScenicWeight   float64 `json:"scenic_weight"`
	MaxDetourRatio float64 `json:"max_detour_ratio"`

	// forces the hybrid planner to weigh current traffic
	RealTimeTraffic bool `json:"real_time_traffic"`

	// CCH, DIJKSTRA, SCENIC or empty for automatic selection
	Algorithm string `json:"algorithm"`
}

type UpdateArcRequest struct {
	Source int32   `json:"source"`
	Target int32   `json:"target"`
	Cost   float64 `json:"cost"`
}
