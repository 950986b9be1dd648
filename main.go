package main

import (
	"net/http"
	"os"

	"golang.org/x/exp/slog"

	"github.com/DDugDDag/find-route/geo"
	"github.com/DDugDDag/find-route/routing"
	. "github.com/DDugDDag/find-route/util"
)

var MANAGER *RouteManager

func main() {
	slog.SetDefault(slog.New(NewLogHandler(os.Stdout, nil)))

	config_file := "./config.yaml"
	if len(os.Args) > 1 {
		config_file = os.Args[1]
	}
	config := ReadConfig(config_file)

	manager, err := NewRouteManager(config)
	if err != nil {
		slog.Error("failed to build route manager: " + err.Error())
		os.Exit(1)
	}
	MANAGER = manager

	planner := NewSmartRoutePlanner(manager, DaejeonScenicPoints(), config.Planner)

	app := http.NewServeMux()
	MapPost(app, "/v1/route", func(request RouteRequest) Result {
		route, ok := planner.PlanRoute(request)
		if !ok {
			return BadRequest("no route found")
		}
		return OK(NewRouteResponse(manager.GetGraph(), route.Path, route.Algorithm, route.ScenicScore))
	})
	MapPost(app, "/v1/arcs/update", func(request UpdateArcRequest) Result {
		if err := manager.UpdateArcCost(request.Source, request.Target, request.Cost); err != nil {
			return BadRequest(err.Error())
		}
		return OK("updated")
	})
	MapGet(app, "/v1/status", func(none) Result {
		g := manager.GetGraph()
		return OK(StatusResponse{
			Status:    "ok",
			Vertices:  g.VertexCount(),
			Arcs:      g.ArcCount(),
			Shortcuts: manager.GetData().ShortcutCount(),
		})
	})

	slog.Info("listening", "address", config.Server.Address)
	if err := http.ListenAndServe(config.Server.Address, app); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

// DaejeonScenicPoints seeds the scenic search with well known places
// along the Gapcheon and around the expo area.
func DaejeonScenicPoints() List[routing.ScenicPoint] {
	points := NewList[routing.ScenicPoint](6)
	add := func(name, category string, lon, lat float64) {
		points.Add(routing.ScenicPoint{
			Name:     name,
			Loc:      geo.NewCoord(lon, lat),
			Category: category,
			Score:    routing.CategoryScore(category),
		})
	}
	add("엑스포과학공원", "공원", 127.3896, 36.3742)
	add("한밭수목원", "공원", 127.3884, 36.3673)
	add("갑천 자전거길", "자전거도로", 127.3710, 36.3658)
	add("유림공원", "공원", 127.3436, 36.3585)
	add("대전천 산책로", "산책로", 127.4260, 36.3330)
	add("뿌리공원", "공원", 127.3876, 36.2852)
	return points
}
