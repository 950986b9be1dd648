package main

import (
	"os"

	"golang.org/x/exp/slog"
	"gopkg.in/yaml.v3"

	"github.com/DDugDDag/find-route/graph"
	"github.com/DDugDDag/find-route/routing"
)

//**********************************************************
// config
//**********************************************************

func ReadConfig(file string) Config {
	slog.Info("Reading config file")
	data, err := os.ReadFile(file)
	if err != nil {
		slog.Error("failed to read config file: " + err.Error())
		panic(err)
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, &config); err != nil {
		slog.Error("failed to parse config file: " + err.Error())
		panic(err)
	}
	return config
}

type Config struct {
	Server  ServerOptions  `yaml:"server"`
	Source  SourceOptions  `yaml:"source"`
	Repair  RepairOptions  `yaml:"repair"`
	Planner PlannerOptions `yaml:"planner"`
}

type ServerOptions struct {
	Address string `yaml:"address"`
}

type SourceOptions struct {
	// open-data service credentials; empty key means fallback graph
	APIBaseURL string `yaml:"api-url"`
	ServiceKey string `yaml:"service-key"`
	// optional .osm.pbf extract used instead of the open-api data
	OSM string `yaml:"osm"`
	// pages fetched from the open-api services
	RoutePages   int `yaml:"route-pages"`
	RouteRows    int `yaml:"route-rows"`
	StoragePages int `yaml:"storage-pages"`
	StorageRows  int `yaml:"storage-rows"`
}

type RepairOptions struct {
	Enabled         bool    `yaml:"enabled"`
	NearThresholdKm float64 `yaml:"near-threshold-km"`
	ComponentCapKm  float64 `yaml:"component-cap-km"`
}

type PlannerOptions struct {
	LongDistanceKm  float64 `yaml:"long-distance-km"`
	ScenicThreshold float64 `yaml:"scenic-threshold"`
	HybridMaxRatio  float64 `yaml:"hybrid-max-ratio"`
	ScenicWeight    float64 `yaml:"scenic-weight"`
	DistanceWeight  float64 `yaml:"distance-weight"`
	MaxDetourRatio  float64 `yaml:"max-detour-ratio"`
}

func DefaultConfig() Config {
	return Config{
		Server: ServerOptions{Address: ":5002"},
		Source: SourceOptions{
			APIBaseURL:   "https://apis.data.go.kr/6300000/",
			RoutePages:   1,
			RouteRows:    100,
			StoragePages: 1,
			StorageRows:  50,
		},
		Repair: RepairOptions{
			Enabled:         true,
			NearThresholdKm: 0.1,
			ComponentCapKm:  10.0,
		},
		Planner: PlannerOptions{
			LongDistanceKm:  50.0,
			ScenicThreshold: 0.7,
			HybridMaxRatio:  1.3,
			ScenicWeight:    0.6,
			DistanceWeight:  0.3,
			MaxDetourRatio:  1.5,
		},
	}
}

func (self RepairOptions) ToGraphOptions() graph.RepairOptions {
	opts := graph.DefaultRepairOptions()
	if self.NearThresholdKm > 0 {
		opts.NearThresholdKm = self.NearThresholdKm
	}
	if self.ComponentCapKm > 0 {
		opts.ComponentCapKm = self.ComponentCapKm
	}
	return opts
}

func (self PlannerOptions) ToPreference() routing.RoutePreference {
	pref := routing.DefaultRoutePreference()
	if self.ScenicWeight > 0 {
		pref.ScenicWeight = self.ScenicWeight
	}
	if self.DistanceWeight > 0 {
		pref.DistanceWeight = self.DistanceWeight
	}
	if self.MaxDetourRatio > 0 {
		pref.MaxDetourRatio = self.MaxDetourRatio
	}
	return pref
}
