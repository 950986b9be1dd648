package parser

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/DDugDDag/find-route/geo"
	. "github.com/DDugDDag/find-route/util"
)

//*******************************************
// open-api records
//*******************************************

// flex_float accepts both numeric and quoted-string values; the open-data
// endpoints switch between them depending on the dataset.
type flex_float float64

func (self *flex_float) UnmarshalJSON(data []byte) error {
	text := strings.Trim(string(data), "\"")
	if text == "" || text == "null" {
		*self = 0
		return nil
	}
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		*self = 0
		return nil
	}
	*self = flex_float(value)
	return nil
}

// BikeRouteRecord is one bike-path segment from the GetBycpList service.
type BikeRouteRecord struct {
	RouteName      string     `json:"COURS_NM"`
	StartLatitude  flex_float `json:"START_LATITUDE"`
	StartLongitude flex_float `json:"START_LONGITUDE"`
	EndLatitude    flex_float `json:"END_LATITUDE"`
	EndLongitude   flex_float `json:"END_LONGITUDE"`
	// meters
	TotalLength flex_float `json:"TOTAL_LENGTH"`
}

func (self BikeRouteRecord) StartLoc() geo.Coord {
	return geo.NewCoord(float64(self.StartLongitude), float64(self.StartLatitude))
}

func (self BikeRouteRecord) EndLoc() geo.Coord {
	return geo.NewCoord(float64(self.EndLongitude), float64(self.EndLatitude))
}

// LengthKm converts the recorded segment length to kilometers.
func (self BikeRouteRecord) LengthKm() float64 {
	return float64(self.TotalLength) / 1000.0
}

// BikeStorageRecord is one bike storage from the GetBystList service.
type BikeStorageRecord struct {
	Name      string     `json:"storage_name"`
	Latitude  flex_float `json:"latitude"`
	Longitude flex_float `json:"longitude"`
}

func (self BikeStorageRecord) Loc() geo.Coord {
	return geo.NewCoord(float64(self.Longitude), float64(self.Latitude))
}

//*******************************************
// response envelope
//*******************************************

// item_list tolerates the items field arriving as a single object, an
// array or null.
type item_list[T any] struct {
	Items List[T]
}

func (self *item_list[T]) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "\"\"" {
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		return json.Unmarshal(data, (*[]T)(&self.Items))
	}
	var single T
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	self.Items.Add(single)
	return nil
}

type api_items[T any] struct {
	Item item_list[T] `json:"item"`
}

type api_body[T any] struct {
	Items api_items[T] `json:"items"`
}

// api_envelope handles both envelope shapes that the services emit, the
// body nested under response and the body at the top level.
type api_envelope[T any] struct {
	Response *struct {
		Body *api_body[T] `json:"body"`
	} `json:"response"`
	Body *api_body[T] `json:"body"`
}

func (self *api_envelope[T]) items() List[T] {
	if self.Body != nil {
		return self.Body.Items.Item.Items
	}
	if self.Response != nil && self.Response.Body != nil {
		return self.Response.Body.Items.Item.Items
	}
	return nil
}

//*******************************************
// osm intermediate structs
//*******************************************

type temp_node struct {
	Point geo.Coord
	Count int32
}

type osm_node struct {
	Point geo.Coord
}

type osm_edge struct {
	NodeA  int32
	NodeB  int32
	Oneway bool
	// km along the way geometry
	Length float64
}
