package geo

//*******************************************
// geometry types
//*******************************************

// Coord is a geographic position stored as [lon, lat] (geojson order).
type Coord [2]float64

func NewCoord(lon, lat float64) Coord {
	return Coord{lon, lat}
}

func (self Coord) Lon() float64 {
	return self[0]
}

func (self Coord) Lat() float64 {
	return self[1]
}

type CoordArray []Coord

// BBox is a rectangle in geographic coordinates.
type BBox struct {
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

func (self BBox) Contains(coord Coord) bool {
	return coord.Lon() >= self.MinLon && coord.Lon() <= self.MaxLon &&
		coord.Lat() >= self.MinLat && coord.Lat() <= self.MaxLat
}
