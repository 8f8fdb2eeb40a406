package geo

import "fmt"

// Place is a point on the map with its display address.
type Place struct {
	Address string  `json:"address"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

func (p Place) String() string {
	return fmt.Sprintf("%s (%.6f, %.6f)", p.Address, p.Lat, p.Lng)
}
