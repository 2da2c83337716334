package domain

// Immutable geographic coordinates (longitude, latitude).
type Coordinates struct {
	Lon float64
	Lat float64
}

// Return coordinates as [lon, lat], the order used by GeoJSON and the routing backend.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// CoordsFromList reads a [lon, lat] pair. Anything else yields the zero value.
func CoordsFromList(v []float64) Coordinates {
	if len(v) != 2 {
		return Coordinates{}
	}
	return Coordinates{Lon: v[0], Lat: v[1]}
}

// IsZero reports an unset coordinate; the backend sends [0, 0] when geocoding failed.
func (c Coordinates) IsZero() bool { return c.Lon == 0 && c.Lat == 0 }
