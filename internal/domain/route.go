package domain

import "time"

// RouteRequest asks the routing backend for a trip from the driver's current
// location through a pickup to a dropoff.
type RouteRequest struct {
	CurrentLocation       string
	PickupLocation        string
	DropoffLocation       string
	CurrentCycleHoursUsed float64
}

// Stop is a fuel or rest stop along an optimized route. Location is whatever
// text the backend returned, which may be a serialized place record.
type Stop struct {
	Location string
	Order    int
}

// RouteCoordinates holds the geocoded endpoints of a route.
type RouteCoordinates struct {
	Current Coordinates
	Pickup  Coordinates
	Dropoff Coordinates
}

// Route is an optimized trip as returned by the routing backend.
type Route struct {
	ID                       int
	CurrentLocation          string
	PickupLocation           string
	DropoffLocation          string
	CurrentCycleHoursUsed    float64
	OptimizedRoute           string
	EstimatedTravelTime      string
	EstimatedFuelConsumption string
	FuelStops                []Stop
	RestBreakStops           []Stop
	Coordinates              RouteCoordinates
	Directions               []string
	CreatedAt                time.Time
	UpdatedAt                time.Time
}
