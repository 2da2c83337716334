package dto

import "time"

type RouteRequest struct {
	CurrentLocation       string  `json:"current_location"`
	PickupLocation        string  `json:"pickup_location"`
	DropoffLocation       string  `json:"dropoff_location"`
	CurrentCycleHoursUsed float64 `json:"current_cycle_hours_used"`
}

type MarkerResponse struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

type CoordinatesResponse struct {
	Current []float64 `json:"current"`
	Pickup  []float64 `json:"pickup"`
	Dropoff []float64 `json:"dropoff"`
}

type MarkersResponse struct {
	Route []MarkerResponse `json:"route"`
	Fuel  []MarkerResponse `json:"fuel"`
	Rest  []MarkerResponse `json:"rest"`
}

type RouteResponse struct {
	ID                       int                 `json:"id"`
	CurrentLocation          string              `json:"current_location"`
	PickupLocation           string              `json:"pickup_location"`
	DropoffLocation          string              `json:"dropoff_location"`
	CurrentCycleHoursUsed    float64             `json:"current_cycle_hours_used"`
	OptimizedRoute           string              `json:"optimized_route"`
	EstimatedTravelTime      string              `json:"estimated_travel_time"`
	EstimatedFuelConsumption string              `json:"estimated_fuel_consumption"`
	FuelStops                []string            `json:"fuel_stops"`
	RestBreakStops           []string            `json:"rest_break_stops"`
	Coordinates              CoordinatesResponse `json:"coordinates"`
	Directions               []string            `json:"directions,omitempty"`
	Markers                  *MarkersResponse    `json:"markers,omitempty"`
	CreatedAt                time.Time           `json:"created_at"`
	UpdatedAt                time.Time           `json:"updated_at"`
}

type ListRoutesResponse struct {
	Routes []RouteResponse `json:"routes"`
}
