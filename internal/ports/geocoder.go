package ports

import (
	"context"
	"trucklogix-service/internal/domain"
)

// Contract for resolving free-text addresses to coordinates.
type Geocoder interface {
	// Return coordinates keyed by normalized address.
	Geocode(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
}

// Persistent address -> coordinates cache used by geocoders.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, results map[string]domain.Coordinates) error
}
