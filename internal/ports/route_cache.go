package ports

import (
	"context"
	"time"
	"trucklogix-service/internal/domain"
)

// Short-lived cache of optimized routes keyed by request.
type RouteCache interface {
	// Return the cached route and true, or false on a miss or expired entry.
	Get(ctx context.Context, key string) (*domain.Route, bool, error)
	// Store a route for ttl.
	Put(ctx context.Context, key string, route *domain.Route, ttl time.Duration) error
}
