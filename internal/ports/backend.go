package ports

import (
	"context"
	"trucklogix-service/internal/domain"
)

// Port: the remote routing service that optimizes trips and keeps their history.
type RouteBackend interface {
	// Request an optimized route with fuel and rest stops.
	OptimizeRoute(ctx context.Context, req domain.RouteRequest) (*domain.Route, error)
	// Return the most recent optimizations, newest first.
	RouteHistory(ctx context.Context) ([]*domain.Route, error)
	// Return one optimization, or domain.ErrNotFound.
	RouteDetail(ctx context.Context, id int) (*domain.Route, error)
}

// Port: the remote log service that generates daily log sheets and stores them.
type EldLogBackend interface {
	// Generate and store a log sheet for the request.
	GenerateEldLog(ctx context.Context, req domain.EldLogRequest) (*domain.EldLog, error)
	// Return the most recent logs, newest first.
	EldLogHistory(ctx context.Context) ([]*domain.EldLog, error)
	// Return one log, or domain.ErrNotFound.
	EldLogDetail(ctx context.Context, id int) (*domain.EldLog, error)
	// Delete one log, or return domain.ErrNotFound.
	DeleteEldLog(ctx context.Context, id int) error
}
