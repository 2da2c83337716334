package domain

import "time"

// Event subjects, relative to the publisher's prefix.
const (
	SubjectRouteOptimized = "route.optimized"
	SubjectEldGenerated   = "eld.generated"
	SubjectEldDeleted     = "eld.deleted"
)

type RouteOptimizedEvent struct {
	RouteID        int       `json:"route_id"`
	OptimizedRoute string    `json:"optimized_route"`
	At             time.Time `json:"at"`
}

type EldGeneratedEvent struct {
	LogID      int            `json:"log_id"`
	DriverName string         `json:"driver_name"`
	Date       string         `json:"date"`
	Totals     map[string]int `json:"totals"`
	At         time.Time      `json:"at"`
}

type EldDeletedEvent struct {
	LogID int       `json:"log_id"`
	At    time.Time `json:"at"`
}
