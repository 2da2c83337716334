package api

import (
	"net/http"
	"trucklogix-service/internal/api/handlers"
	"trucklogix-service/internal/services"
	"trucklogix-service/internal/timeline"
)

// Deps are the collaborators the HTTP layer needs. Feed, Metrics and
// MetricsHandler are optional.
type Deps struct {
	Routes         *services.RouteService
	EldLogs        *services.EldLogService
	Palette        timeline.Palette
	Feed           http.Handler
	Metrics        RequestObserver
	MetricsHandler http.Handler
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	mux := http.NewServeMux()

	routeHandler := &handlers.RouteHandler{Service: d.Routes}
	eldHandler := &handlers.EldLogHandler{Service: d.EldLogs}
	timelineHandler := &handlers.TimelineHandler{
		Service: d.EldLogs,
		Palette: d.Palette,
	}

	mux.HandleFunc("/health", handlers.Health)
	if d.MetricsHandler != nil {
		mux.Handle("/metrics", d.MetricsHandler)
	}

	mux.HandleFunc("/api/routes", routeHandler.History)
	mux.HandleFunc("/api/routes/optimize", routeHandler.Optimize)
	mux.HandleFunc("/api/routes/{id}", routeHandler.Detail)

	mux.HandleFunc("/api/eld-logs", eldHandler.Collection)
	mux.HandleFunc("/api/eld-logs/{id}", eldHandler.Item)

	mux.HandleFunc("/api/timeline", timelineHandler.Reconstruct)
	mux.HandleFunc("/api/timeline/legend", timelineHandler.Legend)

	if d.Feed != nil {
		mux.Handle("/ws/timelines", d.Feed)
	}

	return observeMiddleware(mux, d.Metrics)
}
