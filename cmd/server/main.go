package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"
	"trucklogix-service/internal/adapters/backend"
	"trucklogix-service/internal/adapters/cache"
	"trucklogix-service/internal/adapters/events"
	"trucklogix-service/internal/adapters/geocode"
	"trucklogix-service/internal/api"
	"trucklogix-service/internal/config"
	"trucklogix-service/internal/feed"
	"trucklogix-service/internal/platform/db"
	"trucklogix-service/internal/platform/metrics"
	"trucklogix-service/internal/ports"
	"trucklogix-service/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const geocodeCacheMaxAge = 30 * 24 * time.Hour

// main is the application composition root.
// It wires concrete adapters (backend, caches, ORS, NATS) behind ports and starts the HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	collector := metrics.NewCollector()

	var (
		routeBackend ports.RouteBackend
		eldBackend   ports.EldLogBackend
	)
	switch cfg.BackendMode {
	case config.BackendModeMock:
		log.Printf("backend mode=mock (in-memory)")
		mock := backend.NewMockBackend()
		routeBackend, eldBackend = mock, mock
	default:
		client, err := backend.NewClient(cfg.BackendURL, cfg.BackendTimeout)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("backend mode=http url=%s timeout=%s", cfg.BackendURL, cfg.BackendTimeout)
		routeBackend, eldBackend = client, client
	}

	// Postgres backs the geocode cache and, without Redis, the route cache.
	var pg *sql.DB
	if cfg.DatabaseURL != "" {
		pg, err = db.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()

		if err := cache.InitSchema(ctx, pg); err != nil {
			log.Fatal(err)
		}
	}

	var routeCache ports.RouteCache
	switch {
	case cfg.RedisURL != "":
		rdb, err := db.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal(err)
		}
		defer rdb.Close()
		routeCache = cache.NewRedisRouteCache(rdb)
		log.Printf("route cache=redis ttl=%s", cfg.RouteCacheTTL)
	case pg != nil:
		routeCache = cache.NewSQLRouteCache(pg)
		log.Printf("route cache=postgres ttl=%s", cfg.RouteCacheTTL)
	default:
		log.Printf("route cache=disabled")
	}

	var geocoder ports.Geocoder
	if cfg.ORSAPIKey != "" {
		var geocodeCache ports.GeocodeCache
		if pg != nil {
			geocodeCache = cache.NewSQLGeocodeCache(pg, geocodeCacheMaxAge)
		}
		g, err := geocode.NewORSGeocoder(cfg.ORSAPIKey, geocodeCache)
		if err != nil {
			log.Fatal(err)
		}
		geocoder = g
	}

	var publisher ports.EventPublisher = events.NoopPublisher{}
	if cfg.NATSURL != "" {
		p, err := events.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubjectPrefix, collector)
		if err != nil {
			log.Fatal(err)
		}
		defer p.Close()
		publisher = p
		log.Printf("events=nats url=%s prefix=%s", cfg.NATSURL, cfg.NATSSubjectPrefix)
	}

	hub := feed.NewHub(collector)

	router := api.NewRouter(api.Deps{
		Routes: &services.RouteService{
			Backend:  routeBackend,
			Cache:    routeCache,
			CacheTTL: cfg.RouteCacheTTL,
			Geocoder: geocoder,
			Events:   publisher,
			Metrics:  collector,
		},
		EldLogs: &services.EldLogService{
			Backend: eldBackend,
			Palette: cfg.Palette,
			Events:  publisher,
			Feed:    hub,
			Metrics: collector,
		},
		Palette:        cfg.Palette,
		Feed:           hub,
		Metrics:        collector,
		MetricsHandler: collector.Handler(),
	})

	// Log generation upstream can take most of the backend timeout.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.BackendTimeout + 30*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Printf("Server listening addr=:%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	log.Printf("Server stopped")
}
