package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"
	"trucklogix-service/internal/adapters/backend"
	"trucklogix-service/internal/adapters/geocode"
	"trucklogix-service/internal/domain"
	"trucklogix-service/internal/platform/obs"
	"trucklogix-service/internal/ports"
)

// CacheMetrics receives route cache lookup outcomes (hit|miss|error).
type CacheMetrics interface {
	CacheLookupInc(result string)
}

// RouteService optimizes trips through the routing backend and reshapes the
// answer for the map view. Cache, Geocoder, Events and Metrics are optional.
type RouteService struct {
	Backend  ports.RouteBackend
	Cache    ports.RouteCache
	CacheTTL time.Duration
	Geocoder ports.Geocoder
	Events   ports.EventPublisher
	Metrics  CacheMetrics
}

// Marker is a labelled map pin.
type Marker struct {
	Name string
	Lat  float64
	Lng  float64
}

// RouteView is an optimized route as the dashboard draws it.
type RouteView struct {
	Route *domain.Route
	// Stops as raw location text.
	FuelStops      []string
	RestBreakStops []string

	RouteMarkers []Marker
	// FuelMarkers and RestMarkers fall back to RouteMarkers when no stop
	// carries coordinates.
	FuelMarkers []Marker
	RestMarkers []Marker
}

// RouteCacheKey identifies equivalent optimize requests.
func RouteCacheKey(req domain.RouteRequest) string {
	norm := func(s string) string { return strings.ToLower(geocode.Normalize(s)) }
	return strings.Join([]string{
		norm(req.CurrentLocation),
		norm(req.PickupLocation),
		norm(req.DropoffLocation),
		strconv.FormatFloat(req.CurrentCycleHoursUsed, 'f', -1, 64),
	}, "|")
}

func (s *RouteService) OptimizeRoute(ctx context.Context, req domain.RouteRequest) (_ *RouteView, err error) {
	defer obs.Time(ctx, "route.Optimize")(&err)

	if err := ValidateRouteRequest(req); err != nil {
		return nil, err
	}

	key := RouteCacheKey(req)
	route := s.cached(ctx, key)

	if route == nil {
		route, err = s.Backend.OptimizeRoute(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("optimize route: %w", err)
		}

		s.fillCoordinates(ctx, route)

		if s.Cache != nil && s.CacheTTL > 0 {
			if err := s.Cache.Put(ctx, key, route, s.CacheTTL); err != nil {
				log.Printf("route cache write failed: key=%q err=%v", key, err)
			}
		}

		publishEvent(ctx, s.Events, domain.SubjectRouteOptimized, domain.RouteOptimizedEvent{
			RouteID:        route.ID,
			OptimizedRoute: route.OptimizedRoute,
			At:             time.Now().UTC(),
		})
	}

	return BuildRouteView(route), nil
}

func (s *RouteService) History(ctx context.Context) ([]*domain.Route, error) {
	routes, err := s.Backend.RouteHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("route history: %w", err)
	}
	return routes, nil
}

func (s *RouteService) Detail(ctx context.Context, id int) (*RouteView, error) {
	route, err := s.Backend.RouteDetail(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("route detail id=%d: %w", id, err)
	}
	return BuildRouteView(route), nil
}

// cached returns nil on a miss. Lookup errors count as misses.
func (s *RouteService) cached(ctx context.Context, key string) *domain.Route {
	if s.Cache == nil {
		return nil
	}

	route, ok, err := s.Cache.Get(ctx, key)
	switch {
	case err != nil:
		log.Printf("route cache read failed: key=%q err=%v", key, err)
		s.lookup("error")
		return nil
	case !ok:
		s.lookup("miss")
		return nil
	}

	s.lookup("hit")
	return route
}

func (s *RouteService) lookup(result string) {
	if s.Metrics != nil {
		s.Metrics.CacheLookupInc(result)
	}
}

// fillCoordinates geocodes route endpoints the backend could not place.
// Failures leave the coordinates unset.
func (s *RouteService) fillCoordinates(ctx context.Context, route *domain.Route) {
	if s.Geocoder == nil {
		return
	}

	targets := []struct {
		address string
		coords  *domain.Coordinates
	}{
		{route.CurrentLocation, &route.Coordinates.Current},
		{route.PickupLocation, &route.Coordinates.Pickup},
		{route.DropoffLocation, &route.Coordinates.Dropoff},
	}

	var missing []string
	for _, t := range targets {
		if t.coords.IsZero() && strings.TrimSpace(t.address) != "" {
			missing = append(missing, t.address)
		}
	}
	if len(missing) == 0 {
		return
	}

	found, err := s.Geocoder.Geocode(ctx, missing)
	if err != nil {
		log.Printf("geocode route endpoints failed: route_id=%d err=%v", route.ID, err)
		return
	}

	for _, t := range targets {
		if !t.coords.IsZero() {
			continue
		}
		if c, ok := found[geocode.Normalize(t.address)]; ok {
			*t.coords = c
		}
	}
}

// publishEvent is best effort: failures are logged and dropped.
func publishEvent(ctx context.Context, pub ports.EventPublisher, subject string, payload any) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, subject, payload); err != nil {
		log.Printf("publish event failed: subject=%s err=%v", subject, err)
	}
}

func BuildRouteView(route *domain.Route) *RouteView {
	c := route.Coordinates
	v := &RouteView{
		Route:          route,
		FuelStops:      stopTexts(route.FuelStops),
		RestBreakStops: stopTexts(route.RestBreakStops),
		RouteMarkers: []Marker{
			markerAt("Current Location", c.Current),
			markerAt("Pickup Location", c.Pickup),
			markerAt("Dropoff Location", c.Dropoff),
		},
	}

	v.FuelMarkers = stopMarkers(route.FuelStops)
	if len(v.FuelMarkers) == 0 {
		v.FuelMarkers = v.RouteMarkers
	}
	v.RestMarkers = stopMarkers(route.RestBreakStops)
	if len(v.RestMarkers) == 0 {
		v.RestMarkers = v.RouteMarkers
	}

	return v
}

func markerAt(name string, c domain.Coordinates) Marker {
	return Marker{Name: name, Lat: c.Lat, Lng: c.Lon}
}

func stopTexts(stops []domain.Stop) []string {
	out := make([]string, 0, len(stops))
	for _, s := range stops {
		out = append(out, s.Location)
	}
	return out
}

func stopMarkers(stops []domain.Stop) []Marker {
	out := make([]Marker, 0, len(stops))
	for _, s := range stops {
		d := backend.DecodeStopLocation(s.Location)
		if !d.HasCoordinates {
			continue
		}
		out = append(out, markerAt(d.Name, d.Coordinates))
	}
	return out
}
