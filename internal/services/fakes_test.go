package services

import (
	"context"
	"errors"
	"sync"
	"time"
	"trucklogix-service/internal/domain"
)

type memRouteCache struct {
	mu     sync.Mutex
	routes map[string]*domain.Route
	ttl    time.Duration
	getErr error
	putErr error
}

func newMemRouteCache() *memRouteCache {
	return &memRouteCache{routes: map[string]*domain.Route{}}
}

func (c *memRouteCache) Get(ctx context.Context, key string) (*domain.Route, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	r, ok := c.routes[key]
	return r, ok, nil
}

func (c *memRouteCache) Put(ctx context.Context, key string, route *domain.Route, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.putErr != nil {
		return c.putErr
	}
	c.routes[key] = route
	c.ttl = ttl
	return nil
}

type fakeGeocoder struct {
	results map[string]domain.Coordinates
	err     error
	calls   [][]string
}

func (g *fakeGeocoder) Geocode(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error) {
	g.calls = append(g.calls, addresses)
	if g.err != nil {
		return nil, g.err
	}
	return g.results, nil
}

type published struct {
	subject string
	payload any
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, subject string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{subject: subject, payload: payload})
	return p.err
}

type recordingFeed struct {
	msgs []any
}

func (f *recordingFeed) Broadcast(v any) { f.msgs = append(f.msgs, v) }

type countingMetrics struct {
	lookups map[string]int
	ok      int
	failed  int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{lookups: map[string]int{}}
}

func (m *countingMetrics) CacheLookupInc(result string) { m.lookups[result]++ }

func (m *countingMetrics) ReconstructionInc(ok bool) {
	if ok {
		m.ok++
		return
	}
	m.failed++
}

var errBoom = errors.New("boom")
