package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
	"trucklogix-service/internal/domain"
	"trucklogix-service/internal/platform/httpx"
	"trucklogix-service/internal/platform/obs"
	"trucklogix-service/internal/ports"

	"golang.org/x/sync/errgroup"
)

var _ ports.Geocoder = (*ORSGeocoder)(nil)

// ORSGeocoder resolves addresses with the OpenRouteService search API.
//
// It coordinates:
//   - Address normalization
//   - Persistent geocode caching (optional)
//   - Bounded parallel lookups with retry/backoff
//
// The geocoder is safe for concurrent use.
type ORSGeocoder struct {
	session *http.Client
	apiKey  string
	baseURL string
	country string
	backoff time.Duration
	cache   ports.GeocodeCache
}

func NewORSGeocoder(apiKey string, cache ports.GeocodeCache) (*ORSGeocoder, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}

	return &ORSGeocoder{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.openrouteservice.org",
		country: "US",
		backoff: 200 * time.Millisecond,
		cache:   cache,
	}, nil
}

// Normalize collapses whitespace so equivalent addresses share a cache key.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

type searchResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Geocode returns coordinates keyed by normalized address. Cached entries
// are used first; misses are looked up in parallel and written back.
func (g *ORSGeocoder) Geocode(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	seen := make(map[string]struct{}, len(addresses))
	needed := make([]string, 0, len(addresses))
	for _, a := range addresses {
		n := Normalize(a)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		needed = append(needed, n)
	}

	if len(needed) == 0 {
		return map[string]domain.Coordinates{}, nil
	}

	hits := make(map[string]domain.Coordinates)
	// Check persistent cache before issuing external API calls.
	if g.cache != nil {
		hits, err = g.cache.GetMany(ctx, needed)
		if err != nil {
			return nil, fmt.Errorf("ORS get geocode cache: %w", err)
		}
	}

	misses := make([]string, 0, len(needed))
	for _, a := range needed {
		if _, ok := hits[a]; !ok {
			misses = append(misses, a)
		}
	}

	fresh := make(map[string]domain.Coordinates, len(misses))
	var mu sync.Mutex

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(4)
	for _, a := range misses {
		eg.Go(func() error {
			c, err := g.search(egCtx, a)
			if err != nil {
				return err
			}
			mu.Lock()
			fresh[a] = c
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("retrieving coordinates: %w", err)
	}

	if g.cache != nil && len(fresh) > 0 {
		if err := g.cache.PutMany(ctx, fresh); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	out := make(map[string]domain.Coordinates, len(hits)+len(fresh))
	for k, v := range hits {
		out[k] = v
	}
	for k, v := range fresh {
		out[k] = v
	}

	return out, nil
}

// search resolves one normalized address via /geocode/search.
func (g *ORSGeocoder) search(ctx context.Context, address string) (domain.Coordinates, error) {
	endpoint := g.baseURL + "/geocode/search"

	resp, err := httpx.DoWithRetry(ctx, g.session, g.backoff, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Authorization", g.apiKey)
		req.Header.Set("Accept", "application/json")

		q := req.URL.Query()
		q.Set("text", address)
		q.Set("boundary.country", g.country)
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", address, err)
	}
	defer resp.Body.Close()

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode geocode response for %q: %w", address, err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, fmt.Errorf("no geocode results for %q", address)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinates{}, fmt.Errorf("invalid coordinate format for %q", address)
	}

	return domain.CoordsFromList(coords), nil
}
