package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"trucklogix-service/internal/domain"
	"trucklogix-service/internal/platform/obs"
	"trucklogix-service/internal/ports"
)

var _ ports.RouteCache = (*SQLRouteCache)(nil)

// SQLRouteCache keeps optimized routes in Postgres as JSONB with an expiry.
type SQLRouteCache struct {
	DB *sql.DB
}

func NewSQLRouteCache(db *sql.DB) *SQLRouteCache {
	return &SQLRouteCache{DB: db}
}

func (s *SQLRouteCache) Get(ctx context.Context, key string) (_ *domain.Route, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.sql.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("route cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return nil, false, errors.New("get route cache: key must not be empty")
	}

	var payload []byte
	err = s.DB.QueryRowContext(ctx, `
	SELECT payload
	FROM route_cache
	WHERE cache_key = $1
	  AND expires_at > now();
	`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get route cache: query key=%q: %w", key, err)
	}

	var r domain.Route
	if err := json.Unmarshal(payload, &r); err != nil {
		return nil, false, fmt.Errorf("get route cache: decode key=%q: %w", key, err)
	}

	return &r, true, nil
}

func (s *SQLRouteCache) Put(ctx context.Context, key string, route *domain.Route, ttl time.Duration) (err error) {
	defer obs.Time(ctx, "route.cache.sql.Put")(&err)

	if s.DB == nil {
		return errors.New("route cache: db is nil")
	}

	key = strings.TrimSpace(key)
	if key == "" || route == nil {
		return errors.New("put route cache: key and route are required")
	}
	if ttl <= 0 {
		return fmt.Errorf("put route cache: ttl must be positive, got %s", ttl)
	}

	payload, err := json.Marshal(route)
	if err != nil {
		return fmt.Errorf("put route cache: encode key=%q: %w", key, err)
	}

	_, err = s.DB.ExecContext(ctx, `
	INSERT INTO route_cache (cache_key, payload, expires_at)
	VALUES ($1, $2::jsonb, $3)
	ON CONFLICT (cache_key) DO UPDATE
	SET payload = EXCLUDED.payload,
		expires_at = EXCLUDED.expires_at;
	`, key, string(payload), time.Now().Add(ttl))
	if err != nil {
		return fmt.Errorf("put route cache: upsert key=%q: %w", key, err)
	}

	return nil
}

// DeleteExpired removes rows past their expiry and returns how many were removed.
func (s *SQLRouteCache) DeleteExpired(ctx context.Context) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("route cache: db is nil")
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM route_cache WHERE expires_at <= now();`)
	if err != nil {
		return 0, fmt.Errorf("delete expired route cache: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete expired route cache: rows affected: %w", err)
	}
	return n, nil
}
