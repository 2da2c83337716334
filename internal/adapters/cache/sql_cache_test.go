package cache

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"
	"trucklogix-service/internal/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// openTestDB connects to TEST_DATABASE_URL or skips the test.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := sql.Open("pgx", url)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := InitSchema(context.Background(), db); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return db
}

func TestSQLGeocodeCache(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	c := NewSQLGeocodeCache(db, 0)

	in := map[string]domain.Coordinates{
		"Dallas, TX": {Lon: -96.797, Lat: 32.7767},
		"Denver, CO": {Lon: -104.9903, Lat: 39.7392},
	}
	if err := c.PutMany(ctx, in); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := c.GetMany(ctx, []string{"Dallas, TX", " Dallas, TX ", "Denver, CO", "Nowhere"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got["Denver, CO"] != in["Denver, CO"] {
		t.Errorf("Denver = %+v, want %+v", got["Denver, CO"], in["Denver, CO"])
	}
}

func TestSQLRouteCache(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	c := NewSQLRouteCache(db)

	key := "test|" + time.Now().Format(time.RFC3339Nano)
	route := &domain.Route{ID: 3, OptimizedRoute: "A → B → C"}

	if _, ok, err := c.Get(ctx, key); err != nil || ok {
		t.Fatalf("get before put = ok %v err %v, want miss", ok, err)
	}

	if err := c.Put(ctx, key, route, time.Minute); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		t.Fatalf("get after put = ok %v err %v", ok, err)
	}
	if got.OptimizedRoute != route.OptimizedRoute {
		t.Errorf("optimized route = %q, want %q", got.OptimizedRoute, route.OptimizedRoute)
	}

	if _, err := db.ExecContext(ctx, `UPDATE route_cache SET expires_at = now() - interval '1 second' WHERE cache_key = $1`, key); err != nil {
		t.Fatalf("expire: %v", err)
	}
	if _, ok, _ := c.Get(ctx, key); ok {
		t.Errorf("expired row should be a miss")
	}

	n, err := c.DeleteExpired(ctx)
	if err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if n < 1 {
		t.Errorf("deleted %d rows, want at least 1", n)
	}
}

func TestUniqueKeys(t *testing.T) {
	got := uniqueKeys([]string{" a ", "b", "", "a", "  ", "c", "b"})
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("uniqueKeys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("uniqueKeys = %v, want %v", got, want)
		}
	}
}
