package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
	"trucklogix-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL+"/api/", 5*time.Second)
	require.NoError(t, err)
	c.backoff = time.Millisecond
	return c
}

const optimizeBody = `{
  "id": 7,
  "current_location": "Dallas, TX",
  "pickup_location": "Oklahoma City, OK",
  "dropoff_location": "Denver, CO",
  "current_cycle_hours_used": 12.5,
  "optimized_route": "Dallas, TX → Oklahoma City, OK → Denver, CO",
  "estimated_travel_time": "14h 5m",
  "estimated_fuel_consumption": "372.57 liters",
  "fuel_stops": [{"location": "{'name': 'Shell', 'coordinates': [-97.5, 35.4], 'distance_meters': 120.5}", "order": 0}],
  "rest_break_stops": [],
  "created_at": "2025-03-14T10:20:30.123456Z",
  "updated_at": "2025-03-14T10:20:30.123456Z",
  "coordinates": {"current": [-96.8, 32.8], "pickup": [-97.5, 35.5], "dropoff": [-104.99, 39.74]}
}`

func TestOptimizeRoute(t *testing.T) {
	var got routeRequest
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/routes/optimize/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(optimizeBody))
	}))

	route, err := c.OptimizeRoute(context.Background(), domain.RouteRequest{
		CurrentLocation:       "Dallas, TX",
		PickupLocation:        "Oklahoma City, OK",
		DropoffLocation:       "Denver, CO",
		CurrentCycleHoursUsed: 12.5,
	})
	require.NoError(t, err)

	assert.Equal(t, "Dallas, TX", got.CurrentLocation)
	assert.Equal(t, 12.5, got.CurrentCycleHoursUsed)

	assert.Equal(t, 7, route.ID)
	assert.Equal(t, "14h 5m", route.EstimatedTravelTime)
	require.Len(t, route.FuelStops, 1)
	assert.Empty(t, route.RestBreakStops)
	assert.Equal(t, domain.Coordinates{Lon: -96.8, Lat: 32.8}, route.Coordinates.Current)
	assert.Equal(t, domain.Coordinates{Lon: -104.99, Lat: 39.74}, route.Coordinates.Dropoff)
	assert.Equal(t, 2025, route.CreatedAt.Year())
}

func TestRouteCoordinatesTolerateMissingOrList(t *testing.T) {
	for _, coords := range []string{``, `"coordinates": [],`, `"coordinates": null,`} {
		body := `{` + coords + `"id": 1, "created_at": "2025-03-14T10:20:30Z", "updated_at": "2025-03-14T10:20:30Z"}`
		c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		}))

		route, err := c.RouteDetail(context.Background(), 1)
		require.NoError(t, err, "body %s", body)
		assert.True(t, route.Coordinates.Current.IsZero())
	}
}

func TestGetRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))

	logs, err := c.EldLogHistory(context.Background())
	require.NoError(t, err)
	assert.Empty(t, logs)
	assert.Equal(t, int32(3), calls.Load())
}

func TestGetGivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error": "maintenance"}`))
	}))

	_, err := c.RouteHistory(context.Background())
	require.Error(t, err)

	var ae *APIError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, http.StatusServiceUnavailable, ae.Status)
	assert.Equal(t, "maintenance", ae.Message)
	assert.Equal(t, int32(4), calls.Load())
}

func TestPostIsNotRetried(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "Failed to generate ELD log: upstream timeout"}`))
	}))

	_, err := c.GenerateEldLog(context.Background(), domain.EldLogRequest{DriverName: "Jane"})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())

	var ae *APIError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "Failed to generate ELD log: upstream timeout", ae.Message)
}

func TestNotFoundMapsToSentinel(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "ELD log not found"}`))
	}))

	_, err := c.EldLogDetail(context.Background(), 99)
	assert.True(t, errors.Is(err, domain.ErrNotFound), "err = %v", err)

	err = c.DeleteEldLog(context.Background(), 99)
	assert.True(t, errors.Is(err, domain.ErrNotFound), "err = %v", err)
}

func TestErrorWithoutBody(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	_, err := c.OptimizeRoute(context.Background(), domain.RouteRequest{})
	var ae *APIError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "HTTP 400", ae.Message)
}

func TestGenerateAndDeleteEldLog(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/eld-logs/generate/", func(w http.ResponseWriter, r *http.Request) {
		var req eldLogRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.DutyStatusChanges, 1)

		resp := eldLogResponse{ID: 3, eldLogRequest: req, LogSheet: "DUTY STATUS CHANGES:\n"}
		resp.RemainingHours.DrivingHours = 9.5
		w.WriteHeader(http.StatusCreated)
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	})
	mux.HandleFunc("/api/eld-logs/3/delete/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		_, _ = w.Write([]byte(`{"detail": "ELD log deleted successfully", "id": 3}`))
	})
	c := newTestClient(t, mux)

	log, err := c.GenerateEldLog(context.Background(), domain.EldLogRequest{
		DriverName: "Jane Roe",
		DutyStatusChanges: []domain.DutyStatusChange{
			{Time: "6:00 a.m.", Location: "Dallas, TX", Status: domain.OnDutyNotDriving},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, log.ID)
	assert.Equal(t, "Jane Roe", log.DriverName)
	assert.Equal(t, 9.5, log.RemainingHours.DrivingHours)
	require.Len(t, log.DutyStatusChanges, 1)
	assert.Equal(t, domain.OnDutyNotDriving, log.DutyStatusChanges[0].Status)

	require.NoError(t, c.DeleteEldLog(context.Background(), 3))
}

func TestRetryHonorsContext(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	c.backoff = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.RouteHistory(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewClientRejectsEmptyURL(t *testing.T) {
	_, err := NewClient("  ", time.Second)
	assert.Error(t, err)
}
