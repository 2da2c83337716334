package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"
	"trucklogix-service/internal/adapters/backend"
	"trucklogix-service/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	method, route string
	status        int
}

type requestRecorder struct {
	mu   sync.Mutex
	seen []recordedRequest
}

func (r *requestRecorder) ObserveRequest(method, route string, status int, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, recordedRequest{method: method, route: route, status: status})
}

func newTestRouter(t *testing.T) (http.Handler, *requestRecorder) {
	t.Helper()
	mock := backend.NewMockBackend()
	rec := &requestRecorder{}
	return NewRouter(Deps{
		Routes:  &services.RouteService{Backend: mock},
		EldLogs: &services.EldLogService{Backend: mock},
		Metrics: rec,
	}), rec
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

const eldBody = `{
  "driver_name": "Jane Roe",
  "date": "2025-03-14",
  "truck_number": "T-100",
  "trailer_number": "TR-7",
  "carrier_name": "Acme Freight",
  "home_terminal_timezone": "America/Chicago",
  "shipping_document_numbers": "BOL-123",
  "current_location": "Dallas, TX",
  "pickup_location": "Oklahoma City, OK",
  "dropoff_location": "Denver, CO",
  "cycle_hours_used": 12,
  "duty_status_changes": [
    {"time": "7:30 a.m.", "location": "Dallas, TX", "status": "Driving"},
    {"time": "6:00 a.m.", "location": "Dallas, TX", "status": "On Duty (Not Driving)"},
    {"time": "5:00 p.m.", "location": "Tulsa, OK", "status": "Off Duty"}
  ]
}`

func TestHealth(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = do(t, h, http.MethodPost, "/health", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	h, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))
}

func TestEldLogLifecycle(t *testing.T) {
	h, metrics := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/eld-logs", eldBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID       int `json:"id"`
		Timeline struct {
			Segments []struct {
				Status    string `json:"status"`
				StartTime string `json:"start_time"`
				EndTime   string `json:"end_time"`
				Color     string `json:"color"`
			} `json:"segments"`
			Totals []struct {
				Status  string `json:"status"`
				Minutes int    `json:"minutes"`
			} `json:"totals"`
		} `json:"timeline"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Len(t, created.Timeline.Segments, 4)
	assert.Equal(t, "On Duty (Not Driving)", created.Timeline.Segments[0].Status)
	assert.Equal(t, "12:00 a.m.", created.Timeline.Segments[0].StartTime)
	assert.Equal(t, "6:00 a.m.", created.Timeline.Segments[0].EndTime)
	assert.Equal(t, "11:59 p.m.", created.Timeline.Segments[3].EndTime)

	sum := 0
	for _, tot := range created.Timeline.Totals {
		sum += tot.Minutes
	}
	assert.Equal(t, 1440, sum)

	rec = do(t, h, http.MethodGet, "/api/eld-logs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"driver_name":"Jane Roe"`)

	path := "/api/eld-logs/" + strconv.Itoa(created.ID)
	rec = do(t, h, http.MethodGet, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"log_sheet":"ELECTRONIC LOGGING DEVICE`)

	rec = do(t, h, http.MethodDelete, path, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"detail":"ELD log deleted successfully","id":`+strconv.Itoa(created.ID)+`}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	metrics.mu.Lock()
	defer metrics.mu.Unlock()
	require.NotEmpty(t, metrics.seen)
	assert.Equal(t, "/api/eld-logs/{id}", metrics.seen[len(metrics.seen)-1].route)
}

func TestEldLogValidationFields(t *testing.T) {
	h, _ := newTestRouter(t)

	body := strings.Replace(eldBody, `"7:30 a.m."`, `"7:30 am"`, 1)
	rec := do(t, h, http.MethodPost, "/api/eld-logs", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var res struct {
		Error  string `json:"error"`
		Fields []struct {
			Field string `json:"field"`
		} `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "validation failed", res.Error)
	require.Len(t, res.Fields, 1)
	assert.Equal(t, "duty_status_changes[0].time", res.Fields[0].Field)
}

func TestDecodeRejectsBadBodies(t *testing.T) {
	h, _ := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"not json", `nope`},
		{"unknown field", `{"log_sheet": "", "extra": 1}`},
		{"two objects", `{"log_sheet": ""}{"log_sheet": ""}`},
		{"unknown status", `{"duty_status_changes": [{"time": "7:00 a.m.", "location": "x", "status": "Napping"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, "/api/timeline", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestTimelineEndpoint(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodPost, "/api/timeline", `{"log_sheet": "- Time: 6:00 p.m., Location: Home, Status: Off Duty\n- Time: 9 p.m., Location: Home, Status: Sleeper Berth"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"warnings":[{"line":2`)

	rec = do(t, h, http.MethodPost, "/api/timeline", `{"duty_status_changes": [{"time": "13:00 p.m.", "location": "x", "status": "Driving"}]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/timeline", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"segments":[]`)
}

func TestLegendEndpoint(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := do(t, h, http.MethodGet, "/api/timeline/legend", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		Legend []struct {
			Status string `json:"status"`
			Color  string `json:"color"`
		} `json:"legend"`
		Ticks []string `json:"ticks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Legend, 4)
	assert.Equal(t, "Driving", res.Legend[0].Status)
	assert.Equal(t, "#2563eb", res.Legend[0].Color)
	assert.Len(t, res.Ticks, 8)
}

func TestRouteEndpoints(t *testing.T) {
	h, _ := newTestRouter(t)

	body := `{"current_location": "Dallas, TX", "pickup_location": "Oklahoma City, OK", "dropoff_location": "Denver, CO", "current_cycle_hours_used": 12.5}`
	rec := do(t, h, http.MethodPost, "/api/routes/optimize", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var route struct {
		ID          int `json:"id"`
		Coordinates struct {
			Current []float64 `json:"current"`
		} `json:"coordinates"`
		Markers struct {
			Route []struct {
				Name string `json:"name"`
			} `json:"route"`
			Fuel []json.RawMessage `json:"fuel"`
		} `json:"markers"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &route))
	assert.Equal(t, []float64{0, 0}, route.Coordinates.Current)
	require.Len(t, route.Markers.Route, 3)
	assert.Equal(t, "Pickup Location", route.Markers.Route[1].Name)
	assert.Len(t, route.Markers.Fuel, 3)

	rec = do(t, h, http.MethodGet, "/api/routes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"routes":[{"id":`+strconv.Itoa(route.ID))

	rec = do(t, h, http.MethodGet, "/api/routes/"+strconv.Itoa(route.ID), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/routes/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodPost, "/api/routes/optimize", `{"current_location": "ab", "pickup_location": "Oklahoma City, OK", "dropoff_location": "Denver, CO"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBackendErrorsMapToBadGateway(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "Could not geocode pickup"}`))
	}))
	t.Cleanup(upstream.Close)

	client, err := backend.NewClient(upstream.URL, time.Second)
	require.NoError(t, err)
	h := NewRouter(Deps{
		Routes:  &services.RouteService{Backend: client},
		EldLogs: &services.EldLogService{Backend: client},
	})

	body := `{"current_location": "Dallas, TX", "pickup_location": "Nowhere", "dropoff_location": "Denver, CO"}`
	rec := do(t, h, http.MethodPost, "/api/routes/optimize", body)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.JSONEq(t, `{"error":"Could not geocode pickup"}`, rec.Body.String())
}
