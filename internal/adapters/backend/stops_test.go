package backend

import (
	"context"
	"errors"
	"testing"
	"trucklogix-service/internal/domain"
)

func TestDecodeStopLocation(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want StopDetail
	}{
		{
			name: "python dict",
			in:   "{'name': 'Shell', 'coordinates': [-97.5, 35.4], 'distance_meters': 120.5}",
			want: StopDetail{Name: "Shell", Coordinates: domain.Coordinates{Lon: -97.5, Lat: 35.4}, HasCoordinates: true, DistanceMeters: 120.5},
		},
		{
			name: "double quoted value with apostrophe",
			in:   `{'name': "Love's Travel Stop", 'coordinates': [-101.8, 35.2], 'distance_meters': None}`,
			want: StopDetail{Name: "Love's Travel Stop", Coordinates: domain.Coordinates{Lon: -101.8, Lat: 35.2}, HasCoordinates: true},
		},
		{
			name: "missing coordinates",
			in:   "{'name': 'Standard Rest Zone near pickup', 'coordinates': None, 'distance_meters': None}",
			want: StopDetail{Name: "Standard Rest Zone near pickup"},
		},
		{
			name: "wrapped in quotes",
			in:   `"{'name': 'Pilot', 'coordinates': [1, 2], 'distance_meters': 0}"`,
			want: StopDetail{Name: "Pilot", Coordinates: domain.Coordinates{Lon: 1, Lat: 2}, HasCoordinates: true},
		},
		{
			name: "plain text",
			in:   "  Rest area, I-40 mile 74 ",
			want: StopDetail{Name: "Rest area, I-40 mile 74"},
		},
		{
			name: "broken record falls back to raw text",
			in:   "{'name': 'Shell",
			want: StopDetail{Name: "{'name': 'Shell"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeStopLocation(tt.in)
			if got != tt.want {
				t.Fatalf("DecodeStopLocation(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPyLiteralToJSON(t *testing.T) {
	got, err := pyLiteralToJSON(`{'ok': True, 'skip': False, 'v': None, 'nested': {'a': ['x', "y's"]}}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"ok": true, "skip": false, "v": null, "nested": {"a": ["x", "y's"]}}`
	if got != want {
		t.Fatalf("pyLiteralToJSON = %s, want %s", got, want)
	}
}

func TestEstimates(t *testing.T) {
	if got := FormatTravelTime(5*3600 + 20*60 + 59); got != "5h 20m" {
		t.Errorf("FormatTravelTime = %q, want %q", got, "5h 20m")
	}
	if got := FormatFuelConsumption(800); got != "228.57 liters" {
		t.Errorf("FormatFuelConsumption = %q, want %q", got, "228.57 liters")
	}
}

func TestMockBackend(t *testing.T) {
	ctx := context.Background()
	m := NewMockBackend()

	for i := 0; i < 12; i++ {
		if _, err := m.GenerateEldLog(ctx, domain.EldLogRequest{
			DriverName: "Jane Roe",
			Date:       "2025-03-14",
			DutyStatusChanges: []domain.DutyStatusChange{
				{Time: "6:00 a.m.", Location: "Dallas, TX", Status: domain.Driving},
			},
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	history, err := m.EldLogHistory(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != historyLimit {
		t.Fatalf("history len = %d, want %d", len(history), historyLimit)
	}
	if history[0].ID != 12 {
		t.Fatalf("newest id = %d, want 12", history[0].ID)
	}

	detail, err := m.EldLogDetail(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if detail.LogSheet == "" {
		t.Fatalf("expected rendered log sheet")
	}

	if err := m.DeleteEldLog(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := m.EldLogDetail(ctx, 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("detail after delete err = %v, want ErrNotFound", err)
	}
	if err := m.DeleteEldLog(ctx, 1); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete err = %v, want ErrNotFound", err)
	}

	route, err := m.OptimizeRoute(ctx, domain.RouteRequest{CurrentLocation: "A", PickupLocation: "B", DropoffLocation: "C"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if route.OptimizedRoute != "A → B → C" {
		t.Errorf("optimized route = %q", route.OptimizedRoute)
	}
	if _, err := m.RouteDetail(ctx, route.ID); err != nil {
		t.Errorf("route detail: %v", err)
	}
}
