package backend

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
	"trucklogix-service/internal/domain"
)

// historyLimit matches the number of rows the remote history endpoints return.
const historyLimit = 10

// MockBackend is an in-memory stand-in for the remote API, used for local
// runs (BACKEND_MODE=mock) and tests. Routes get fixed estimates and no
// coordinates; log sheets are rendered from the submitted changes.
type MockBackend struct {
	mu         sync.Mutex
	nextID     int
	routes     []*domain.Route
	logs       []*domain.EldLog
	now        func() time.Time
	DistanceKm float64
	DurationS  float64
}

func NewMockBackend() *MockBackend {
	return &MockBackend{
		nextID:     1,
		now:        time.Now,
		DistanceKm: 800,
		DurationS:  8*3600 + 20*60,
	}
}

func (m *MockBackend) id() int {
	id := m.nextID
	m.nextID++
	return id
}

func (m *MockBackend) OptimizeRoute(ctx context.Context, req domain.RouteRequest) (*domain.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	r := &domain.Route{
		ID:                       m.id(),
		CurrentLocation:          req.CurrentLocation,
		PickupLocation:           req.PickupLocation,
		DropoffLocation:          req.DropoffLocation,
		CurrentCycleHoursUsed:    req.CurrentCycleHoursUsed,
		OptimizedRoute:           req.CurrentLocation + " → " + req.PickupLocation + " → " + req.DropoffLocation,
		EstimatedTravelTime:      FormatTravelTime(m.DurationS),
		EstimatedFuelConsumption: FormatFuelConsumption(m.DistanceKm),
		FuelStops: []domain.Stop{
			{Location: "{'name': 'Fuel Station', 'coordinates': None, 'distance_meters': None}", Order: 0},
		},
		RestBreakStops: []domain.Stop{
			{Location: "Standard Rest Zone near " + req.PickupLocation, Order: 0},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	m.routes = append(m.routes, r)
	cp := *r
	return &cp, nil
}

func (m *MockBackend) RouteHistory(ctx context.Context) ([]*domain.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return newestFirst(m.routes), nil
}

func (m *MockBackend) RouteDetail(ctx context.Context, id int) (*domain.Route, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.routes {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("route detail id=%d: %w", id, domain.ErrNotFound)
}

func (m *MockBackend) GenerateEldLog(ctx context.Context, req domain.EldLogRequest) (*domain.EldLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	l := &domain.EldLog{
		ID:            m.id(),
		EldLogRequest: req,
		LogSheet:      renderLogSheet(req),
		RemainingHours: domain.RemainingHours{
			DrivingHours: 11,
			OnDutyHours:  14,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	l.DutyStatusChanges = slices.Clone(req.DutyStatusChanges)

	m.logs = append(m.logs, l)
	cp := *l
	return &cp, nil
}

func (m *MockBackend) EldLogHistory(ctx context.Context) ([]*domain.EldLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return newestFirst(m.logs), nil
}

func (m *MockBackend) EldLogDetail(ctx context.Context, id int) (*domain.EldLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, l := range m.logs {
		if l.ID == id {
			cp := *l
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("eld log detail id=%d: %w", id, domain.ErrNotFound)
}

func (m *MockBackend) DeleteEldLog(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, l := range m.logs {
		if l.ID == id {
			m.logs = slices.Delete(m.logs, i, i+1)
			return nil
		}
	}
	return fmt.Errorf("delete eld log id=%d: %w", id, domain.ErrNotFound)
}

func newestFirst[T any](items []*T) []*T {
	n := min(len(items), historyLimit)
	out := make([]*T, 0, n)
	for i := len(items) - 1; i >= 0 && len(out) < n; i-- {
		cp := *items[i]
		out = append(out, &cp)
	}
	return out
}

func renderLogSheet(req domain.EldLogRequest) string {
	var b strings.Builder

	date := req.Date
	if t, err := time.Parse(time.DateOnly, req.Date); err == nil {
		date = t.Format("01/02/2006")
	}

	b.WriteString("ELECTRONIC LOGGING DEVICE (ELD) DAILY LOG\n\n")
	fmt.Fprintf(&b, "Driver: %s\n", req.DriverName)
	fmt.Fprintf(&b, "Date: %s\n", date)
	fmt.Fprintf(&b, "Truck/Tractor Number: %s\n", req.TruckNumber)
	fmt.Fprintf(&b, "Trailer Number: %s\n", req.TrailerNumber)
	fmt.Fprintf(&b, "Carrier: %s\n", req.CarrierName)
	fmt.Fprintf(&b, "Home Terminal Timezone: %s\n", req.HomeTerminalTimezone)
	fmt.Fprintf(&b, "Shipping Documents: %s\n\n", req.ShippingDocumentNumbers)
	b.WriteString("TRIP INFORMATION:\n")
	fmt.Fprintf(&b, "Current Location: %s\n", req.CurrentLocation)
	fmt.Fprintf(&b, "Pickup Location: %s\n", req.PickupLocation)
	fmt.Fprintf(&b, "Dropoff Location: %s\n", req.DropoffLocation)
	fmt.Fprintf(&b, "Cycle Hours Used (Start of Day): %g\n\n", req.CycleHoursUsed)
	b.WriteString("DUTY STATUS CHANGES:\n")
	for _, c := range req.DutyStatusChanges {
		fmt.Fprintf(&b, "- Time: %s, Location: %s, Status: %s\n", c.Time, c.Location, c.Status)
	}

	return strings.TrimSpace(b.String())
}
