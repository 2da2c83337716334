package backend

import (
	"encoding/json"
	"time"
	"trucklogix-service/internal/domain"
)

type routeRequest struct {
	CurrentLocation       string  `json:"current_location"`
	PickupLocation        string  `json:"pickup_location"`
	DropoffLocation       string  `json:"dropoff_location"`
	CurrentCycleHoursUsed float64 `json:"current_cycle_hours_used"`
}

type stopJSON struct {
	Location string `json:"location"`
	Order    int    `json:"order"`
}

type coordinatesJSON struct {
	Current []float64 `json:"current"`
	Pickup  []float64 `json:"pickup"`
	Dropoff []float64 `json:"dropoff"`
}

type routeResponse struct {
	ID                       int             `json:"id"`
	CurrentLocation          string          `json:"current_location"`
	PickupLocation           string          `json:"pickup_location"`
	DropoffLocation          string          `json:"dropoff_location"`
	CurrentCycleHoursUsed    float64         `json:"current_cycle_hours_used"`
	OptimizedRoute           string          `json:"optimized_route"`
	EstimatedTravelTime      string          `json:"estimated_travel_time"`
	EstimatedFuelConsumption string          `json:"estimated_fuel_consumption"`
	FuelStops                []stopJSON      `json:"fuel_stops"`
	RestBreakStops           []stopJSON      `json:"rest_break_stops"`
	Coordinates              json.RawMessage `json:"coordinates"`
	Directions               []string        `json:"directions"`
	CreatedAt                time.Time       `json:"created_at"`
	UpdatedAt                time.Time       `json:"updated_at"`
}

type dutyStatusChangeJSON struct {
	Time     string            `json:"time"`
	Location string            `json:"location"`
	Status   domain.DutyStatus `json:"status"`
	Order    int               `json:"order"`
}

type eldLogRequest struct {
	DriverName              string                 `json:"driver_name"`
	Date                    string                 `json:"date"`
	TruckNumber             string                 `json:"truck_number"`
	TrailerNumber           string                 `json:"trailer_number"`
	CarrierName             string                 `json:"carrier_name"`
	HomeTerminalTimezone    string                 `json:"home_terminal_timezone"`
	ShippingDocumentNumbers string                 `json:"shipping_document_numbers"`
	CurrentLocation         string                 `json:"current_location"`
	PickupLocation          string                 `json:"pickup_location"`
	DropoffLocation         string                 `json:"dropoff_location"`
	CycleHoursUsed          float64                `json:"cycle_hours_used"`
	DutyStatusChanges       []dutyStatusChangeJSON `json:"duty_status_changes"`
}

type eldLogResponse struct {
	ID int `json:"id"`
	eldLogRequest
	LogSheet       string `json:"log_sheet"`
	RemainingHours struct {
		DrivingHours float64 `json:"driving_hours"`
		OnDutyHours  float64 `json:"on_duty_hours"`
	} `json:"remaining_hours"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type deleteResponse struct {
	Detail string `json:"detail"`
	ID     int    `json:"id"`
}

func toRouteRequest(r domain.RouteRequest) routeRequest {
	return routeRequest{
		CurrentLocation:       r.CurrentLocation,
		PickupLocation:        r.PickupLocation,
		DropoffLocation:       r.DropoffLocation,
		CurrentCycleHoursUsed: r.CurrentCycleHoursUsed,
	}
}

func (r routeResponse) toDomain() *domain.Route {
	out := &domain.Route{
		ID:                       r.ID,
		CurrentLocation:          r.CurrentLocation,
		PickupLocation:           r.PickupLocation,
		DropoffLocation:          r.DropoffLocation,
		CurrentCycleHoursUsed:    r.CurrentCycleHoursUsed,
		OptimizedRoute:           r.OptimizedRoute,
		EstimatedTravelTime:      r.EstimatedTravelTime,
		EstimatedFuelConsumption: r.EstimatedFuelConsumption,
		FuelStops:                toStops(r.FuelStops),
		RestBreakStops:           toStops(r.RestBreakStops),
		Directions:               r.Directions,
		CreatedAt:                r.CreatedAt,
		UpdatedAt:                r.UpdatedAt,
	}

	// Optimize answers carry an object; history rows carry nothing and a
	// failed geocode upstream can yield an empty list. Anything that is not
	// an object leaves the coordinates unset.
	var c coordinatesJSON
	if len(r.Coordinates) > 0 && json.Unmarshal(r.Coordinates, &c) == nil {
		out.Coordinates = domain.RouteCoordinates{
			Current: domain.CoordsFromList(c.Current),
			Pickup:  domain.CoordsFromList(c.Pickup),
			Dropoff: domain.CoordsFromList(c.Dropoff),
		}
	}

	return out
}

func toStops(in []stopJSON) []domain.Stop {
	out := make([]domain.Stop, 0, len(in))
	for _, s := range in {
		out = append(out, domain.Stop{Location: s.Location, Order: s.Order})
	}
	return out
}

func toEldLogRequest(r domain.EldLogRequest) eldLogRequest {
	changes := make([]dutyStatusChangeJSON, 0, len(r.DutyStatusChanges))
	for _, c := range r.DutyStatusChanges {
		changes = append(changes, dutyStatusChangeJSON{
			Time:     c.Time,
			Location: c.Location,
			Status:   c.Status,
			Order:    c.Order,
		})
	}

	return eldLogRequest{
		DriverName:              r.DriverName,
		Date:                    r.Date,
		TruckNumber:             r.TruckNumber,
		TrailerNumber:           r.TrailerNumber,
		CarrierName:             r.CarrierName,
		HomeTerminalTimezone:    r.HomeTerminalTimezone,
		ShippingDocumentNumbers: r.ShippingDocumentNumbers,
		CurrentLocation:         r.CurrentLocation,
		PickupLocation:          r.PickupLocation,
		DropoffLocation:         r.DropoffLocation,
		CycleHoursUsed:          r.CycleHoursUsed,
		DutyStatusChanges:       changes,
	}
}

func (r eldLogRequest) toDomain() domain.EldLogRequest {
	changes := make([]domain.DutyStatusChange, 0, len(r.DutyStatusChanges))
	for _, c := range r.DutyStatusChanges {
		changes = append(changes, domain.DutyStatusChange{
			Time:     c.Time,
			Location: c.Location,
			Status:   c.Status,
			Order:    c.Order,
		})
	}

	return domain.EldLogRequest{
		DriverName:              r.DriverName,
		Date:                    r.Date,
		TruckNumber:             r.TruckNumber,
		TrailerNumber:           r.TrailerNumber,
		CarrierName:             r.CarrierName,
		HomeTerminalTimezone:    r.HomeTerminalTimezone,
		ShippingDocumentNumbers: r.ShippingDocumentNumbers,
		CurrentLocation:         r.CurrentLocation,
		PickupLocation:          r.PickupLocation,
		DropoffLocation:         r.DropoffLocation,
		CycleHoursUsed:          r.CycleHoursUsed,
		DutyStatusChanges:       changes,
	}
}

func (r eldLogResponse) toDomain() *domain.EldLog {
	return &domain.EldLog{
		ID:            r.ID,
		EldLogRequest: r.eldLogRequest.toDomain(),
		LogSheet:      r.LogSheet,
		RemainingHours: domain.RemainingHours{
			DrivingHours: r.RemainingHours.DrivingHours,
			OnDutyHours:  r.RemainingHours.OnDutyHours,
		},
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}
