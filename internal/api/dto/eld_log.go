package dto

import (
	"time"
	"trucklogix-service/internal/domain"
	"trucklogix-service/internal/timeline"
)

type DutyStatusChange struct {
	Time     string            `json:"time"`
	Location string            `json:"location"`
	Status   domain.DutyStatus `json:"status"`
	Order    int               `json:"order"`
}

type EldLogRequest struct {
	DriverName              string             `json:"driver_name"`
	Date                    string             `json:"date"`
	TruckNumber             string             `json:"truck_number"`
	TrailerNumber           string             `json:"trailer_number"`
	CarrierName             string             `json:"carrier_name"`
	HomeTerminalTimezone    string             `json:"home_terminal_timezone"`
	ShippingDocumentNumbers string             `json:"shipping_document_numbers"`
	CurrentLocation         string             `json:"current_location"`
	PickupLocation          string             `json:"pickup_location"`
	DropoffLocation         string             `json:"dropoff_location"`
	CycleHoursUsed          float64            `json:"cycle_hours_used"`
	DutyStatusChanges       []DutyStatusChange `json:"duty_status_changes"`
}

type RemainingHours struct {
	DrivingHours float64 `json:"driving_hours"`
	OnDutyHours  float64 `json:"on_duty_hours"`
}

type EldLogResponse struct {
	ID int `json:"id"`
	EldLogRequest
	LogSheet       string         `json:"log_sheet"`
	RemainingHours RemainingHours `json:"remaining_hours"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// EldLogDetailResponse is a log with its reconstructed day.
type EldLogDetailResponse struct {
	EldLogResponse
	Timeline      timeline.View `json:"timeline"`
	TimelineError string        `json:"timeline_error,omitempty"`
}

type ListEldLogsResponse struct {
	Logs []EldLogResponse `json:"logs"`
}

type DeleteResponse struct {
	Detail string `json:"detail"`
	ID     int    `json:"id"`
}
