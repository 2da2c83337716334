package domain

import "time"

// DutyStatusChange records the state a driver entered at a wall-clock time.
// Time is kept as written ("7:30 a.m."); decoding belongs to the timeline package.
type DutyStatusChange struct {
	Time     string
	Location string
	Status   DutyStatus
	Order    int
}

// EldLogRequest carries the header fields of a daily log plus the driver's
// duty status changes for the day.
type EldLogRequest struct {
	DriverName              string
	Date                    string
	TruckNumber             string
	TrailerNumber           string
	CarrierName             string
	HomeTerminalTimezone    string
	ShippingDocumentNumbers string
	CurrentLocation         string
	PickupLocation          string
	DropoffLocation         string
	CycleHoursUsed          float64
	DutyStatusChanges       []DutyStatusChange
}

type RemainingHours struct {
	DrivingHours float64
	OnDutyHours  float64
}

// EldLog is a generated log sheet as stored by the log history backend.
type EldLog struct {
	ID int
	EldLogRequest
	LogSheet       string
	RemainingHours RemainingHours
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
