package services

import (
	"fmt"
	"regexp"
	"strings"
	"trucklogix-service/internal/domain"
)

const minLocationLen = 3

// changeTimeForm is the strict form accepted from the log entry form.
// The timeline parser itself is more lenient.
var changeTimeForm = regexp.MustCompile(`(?i)^(0?[1-9]|1[0-2]):[0-5][0-9]\s(a\.m\.|p\.m\.)$`)

func ValidateRouteRequest(req domain.RouteRequest) error {
	var errs domain.ValidationErrors

	checkLocation := func(field, v string) {
		if len([]rune(strings.TrimSpace(v))) < minLocationLen {
			errs.Add(field, fmt.Sprintf("must be at least %d characters", minLocationLen))
		}
	}
	checkLocation("current_location", req.CurrentLocation)
	checkLocation("pickup_location", req.PickupLocation)
	checkLocation("dropoff_location", req.DropoffLocation)

	if req.CurrentCycleHoursUsed < 0 {
		errs.Add("current_cycle_hours_used", "must be zero or greater")
	}

	return errs.Err()
}

func ValidateEldLogRequest(req domain.EldLogRequest) error {
	var errs domain.ValidationErrors

	required := []struct {
		field string
		value string
	}{
		{"driver_name", req.DriverName},
		{"date", req.Date},
		{"truck_number", req.TruckNumber},
		{"trailer_number", req.TrailerNumber},
		{"carrier_name", req.CarrierName},
		{"home_terminal_timezone", req.HomeTerminalTimezone},
		{"shipping_document_numbers", req.ShippingDocumentNumbers},
		{"current_location", req.CurrentLocation},
		{"pickup_location", req.PickupLocation},
		{"dropoff_location", req.DropoffLocation},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs.Add(r.field, "is required")
		}
	}

	if req.CycleHoursUsed < 0 {
		errs.Add("cycle_hours_used", "must be zero or greater")
	}

	if len(req.DutyStatusChanges) == 0 {
		errs.Add("duty_status_changes", "at least one duty status change is required")
	}

	for i, c := range req.DutyStatusChanges {
		prefix := fmt.Sprintf("duty_status_changes[%d]", i)
		if !changeTimeForm.MatchString(strings.TrimSpace(c.Time)) {
			errs.Add(prefix+".time", `must look like "7:30 a.m."`)
		}
		if strings.TrimSpace(c.Location) == "" {
			errs.Add(prefix+".location", "is required")
		}
		if !c.Status.Valid() {
			errs.Add(prefix+".status", "is not a known duty status")
		}
	}

	return errs.Err()
}
