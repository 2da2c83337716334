package dto

import "trucklogix-service/internal/timeline"

// TimelineRequest carries either structured changes or generated log text.
type TimelineRequest struct {
	DutyStatusChanges []DutyStatusChange `json:"duty_status_changes"`
	LogSheet          string             `json:"log_sheet"`
}

type LegendResponse struct {
	Legend []timeline.LegendEntry `json:"legend"`
	Ticks  []string               `json:"ticks"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields"`
}
