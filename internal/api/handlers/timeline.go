package handlers

import (
	"net/http"
	"trucklogix-service/internal/api/dto"
	"trucklogix-service/internal/services"
	"trucklogix-service/internal/timeline"
)

// TimelineHandler reconstructs days on request without storing anything.
type TimelineHandler struct {
	Service *services.EldLogService
	Palette timeline.Palette
}

func (h *TimelineHandler) Reconstruct(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}

	var req dto.TimelineRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	view, err := h.Service.Timeline(r.Context(), services.TimelineInput{
		Changes:  fromChanges(req.DutyStatusChanges),
		LogSheet: req.LogSheet,
	})
	if err != nil {
		writeServiceError(w, r, "reconstruct timeline", err)
		return
	}

	writeJSON(w, r, http.StatusOK, view)
}

func (h *TimelineHandler) Legend(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	writeJSON(w, r, http.StatusOK, dto.LegendResponse{
		Legend: h.Palette.WithDefaults().Legend(),
		Ticks:  timeline.HourTicks(),
	})
}
