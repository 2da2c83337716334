package handlers

import (
	"net/http"
	"trucklogix-service/internal/api/dto"
	"trucklogix-service/internal/domain"
	"trucklogix-service/internal/services"
)

// EldLogHandler exposes log generation, history and deletion.
type EldLogHandler struct {
	Service *services.EldLogService
}

// Collection serves GET (history) and POST (generate) on /api/eld-logs.
func (h *EldLogHandler) Collection(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodPost) {
		return
	}

	if r.Method == http.MethodPost {
		h.generate(w, r)
		return
	}

	logs, err := h.Service.History(r.Context())
	if err != nil {
		writeServiceError(w, r, "eld log history", err)
		return
	}

	res := dto.ListEldLogsResponse{Logs: make([]dto.EldLogResponse, 0, len(logs))}
	for _, l := range logs {
		res.Logs = append(res.Logs, toEldLogResponse(l))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *EldLogHandler) generate(w http.ResponseWriter, r *http.Request) {
	var req dto.EldLogRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	view, err := h.Service.Generate(r.Context(), fromEldLogRequest(req))
	if err != nil {
		writeServiceError(w, r, "generate eld log", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, toEldLogDetail(view))
}

// Item serves GET (detail with timeline) and DELETE on /api/eld-logs/{id}.
func (h *EldLogHandler) Item(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet, http.MethodDelete) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if r.Method == http.MethodDelete {
		if err := h.Service.Delete(r.Context(), id); err != nil {
			writeServiceError(w, r, "delete eld log", err)
			return
		}
		writeJSON(w, r, http.StatusOK, dto.DeleteResponse{Detail: "ELD log deleted successfully", ID: id})
		return
	}

	view, err := h.Service.Detail(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "eld log detail", err)
		return
	}

	writeJSON(w, r, http.StatusOK, toEldLogDetail(view))
}

func fromChanges(in []dto.DutyStatusChange) []domain.DutyStatusChange {
	out := make([]domain.DutyStatusChange, 0, len(in))
	for _, c := range in {
		out = append(out, domain.DutyStatusChange{
			Time:     c.Time,
			Location: c.Location,
			Status:   c.Status,
			Order:    c.Order,
		})
	}
	return out
}

func fromEldLogRequest(req dto.EldLogRequest) domain.EldLogRequest {
	return domain.EldLogRequest{
		DriverName:              req.DriverName,
		Date:                    req.Date,
		TruckNumber:             req.TruckNumber,
		TrailerNumber:           req.TrailerNumber,
		CarrierName:             req.CarrierName,
		HomeTerminalTimezone:    req.HomeTerminalTimezone,
		ShippingDocumentNumbers: req.ShippingDocumentNumbers,
		CurrentLocation:         req.CurrentLocation,
		PickupLocation:          req.PickupLocation,
		DropoffLocation:         req.DropoffLocation,
		CycleHoursUsed:          req.CycleHoursUsed,
		DutyStatusChanges:       fromChanges(req.DutyStatusChanges),
	}
}

func toEldLogResponse(l *domain.EldLog) dto.EldLogResponse {
	changes := make([]dto.DutyStatusChange, 0, len(l.DutyStatusChanges))
	for _, c := range l.DutyStatusChanges {
		changes = append(changes, dto.DutyStatusChange{
			Time:     c.Time,
			Location: c.Location,
			Status:   c.Status,
			Order:    c.Order,
		})
	}

	return dto.EldLogResponse{
		ID: l.ID,
		EldLogRequest: dto.EldLogRequest{
			DriverName:              l.DriverName,
			Date:                    l.Date,
			TruckNumber:             l.TruckNumber,
			TrailerNumber:           l.TrailerNumber,
			CarrierName:             l.CarrierName,
			HomeTerminalTimezone:    l.HomeTerminalTimezone,
			ShippingDocumentNumbers: l.ShippingDocumentNumbers,
			CurrentLocation:         l.CurrentLocation,
			PickupLocation:          l.PickupLocation,
			DropoffLocation:         l.DropoffLocation,
			CycleHoursUsed:          l.CycleHoursUsed,
			DutyStatusChanges:       changes,
		},
		LogSheet: l.LogSheet,
		RemainingHours: dto.RemainingHours{
			DrivingHours: l.RemainingHours.DrivingHours,
			OnDutyHours:  l.RemainingHours.OnDutyHours,
		},
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func toEldLogDetail(v *services.EldLogView) dto.EldLogDetailResponse {
	return dto.EldLogDetailResponse{
		EldLogResponse: toEldLogResponse(v.Log),
		Timeline:       v.Timeline,
		TimelineError:  v.TimelineError,
	}
}
