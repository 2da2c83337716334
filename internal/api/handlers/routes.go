package handlers

import (
	"net/http"
	"trucklogix-service/internal/api/dto"
	"trucklogix-service/internal/domain"
	"trucklogix-service/internal/services"
)

// RouteHandler exposes trip optimization and route history.
type RouteHandler struct {
	Service *services.RouteService
}

func (h *RouteHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}

	var req dto.RouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	view, err := h.Service.OptimizeRoute(r.Context(), domain.RouteRequest{
		CurrentLocation:       req.CurrentLocation,
		PickupLocation:        req.PickupLocation,
		DropoffLocation:       req.DropoffLocation,
		CurrentCycleHoursUsed: req.CurrentCycleHoursUsed,
	})
	if err != nil {
		writeServiceError(w, r, "optimize route", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, toRouteViewResponse(view))
}

func (h *RouteHandler) History(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	routes, err := h.Service.History(r.Context())
	if err != nil {
		writeServiceError(w, r, "route history", err)
		return
	}

	res := dto.ListRoutesResponse{Routes: make([]dto.RouteResponse, 0, len(routes))}
	for _, rt := range routes {
		res.Routes = append(res.Routes, toRouteResponse(rt))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *RouteHandler) Detail(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	view, err := h.Service.Detail(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, "route detail", err)
		return
	}

	writeJSON(w, r, http.StatusOK, toRouteViewResponse(view))
}

func toRouteResponse(rt *domain.Route) dto.RouteResponse {
	return dto.RouteResponse{
		ID:                       rt.ID,
		CurrentLocation:          rt.CurrentLocation,
		PickupLocation:           rt.PickupLocation,
		DropoffLocation:          rt.DropoffLocation,
		CurrentCycleHoursUsed:    rt.CurrentCycleHoursUsed,
		OptimizedRoute:           rt.OptimizedRoute,
		EstimatedTravelTime:      rt.EstimatedTravelTime,
		EstimatedFuelConsumption: rt.EstimatedFuelConsumption,
		FuelStops:                stopLocations(rt.FuelStops),
		RestBreakStops:           stopLocations(rt.RestBreakStops),
		Coordinates: dto.CoordinatesResponse{
			Current: rt.Coordinates.Current.CoordsToList(),
			Pickup:  rt.Coordinates.Pickup.CoordsToList(),
			Dropoff: rt.Coordinates.Dropoff.CoordsToList(),
		},
		Directions: rt.Directions,
		CreatedAt:  rt.CreatedAt,
		UpdatedAt:  rt.UpdatedAt,
	}
}

func toRouteViewResponse(v *services.RouteView) dto.RouteResponse {
	res := toRouteResponse(v.Route)
	res.FuelStops = v.FuelStops
	res.RestBreakStops = v.RestBreakStops
	res.Markers = &dto.MarkersResponse{
		Route: toMarkers(v.RouteMarkers),
		Fuel:  toMarkers(v.FuelMarkers),
		Rest:  toMarkers(v.RestMarkers),
	}
	return res
}

func stopLocations(stops []domain.Stop) []string {
	out := make([]string, 0, len(stops))
	for _, s := range stops {
		out = append(out, s.Location)
	}
	return out
}

func toMarkers(in []services.Marker) []dto.MarkerResponse {
	out := make([]dto.MarkerResponse, 0, len(in))
	for _, m := range in {
		out = append(out, dto.MarkerResponse{Name: m.Name, Lat: m.Lat, Lng: m.Lng})
	}
	return out
}
