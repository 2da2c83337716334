package backend

import (
	"context"
	"fmt"
	"net/http"
	"trucklogix-service/internal/domain"
	"trucklogix-service/internal/platform/obs"
)

func (c *Client) OptimizeRoute(ctx context.Context, req domain.RouteRequest) (_ *domain.Route, err error) {
	defer obs.Time(ctx, "backend.OptimizeRoute")(&err)

	var resp routeResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/routes/optimize/", toRouteRequest(req), &resp); err != nil {
		return nil, fmt.Errorf("optimize route: %w", err)
	}

	return resp.toDomain(), nil
}

func (c *Client) RouteHistory(ctx context.Context) (_ []*domain.Route, err error) {
	defer obs.Time(ctx, "backend.RouteHistory")(&err)

	var resp []routeResponse
	if err := c.getJSON(ctx, "/routes/history/", &resp); err != nil {
		return nil, fmt.Errorf("route history: %w", err)
	}

	out := make([]*domain.Route, 0, len(resp))
	for _, r := range resp {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (c *Client) RouteDetail(ctx context.Context, id int) (_ *domain.Route, err error) {
	defer obs.Time(ctx, "backend.RouteDetail")(&err)

	var resp routeResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/routes/%d/", id), &resp); err != nil {
		return nil, fmt.Errorf("route detail id=%d: %w", id, err)
	}

	return resp.toDomain(), nil
}
