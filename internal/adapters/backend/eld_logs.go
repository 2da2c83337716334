package backend

import (
	"context"
	"fmt"
	"net/http"
	"trucklogix-service/internal/domain"
	"trucklogix-service/internal/platform/obs"
)

// GenerateEldLog asks the backend to fill in a daily log sheet. Generation
// is slow and not idempotent, so it is never retried.
func (c *Client) GenerateEldLog(ctx context.Context, req domain.EldLogRequest) (_ *domain.EldLog, err error) {
	defer obs.Time(ctx, "backend.GenerateEldLog")(&err)

	var resp eldLogResponse
	if err := c.sendJSON(ctx, http.MethodPost, "/eld-logs/generate/", toEldLogRequest(req), &resp); err != nil {
		return nil, fmt.Errorf("generate eld log: %w", err)
	}

	return resp.toDomain(), nil
}

func (c *Client) EldLogHistory(ctx context.Context) (_ []*domain.EldLog, err error) {
	defer obs.Time(ctx, "backend.EldLogHistory")(&err)

	var resp []eldLogResponse
	if err := c.getJSON(ctx, "/eld-logs/history/", &resp); err != nil {
		return nil, fmt.Errorf("eld log history: %w", err)
	}

	out := make([]*domain.EldLog, 0, len(resp))
	for _, r := range resp {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func (c *Client) EldLogDetail(ctx context.Context, id int) (_ *domain.EldLog, err error) {
	defer obs.Time(ctx, "backend.EldLogDetail")(&err)

	var resp eldLogResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/eld-logs/%d/", id), &resp); err != nil {
		return nil, fmt.Errorf("eld log detail id=%d: %w", id, err)
	}

	return resp.toDomain(), nil
}

func (c *Client) DeleteEldLog(ctx context.Context, id int) (err error) {
	defer obs.Time(ctx, "backend.DeleteEldLog")(&err)

	var resp deleteResponse
	if err := c.sendJSON(ctx, http.MethodDelete, fmt.Sprintf("/eld-logs/%d/delete/", id), nil, &resp); err != nil {
		return fmt.Errorf("delete eld log id=%d: %w", id, err)
	}

	return nil
}
