package timeline

import (
	"trucklogix-service/internal/domain"
)

// SegmentView is a segment annotated for drawing.
type SegmentView struct {
	Status       domain.DutyStatus `json:"status"`
	StartMinutes int               `json:"start_minutes"`
	Duration     int               `json:"duration"`
	StartTime    string            `json:"start_time"`
	EndTime      string            `json:"end_time"`
	Color        string            `json:"color"`
	WidthPercent float64           `json:"width_percent"`
	Tooltip      string            `json:"tooltip"`
}

// StatusTotal is the number of minutes spent in one status.
type StatusTotal struct {
	Status  domain.DutyStatus `json:"status"`
	Minutes int               `json:"minutes"`
}

// View is everything a client needs to draw one day's timeline.
type View struct {
	Segments []SegmentView  `json:"segments"`
	Legend   []LegendEntry  `json:"legend"`
	Ticks    []string       `json:"ticks"`
	Totals   []StatusTotal  `json:"totals"`
	Warnings []RejectedLine `json:"warnings,omitempty"`
}

// BuildView annotates segments with colors, widths and tooltip text.
// Totals follow legend order.
func BuildView(segments []Segment, p Palette) View {
	v := View{
		Segments: make([]SegmentView, 0, len(segments)),
		Legend:   p.Legend(),
		Ticks:    HourTicks(),
	}

	for _, s := range segments {
		v.Segments = append(v.Segments, SegmentView{
			Status:       s.Status,
			StartMinutes: s.StartMinutes,
			Duration:     s.Duration,
			StartTime:    s.StartTime,
			EndTime:      s.EndTime,
			Color:        p.Color(s.Status),
			WidthPercent: s.WidthPercent(),
			Tooltip:      s.StartTime + " - " + s.EndTime,
		})
	}

	totals := Totals(segments)
	v.Totals = make([]StatusTotal, 0, len(legendOrder))
	for _, s := range legendOrder {
		v.Totals = append(v.Totals, StatusTotal{Status: s, Minutes: totals[s]})
	}

	return v
}
