package timeline

import (
	"cmp"
	"fmt"
	"slices"
	"trucklogix-service/internal/domain"
)

// Segment is a contiguous span of the day spent in one duty status.
type Segment struct {
	Status       domain.DutyStatus
	StartMinutes int
	Duration     int
	// StartTime and EndTime echo the change records bounding the segment;
	// the first and last segment of a day use synthesized midnight text.
	StartTime string
	EndTime   string
}

func (s Segment) EndMinutes() int { return s.StartMinutes + s.Duration }

// WidthPercent is the share of the 24-hour axis the segment occupies.
func (s Segment) WidthPercent() float64 {
	return float64(s.Duration) / MinutesPerDay * 100
}

type timedChange struct {
	minute int
	change domain.DutyStatusChange
}

// Reconstruct turns one day's duty status changes, in any order, into
// segments that tile [0, 1440) minutes.
//
// A change records the state entered at its time, so the span between two
// changes is attributed to the later one. The span before the first change
// takes the first change's status and the span after the last change takes
// the last change's status. Zero-length spans are dropped. Changes sharing a
// time keep their input order.
//
// Any unparseable time fails the whole call with a *ParseError.
func Reconstruct(changes []domain.DutyStatusChange) ([]Segment, error) {
	if len(changes) == 0 {
		return []Segment{}, nil
	}

	sorted := make([]timedChange, 0, len(changes))
	for i, c := range changes {
		m, err := ParseClock(c.Time)
		if err != nil {
			return nil, fmt.Errorf("reconstruct timeline: change #%d: %w", i+1, err)
		}
		sorted = append(sorted, timedChange{minute: m, change: c})
	}

	slices.SortStableFunc(sorted, func(a, b timedChange) int {
		return cmp.Compare(a.minute, b.minute)
	})

	first := sorted[0]
	last := sorted[len(sorted)-1]

	segments := make([]Segment, 0, len(sorted)+1)
	segments = append(segments, Segment{
		Status:       first.change.Status,
		StartMinutes: 0,
		Duration:     first.minute,
		StartTime:    startOfDayText,
		EndTime:      first.change.Time,
	})

	for i := 0; i < len(sorted)-1; i++ {
		cur, next := sorted[i], sorted[i+1]
		segments = append(segments, Segment{
			Status:       next.change.Status,
			StartMinutes: cur.minute,
			Duration:     next.minute - cur.minute,
			StartTime:    cur.change.Time,
			EndTime:      next.change.Time,
		})
	}

	if last.minute < MinutesPerDay {
		segments = append(segments, Segment{
			Status:       last.change.Status,
			StartMinutes: last.minute,
			Duration:     MinutesPerDay - last.minute,
			StartTime:    last.change.Time,
			EndTime:      endOfDayText,
		})
	}

	return slices.DeleteFunc(segments, func(s Segment) bool { return s.Duration <= 0 }), nil
}

// Totals sums segment minutes per duty status. Every status is present in
// the result, with zero for statuses that do not occur.
func Totals(segments []Segment) map[domain.DutyStatus]int {
	out := make(map[domain.DutyStatus]int, len(domain.AllStatuses))
	for _, s := range domain.AllStatuses {
		out[s] = 0
	}
	for _, seg := range segments {
		out[seg.Status] += seg.Duration
	}
	return out
}
