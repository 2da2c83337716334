package services

import (
	"context"
	"fmt"
	"log"
	"time"
	"trucklogix-service/internal/domain"
	"trucklogix-service/internal/platform/obs"
	"trucklogix-service/internal/ports"
	"trucklogix-service/internal/timeline"
)

// TimelineMetrics counts reconstruction outcomes.
type TimelineMetrics interface {
	ReconstructionInc(ok bool)
}

// EldLogService generates and reads daily logs and attaches the reconstructed
// duty status timeline. Events, Feed and Metrics are optional.
type EldLogService struct {
	Backend ports.EldLogBackend
	Palette timeline.Palette
	Events  ports.EventPublisher
	Feed    ports.Broadcaster
	Metrics TimelineMetrics
}

// EldLogView is a log with its timeline. TimelineError is set instead of
// segments when the stored changes cannot be parsed.
type EldLogView struct {
	Log           *domain.EldLog
	Timeline      timeline.View
	TimelineError string
}

// FeedMessage is what live viewers receive for each generated log.
type FeedMessage struct {
	LogID      int           `json:"log_id"`
	DriverName string        `json:"driver_name"`
	Date       string        `json:"date"`
	Timeline   timeline.View `json:"timeline"`
}

// TimelineInput is either structured changes or log text; changes win when
// both are given.
type TimelineInput struct {
	Changes  []domain.DutyStatusChange
	LogSheet string
}

func (s *EldLogService) Generate(ctx context.Context, req domain.EldLogRequest) (_ *EldLogView, err error) {
	defer obs.Time(ctx, "eld.Generate")(&err)

	if err := ValidateEldLogRequest(req); err != nil {
		return nil, err
	}

	changes := make([]domain.DutyStatusChange, len(req.DutyStatusChanges))
	copy(changes, req.DutyStatusChanges)
	for i := range changes {
		changes[i].Order = i
	}
	req.DutyStatusChanges = changes

	eld, err := s.Backend.GenerateEldLog(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate eld log: %w", err)
	}

	view := s.buildView(eld)

	if view.TimelineError == "" {
		totals := make(map[string]int, len(view.Timeline.Totals))
		for _, t := range view.Timeline.Totals {
			totals[t.Status.String()] = t.Minutes
		}
		publishEvent(ctx, s.Events, domain.SubjectEldGenerated, domain.EldGeneratedEvent{
			LogID:      eld.ID,
			DriverName: eld.DriverName,
			Date:       eld.Date,
			Totals:     totals,
			At:         time.Now().UTC(),
		})

		if s.Feed != nil {
			s.Feed.Broadcast(FeedMessage{
				LogID:      eld.ID,
				DriverName: eld.DriverName,
				Date:       eld.Date,
				Timeline:   view.Timeline,
			})
		}
	}

	return view, nil
}

func (s *EldLogService) History(ctx context.Context) ([]*domain.EldLog, error) {
	logs, err := s.Backend.EldLogHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("eld log history: %w", err)
	}
	return logs, nil
}

func (s *EldLogService) Detail(ctx context.Context, id int) (*EldLogView, error) {
	eld, err := s.Backend.EldLogDetail(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("eld log detail id=%d: %w", id, err)
	}
	return s.buildView(eld), nil
}

func (s *EldLogService) Delete(ctx context.Context, id int) error {
	if err := s.Backend.DeleteEldLog(ctx, id); err != nil {
		return fmt.Errorf("delete eld log id=%d: %w", id, err)
	}

	publishEvent(ctx, s.Events, domain.SubjectEldDeleted, domain.EldDeletedEvent{LogID: id, At: time.Now().UTC()})
	return nil
}

// Timeline reconstructs a day without touching the backend. A *ParseError
// is returned as is (wrapped).
func (s *EldLogService) Timeline(ctx context.Context, in TimelineInput) (_ timeline.View, err error) {
	defer obs.Time(ctx, "eld.Timeline")(&err)

	changes := in.Changes
	var warnings []timeline.RejectedLine
	if len(changes) == 0 && in.LogSheet != "" {
		ex := timeline.ExtractChanges(in.LogSheet)
		changes, warnings = ex.Changes, ex.Rejected
	}

	segments, err := timeline.Reconstruct(changes)
	s.countReconstruction(err)
	if err != nil {
		return timeline.View{}, err
	}

	view := timeline.BuildView(segments, s.palette())
	view.Warnings = warnings
	return view, nil
}

// buildView prefers the structured changes of a log and falls back to the
// lines of its rendered sheet.
func (s *EldLogService) buildView(eld *domain.EldLog) *EldLogView {
	changes := eld.DutyStatusChanges
	var warnings []timeline.RejectedLine
	if len(changes) == 0 {
		ex := timeline.ExtractChanges(eld.LogSheet)
		changes, warnings = ex.Changes, ex.Rejected
	}

	out := &EldLogView{Log: eld}

	segments, err := timeline.Reconstruct(changes)
	s.countReconstruction(err)
	if err != nil {
		log.Printf("timeline unavailable: log_id=%d err=%v", eld.ID, err)
		out.TimelineError = err.Error()
		out.Timeline = timeline.BuildView(nil, s.palette())
		out.Timeline.Warnings = warnings
		return out
	}

	out.Timeline = timeline.BuildView(segments, s.palette())
	out.Timeline.Warnings = warnings
	return out
}

func (s *EldLogService) palette() timeline.Palette {
	return s.Palette.WithDefaults()
}

func (s *EldLogService) countReconstruction(err error) {
	if s.Metrics != nil {
		s.Metrics.ReconstructionInc(err == nil)
	}
}
