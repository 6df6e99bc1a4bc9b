package surveillance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/esaude/esaude/internal/platform/events"
)

var (
	// ErrInvalidPeriod is returned when the window starts after it ends.
	ErrInvalidPeriod = errors.New("period start is after period end")
	// ErrDataUnavailable wraps failures of the triage or reading sources.
	ErrDataUnavailable = errors.New("surveillance data unavailable")
	// ErrAuditFailed is returned when the audit entry could not be written.
	// No report is returned in that case.
	ErrAuditFailed = errors.New("audit write failed")
)

type Service struct {
	triages   TriageSource
	readings  ReadingSource
	audit     AuditSink
	publisher events.Publisher
	rules     []Rule
	logger    zerolog.Logger
	now       func() time.Time
}

// NewService wires the report generator. A nil publisher disables alert
// forwarding.
func NewService(triages TriageSource, readings ReadingSource, sink AuditSink, publisher events.Publisher, logger zerolog.Logger) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{
		triages:   triages,
		readings:  readings,
		audit:     sink,
		publisher: publisher,
		rules:     DefaultRules(),
		logger:    logger.With().Str("component", "surveillance").Logger(),
		now:       time.Now,
	}
}

// GenerateReport builds the surveillance report of zoneID over the inclusive
// window [start, end]. The report is only returned once its audit entry has
// been persisted.
func (s *Service) GenerateReport(ctx context.Context, zoneID int, start, end time.Time, userID *string) (Report, error) {
	if start.After(end) {
		return Report{}, ErrInvalidPeriod
	}

	var (
		triages  []TriageRecord
		readings []ClinicalReading
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		triages, err = s.triages.ListTriagesByZone(gctx, zoneID, start, end)
		if err != nil {
			return fmt.Errorf("%w: list triages: %w", ErrDataUnavailable, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		readings, err = s.readings.ListReadingsByZone(gctx, zoneID, start, end)
		if err != nil {
			return fmt.Errorf("%w: list readings: %w", ErrDataUnavailable, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	summary, malformed := AggregateSymptoms(triages)
	if malformed > 0 {
		s.logger.Warn().
			Int("zone_id", zoneID).
			Int("malformed", malformed).
			Msg("skipped unparseable triage payloads")
	}
	alerts := EvaluateRules(s.rules, summary, readings)
	report := AssembleReport(zoneID, start, end, triages, readings, summary, alerts)

	if err := ctx.Err(); err != nil {
		return Report{}, err
	}
	entry := NewAuditEntry(zoneID, userID, s.now())
	if err := s.audit.Create(ctx, entry); err != nil {
		return Report{}, fmt.Errorf("%w: %w", ErrAuditFailed, err)
	}

	s.logger.Info().
		Int("zone_id", zoneID).
		Int("triages", report.TotalTriages).
		Int("readings", report.TotalReadings).
		Int("observations", summary.Total()).
		Int("alerts", len(report.Alerts)).
		Str("audit_id", entry.ID.String()).
		Msg("surveillance report generated")

	s.publish(ctx, report, entry.ID.String())
	return report, nil
}

// publish forwards raised alerts. Failures are logged and never affect the
// report already committed to the audit log.
func (s *Service) publish(ctx context.Context, report Report, auditID string) {
	if len(report.Alerts) == 0 {
		return
	}
	raisedAt := s.now().UTC()
	evs := make([]events.AlertEvent, 0, len(report.Alerts))
	for _, a := range report.Alerts {
		evs = append(evs, events.AlertEvent{
			ZoneID:      report.ZoneID,
			Kind:        string(a.Kind),
			Message:     a.Message,
			PeriodStart: report.Period.Start,
			PeriodEnd:   report.Period.End,
			AuditID:     auditID,
			RaisedAt:    raisedAt,
		})
	}
	if err := s.publisher.PublishAlerts(ctx, evs); err != nil {
		s.logger.Error().Err(err).
			Int("zone_id", report.ZoneID).
			Int("alerts", len(evs)).
			Msg("publish surveillance alerts")
	}
}
