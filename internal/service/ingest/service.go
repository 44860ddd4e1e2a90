// Package ingest validates, deduplicates and records daily reports.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/free-mobile-netstat/fmns-api/internal/adapter/queue"
	"github.com/free-mobile-netstat/fmns-api/internal/domain"
	"github.com/free-mobile-netstat/fmns-api/internal/observability/telemetry"
	"github.com/free-mobile-netstat/fmns-api/internal/ports"
	"github.com/free-mobile-netstat/fmns-api/pkg/dateutil"
)

// SubjectStatAccepted is the queue subject for accepted reports.
const SubjectStatAccepted = "stats.daily.accepted"

type Service struct {
	devices    ports.DeviceRepository
	stats      ports.DailyStatRepository
	classifier ports.Classifier
	maintainer ports.SummaryMaintainer
	mq         queue.MessageQueue
	loc        *time.Location
	maxAgeDays int
	now        func() time.Time
	log        *zap.Logger
}

// NewService builds the ingestion pipeline. loc is the reference
// timezone for all date-boundary comparisons; mq may be nil to disable
// event publishing.
func NewService(
	devices ports.DeviceRepository,
	stats ports.DailyStatRepository,
	classifier ports.Classifier,
	maintainer ports.SummaryMaintainer,
	mq queue.MessageQueue,
	loc *time.Location,
	log *zap.Logger,
) *Service {
	return &Service{
		devices:    devices,
		stats:      stats,
		classifier: classifier,
		maintainer: maintainer,
		mq:         mq,
		loc:        loc,
		maxAgeDays: domain.MaxReportAgeDays,
		now:        time.Now,
		log:        log,
	}
}

// RecordDailyStat runs the ingestion contract: parse and bound-check
// the date, consistency-check the durations, resolve the device,
// deduplicate, stamp the 4G flag, persist the row, fold it into the
// date's summary.
func (s *Service) RecordDailyStat(ctx context.Context, deviceIdentifier, date string, report domain.StatReport) (*domain.RecordResult, error) {
	statDay, err := dateutil.Parse(date, s.loc)
	if err != nil {
		return nil, err
	}

	today := dateutil.Midnight(s.now(), s.loc)
	oldest := today.AddDate(0, 0, -s.maxAgeDays)

	if statDay.Before(oldest) {
		// Too old to matter, but not an error: erroring here would make
		// the reporting device retry forever.
		telemetry.ReportsTotal.WithLabelValues(string(domain.OutcomeTooOld)).Inc()
		s.log.Info("Daily report ignored, too old",
			zap.String("device_identifier", deviceIdentifier),
			zap.String("date", date),
		)
		return &domain.RecordResult{Outcome: domain.OutcomeTooOld}, nil
	}

	totalFreeMobile := report.TimeOnFreeMobile3G + report.TimeOnFreeMobile4G + report.TimeOnFreeMobileFemtocell
	total := report.TimeOnOrange + report.TimeOnFreeMobile
	if statDay.After(today) || totalFreeMobile > report.TimeOnFreeMobile || totalFreeMobile > total {
		return nil, domain.ErrInvalidStats
	}

	device, err := s.devices.FindByIdentifier(ctx, deviceIdentifier)
	if err != nil {
		return nil, err
	}

	exists, err := s.stats.Exists(ctx, deviceIdentifier, date)
	if err != nil {
		return nil, err
	}
	if exists {
		telemetry.ReportsTotal.WithLabelValues(string(domain.OutcomeAlreadyUploaded)).Inc()
		return &domain.RecordResult{Outcome: domain.OutcomeAlreadyUploaded}, nil
	}

	// Evaluated before the new row is written, so the row is excluded
	// from its own threshold sum.
	fourG, err := s.classifier.IsFourG(ctx, device.Brand, device.Model)
	if err != nil {
		return nil, err
	}

	stat := &domain.DailyDeviceStat{
		DeviceIdentifier:          deviceIdentifier,
		DeviceBrand:               device.Brand,
		DeviceModel:               device.Model,
		Is4G:                      fourG,
		TimeOnOrange:              report.TimeOnOrange,
		TimeOnFreeMobile:          report.TimeOnFreeMobile,
		TimeOnFreeMobile3G:        report.TimeOnFreeMobile3G,
		TimeOnFreeMobile4G:        report.TimeOnFreeMobile4G,
		TimeOnFreeMobileFemtocell: report.TimeOnFreeMobileFemtocell,
		Date:                      date,
	}

	if err := s.stats.Create(ctx, stat); err != nil {
		if errors.Is(err, domain.ErrStatExists) {
			// A concurrent duplicate won the unique-key race. Same
			// answer as the explicit existence check above.
			telemetry.ReportsTotal.WithLabelValues(string(domain.OutcomeAlreadyUploaded)).Inc()
			return &domain.RecordResult{Outcome: domain.OutcomeAlreadyUploaded}, nil
		}
		return nil, err
	}

	if err := s.maintainer.Fold(ctx, date, report, fourG); err != nil {
		// The row is persisted; the fold was lost. The stat uniqueness
		// check stops a client retry from double-folding, so this
		// window is logged and the stored result stands.
		telemetry.SummaryFoldFailuresTotal.Inc()
		s.log.Error("Summary fold lost for persisted report",
			zap.String("device_identifier", deviceIdentifier),
			zap.String("date", date),
			zap.Error(err),
		)
	}

	s.publishAccepted(stat)

	telemetry.ReportsTotal.WithLabelValues(string(domain.OutcomeStored)).Inc()
	return &domain.RecordResult{Outcome: domain.OutcomeStored, Stat: stat}, nil
}

// publishAccepted emits the accepted report on the queue, best effort.
func (s *Service) publishAccepted(stat *domain.DailyDeviceStat) {
	if s.mq == nil {
		return
	}
	payload, err := json.Marshal(stat)
	if err != nil {
		s.log.Error("Failed to marshal accepted report event", zap.Error(err))
		return
	}
	if err := s.mq.Publish(SubjectStatAccepted, payload); err != nil {
		s.log.Error("Failed to publish accepted report event",
			zap.String("subject", SubjectStatAccepted),
			zap.Error(err),
		)
	}
}

// WithClock overrides the wall clock. Tests only.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}
