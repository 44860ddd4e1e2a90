// Package chart answers time-window usage queries over the summaries.
package chart

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/free-mobile-netstat/fmns-api/internal/domain"
	"github.com/free-mobile-netstat/fmns-api/internal/observability/telemetry"
	"github.com/free-mobile-netstat/fmns-api/internal/ports"
	"github.com/free-mobile-netstat/fmns-api/pkg/dateutil"
)

type Service struct {
	summaries  ports.SummaryRepository
	stats      ports.DailyStatRepository
	cache      ports.Cache
	loc        *time.Location
	maxRange   int
	mutableTTL time.Duration
	now        func() time.Time
	log        *zap.Logger
}

// NewService builds the chart service. mutableTTL is the cache
// lifetime for windows that still include today; closed windows are
// cached without expiration.
func NewService(
	summaries ports.SummaryRepository,
	stats ports.DailyStatRepository,
	cache ports.Cache,
	loc *time.Location,
	mutableTTL time.Duration,
	log *zap.Logger,
) *Service {
	if mutableTTL <= 0 {
		mutableTTL = time.Hour
	}
	return &Service{
		summaries:  summaries,
		stats:      stats,
		cache:      cache,
		loc:        loc,
		maxRange:   domain.MaxChartRangeDays,
		mutableTTL: mutableTTL,
		now:        time.Now,
		log:        log,
	}
}

// GetUsage returns the two-bucket aggregate over [startDate, endDate],
// cache-aside. The span is capped to bound aggregation cost.
func (s *Service) GetUsage(ctx context.Context, startDate, endDate string) (*domain.UsageAggregate, error) {
	if err := dateutil.ValidateRange(startDate, endDate, s.now(), s.loc); err != nil {
		return nil, err
	}
	if dateutil.SpanDays(startDate, endDate, s.loc) >= s.maxRange {
		return nil, domain.ErrDateRangeTooWide
	}

	cacheKey := startDate + "-" + endDate
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != "" {
		var usage domain.UsageAggregate
		if err := json.Unmarshal([]byte(cached), &usage); err == nil {
			telemetry.ChartCacheTotal.WithLabelValues("hit").Inc()
			return &usage, nil
		}
		s.log.Warn("Discarding undecodable cache entry", zap.String("key", cacheKey))
	}
	telemetry.ChartCacheTotal.WithLabelValues("miss").Inc()

	started := time.Now()
	usage, err := s.aggregate(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}
	telemetry.ChartQueryLatency.Observe(time.Since(started).Seconds())

	s.store(ctx, cacheKey, endDate, usage)
	return usage, nil
}

// GetDailyUsage returns the per-day summary series over the range.
// Uncached: it is the drill-down view and ranges are expected small.
func (s *Service) GetDailyUsage(ctx context.Context, startDate, endDate string) (*domain.DailySeries, error) {
	if err := dateutil.ValidateRange(startDate, endDate, s.now(), s.loc); err != nil {
		return nil, err
	}

	rows, err := s.summaries.ListRange(ctx, startDate, endDate)
	if err != nil {
		return nil, err
	}

	series := &domain.DailySeries{
		StatsGlobal: make([]domain.GlobalStats, 0, len(rows)),
		Stats4G:     make([]domain.FourGStats, 0, len(rows)),
	}
	for _, row := range rows {
		series.StatsGlobal = append(series.StatsGlobal, row.StatsGlobal)
		series.Stats4G = append(series.Stats4G, row.Stats4G)
	}
	return series, nil
}

func (s *Service) aggregate(ctx context.Context, startDate, endDate string) (*domain.UsageAggregate, error) {
	usage := &domain.UsageAggregate{}

	globalFields := []struct {
		name string
		dst  *int64
	}{
		{"time_on_orange", &usage.StatsGlobal.TimeOnOrange},
		{"time_on_free_mobile", &usage.StatsGlobal.TimeOnFreeMobile},
		{"time_on_free_mobile_femtocell", &usage.StatsGlobal.TimeOnFreeMobileFemtocell},
	}
	for _, f := range globalFields {
		sum, err := s.summaries.SumField(ctx, f.name, startDate, endDate, false)
		if err != nil {
			return nil, err
		}
		*f.dst = sum
	}

	fourGFields := []struct {
		name string
		dst  *int64
	}{
		{"time_on_orange", &usage.Stats4G.TimeOnOrange},
		{"time_on_free_mobile_3g", &usage.Stats4G.TimeOnFreeMobile3G},
		{"time_on_free_mobile_4g", &usage.Stats4G.TimeOnFreeMobile4G},
		{"time_on_free_mobile_femtocell", &usage.Stats4G.TimeOnFreeMobileFemtocell},
	}
	for _, f := range fourGFields {
		sum, err := s.summaries.SumField(ctx, f.name, startDate, endDate, true)
		if err != nil {
			return nil, err
		}
		*f.dst = sum
	}

	users, err := s.stats.CountDistinctDevices(ctx, startDate, endDate, false)
	if err != nil {
		return nil, err
	}
	usage.StatsGlobal.Users = users

	users4G, err := s.stats.CountDistinctDevices(ctx, startDate, endDate, true)
	if err != nil {
		return nil, err
	}
	usage.Stats4G.Users = users4G

	return usage, nil
}

// store caches the aggregate. A window ending today can still receive
// folds, so it expires; a window entirely in the past is immutable and
// never needs invalidation.
func (s *Service) store(ctx context.Context, key, endDate string, usage *domain.UsageAggregate) {
	payload, err := json.Marshal(usage)
	if err != nil {
		s.log.Error("Failed to marshal usage aggregate", zap.Error(err))
		return
	}

	var ttl time.Duration
	if endDate >= dateutil.Format(dateutil.Midnight(s.now(), s.loc)) {
		ttl = s.mutableTTL
	}
	if err := s.cache.Set(ctx, key, string(payload), ttl); err != nil {
		s.log.Warn("Failed to cache usage aggregate", zap.String("key", key), zap.Error(err))
	}
}

// WithClock overrides the wall clock. Tests only.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}
