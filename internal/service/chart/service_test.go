package chart

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/free-mobile-netstat/fmns-api/internal/domain"
	"github.com/free-mobile-netstat/fmns-api/internal/mocks"
)

func newTestLogger() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

func parisLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Fatalf("failed to load reference timezone: %v", err)
	}
	return loc
}

// fixedClock pins "now" to 2024-01-09 12:00 in the reference timezone.
func fixedClock(loc *time.Location) func() time.Time {
	return func() time.Time {
		return time.Date(2024, 1, 9, 12, 0, 0, 0, loc)
	}
}

func newChartService(t *testing.T, summaries *mocks.MockSummaryRepository, stats *mocks.MockDailyStatRepository, cache *mocks.MockCache) *Service {
	t.Helper()
	loc := parisLocation(t)
	if summaries == nil {
		summaries = &mocks.MockSummaryRepository{}
	}
	if stats == nil {
		stats = &mocks.MockDailyStatRepository{}
	}
	if cache == nil {
		cache = mocks.NewMockCache()
	}
	return NewService(summaries, stats, cache, loc, time.Hour, newTestLogger()).
		WithClock(fixedClock(loc))
}

func TestGetUsage_RangeValidation(t *testing.T) {
	cases := []struct {
		name    string
		start   string
		end     string
		wantErr error
	}{
		{"reversed", "20240108", "20240101", domain.ErrInvalidDateRange},
		{"ends tomorrow", "20240103", "20240110", domain.ErrInvalidDateRange},
		{"malformed start", "bad", "20240108", domain.ErrInvalidDate},
		{"span of 31 days", "20231201", "20240101", domain.ErrDateRangeTooWide},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service := newChartService(t, nil, nil, nil)

			_, err := service.GetUsage(context.Background(), tc.start, tc.end)

			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestGetUsage_SpanOf30DaysAllowed(t *testing.T) {
	// Arrange
	service := newChartService(t, nil, nil, nil)

	// Act
	_, err := service.GetUsage(context.Background(), "20231201", "20231231")

	// Assert
	if err != nil {
		t.Fatalf("expected 30-day span accepted, got %v", err)
	}
}

func TestGetUsage_AggregatesBothBuckets(t *testing.T) {
	// Arrange
	ctx := context.Background()
	sums := map[string]map[bool]int64{
		"time_on_orange":                {false: 100, true: 40},
		"time_on_free_mobile":           {false: 200},
		"time_on_free_mobile_femtocell": {false: 30, true: 10},
		"time_on_free_mobile_3g":        {true: 50},
		"time_on_free_mobile_4g":        {true: 60},
	}
	summaries := &mocks.MockSummaryRepository{
		SumFieldFunc: func(ctx context.Context, field, startDate, endDate string, fourG bool) (int64, error) {
			return sums[field][fourG], nil
		},
	}
	stats := &mocks.MockDailyStatRepository{
		CountDistinctDevicesFunc: func(ctx context.Context, startDate, endDate string, only4G bool) (int64, error) {
			if only4G {
				return 3, nil
			}
			return 7, nil
		},
	}
	service := newChartService(t, summaries, stats, nil)

	// Act
	usage, err := service.GetUsage(ctx, "20240101", "20240107")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	global := usage.StatsGlobal
	if global.TimeOnOrange != 100 || global.TimeOnFreeMobile != 200 || global.TimeOnFreeMobileFemtocell != 30 {
		t.Errorf("global bucket = %+v", global)
	}
	if global.Users != 7 {
		t.Errorf("global users = %d, want 7", global.Users)
	}
	fourG := usage.Stats4G
	if fourG.TimeOnOrange != 40 || fourG.TimeOnFreeMobile3G != 50 || fourG.TimeOnFreeMobile4G != 60 || fourG.TimeOnFreeMobileFemtocell != 10 {
		t.Errorf("4G bucket = %+v", fourG)
	}
	if fourG.Users != 3 {
		t.Errorf("4G users = %d, want 3", fourG.Users)
	}
}

func TestGetUsage_CacheHitSkipsAggregation(t *testing.T) {
	// Arrange
	ctx := context.Background()
	cached := &domain.UsageAggregate{}
	cached.StatsGlobal.TimeOnOrange = 111
	cached.Stats4G.Users = 5
	payload, _ := json.Marshal(cached)

	cache := mocks.NewMockCache()
	if err := cache.Set(ctx, "20240101-20240107", string(payload), 0); err != nil {
		t.Fatalf("failed to seed cache: %v", err)
	}
	summaries := &mocks.MockSummaryRepository{
		SumFieldFunc: func(ctx context.Context, field, startDate, endDate string, fourG bool) (int64, error) {
			t.Error("no aggregation expected on cache hit")
			return 0, nil
		},
	}
	service := newChartService(t, summaries, nil, cache)

	// Act
	usage, err := service.GetUsage(ctx, "20240101", "20240107")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if usage.StatsGlobal.TimeOnOrange != 111 || usage.Stats4G.Users != 5 {
		t.Errorf("cached aggregate not returned: %+v", usage)
	}
}

func TestGetUsage_CacheExpirationDependsOnWindow(t *testing.T) {
	// A window including today can still receive folds and expires with
	// the mutable TTL; a closed window never expires.
	cases := []struct {
		name    string
		start   string
		end     string
		wantTTL time.Duration
	}{
		{"window ends today", "20240103", "20240109", time.Hour},
		{"window closed yesterday", "20240102", "20240108", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cache := mocks.NewMockCache()
			service := newChartService(t, nil, nil, cache)

			if _, err := service.GetUsage(context.Background(), tc.start, tc.end); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			key := tc.start + "-" + tc.end
			ttl, ok := cache.SetCalls[key]
			if !ok {
				t.Fatalf("aggregate was not cached under %q", key)
			}
			if ttl != tc.wantTTL {
				t.Errorf("ttl = %v, want %v", ttl, tc.wantTTL)
			}
		})
	}
}

func TestGetUsage_UndecodableCacheEntryIsRecomputed(t *testing.T) {
	// Arrange
	ctx := context.Background()
	cache := mocks.NewMockCache()
	if err := cache.Set(ctx, "20240101-20240107", "{garbage", 0); err != nil {
		t.Fatalf("failed to seed cache: %v", err)
	}
	aggregated := false
	summaries := &mocks.MockSummaryRepository{
		SumFieldFunc: func(ctx context.Context, field, startDate, endDate string, fourG bool) (int64, error) {
			aggregated = true
			return 0, nil
		},
	}
	service := newChartService(t, summaries, nil, cache)

	// Act
	_, err := service.GetUsage(ctx, "20240101", "20240107")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !aggregated {
		t.Error("expected aggregation after discarding the bad entry")
	}
}

func TestGetDailyUsage_BuildsSeriesInOrder(t *testing.T) {
	// Arrange
	ctx := context.Background()
	summaries := &mocks.MockSummaryRepository{
		ListRangeFunc: func(ctx context.Context, startDate, endDate string) ([]domain.DailyStatSummary, error) {
			return []domain.DailyStatSummary{
				{
					Date:        "20240101",
					StatsGlobal: domain.GlobalStats{TimeOnOrange: 1},
					Stats4G:     domain.FourGStats{TimeOnFreeMobile4G: 10},
				},
				{
					Date:        "20240102",
					StatsGlobal: domain.GlobalStats{TimeOnOrange: 2},
					Stats4G:     domain.FourGStats{TimeOnFreeMobile4G: 20},
				},
			}, nil
		},
	}
	service := newChartService(t, summaries, nil, nil)

	// Act
	series, err := service.GetDailyUsage(ctx, "20240101", "20240102")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(series.StatsGlobal) != 2 || len(series.Stats4G) != 2 {
		t.Fatalf("series lengths = (%d, %d), want (2, 2)", len(series.StatsGlobal), len(series.Stats4G))
	}
	if series.StatsGlobal[0].TimeOnOrange != 1 || series.StatsGlobal[1].TimeOnOrange != 2 {
		t.Errorf("global series out of order: %+v", series.StatsGlobal)
	}
	if series.Stats4G[1].TimeOnFreeMobile4G != 20 {
		t.Errorf("4G series mismatch: %+v", series.Stats4G)
	}
}

func TestGetDailyUsage_EmptyRange(t *testing.T) {
	// Arrange
	service := newChartService(t, nil, nil, nil)

	// Act
	series, err := service.GetDailyUsage(context.Background(), "20240101", "20240107")

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(series.StatsGlobal) != 0 || len(series.Stats4G) != 0 {
		t.Errorf("expected empty series, got %+v", series)
	}
}

func TestGetDailyUsage_RejectsInvalidRange(t *testing.T) {
	// Arrange
	service := newChartService(t, nil, nil, nil)

	// Act
	_, err := service.GetDailyUsage(context.Background(), "20240108", "20240101")

	// Assert
	if !errors.Is(err, domain.ErrInvalidDateRange) {
		t.Fatalf("err = %v, want ErrInvalidDateRange", err)
	}
}
