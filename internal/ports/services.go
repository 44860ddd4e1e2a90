package ports

import (
	"context"

	"github.com/free-mobile-netstat/fmns-api/internal/domain"
)

// DeviceService is the device registry.
type DeviceService interface {
	// Register creates a new device. Returns domain.ErrDeviceExists
	// when the identifier is already taken.
	Register(ctx context.Context, identifier, brand, model string) (*domain.Device, error)
	// Get returns the device or domain.ErrDeviceNotFound.
	Get(ctx context.Context, identifier string) (*domain.Device, error)
}

// Classifier decides whether a (brand, model) cohort counts as 4G.
type Classifier interface {
	IsFourG(ctx context.Context, brand, model string) (bool, error)
}

// StatService is the ingestion pipeline for daily reports.
type StatService interface {
	// RecordDailyStat validates, deduplicates and records one daily
	// report. Soft outcomes (too old, already uploaded) are part of the
	// result, not errors.
	RecordDailyStat(ctx context.Context, deviceIdentifier, date string, report domain.StatReport) (*domain.RecordResult, error)
}

// SummaryMaintainer folds accepted reports into the per-date summary.
type SummaryMaintainer interface {
	// Fold applies one accepted report to the date's summary. fourG is
	// the flag stamped on the report's row and is the sole gate for the
	// 4G bucket.
	Fold(ctx context.Context, date string, report domain.StatReport, fourG bool) error
}

// ChartService answers time-window aggregate queries.
type ChartService interface {
	// GetUsage returns the cached two-bucket aggregate over
	// [startDate, endDate]. The span is capped.
	GetUsage(ctx context.Context, startDate, endDate string) (*domain.UsageAggregate, error)
	// GetDailyUsage returns the per-day summary series over the range,
	// uncached and uncapped.
	GetDailyUsage(ctx context.Context, startDate, endDate string) (*domain.DailySeries, error)
}
