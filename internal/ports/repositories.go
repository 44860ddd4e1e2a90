package ports

import (
	"context"
	"time"

	"github.com/free-mobile-netstat/fmns-api/internal/domain"
)

// DeviceRepository owns Device rows.
type DeviceRepository interface {
	// Create persists a new device. Returns domain.ErrDeviceExists when
	// the identifier is already taken.
	Create(ctx context.Context, device *domain.Device) error
	// FindByIdentifier returns the device or domain.ErrDeviceNotFound.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.Device, error)
}

// DailyStatRepository owns DailyDeviceStat rows. Rows are immutable
// once created; the unique (device_identifier, date) constraint is the
// single serialization point for duplicate reports.
type DailyStatRepository interface {
	// Create persists a new stat row. Returns domain.ErrStatExists when
	// a row for the same (device, date) already exists, including under
	// concurrent duplicate creation.
	Create(ctx context.Context, stat *domain.DailyDeviceStat) error
	// Exists reports whether a row exists for the (device, date) pair.
	Exists(ctx context.Context, deviceIdentifier, date string) (bool, error)
	// SumCohort4GTime sums time_on_free_mobile_4g across all rows of
	// the exact (brand, model) cohort. Zero on empty cohort.
	SumCohort4GTime(ctx context.Context, brand, model string) (int64, error)
	// CountDistinctDevices counts distinct device identifiers with a
	// row dated inside [startDate, endDate], optionally restricted to
	// rows stamped 4G.
	CountDistinctDevices(ctx context.Context, startDate, endDate string, only4G bool) (int64, error)
	// SumRawField re-aggregates a duration field over raw per-device
	// rows in [startDate, endDate]. Legacy/debug path; range queries
	// normally go through the summaries.
	SumRawField(ctx context.Context, field, startDate, endDate string, only4G bool) (int64, error)
}

// SummaryRepository owns DailyStatSummary rows. Only the summary
// maintainer writes through it.
type SummaryRepository interface {
	// EnsureRow creates the summary row for date if absent. A
	// concurrent creation that wins the race is treated as success.
	EnsureRow(ctx context.Context, date string) error
	// IncrementGlobal atomically adds the deltas to the global bucket
	// of the date's summary row.
	IncrementGlobal(ctx context.Context, date string, orange, freeMobile, femtocell int64) error
	// Increment4G atomically adds the deltas to the 4G bucket of the
	// date's summary row.
	Increment4G(ctx context.Context, date string, orange, fm3g, fm4g, femtocell int64) error
	// SumField sums one summary column over [startDate, endDate].
	// fourG selects the bucket. Zero on empty range.
	SumField(ctx context.Context, field, startDate, endDate string, fourG bool) (int64, error)
	// ListRange returns summary rows in [startDate, endDate] in date
	// order.
	ListRange(ctx context.Context, startDate, endDate string) ([]domain.DailyStatSummary, error)
}

// Cache is a string-valued cache with per-key expiration. A zero
// expiration means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping() error
	Close() error
}
