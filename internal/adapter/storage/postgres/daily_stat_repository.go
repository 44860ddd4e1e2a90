package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/free-mobile-netstat/fmns-api/internal/domain"
	"github.com/free-mobile-netstat/fmns-api/internal/ports"
)

// statColumns whitelists the duration columns that can be aggregated
// over raw stat rows.
var statColumns = map[string]string{
	"time_on_orange":                "time_on_orange",
	"time_on_free_mobile":           "time_on_free_mobile",
	"time_on_free_mobile_3g":        "time_on_free_mobile_3g",
	"time_on_free_mobile_4g":        "time_on_free_mobile_4g",
	"time_on_free_mobile_femtocell": "time_on_free_mobile_femtocell",
}

type DailyStatRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewDailyStatRepository(db *gorm.DB, log *zap.Logger) ports.DailyStatRepository {
	return &DailyStatRepository{
		db:  db,
		log: log,
	}
}

// Create inserts the stat row. The unique (device_identifier, date)
// index closes the duplicate-report race: a conflicting insert affects
// zero rows and is answered as domain.ErrStatExists.
func (r *DailyStatRepository) Create(ctx context.Context, stat *domain.DailyDeviceStat) error {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "device_identifier"}, {Name: "date"}},
			DoNothing: true,
		}).
		Create(stat)
	if result.Error != nil {
		r.log.Error("Failed to create daily stat", zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrStatExists
	}
	return nil
}

func (r *DailyStatRepository) Exists(ctx context.Context, deviceIdentifier, date string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&domain.DailyDeviceStat{}).
		Where("device_identifier = ? AND date = ?", deviceIdentifier, date).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

func (r *DailyStatRepository) SumCohort4GTime(ctx context.Context, brand, model string) (int64, error) {
	var total int64
	result := r.db.WithContext(ctx).
		Model(&domain.DailyDeviceStat{}).
		Select("COALESCE(SUM(time_on_free_mobile_4g), 0)").
		Where("device_brand = ? AND device_model = ?", brand, model).
		Scan(&total)
	if result.Error != nil {
		return 0, result.Error
	}
	return total, nil
}

func (r *DailyStatRepository) CountDistinctDevices(ctx context.Context, startDate, endDate string, only4G bool) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&domain.DailyDeviceStat{}).
		Where("date >= ? AND date <= ?", startDate, endDate)
	if only4G {
		query = query.Where("is_4g = ?", true)
	}

	var count int64
	result := query.Distinct("device_identifier").Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// SumRawField re-aggregates a duration field from the per-device rows.
// Legacy/debug path; the summaries make this scan unnecessary for
// normal range queries.
func (r *DailyStatRepository) SumRawField(ctx context.Context, field, startDate, endDate string, only4G bool) (int64, error) {
	column, ok := statColumns[field]
	if !ok {
		return 0, fmt.Errorf("unknown stat field %q", field)
	}

	query := r.db.WithContext(ctx).
		Model(&domain.DailyDeviceStat{}).
		Select("COALESCE(SUM("+column+"), 0)").
		Where("date >= ? AND date <= ?", startDate, endDate)
	if only4G {
		query = query.Where("is_4g = ?", true)
	}

	var total int64
	result := query.Scan(&total)
	if result.Error != nil {
		return 0, result.Error
	}
	return total, nil
}
