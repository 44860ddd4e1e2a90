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

// summaryColumns maps public field names to the bucket-prefixed
// columns of the summary table.
var summaryColumns = map[bool]map[string]string{
	false: {
		"time_on_orange":                "global_time_on_orange",
		"time_on_free_mobile":           "global_time_on_free_mobile",
		"time_on_free_mobile_femtocell": "global_time_on_free_mobile_femtocell",
	},
	true: {
		"time_on_orange":                "fourg_time_on_orange",
		"time_on_free_mobile_3g":        "fourg_time_on_free_mobile_3g",
		"time_on_free_mobile_4g":        "fourg_time_on_free_mobile_4g",
		"time_on_free_mobile_femtocell": "fourg_time_on_free_mobile_femtocell",
	},
}

type SummaryRepository struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewSummaryRepository(db *gorm.DB, log *zap.Logger) ports.SummaryRepository {
	return &SummaryRepository{
		db:  db,
		log: log,
	}
}

// EnsureRow inserts the zeroed summary row for the date if absent.
// Always attempting the insert and letting the uniqueness conflict
// resolve to a no-op avoids the duplicate rows a check-then-create
// pattern would produce under concurrent first folds for a date.
func (r *SummaryRepository) EnsureRow(ctx context.Context, date string) error {
	row := &domain.DailyStatSummary{Date: date}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}},
			DoNothing: true,
		}).
		Create(row)
	if result.Error != nil {
		r.log.Error("Failed to ensure summary row", zap.String("date", date), zap.Error(result.Error))
		return result.Error
	}
	return nil
}

func (r *SummaryRepository) IncrementGlobal(ctx context.Context, date string, orange, freeMobile, femtocell int64) error {
	result := r.db.WithContext(ctx).
		Model(&domain.DailyStatSummary{}).
		Where("date = ?", date).
		Updates(map[string]interface{}{
			"global_time_on_orange":                gorm.Expr("global_time_on_orange + ?", orange),
			"global_time_on_free_mobile":           gorm.Expr("global_time_on_free_mobile + ?", freeMobile),
			"global_time_on_free_mobile_femtocell": gorm.Expr("global_time_on_free_mobile_femtocell + ?", femtocell),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no summary row for date %s", date)
	}
	return nil
}

func (r *SummaryRepository) Increment4G(ctx context.Context, date string, orange, fm3g, fm4g, femtocell int64) error {
	result := r.db.WithContext(ctx).
		Model(&domain.DailyStatSummary{}).
		Where("date = ?", date).
		Updates(map[string]interface{}{
			"fourg_time_on_orange":                gorm.Expr("fourg_time_on_orange + ?", orange),
			"fourg_time_on_free_mobile_3g":        gorm.Expr("fourg_time_on_free_mobile_3g + ?", fm3g),
			"fourg_time_on_free_mobile_4g":        gorm.Expr("fourg_time_on_free_mobile_4g + ?", fm4g),
			"fourg_time_on_free_mobile_femtocell": gorm.Expr("fourg_time_on_free_mobile_femtocell + ?", femtocell),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no summary row for date %s", date)
	}
	return nil
}

// SumField is the single aggregation entry point for range queries:
// one column, one window, one bucket, zero on empty result.
func (r *SummaryRepository) SumField(ctx context.Context, field, startDate, endDate string, fourG bool) (int64, error) {
	column, ok := summaryColumns[fourG][field]
	if !ok {
		return 0, fmt.Errorf("unknown summary field %q (4g=%t)", field, fourG)
	}

	var total int64
	result := r.db.WithContext(ctx).
		Model(&domain.DailyStatSummary{}).
		Select("COALESCE(SUM("+column+"), 0)").
		Where("date >= ? AND date <= ?", startDate, endDate).
		Scan(&total)
	if result.Error != nil {
		return 0, result.Error
	}
	return total, nil
}

func (r *SummaryRepository) ListRange(ctx context.Context, startDate, endDate string) ([]domain.DailyStatSummary, error) {
	var rows []domain.DailyStatSummary
	result := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", startDate, endDate).
		Order("date ASC").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}
	return rows, nil
}
