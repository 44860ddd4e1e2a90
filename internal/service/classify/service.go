// Package classify decides whether a device counts as 4G.
//
// Classification is cohort level: all devices sharing the exact
// (brand, model) pair are classified together, by the total 4G time
// their recorded rows have accumulated. The flag is evaluated once per
// incoming report, before that report's own row is written, and is
// stamped on the row permanently.
package classify

import (
	"context"

	"go.uber.org/zap"

	"github.com/free-mobile-netstat/fmns-api/internal/domain"
	"github.com/free-mobile-netstat/fmns-api/internal/ports"
)

type Service struct {
	stats     ports.DailyStatRepository
	threshold int64
	log       *zap.Logger
}

// NewService builds a classifier. A non-positive threshold falls back
// to domain.DefaultIs4GThreshold (24 hours of 4G time).
func NewService(stats ports.DailyStatRepository, threshold int64, log *zap.Logger) ports.Classifier {
	if threshold <= 0 {
		threshold = domain.DefaultIs4GThreshold
	}
	return &Service{
		stats:     stats,
		threshold: threshold,
		log:       log,
	}
}

// IsFourG reports whether the (brand, model) cohort's accumulated 4G
// time strictly exceeds the threshold.
func (s *Service) IsFourG(ctx context.Context, brand, model string) (bool, error) {
	total, err := s.stats.SumCohort4GTime(ctx, brand, model)
	if err != nil {
		return false, err
	}
	return total > s.threshold, nil
}
