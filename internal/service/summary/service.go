// Package summary maintains the per-date materialized aggregate.
package summary

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/free-mobile-netstat/fmns-api/internal/domain"
	"github.com/free-mobile-netstat/fmns-api/internal/ports"
)

// Maintainer folds accepted reports into DailyStatSummary rows. It is
// the only writer of summaries. All cross-request coordination lives in
// the repository primitives: insert-if-absent for row creation and
// per-field atomic increments for the folds, so concurrent folds for
// the same date never lose updates and never create duplicate rows.
type Maintainer struct {
	repo ports.SummaryRepository
	log  *zap.Logger
}

func NewMaintainer(repo ports.SummaryRepository, log *zap.Logger) ports.SummaryMaintainer {
	return &Maintainer{
		repo: repo,
		log:  log,
	}
}

// Fold applies one accepted report to the date's summary. The global
// bucket always receives the report; the 4G bucket only when the
// report's row was stamped 4G. Femtocell is a network type already
// counted inside time_on_free_mobile, so the global carrier-B figure
// subtracts it to avoid double counting.
func (m *Maintainer) Fold(ctx context.Context, date string, report domain.StatReport, fourG bool) error {
	if err := m.repo.EnsureRow(ctx, date); err != nil {
		return fmt.Errorf("failed to ensure summary row for %s: %w", date, err)
	}

	if err := m.repo.IncrementGlobal(ctx, date,
		report.TimeOnOrange,
		report.TimeOnFreeMobile-report.TimeOnFreeMobileFemtocell,
		report.TimeOnFreeMobileFemtocell,
	); err != nil {
		return fmt.Errorf("failed to fold global stats for %s: %w", date, err)
	}

	if !fourG {
		return nil
	}

	if err := m.repo.Increment4G(ctx, date,
		report.TimeOnOrange,
		report.TimeOnFreeMobile3G,
		report.TimeOnFreeMobile4G,
		report.TimeOnFreeMobileFemtocell,
	); err != nil {
		return fmt.Errorf("failed to fold 4g stats for %s: %w", date, err)
	}

	return nil
}
