package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/tochoprime/league-console/internal/domain/season"
	"github.com/tochoprime/league-console/internal/platform/logging"
	"github.com/tochoprime/league-console/internal/usecase"
)

const reconcileJobName = "payment_status_reconcile"

type SeasonLister interface {
	ListSeasons(ctx context.Context) ([]season.Season, error)
}

type PaymentReconciler interface {
	ReconcilePaymentStatuses(ctx context.Context, seasonID string, workers int) (usecase.ReconcileResult, error)
}

type ReconcileConfig struct {
	Interval time.Duration
	Workers  int
	Timeout  time.Duration
}

// RegisterReconcileJob schedules the payment-status recompute for every
// active season.
func RegisterReconcileJob(s *Service, seasons SeasonLister, reconciler PaymentReconciler, cfg ReconcileConfig) error {
	if seasons == nil || reconciler == nil {
		return fmt.Errorf("reconcile job requires season lister and reconciler")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}

	logger := s.logger.With("job_name", reconcileJobName)
	_, err := s.AddIntervalJob(reconcileJobName, cfg.Interval, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
		defer cancel()
		RunReconcile(ctx, seasons, reconciler, cfg.Workers, logger)
	})
	return err
}

// RunReconcile performs one pass. A failing season is logged and skipped.
func RunReconcile(ctx context.Context, seasons SeasonLister, reconciler PaymentReconciler, workers int, logger *logging.Logger) []usecase.ReconcileResult {
	items, err := seasons.ListSeasons(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "list seasons for reconcile failed", "error", err)
		return nil
	}

	results := make([]usecase.ReconcileResult, 0, len(items))
	for _, item := range items {
		if !item.IsActive {
			continue
		}
		result, err := reconciler.ReconcilePaymentStatuses(ctx, item.ID, workers)
		if err != nil {
			logger.ErrorContext(ctx, "reconcile season payments failed", "season_id", item.ID, "error", err)
			continue
		}
		logger.InfoContext(ctx, "season payments reconciled",
			"season_id", item.ID,
			"checked", result.Checked,
			"updated", result.Updated,
			"failed", result.Failed,
		)
		results = append(results, result)
	}
	return results
}
